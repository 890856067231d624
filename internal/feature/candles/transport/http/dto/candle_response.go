// Package dto はcandlesフィーチャーのHTTPレスポンスDTOを定義します。
package dto

// CandleResponse はロウソク足データのレスポンスDTOです。
type CandleResponse struct {
	Time   string  `json:"time"`   // 足の開始時刻（RFC3339）
	Open   float64 `json:"open"`   // 始値
	High   float64 `json:"high"`   // 高値
	Low    float64 `json:"low"`    // 安値
	Close  float64 `json:"close"`  // 終値
	Volume float64 `json:"volume"` // 出来高
}

// SeriesResponse は1つの時間足の結果です。データが無い場合 Candles は null になります。
type SeriesResponse struct {
	Resolution string           `json:"resolution"`
	Interval   int              `json:"interval"`
	From       string           `json:"from"`
	Till       string           `json:"till"`
	Candles    []CandleResponse `json:"candles"`
}

// PipelineResponse は全時間足の取得結果です。
type PipelineResponse struct {
	Ticker   string           `json:"ticker"`
	HasError bool             `json:"hasError"`
	Series   []SeriesResponse `json:"series"`
}

// ErrorResponse はエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}
