package usecase

import (
	"fmt"
	"time"

	"screener/internal/feature/candles/domain/entity"
)

const (
	beginLayout     = "2006-01-02 15:04:05"
	beginDateLayout = "2006-01-02"
)

// exchangeLocation は取引所の時刻（モスクワ時間）です。
// tzdata が無い環境では UTC+3 固定で代用します。
var exchangeLocation = loadExchangeLocation()

func loadExchangeLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// Normalize は上流の行データを検証し、CandleSeries に変換します。
//
//   - 行が0件の場合は ErrEmptyResult を返す（空の系列は作らない）
//   - 各行の Begin を足の開始時刻としてパースする
//   - 並び順は上流のまま保持し、価格の整合性チェックは行わない
func Normalize(ticker string, res entity.Resolution, window entity.DateWindow, rows []entity.RawCandle) (entity.CandleSeries, error) {
	if len(rows) == 0 {
		return entity.CandleSeries{}, ErrEmptyResult
	}

	candles := make([]entity.Candle, 0, len(rows))
	for i, r := range rows {
		// タイムスタンプをパース
		tm, err := parseBegin(r.Begin)
		if err != nil {
			return entity.CandleSeries{}, &NormalizationError{Row: i, Err: err}
		}
		candles = append(candles, entity.Candle{
			Time:   tm,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}

	return entity.CandleSeries{
		Ticker:     ticker,
		Resolution: res,
		Window:     window,
		Candles:    candles,
	}, nil
}

func parseBegin(s string) (time.Time, error) {
	tm, err := time.ParseInLocation(beginLayout, s, exchangeLocation)
	if err == nil {
		return tm, nil
	}
	tm, err = time.ParseInLocation(beginDateLayout, s, exchangeLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse begin %q: %w", s, err)
	}
	return tm, nil
}
