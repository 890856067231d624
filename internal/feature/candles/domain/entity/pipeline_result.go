package entity

import "time"

// Slot は1つの時間足の取得結果です。Series が nil の場合はデータなしを表します。
type Slot struct {
	Resolution Resolution
	Window     DateWindow
	Series     *CandleSeries
}

// Present はこのスロットにデータがあるかを返します。
func (s Slot) Present() bool {
	return s.Series != nil
}

// PipelineResult は1銘柄・1基準時刻に対するパイプライン実行結果です。
// Slots は Resolutions() と同じ順で常に4件です。
type PipelineResult struct {
	Ticker       string
	ReferenceNow time.Time
	Slots        []Slot
	HasError     bool
}

// Series は res のローソク足系列を返します。データがなければ false を返します。
func (r PipelineResult) Series(res Resolution) (CandleSeries, bool) {
	for _, s := range r.Slots {
		if s.Resolution == res && s.Series != nil {
			return *s.Series, true
		}
	}
	return CandleSeries{}, false
}

// Missing はデータが得られなかった時間足を処理順で返します。
func (r PipelineResult) Missing() []Resolution {
	var out []Resolution
	for _, s := range r.Slots {
		if !s.Present() {
			out = append(out, s.Resolution)
		}
	}
	return out
}
