// Package chart はローソク足系列をECharts用のチャートに変換します。
package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"screener/internal/feature/candles/domain/entity"
)

// DefaultHeight はチャートの高さです。
const DefaultHeight = "400px"

// ErrEmptySeries は描画対象の系列が空の場合に返されます。
var ErrEmptySeries = errors.New("chart: empty series")

// Artifact はページに埋め込む1つのチャートです。
type Artifact struct {
	ID         string
	Title      string
	Height     string
	Resolution entity.Resolution
	Option     template.JS // echarts の setOption に渡すJSON
}

// Renderer は CandleSeries からローソク足チャートを作ります。
type Renderer struct {
	height string
}

// NewRenderer は高さ height の Renderer を生成します。空の場合は DefaultHeight を使います。
func NewRenderer(height string) *Renderer {
	if height == "" {
		height = DefaultHeight
	}
	return &Renderer{height: height}
}

// Title はチャートの見出しを返します（例: "SNGSP Daily Prices Over Last Year"）。
func Title(ticker string, res entity.Resolution) string {
	return fmt.Sprintf("%s %s", ticker, res.Title())
}

// ID はページ内で一意なチャート要素のIDを返します。
func ID(res entity.Resolution) string {
	return "chart-" + string(res)
}

// Render は s を1つのローソク足チャートに変換します。
func (r *Renderer) Render(s entity.CandleSeries) (Artifact, error) {
	if s.Len() == 0 {
		return Artifact{}, ErrEmptySeries
	}

	layout := labelLayout(s.Resolution)
	xs := make([]string, 0, s.Len())
	bars := make([]opts.KlineData, 0, s.Len())
	for _, c := range s.Candles {
		xs = append(xs, c.Time.Format(layout))
		// echarts の並びは open, close, low, high
		bars = append(bars, opts.KlineData{Value: [4]float64{c.Open, c.Close, c.Low, c.High}})
	}

	title := Title(s.Ticker, s.Resolution)
	id := ID(s.Resolution)

	k := charts.NewKLine()
	k.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: id,
			Width:   "100%",
			Height:  r.height,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	k.SetXAxis(xs).AddSeries(s.Ticker, bars)
	k.Validate()

	// 銘柄コードが含まれるため、< > & をエスケープする既定の json.Marshal を使う
	option, err := json.Marshal(k.JSON())
	if err != nil {
		return Artifact{}, fmt.Errorf("chart: marshal option: %w", err)
	}

	return Artifact{
		ID:         id,
		Title:      title,
		Height:     r.height,
		Resolution: s.Resolution,
		Option:     template.JS(option),
	}, nil
}

// RenderAll は result のうちデータがある時間足だけをチャートにします。
// 描画に失敗した時間足は結果から除き、エラーを結合して返します。
func (r *Renderer) RenderAll(result entity.PipelineResult) ([]Artifact, error) {
	var (
		out  []Artifact
		errs []error
	)
	for _, slot := range result.Slots {
		if !slot.Present() {
			continue
		}
		a, err := r.Render(*slot.Series)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", slot.Resolution, err))
			continue
		}
		out = append(out, a)
	}
	return out, errors.Join(errs...)
}

func labelLayout(res entity.Resolution) string {
	if res == entity.Daily {
		return "2006-01-02"
	}
	return "2006-01-02 15:04"
}
