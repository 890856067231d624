package entity

import "time"

// Resolution は取得するローソク足の時間足です。
type Resolution string

const (
	Daily     Resolution = "daily"
	Hourly    Resolution = "hourly"
	TenMinute Resolution = "10min"
	OneMinute Resolution = "1min"
)

type resolutionSpec struct {
	interval int    // ISS の interval パラメータ
	days     int    // 遡る日数
	title    string // チャートタイトル
}

var resolutionSpecs = map[Resolution]resolutionSpec{
	Daily:     {interval: 24, days: 365, title: "Daily Prices Over Last Year"},
	Hourly:    {interval: 60, days: 30, title: "Hourly Prices Over Last Month"},
	TenMinute: {interval: 10, days: 7, title: "10-Min Prices Over Last Week"},
	OneMinute: {interval: 1, days: 1, title: "1-Min Prices Over Last Day"},
}

// Resolutions はパイプラインが処理する時間足を処理順に返します。
// 粗い足から細かい足の順で、遡る期間は単調に短くなります。
func Resolutions() []Resolution {
	return []Resolution{Daily, Hourly, TenMinute, OneMinute}
}

// Valid は r が既知の時間足かどうかを返します。
func (r Resolution) Valid() bool {
	_, ok := resolutionSpecs[r]
	return ok
}

// IntervalCode は上流APIに渡す足種別のコードを返します（日足=24, 1時間足=60 など）。
func (r Resolution) IntervalCode() int {
	return resolutionSpecs[r].interval
}

// LookbackDays は r の取得期間を日数で返します。
func (r Resolution) LookbackDays() int {
	return resolutionSpecs[r].days
}

// Lookback は r の取得期間を 24時間×LookbackDays で返します。
// ComputeWindow は暦日（AddDate）で遡るため、夏時間のあるロケーションでは
// End.Sub(Start) がこの値と1時間ずれることがあります。日数は LookbackDays を使ってください。
func (r Resolution) Lookback() time.Duration {
	return time.Duration(r.LookbackDays()) * 24 * time.Hour
}

// Title はチャート見出しの銘柄コード以降の部分です。
func (r Resolution) Title() string {
	return resolutionSpecs[r].title
}

func (r Resolution) String() string {
	return string(r)
}
