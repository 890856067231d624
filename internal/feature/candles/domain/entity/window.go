package entity

import "time"

// windowDateLayout は上流APIが受け付ける日付形式です。
const windowDateLayout = "2006-01-02"

// DateWindow は1つの時間足について上流へ要求する期間です。両端を含みます。
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// From は開始日を YYYY-MM-DD で返します。
func (w DateWindow) From() string {
	return w.Start.Format(windowDateLayout)
}

// Till は終了日を YYYY-MM-DD で返します。
func (w DateWindow) Till() string {
	return w.End.Format(windowDateLayout)
}

func (w DateWindow) String() string {
	return w.From() + ".." + w.Till()
}

// ComputeWindow は基準時刻 now と時間足 res から取得期間を求めます。
// End は now の暦日（now のロケーションでの 0 時）、Start は End から遡った日付です。
// 遡る量は暦日で LookbackDays 日です（夏時間の切り替えをまたいでも日付で数える）。
// 同じ入力に対して常に同じ結果を返します。
func ComputeWindow(res Resolution, now time.Time) DateWindow {
	y, m, d := now.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return DateWindow{
		Start: end.AddDate(0, 0, -res.LookbackDays()),
		End:   end,
	}
}
