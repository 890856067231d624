// Package usecase はローソク足の複数時間足取得パイプラインを実装します。
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"screener/internal/feature/candles/domain/entity"
)

// DefaultFetchTimeout は1回の取得に許す時間のデフォルト値です。
const DefaultFetchTimeout = 15 * time.Second

// MarketRepository は外部の相場データソースからローソク足を取得するインターフェイスです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// FetchCandles は ticker の res 足を window の期間で取得し、上流の行をそのまま返します。
	FetchCandles(ctx context.Context, ticker string, res entity.Resolution, window entity.DateWindow) ([]entity.RawCandle, error)
}

// PipelineUsecase は1銘柄について全時間足を取得し、結果を集約します。
// 状態を持たないため、リクエストごとに使い回しても並行に呼び出しても安全です。
type PipelineUsecase struct {
	market       MarketRepository
	fetchTimeout time.Duration
}

// NewPipelineUsecase は新しい PipelineUsecase を作成します。
// fetchTimeout が0以下の場合、1回の取得にタイムアウトを設けません。
func NewPipelineUsecase(market MarketRepository, fetchTimeout time.Duration) *PipelineUsecase {
	return &PipelineUsecase{market: market, fetchTimeout: fetchTimeout}
}

// NormalizeTicker は前後の空白を除き大文字にした銘柄コードを返します。
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// FetchSeries は1つの時間足を取得して CandleSeries に変換します。
// 取得に失敗した場合は *FetchError、行が0件なら ErrEmptyResult、
// 変換できない行があれば *NormalizationError を返します。
func (pu *PipelineUsecase) FetchSeries(ctx context.Context, ticker string, res entity.Resolution, window entity.DateWindow) (entity.CandleSeries, error) {
	if pu.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pu.fetchTimeout)
		defer cancel()
	}

	rows, err := pu.market.FetchCandles(ctx, ticker, res, window)
	if err != nil {
		return entity.CandleSeries{}, &FetchError{Resolution: res, Err: err}
	}
	return Normalize(ticker, res, window, rows)
}

// RunPipeline は全時間足（日足, 1時間足, 10分足, 1分足）を並行に取得し、
// 結果を PipelineResult にまとめます。
//
// 基準時刻 now は呼び出し側で一度だけ取得したものを渡し、全時間足の期間計算で共有します。
// ある時間足の失敗は他の時間足の取得を止めず、その時間足のスロットを空にするだけです。
// 失敗の詳細はログにのみ出力し、結果には HasError として集約します。
//
// 空白のみの ticker の場合は上流へリクエストを送らず、4つのスロットをすべて空にして
// HasError を true で返します。
func (pu *PipelineUsecase) RunPipeline(ctx context.Context, ticker string, now time.Time) entity.PipelineResult {
	ticker = NormalizeTicker(ticker)
	resolutions := entity.Resolutions()
	slots := make([]entity.Slot, len(resolutions))

	// 兄弟のキャンセルはしないため errgroup.WithContext は使わない
	var g errgroup.Group
	for i, res := range resolutions {
		window := entity.ComputeWindow(res, now)
		slots[i] = entity.Slot{Resolution: res, Window: window}

		if ticker == "" {
			slog.Warn("pipeline skipped fetch", "resolution", res, "error", ErrInvalidTicker)
			continue
		}

		g.Go(func() error {
			start := time.Now()
			series, err := pu.FetchSeries(ctx, ticker, res, window)
			if err != nil {
				// 1つの時間足でエラーが発生しても他の時間足は続行する
				slog.Error("failed to load candles",
					"ticker", ticker,
					"resolution", res,
					"interval", res.IntervalCode(),
					"from", window.From(),
					"till", window.Till(),
					"error", err,
				)
				return nil
			}
			slog.Debug("candles loaded",
				"ticker", ticker,
				"resolution", res,
				"count", series.Len(),
				"elapsed", time.Since(start),
			)
			// 各 goroutine は自分のスロットにのみ書き込む
			slots[i].Series = &series
			return nil
		})
	}
	_ = g.Wait()

	result := entity.PipelineResult{
		Ticker:       ticker,
		ReferenceNow: now,
		Slots:        slots,
	}
	for _, s := range slots {
		if !s.Present() {
			result.HasError = true
		}
	}
	return result
}
