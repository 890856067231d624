package moex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"screener/internal/feature/candles/domain/entity"
	"screener/internal/feature/candles/usecase"
	"screener/internal/platform/externalapi/moex/dto"
)

// candleColumns はISSに要求する列です。
var candleColumns = []string{"begin", "open", "high", "low", "close", "volume"}

// ErrTooManyPages はページ数の上限に達しても結果が終わらなかった場合に返されます。
var ErrTooManyPages = errors.New("moex: page limit exceeded")

// ISSMarket はISS APIからローソク足を取得するMarketRepository実装です。
type ISSMarket struct {
	cfg    Config
	client *http.Client
}

// ISSMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*ISSMarket)(nil)

// NewISSMarket は指定された設定とHTTPクライアントでISSMarketの新しいインスタンスを生成します。
func NewISSMarket(cfg Config, client *http.Client) *ISSMarket {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	return &ISSMarket{cfg: cfg, client: client}
}

// FetchCandles はISSから ticker のローソク足を取得し、上流の行として返します。
// ISSは結果をページ単位で返すため、PageSize に満たないページが返るまで start をずらして取得を続けます。
func (m *ISSMarket) FetchCandles(ctx context.Context, ticker string, res entity.Resolution, window entity.DateWindow) ([]entity.RawCandle, error) {
	var rows []entity.RawCandle
	for page := 0; page < m.cfg.MaxPages; page++ {
		batch, err := m.fetchPage(ctx, ticker, res, window, len(rows))
		if err != nil {
			return nil, err
		}
		rows = append(rows, batch...)
		// 満杯でないページが最後のページ
		if len(batch) < m.cfg.PageSize {
			return rows, nil
		}
	}
	return nil, fmt.Errorf("%w: %d pages for %s %s", ErrTooManyPages, m.cfg.MaxPages, ticker, res)
}

// candlesURL はページ start の要求URLを生成します。
func (m *ISSMarket) candlesURL(ticker string, res entity.Resolution, window entity.DateWindow, start int) string {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("from", window.From())
	q.Set("till", window.Till())
	q.Set("interval", strconv.Itoa(res.IntervalCode()))
	q.Set("start", strconv.Itoa(start))
	q.Set("iss.meta", "off")
	q.Set("candles.columns", strings.Join(candleColumns, ","))

	return fmt.Sprintf("%s/engines/%s/markets/%s/securities/%s/candles.json?%s",
		m.cfg.BaseURL,
		url.PathEscape(m.cfg.Engine),
		url.PathEscape(m.cfg.Market),
		url.PathEscape(ticker),
		q.Encode(),
	)
}

func (m *ISSMarket) fetchPage(ctx context.Context, ticker string, res entity.Resolution, window entity.DateWindow, start int) ([]entity.RawCandle, error) {
	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.candlesURL(ticker, res, window, start), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	// リクエストを実行
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("moex http %d", resp.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.CandlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("moex decode: %w", err)
	}
	return toRawCandles(body.Candles)
}

// toRawCandles はISSのテーブルを列名で引いて RawCandle に変換します。
func toRawCandles(t dto.Table) ([]entity.RawCandle, error) {
	if len(t.Data) == 0 {
		return nil, nil
	}

	idx := t.Index()
	for _, c := range candleColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("moex: missing column %q", c)
		}
	}

	out := make([]entity.RawCandle, 0, len(t.Data))
	for i, row := range t.Data {
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("moex: row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}

		var rc entity.RawCandle
		if err := json.Unmarshal(row[idx["begin"]], &rc.Begin); err != nil {
			return nil, fmt.Errorf("moex: row %d begin: %w", i, err)
		}
		// 価格と出来高をパース
		fields := []struct {
			name string
			dst  *float64
		}{
			{"open", &rc.Open},
			{"high", &rc.High},
			{"low", &rc.Low},
			{"close", &rc.Close},
			{"volume", &rc.Volume},
		}
		for _, f := range fields {
			if err := json.Unmarshal(row[idx[f.name]], f.dst); err != nil {
				return nil, fmt.Errorf("moex: row %d %s: %w", i, f.name, err)
			}
		}
		out = append(out, rc)
	}
	return out, nil
}
