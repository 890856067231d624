package handler_test

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"screener/internal/feature/candles/domain/entity"
	"screener/internal/feature/candles/transport/handler"
	"screener/internal/platform/chart"
)

// mockChartRenderer はChartRendererインターフェースのモック実装です。
type mockChartRenderer struct {
	RenderAllFunc func(result entity.PipelineResult) ([]chart.Artifact, error)
}

func (m *mockChartRenderer) RenderAll(result entity.PipelineResult) ([]chart.Artifact, error) {
	if m.RenderAllFunc != nil {
		return m.RenderAllFunc(result)
	}
	var out []chart.Artifact
	for _, s := range result.Slots {
		if s.Present() {
			out = append(out, chart.Artifact{
				ID:         chart.ID(s.Resolution),
				Title:      chart.Title(result.Ticker, s.Resolution),
				Height:     chart.DefaultHeight,
				Resolution: s.Resolution,
				Option:     template.JS(`{"series":[]}`),
			})
		}
	}
	return out, nil
}

func newScreenerRouter(uc handler.PipelineUsecase, r handler.ChartRenderer) *gin.Engine {
	h := handler.NewScreenerHandler(uc, r, handler.ScreenerConfig{AssetsURL: "/static/echarts.min.js"})
	router := gin.New()
	router.GET("/", h.Index)
	router.POST("/", h.Index)
	return router
}

// TestScreenerHandler_Index は画面表示とフォーム送信の挙動をテストします。
func TestScreenerHandler_Index(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		method         string
		form           url.Values
		present        []entity.Resolution
		expectedTicker string
		expectedCharts []string
		expectError    bool
	}{
		{
			name:           "GET uses default ticker",
			method:         http.MethodGet,
			present:        entity.Resolutions(),
			expectedTicker: handler.DefaultTicker,
			expectedCharts: []string{"chart-daily", "chart-hourly", "chart-10min", "chart-1min"},
		},
		{
			name:           "POST uses submitted ticker",
			method:         http.MethodPost,
			form:           url.Values{"ticker": {"gazp"}},
			present:        entity.Resolutions(),
			expectedTicker: "GAZP",
			expectedCharts: []string{"chart-daily", "chart-hourly", "chart-10min", "chart-1min"},
		},
		{
			name:           "POST with empty ticker falls back to default",
			method:         http.MethodPost,
			form:           url.Values{"ticker": {"  "}},
			present:        entity.Resolutions(),
			expectedTicker: handler.DefaultTicker,
			expectedCharts: []string{"chart-daily", "chart-hourly", "chart-10min", "chart-1min"},
		},
		{
			name:           "partial data shows notice and remaining charts",
			method:         http.MethodPost,
			form:           url.Values{"ticker": {"ABCD"}},
			present:        []entity.Resolution{entity.Hourly, entity.TenMinute, entity.OneMinute},
			expectedTicker: "ABCD",
			expectedCharts: []string{"chart-hourly", "chart-10min", "chart-1min"},
			expectError:    true,
		},
		{
			name:           "no data at all",
			method:         http.MethodPost,
			form:           url.Values{"ticker": {"NOPE"}},
			expectedTicker: "NOPE",
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockPipelineUsecase{
				RunPipelineFunc: func(ctx context.Context, ticker string, now time.Time) entity.PipelineResult {
					return buildResult(ticker, tt.present...)
				},
			}
			router := newScreenerRouter(mockUC, &mockChartRenderer{})

			var req *http.Request
			if tt.method == http.MethodPost {
				req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			} else {
				req = httptest.NewRequest(http.MethodGet, "/", nil)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Equal(t, []string{tt.expectedTicker}, mockUC.tickers)

			body := w.Body.String()
			assert.Contains(t, body, `value="`+tt.expectedTicker+`"`)
			assert.Contains(t, body, `/static/echarts.min.js`)
			assert.Equal(t, tt.expectError, strings.Contains(body, "Invalid ticker or no data available."))
			assert.Equal(t, len(tt.expectedCharts), strings.Count(body, `class="chart"`))
			for _, id := range tt.expectedCharts {
				assert.Contains(t, body, `id="`+id+`"`)
			}
		})
	}
}

func TestScreenerHandler_Index_RenderFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockPipelineUsecase{
		RunPipelineFunc: func(ctx context.Context, ticker string, now time.Time) entity.PipelineResult {
			return buildResult(ticker, entity.Resolutions()...)
		},
	}
	renderer := &mockChartRenderer{
		RenderAllFunc: func(result entity.PipelineResult) ([]chart.Artifact, error) {
			return nil, errors.New("render failed")
		},
	}
	router := newScreenerRouter(mockUC, renderer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid ticker or no data available.")
	assert.NotContains(t, w.Body.String(), `class="chart"`)
}

func TestScreenerHandler_Index_EscapesTickerInChartsAndForm(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockPipelineUsecase{
		RunPipelineFunc: func(ctx context.Context, ticker string, now time.Time) entity.PipelineResult {
			// 上流がこの銘柄の行を返した場合を想定し、全時間足にデータを持たせる
			return buildResult(ticker, entity.Resolutions()...)
		},
	}
	router := newScreenerRouter(mockUC, chart.NewRenderer(""))

	form := url.Values{"ticker": {`x</script><script>[]["filter"]</script>`}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 4, strings.Count(body, `class="chart"`))
	assert.NotContains(t, body, "<SCRIPT>")
	assert.NotContains(t, body, "</SCRIPT>")
	// ページ自身の script タグ（ECharts 読み込み1つ + チャート4つ）以外は増えない
	assert.Equal(t, 5, strings.Count(strings.ToLower(body), "<script"))
}
