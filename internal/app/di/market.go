// Package di provides dependency injection factories for creating application components.
package di

import (
	"os"
	"time"

	"screener/internal/feature/candles/transport/handler"
	"screener/internal/feature/candles/usecase"
	"screener/internal/platform/chart"
	"screener/internal/platform/externalapi/moex"
	infrahttp "screener/internal/platform/http"
)

// NewMarket creates a fully configured ISSMarket with HTTP client.
func NewMarket() *moex.ISSMarket {
	cfg := moex.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return moex.NewISSMarket(cfg, httpClient)
}

// NewPipeline creates the multi-resolution pipeline backed by the ISS market.
// PIPELINE_FETCH_TIMEOUT overrides the per-resolution timeout (e.g. "20s").
func NewPipeline() *usecase.PipelineUsecase {
	return usecase.NewPipelineUsecase(NewMarket(), FetchTimeout())
}

// FetchTimeout returns the per-resolution timeout from the environment,
// falling back to usecase.DefaultFetchTimeout.
func FetchTimeout() time.Duration {
	if d, err := time.ParseDuration(os.Getenv("PIPELINE_FETCH_TIMEOUT")); err == nil && d > 0 {
		return d
	}
	return usecase.DefaultFetchTimeout
}

// NewRenderer creates the candlestick chart renderer.
func NewRenderer() *chart.Renderer {
	return chart.NewRenderer(os.Getenv("CHART_HEIGHT"))
}

// NewScreenerConfig loads the page settings from the environment.
func NewScreenerConfig() handler.ScreenerConfig {
	return handler.ScreenerConfig{
		DefaultTicker: os.Getenv("SCREENER_DEFAULT_TICKER"),
		AssetsURL:     os.Getenv("ECHARTS_ASSETS_URL"),
	}
}
