// Command snapshot は1銘柄についてパイプラインを1回実行し、画面のHTMLをファイルに書き出します。
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"screener/internal/app/di"
	"screener/internal/feature/candles/transport/handler"
)

func main() {
	ticker := flag.StringP("ticker", "t", handler.DefaultTicker, "ticker to fetch")
	out := flag.StringP("out", "o", "screener.html", "output HTML file")
	timeout := flag.Duration("timeout", time.Minute, "overall deadline for the run")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pipeline := di.NewPipeline()
	page := handler.NewScreenerHandler(pipeline, di.NewRenderer(), di.NewScreenerConfig())

	result := pipeline.RunPipeline(ctx, *ticker, time.Now())
	if result.HasError {
		slog.Warn("some resolutions have no data", "ticker", result.Ticker, "missing", result.Missing())
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal("failed to create output:", err)
	}
	if err := page.WritePage(f, result); err != nil {
		_ = f.Close()
		log.Fatal("failed to write page:", err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Println("snapshot written:", *out)
}
