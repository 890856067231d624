package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"screener/internal/app/di"
	"screener/internal/app/router"
	"screener/internal/feature/candles/transport/handler"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// Usecase
	pipeline := di.NewPipeline()

	// Handler
	candlesH := handler.NewCandlesHandler(pipeline)
	screenerH := handler.NewScreenerHandler(pipeline, di.NewRenderer(), di.NewScreenerConfig())

	// ルータ生成
	r := router.NewRouter(candlesH, screenerH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("screener listening", "port", port, "fetchTimeout", di.FetchTimeout())

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
