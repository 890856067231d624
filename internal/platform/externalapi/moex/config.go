// Package moex はモスクワ取引所 ISS API のローソク足クライアントを提供します。
package moex

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL  = "https://iss.moex.com/iss"
	defaultEngine   = "stock"
	defaultMarket   = "shares"
	defaultTimeout  = 10 * time.Second
	defaultMaxPages = 20
	defaultPageSize = 500
)

// Config はISSクライアントの設定を保持します。
type Config struct {
	BaseURL  string        // APIのベースURL（例: "https://iss.moex.com/iss"）
	Engine   string        // 取引エンジン（例: "stock"）
	Market   string        // 市場（例: "shares"）
	Timeout  time.Duration // HTTPリクエストタイムアウト
	MaxPages int           // 1回の取得で辿るページ数の上限
	PageSize int           // ISSが1ページで返す最大行数
}

// LoadConfig は環境変数からISSの設定を読み込みます。未設定の項目はデフォルト値を使います。
func LoadConfig() Config {
	cfg := Config{
		BaseURL:  getenv("MOEX_ISS_BASE_URL", defaultBaseURL),
		Engine:   getenv("MOEX_ENGINE", defaultEngine),
		Market:   getenv("MOEX_MARKET", defaultMarket),
		Timeout:  defaultTimeout,
		MaxPages: defaultMaxPages,
		PageSize: defaultPageSize,
	}
	if d, err := time.ParseDuration(os.Getenv("MOEX_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("MOEX_MAX_PAGES")); err == nil && n > 0 {
		cfg.MaxPages = n
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
