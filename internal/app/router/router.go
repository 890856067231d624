// Package router はアプリケーションのHTTPルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	candleshandler "screener/internal/feature/candles/transport/handler"
	platformhandler "screener/internal/platform/http/handler"
)

// ServiceName は /healthz で返すサービス名です。
const ServiceName = "screener"

func NewRouter(candles *candleshandler.CandlesHandler, screener *candleshandler.ScreenerHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	platformhandler.Register(r, ServiceName)

	// 画面（フォーム送信は POST）
	r.GET("/", screener.Index)
	r.POST("/", screener.Index)

	// 全時間足のローソク足をJSONで返す
	r.GET("/candles/:ticker", candles.GetCandlesHandler)

	return r
}
