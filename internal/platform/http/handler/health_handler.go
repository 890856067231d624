// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse は /healthz のレスポンスです。
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewHealth はサービス名 service を返すヘルスチェックハンドラーを生成します。
// HEAD は本文なしの200、OPTIONS は204、それ以外はJSONを返し、いずれもキャッシュを禁止します。
func NewHealth(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Header("Allow", "GET, HEAD, OPTIONS")
			c.Status(http.StatusNoContent)
		default:
			c.JSON(http.StatusOK, HealthResponse{Status: "ok", Service: service})
		}
	}
}

// Register は r に /healthz を GET/HEAD/OPTIONS で登録します。
func Register(r gin.IRoutes, service string) {
	h := NewHealth(service)
	r.GET("/healthz", h)
	r.HEAD("/healthz", h)
	r.OPTIONS("/healthz", h)
}
