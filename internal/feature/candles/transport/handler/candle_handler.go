// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"screener/internal/feature/candles/domain/entity"
	"screener/internal/feature/candles/transport/http/dto"
	"screener/internal/feature/candles/usecase"
)

// PipelineUsecase は複数時間足取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PipelineUsecase interface {
	RunPipeline(ctx context.Context, ticker string, now time.Time) entity.PipelineResult
}

// CandlesHandler はローソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc  PipelineUsecase
	now func() time.Time
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc PipelineUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc, now: time.Now}
}

// GetCandlesHandler は銘柄コードを受け取り、全時間足のローソク足データをJSONで返します。
// 一部の時間足が取得できなくても200を返し、hasError と null の candles で示します。
//
// エンドポイント例:
// GET /candles/SNGSP
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	ticker := usecase.NormalizeTicker(c.Param("ticker"))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: usecase.ErrInvalidTicker.Error()})
		return
	}

	// 基準時刻はリクエストごとに1回だけ取得する
	result := h.uc.RunPipeline(c.Request.Context(), ticker, h.now())

	c.JSON(http.StatusOK, toPipelineResponse(result))
}

func toPipelineResponse(result entity.PipelineResult) dto.PipelineResponse {
	out := dto.PipelineResponse{
		Ticker:   result.Ticker,
		HasError: result.HasError,
		Series:   make([]dto.SeriesResponse, 0, len(result.Slots)),
	}
	for _, slot := range result.Slots {
		sr := dto.SeriesResponse{
			Resolution: string(slot.Resolution),
			Interval:   slot.Resolution.IntervalCode(),
			From:       slot.Window.From(),
			Till:       slot.Window.Till(),
		}
		if slot.Present() {
			sr.Candles = make([]dto.CandleResponse, 0, slot.Series.Len())
			for _, x := range slot.Series.Candles {
				sr.Candles = append(sr.Candles, dto.CandleResponse{
					Time:   x.Time.Format(time.RFC3339),
					Open:   x.Open,
					High:   x.High,
					Low:    x.Low,
					Close:  x.Close,
					Volume: x.Volume,
				})
			}
		}
		out.Series = append(out.Series, sr)
	}
	return out
}
