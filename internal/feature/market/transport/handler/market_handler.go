// Package handler はmarketフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock_gateway/internal/api"
	"stock_gateway/internal/feature/market/domain/entity"
	"stock_gateway/internal/platform/params"
)

// MarketUsecase はマーケット全体スナップショット取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketUsecase interface {
	GetGroupedDaily(ctx context.Context, date string) ([]entity.DailyBar, bool, error)
}

// MarketHandler はマーケット全体スナップショットのHTTPリクエストを処理します。
type MarketHandler struct {
	uc  MarketUsecase
	now func() time.Time
}

// NewMarketHandler は指定されたusecaseでMarketHandlerの新しいインスタンスを生成します。
func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc, now: time.Now}
}

// GetGroupedDailyHandler は日付を受け取り、その日の米国市場全銘柄の
// OHLCスナップショットをJSONで返します。
//
// エンドポイント例:
// GET /market/stocks/:date
func (h *MarketHandler) GetGroupedDailyHandler(c *gin.Context) {
	raw := c.Param("date")
	d, err := params.ParsePastDate(raw, h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Response{Status: false, Date: raw, Error: err.Error()})
		return
	}
	date := d.Format(params.DateLayout)

	bars, _, err := h.uc.GetGroupedDaily(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusBadGateway, api.Response{Status: false, Date: date, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.SuccessDate(date, bars))
}
