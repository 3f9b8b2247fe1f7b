// Package handler はtickersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_gateway/internal/api"
	"stock_gateway/internal/feature/tickers/usecase"
	"stock_gateway/internal/platform/externalapi/upstream"
	"stock_gateway/internal/platform/params"
)

// TickersUsecase はティッカー情報取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TickersUsecase interface {
	GetInfo(ctx context.Context, symbol string) (usecase.Result, error)
}

// TickerHandler はティッカー情報のHTTPリクエストを処理します。
type TickerHandler struct {
	uc TickersUsecase
}

// NewTickerHandler は指定されたusecaseでTickerHandlerの新しいインスタンスを生成します。
func NewTickerHandler(uc TickersUsecase) *TickerHandler {
	return &TickerHandler{uc: uc}
}

// GetInfoHandler は銘柄コードを受け取り、ティッカー情報をJSONで返します。
//
// エンドポイント例:
// GET /tickers/:symbol
func (h *TickerHandler) GetInfoHandler(c *gin.Context) {
	symbol, err := params.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Failure(c.Param("symbol"), err))
		return
	}

	res, err := h.uc.GetInfo(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, upstream.ErrNoIdentity) {
			c.JSON(http.StatusNotFound, api.Failure(symbol, err))
			return
		}
		c.JSON(http.StatusBadGateway, api.Failure(symbol, err))
		return
	}

	c.JSON(http.StatusOK, api.Success(symbol, res.Fields, res.FromCache))
}
