// Package handler はsymbollistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_gateway/internal/api"
)

// SymbolUsecase は銘柄一覧取得のユースケースインターフェースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListAll(ctx context.Context) ([]string, bool, error)
}

// SymbolHandler は銘柄一覧のHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// ListAllHandler は既知の全銘柄コードの一覧をJSONで返します。
//
// エンドポイント例:
// GET /stock/symbol/all
func (h *SymbolHandler) ListAllHandler(c *gin.Context) {
	codes, _, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, api.Response{Status: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, api.SuccessList(codes))
}
