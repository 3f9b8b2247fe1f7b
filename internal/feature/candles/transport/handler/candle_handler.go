// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stock_gateway/internal/api"
	"stock_gateway/internal/feature/candles/domain/entity"
	"stock_gateway/internal/platform/externalapi/upstream"
	"stock_gateway/internal/platform/params"
)

// CandlesUsecase はOHLCデータ取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandlesUsecase interface {
	GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, bool, error)
	DownloadPeriod(ctx context.Context, symbol string, period params.Period) (string, bool, error)
}

// CandleHandler はOHLCデータのHTTPリクエストを処理します。
type CandleHandler struct {
	uc CandlesUsecase
}

// NewCandleHandler は指定されたusecaseでCandleHandlerの新しいインスタンスを生成します。
func NewCandleHandler(uc CandlesUsecase) *CandleHandler {
	return &CandleHandler{uc: uc}
}

// candlePoint は履歴レスポンスの1サンプルです。
type candlePoint struct {
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// GetHistoryHandler は銘柄コードと日付範囲を受け取り、タイムスタンプを
// キーとするOHLCデータをJSONで返します。
//
// エンドポイント例:
// GET /history/:symbol?start=2024-01-01&end=2024-02-01
func (h *CandleHandler) GetHistoryHandler(c *gin.Context) {
	symbol, err := params.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Failure(c.Param("symbol"), err))
		return
	}

	// 検証はキャッシュ・上流アクセスより先に行う
	start, end, err := params.ParseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Failure(symbol, err))
		return
	}

	candles, fromCache, err := h.uc.GetHistory(c.Request.Context(), symbol, start, end)
	if err != nil {
		c.JSON(statusFor(err), api.Failure(symbol, err))
		return
	}

	// タイムスタンプをキーにしたマップへ整形
	out := make(map[string]candlePoint, len(candles))
	for _, x := range candles {
		out[strconv.FormatInt(x.Time.Unix(), 10)] = candlePoint{
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		}
	}

	c.JSON(http.StatusOK, api.Success(symbol, out, fromCache))
}

// GetPeriodsHandler は銘柄コードと固定期間トークンを受け取り、
// base64化されたCSVをJSONで返します。
//
// エンドポイント例:
// GET /periods/:symbol/:periods
func (h *CandleHandler) GetPeriodsHandler(c *gin.Context) {
	symbol, err := params.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Failure(c.Param("symbol"), err))
		return
	}

	period, err := params.ParsePeriod(c.Param("periods"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Failure(symbol, err))
		return
	}

	encoded, fromCache, err := h.uc.DownloadPeriod(c.Request.Context(), symbol, period)
	if err != nil {
		c.JSON(statusFor(err), api.Failure(symbol, err))
		return
	}

	c.JSON(http.StatusOK, api.Success(symbol, encoded, fromCache))
}

func statusFor(err error) int {
	if errors.Is(err, upstream.ErrNoIdentity) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
