package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	candlehandler "stock_gateway/internal/feature/candles/transport/handler"
	markethandler "stock_gateway/internal/feature/market/transport/handler"
	symbolhandler "stock_gateway/internal/feature/symbollist/transport/handler"
	tickerhandler "stock_gateway/internal/feature/tickers/transport/handler"
	"stock_gateway/internal/platform/apikey"
	"stock_gateway/internal/platform/http/handler"
)

func NewRouter(ticker *tickerhandler.TickerHandler, candle *candlehandler.CandleHandler,
	market *markethandler.MarketHandler, symbol *symbolhandler.SymbolHandler, key string) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/", handler.Health)
	r.HEAD("/", handler.Health)
	r.OPTIONS("/", handler.Health)
	r.GET("/health", handler.Health)
	// Prometheusメトリクス
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// マーケット全体スナップショットと銘柄一覧は公開
	r.GET("/market/stocks/:date", market.GetGroupedDailyHandler)
	r.GET("/stock/symbol/all", symbol.ListAllHandler)

	// 認証必須のルート
	auth := r.Group("/")
	// apikey.Required() ミドルウェアを適用
	// → リクエストヘッダーに X-API-Key が必要になる
	auth.Use(apikey.Required(key))
	{
		auth.GET("/tickers/:symbol", ticker.GetInfoHandler)
		auth.GET("/history/:symbol", candle.GetHistoryHandler)
		auth.GET("/periods/:symbol/:periods", candle.GetPeriodsHandler)
	}

	return r
}
