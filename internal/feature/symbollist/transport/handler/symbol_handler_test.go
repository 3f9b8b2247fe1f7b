package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSymbolUsecase はSymbolUsecaseインターフェースのモック実装です。
type mockSymbolUsecase struct {
	fn func(ctx context.Context) ([]string, bool, error)
}

func (m *mockSymbolUsecase) ListAll(ctx context.Context) ([]string, bool, error) {
	return m.fn(ctx)
}

func setupRouter(uc SymbolUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSymbolHandler(uc)
	r.GET("/stock/symbol/all", h.ListAllHandler)
	return r
}

// TestListAllHandler_Success は銘柄一覧のエンベロープを検証します。
func TestListAllHandler_Success(t *testing.T) {
	mock := &mockSymbolUsecase{fn: func(ctx context.Context) ([]string, bool, error) {
		return []string{"AAPL", "GOOG", "MSFT"}, true, nil
	}}
	router := setupRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stock/symbol/all", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["status"])

	result, ok := body["result"].([]any)
	require.True(t, ok, "result must be a code list")
	assert.Len(t, result, 3)
	assert.Equal(t, "AAPL", result[0])
}

// TestListAllHandler_UpstreamError は上流障害が502に変換されることを検証します。
func TestListAllHandler_UpstreamError(t *testing.T) {
	mock := &mockSymbolUsecase{fn: func(ctx context.Context) ([]string, bool, error) {
		return nil, false, errors.New("polygon http 503")
	}}
	router := setupRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stock/symbol/all", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["status"])
	assert.Contains(t, body["error"], "503")
}
