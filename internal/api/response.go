// Package api defines the response envelope shared by every endpoint.
// The payload shape is identical for cached and freshly fetched results;
// only the cache flag differs.
package api

// Response is the uniform success/failure envelope.
type Response struct {
	Status bool   `json:"status"`
	Symbol string `json:"symbol,omitempty"`
	Date   string `json:"date,omitempty"`
	Result any    `json:"result,omitempty"`
	Cache  bool   `json:"cache,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Success builds a success envelope for a symbol-scoped result.
func Success(symbol string, result any, fromCache bool) Response {
	return Response{Status: true, Symbol: symbol, Result: result, Cache: fromCache}
}

// SuccessDate builds a success envelope for a date-scoped result.
func SuccessDate(date string, result any) Response {
	return Response{Status: true, Date: date, Result: result}
}

// SuccessList builds a success envelope for a bare list result.
func SuccessList(result any) Response {
	return Response{Status: true, Result: result}
}

// Failure builds a failure envelope. The symbol is echoed when applicable.
func Failure(symbol string, err error) Response {
	return Response{Status: false, Symbol: symbol, Error: err.Error()}
}
