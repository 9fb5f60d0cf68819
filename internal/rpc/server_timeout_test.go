package rpc

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postMethod(t *testing.T, handler http.Handler, method string) map[string]interface{} {
	t.Helper()
	body := []byte(`{"method":"` + method + `","params":[{}]}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Result map[string]interface{} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Result
}

func TestRequestTimeout(t *testing.T) {
	srv := NewServer(&Services{}, 20*time.Millisecond)

	var readDeadline, submitDeadline bool
	srv.registry.Register("slow_read", MethodHandlerFunc(func(ctx *RpcContext, _ jsoniter.RawMessage) (interface{}, *RpcError) {
		_, readDeadline = ctx.Context.Deadline()
		<-ctx.Context.Done()
		return map[string]interface{}{"done": true}, nil
	}))
	srv.registry.Register("submit", MethodHandlerFunc(func(ctx *RpcContext, _ jsoniter.RawMessage) (interface{}, *RpcError) {
		_, submitDeadline = ctx.Context.Deadline()
		time.Sleep(60 * time.Millisecond)
		return map[string]interface{}{"engine_result": "tesSUCCESS"}, nil
	}))
	handler := srv.Handler()

	result := postMethod(t, handler, "slow_read")
	assert.True(t, readDeadline)
	assert.Equal(t, "error", result["status"])
	assert.Equal(t, "timeout", result["error"])
	assert.Equal(t, float64(RpcTIMEOUT), result["error_code"])

	result = postMethod(t, handler, "submit")
	assert.False(t, submitDeadline)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "tesSUCCESS", result["engine_result"])
}

func TestZeroTimeoutDisablesDeadline(t *testing.T) {
	srv := NewServer(&Services{}, 0)

	var hasDeadline bool
	srv.registry.Register("read", MethodHandlerFunc(func(ctx *RpcContext, _ jsoniter.RawMessage) (interface{}, *RpcError) {
		_, hasDeadline = ctx.Context.Deadline()
		return map[string]interface{}{}, nil
	}))

	result := postMethod(t, srv.Handler(), "read")
	assert.False(t, hasDeadline)
	assert.Equal(t, "success", result["status"])
}
