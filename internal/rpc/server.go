// Package rpc exposes the engine over HTTP JSON-RPC and streams committed
// events over websocket.
package rpc

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

// MaxRequestBody caps the size of a JSON-RPC request
const MaxRequestBody = 1 << 20

// writeMethods may commit state. They run without the request timeout so the
// reply always carries the engine result; cutting one short would leave the
// client unsure whether the transaction landed.
var writeMethods = map[string]bool{
	"submit": true,
}

// Server handles HTTP JSON-RPC requests
type Server struct {
	registry *MethodRegistry
	hub      *EventHub
	timeout  time.Duration
	logger   zerolog.Logger
}

// ServerOption customises a Server
type ServerOption func(*Server)

// WithServerLogger sets the request logger
func WithServerLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithEventHub serves hub on /ws
func WithEventHub(hub *EventHub) ServerOption {
	return func(s *Server) {
		s.hub = hub
	}
}

// NewServer creates a new RPC server. timeout bounds read methods only; a
// zero timeout disables it.
func NewServer(services *Services, timeout time.Duration, opts ...ServerOption) *Server {
	server := &Server{
		registry: NewMethodRegistry(),
		timeout:  timeout,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	server.registerAllMethods(services)
	return server
}

// Request is a JSON-RPC request.
// Format: {"method": "method_name", "params": [{...}]}
type Request struct {
	Method string                `json:"method"`
	Params []jsoniter.RawMessage `json:"params,omitempty"`
}

// Handler returns the HTTP routes: JSON-RPC on /, liveness on /health and,
// when a hub is set, the event stream on /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", s)
	mux.HandleFunc("/health", s.handleHealth)
	if s.hub != nil {
		mux.Handle("/ws", s.hub)
	}
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// ServeHTTP implements http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	// Handle preflight requests
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.handlePostRequest(w, r)
}

// handlePostRequest processes POST requests with a JSON-RPC payload
func (s *Server) handlePostRequest(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBody))
	if err != nil {
		s.writeError(w, RpcErrorInternal("Failed to read request body"))
		return
	}

	var request Request
	if err := json.Unmarshal(body, &request); err != nil {
		s.writeError(w, NewRpcError(RpcPARSE_ERROR, "jsonInvalid", "Invalid JSON: "+err.Error()))
		return
	}

	if request.Method == "" {
		s.writeError(w, NewRpcError(RpcMISSING_COMMAND, "missingCommand", "Missing method field"))
		return
	}

	// params is an array holding one object
	var params jsoniter.RawMessage
	if len(request.Params) > 0 {
		params = request.Params[0]
	}

	reqCtx := r.Context()
	if s.timeout > 0 && !writeMethods[request.Method] {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(reqCtx, s.timeout)
		defer cancel()
	}
	ctx := &RpcContext{
		Context:  reqCtx,
		ClientIP: getClientIP(r),
	}

	start := time.Now()
	result, rpcErr := s.executeMethod(request.Method, params, ctx)
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		result, rpcErr = nil, RpcErrorTimeout()
	}

	event := s.logger.Debug()
	if rpcErr != nil {
		event = s.logger.Info().Str("error", rpcErr.ErrorString)
	}
	event.Str("method", request.Method).
		Str("client", ctx.ClientIP).
		Dur("elapsed", time.Since(start)).
		Msg("rpc request")

	if rpcErr != nil {
		s.writeError(w, rpcErr)
		return
	}
	s.writeResult(w, result)
}

// executeMethod executes an RPC method with the given parameters
func (s *Server) executeMethod(method string, params jsoniter.RawMessage, ctx *RpcContext) (interface{}, *RpcError) {
	handler, exists := s.registry.Get(method)
	if !exists {
		return nil, RpcErrorMethodNotFound(method)
	}
	return handler.Handle(ctx, params)
}

// writeResult writes a success response. The result object always carries
// status = "success".
func (s *Server) writeResult(w http.ResponseWriter, result interface{}) {
	resultMap, ok := result.(map[string]interface{})
	if !ok {
		resultMap = make(map[string]interface{})
		raw, err := json.Marshal(result)
		if err == nil {
			err = json.Unmarshal(raw, &resultMap)
		}
		if err != nil {
			resultMap = map[string]interface{}{"data": result}
		}
	}
	resultMap["status"] = "success"
	s.write(w, map[string]interface{}{"result": resultMap})
}

// writeError writes an error response. Errors are reported inside result
// with HTTP status 200.
func (s *Server) writeError(w http.ResponseWriter, rpcErr *RpcError) {
	s.write(w, map[string]interface{}{
		"result": map[string]interface{}{
			"status":        "error",
			"error":         rpcErr.ErrorString,
			"error_code":    rpcErr.Code,
			"error_message": rpcErr.Message,
		},
	})
}

func (s *Server) write(w http.ResponseWriter, response interface{}) {
	responseData, err := json.Marshal(response)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(responseData)
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
