package rpc

import (
	"context"

	"github.com/LeJamon/tokendex/internal/core/state"
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/storage/relationaldb"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RpcContext contains request-specific information
type RpcContext struct {
	Context  context.Context
	ClientIP string
}

// MethodHandler is implemented by every RPC method
type MethodHandler interface {
	Handle(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError)
}

// MethodHandlerFunc adapts a function to MethodHandler
type MethodHandlerFunc func(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError)

func (f MethodHandlerFunc) Handle(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError) {
	return f(ctx, params)
}

// MethodRegistry maps method names to handlers
type MethodRegistry struct {
	methods map[string]MethodHandler
}

func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{
		methods: make(map[string]MethodHandler),
	}
}

func (r *MethodRegistry) Register(name string, handler MethodHandler) {
	r.methods[name] = handler
}

func (r *MethodRegistry) Get(name string) (MethodHandler, bool) {
	handler, exists := r.methods[name]
	return handler, exists
}

func (r *MethodRegistry) List() []string {
	methods := make([]string, 0, len(r.methods))
	for name := range r.methods {
		methods = append(methods, name)
	}
	return methods
}

// Services are the node components RPC methods read and write through
type Services struct {
	Engine *tx.Engine

	// State serves ledger_data and cache statistics. Nil disables both.
	State *state.Store

	// Journal serves event_history. Nil disables the method.
	Journal relationaldb.Journal

	Version string
}
