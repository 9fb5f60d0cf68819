package rpc

import (
	"encoding/hex"

	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/core/tx/amm"
	"github.com/LeJamon/tokendex/internal/core/tx/token"
	"github.com/LeJamon/tokendex/internal/identity"
	jsoniter "github.com/json-iterator/go"
)

const (
	// DefaultEventHistoryLimit caps event_history when the request sets no limit
	DefaultEventHistoryLimit = 200

	// DefaultLedgerDataLimit caps ledger_data when the request sets no limit
	DefaultLedgerDataLimit = 256
)

// registerAllMethods wires every method to services
func (s *Server) registerAllMethods(services *Services) {
	s.registry.Register("submit", &submitMethod{services: services})
	s.registry.Register("account_info", MethodHandlerFunc(services.accountInfo))
	s.registry.Register("balance", MethodHandlerFunc(services.balance))
	s.registry.Register("approval", MethodHandlerFunc(services.approval))
	s.registry.Register("pool_info", MethodHandlerFunc(services.poolInfo))
	s.registry.Register("lp_balance", MethodHandlerFunc(services.lpBalance))
	s.registry.Register("server_info", MethodHandlerFunc(services.serverInfo))
	s.registry.Register("event_history", MethodHandlerFunc(services.eventHistory))
	s.registry.Register("ledger_data", MethodHandlerFunc(services.ledgerData))
}

func parseParams(params jsoniter.RawMessage, v interface{}) *RpcError {
	if len(params) == 0 {
		return RpcErrorInvalidParams("Missing params.")
	}
	if err := json.Unmarshal(params, v); err != nil {
		return RpcErrorInvalidParams("Invalid parameters: " + err.Error())
	}
	return nil
}

func parseAccount(field, value string) (identity.AccountID, *RpcError) {
	if value == "" {
		return identity.AccountID{}, RpcErrorMissingField(field)
	}
	id, err := identity.ParseAccountID(value)
	if err != nil {
		return identity.AccountID{}, RpcErrorActMalformed(field)
	}
	return id, nil
}

// accountInfo reports the sequence the account's next transaction must carry
func (s *Services) accountInfo(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError) {
	var request struct {
		Account string `json:"account"`
	}
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	account, rpcErr := parseAccount("account", request.Account)
	if rpcErr != nil {
		return nil, rpcErr
	}

	seq, err := s.Engine.Sequence(account)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}
	return map[string]interface{}{
		"account":  account,
		"sequence": seq,
	}, nil
}

func (s *Services) balance(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError) {
	var request struct {
		Account string  `json:"account"`
		AssetID *uint64 `json:"asset_id"`
	}
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	account, rpcErr := parseAccount("account", request.Account)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if request.AssetID == nil {
		return nil, RpcErrorMissingField("asset_id")
	}

	var balance uint64
	err := s.Engine.Query(func(view tx.LedgerView) error {
		var err error
		balance, err = token.NewLedger(view).Balance(*request.AssetID, account)
		return err
	})
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}

	return map[string]interface{}{
		"account":  account,
		"asset_id": *request.AssetID,
		"balance":  balance,
	}, nil
}

func (s *Services) approval(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError) {
	var request struct {
		Owner    string `json:"owner"`
		Operator string `json:"operator"`
	}
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	owner, rpcErr := parseAccount("owner", request.Owner)
	if rpcErr != nil {
		return nil, rpcErr
	}
	operator, rpcErr := parseAccount("operator", request.Operator)
	if rpcErr != nil {
		return nil, rpcErr
	}

	var approved bool
	err := s.Engine.Query(func(view tx.LedgerView) error {
		var err error
		approved, err = token.NewLedger(view).Approved(owner, operator)
		return err
	})
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}

	return map[string]interface{}{
		"owner":    owner,
		"operator": operator,
		"approved": approved,
	}, nil
}

func (s *Services) poolInfo(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError) {
	var (
		pool               *amm.Pool
		reserveA, reserveB uint64
	)
	err := s.Engine.Query(func(view tx.LedgerView) error {
		var err error
		pool, err = amm.NewRegistry(view).Pool()
		if err != nil || pool == nil {
			return err
		}
		ledger := token.NewLedger(view)
		if reserveA, err = ledger.Balance(pool.AssetA, pool.Account); err != nil {
			return err
		}
		reserveB, err = ledger.Balance(pool.AssetB, pool.Account)
		return err
	})
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}

	if pool == nil {
		return map[string]interface{}{"initialized": false}, nil
	}
	return map[string]interface{}{
		"initialized":     true,
		"pool_account":    pool.Account,
		"asset_a_id":      pool.AssetA,
		"asset_b_id":      pool.AssetB,
		"reserve_a":       reserveA,
		"reserve_b":       reserveB,
		"lp_total_supply": pool.LPTotalSupply,
		"fee_percent":     s.Engine.Config().FeePercent,
	}, nil
}

func (s *Services) lpBalance(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError) {
	var request struct {
		Account string `json:"account"`
	}
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	account, rpcErr := parseAccount("account", request.Account)
	if rpcErr != nil {
		return nil, rpcErr
	}

	var lp uint64
	err := s.Engine.Query(func(view tx.LedgerView) error {
		var err error
		lp, err = amm.NewRegistry(view).LPBalance(account)
		return err
	})
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}

	return map[string]interface{}{
		"account":    account,
		"lp_balance": lp,
	}, nil
}

func (s *Services) serverInfo(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError) {
	info := map[string]interface{}{
		"version":       s.Version,
		"fee_percent":   s.Engine.Config().FeePercent,
		"event_journal": s.Journal != nil,
	}
	if s.State != nil {
		stats := s.State.Stats()
		info["state_cache"] = map[string]interface{}{
			"hits":   stats.Hits,
			"misses": stats.Misses,
			"size":   stats.Size,
		}
	}
	return info, nil
}

// ledgerData pages through every committed state entry in key order. Each
// page is read from one consistent view; a walk spanning commits may mix states.
func (s *Services) ledgerData(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError) {
	if s.State == nil {
		return nil, RpcErrorNotEnabled("ledger_data")
	}

	var request struct {
		Marker string `json:"marker"`
		Limit  int    `json:"limit"`
	}
	if len(params) > 0 {
		if rpcErr := parseParams(params, &request); rpcErr != nil {
			return nil, rpcErr
		}
	}
	if request.Limit <= 0 || request.Limit > DefaultLedgerDataLimit {
		request.Limit = DefaultLedgerDataLimit
	}

	var marker []byte
	if request.Marker != "" {
		var err error
		if marker, err = hex.DecodeString(request.Marker); err != nil {
			return nil, RpcErrorInvalidParams("Invalid field 'marker'.")
		}
	}

	entries, next, err := s.State.Entries(ctx.Context, marker, request.Limit)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}

	state := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		state = append(state, map[string]interface{}{
			"index": hex.EncodeToString(e.Key[:]),
			"data":  hex.EncodeToString(e.Data),
		})
	}
	result := map[string]interface{}{"state": state}
	if next != nil {
		result["marker"] = hex.EncodeToString(next)
	}
	return result, nil
}

func (s *Services) eventHistory(ctx *RpcContext, params jsoniter.RawMessage) (interface{}, *RpcError) {
	if s.Journal == nil {
		return nil, RpcErrorNotEnabled("event_history")
	}

	var request struct {
		After int64 `json:"after"`
		Limit int   `json:"limit"`
	}
	if len(params) > 0 {
		if rpcErr := parseParams(params, &request); rpcErr != nil {
			return nil, rpcErr
		}
	}
	if request.Limit <= 0 || request.Limit > DefaultEventHistoryLimit {
		request.Limit = DefaultEventHistoryLimit
	}

	records, err := s.Journal.Events(ctx.Context, request.After, request.Limit)
	if err != nil {
		return nil, RpcErrorInternal(err.Error())
	}

	events := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		events = append(events, map[string]interface{}{
			"seq":        rec.Seq,
			"type":       rec.Type,
			"event":      jsoniter.RawMessage(rec.Payload),
			"created_at": rec.CreatedAt,
		})
	}
	return map[string]interface{}{
		"events": events,
	}, nil
}
