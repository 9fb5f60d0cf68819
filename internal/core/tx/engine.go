package tx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/LeJamon/tokendex/internal/identity"
	"github.com/rs/zerolog"
)

const (
	// MaxFeePercent is the largest configurable swap fee
	MaxFeePercent = 100

	// DefaultFeePercent is the swap fee used when none is configured
	DefaultFeePercent = 3
)

// EngineConfig holds the parameters transactions read through ApplyContext
type EngineConfig struct {
	// FeePercent is the share of swap output retained by the pool, 0..100
	FeePercent uint64
}

// Validate checks the configuration
func (c EngineConfig) Validate() error {
	if c.FeePercent > MaxFeePercent {
		return fmt.Errorf("fee percent %d exceeds %d", c.FeePercent, MaxFeePercent)
	}
	return nil
}

// ApplyResult is the outcome of Engine.Apply
type ApplyResult struct {
	Result  Result
	Applied bool
	Event   Event
	Message string
}

// Engine applies transactions one at a time against a base view.
// Each transaction is staged in an ApplyStateTable and its change set is
// committed in a single Commit call only when it succeeds.
type Engine struct {
	mu     sync.Mutex
	base   BaseView
	config EngineConfig
	sink   EventSink
	logger zerolog.Logger
}

// EngineOption customises an Engine
type EngineOption func(*Engine)

// WithEventSink sets the sink that receives committed events
func WithEventSink(sink EventSink) EngineOption {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// WithLogger sets the engine logger
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a new transaction engine
func NewEngine(base BaseView, config EngineConfig, opts ...EngineOption) (*Engine, error) {
	if base == nil {
		return nil, errors.New("engine requires a base view")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		base:   base,
		config: config,
		sink:   discardSink{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine configuration
func (e *Engine) Config() EngineConfig {
	return e.config
}

// Apply processes a transaction submitted by caller
func (e *Engine) Apply(caller identity.AccountID, tx Transaction) ApplyResult {
	logger := e.logger.With().
		Str("tx", tx.TxType().String()).
		Str("account", caller.String()).
		Logger()

	// Step 1: field checks, no state needed
	if err := tx.Validate(); err != nil {
		result := TemMALFORMED
		var r Result
		if errors.As(err, &r) {
			result = r
		}
		logger.Info().Err(err).Str("result", result.String()).Msg("transaction rejected")
		return ApplyResult{Result: result, Message: err.Error()}
	}

	seq := tx.GetSequence()
	if seq == 0 {
		logger.Info().Str("result", TemBAD_SEQUENCE.String()).Msg("transaction rejected")
		return ApplyResult{Result: TemBAD_SEQUENCE, Message: TemBAD_SEQUENCE.Message()}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Step 2: apply against a staging table
	table := NewApplyStateTable(e.base)

	if result, err := checkSequence(table, caller, seq); result != TesSUCCESS {
		if err != nil {
			logger.Error().Err(err).Msg("sequence check failed")
		}
		logger.Info().Uint64("sequence", seq).Str("result", result.String()).Msg("transaction not applied")
		return ApplyResult{Result: result, Message: result.Message()}
	}

	ctx := &ApplyContext{
		View:      table,
		AccountID: caller,
		Config:    e.config,
		Logger:    logger,
	}

	result := tx.Apply(ctx)
	if !result.IsSuccess() {
		logger.Info().Str("result", result.String()).Msg("transaction failed")
		return ApplyResult{Result: result, Message: result.Message()}
	}

	events := ctx.Events()
	if len(events) != 1 {
		logger.Error().Int("events", len(events)).Msg("transaction must emit exactly one event")
		return ApplyResult{Result: TefINTERNAL, Message: TefINTERNAL.Message()}
	}

	// the sequence is consumed only with the transaction's own changes
	if err := consumeSequence(table, caller, seq); err != nil {
		result := ResultFromError(err)
		logger.Error().Err(err).Str("result", result.String()).Msg("sequence update failed")
		return ApplyResult{Result: result, Message: result.Message()}
	}

	// Step 3: commit
	changes := table.Changes()
	if err := e.base.Commit(changes); err != nil {
		logger.Error().Err(err).Msg("commit failed")
		return ApplyResult{Result: TefINTERNAL, Message: err.Error()}
	}
	logger.Debug().Int("changes", len(changes)).Msg("transaction applied")

	// Step 4: publish while still holding the lock so sinks see commit order
	ev := events[0]
	if err := e.sink.Publish(ev); err != nil {
		logger.Warn().Err(err).Str("event", ev.EventType()).Msg("event delivery failed")
	}

	return ApplyResult{
		Result:  TesSUCCESS,
		Applied: true,
		Event:   ev,
		Message: TesSUCCESS.Message(),
	}
}

// Sequence returns the sequence the next transaction from account must carry
func (e *Engine) Sequence(account identity.AccountID) (uint64, error) {
	var seq uint64
	err := e.Query(func(view LedgerView) error {
		var err error
		seq, err = AccountSequence(view, account)
		return err
	})
	return seq, err
}

// Query runs fn against a throwaway view of the committed state. Writes made
// by fn are discarded.
func (e *Engine) Query(fn func(view LedgerView) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(NewApplyStateTable(e.base))
}
