package testing

import (
	"sync"
	"testing"

	"github.com/LeJamon/tokendex/internal/core/state"
	"github.com/LeJamon/tokendex/internal/core/tx"
	_ "github.com/LeJamon/tokendex/internal/core/tx/all"
	"github.com/LeJamon/tokendex/internal/core/tx/amm"
	"github.com/LeJamon/tokendex/internal/core/tx/token"
	"github.com/LeJamon/tokendex/internal/storage/database"
	"github.com/LeJamon/tokendex/internal/storage/database/memory"
	"github.com/LeJamon/tokendex/internal/storage/database/pebble"
	"github.com/stretchr/testify/require"
)

// EnvOption customises a TestEnv.
type EnvOption func(*envOptions)

type envOptions struct {
	feePercent uint64
	sinks      []tx.EventSink
}

// WithFeePercent sets the swap fee. The default is tx.DefaultFeePercent.
func WithFeePercent(fee uint64) EnvOption {
	return func(o *envOptions) { o.feePercent = fee }
}

// WithEventSink adds a sink that receives committed events alongside the
// environment's own recorder.
func WithEventSink(sink tx.EventSink) EnvOption {
	return func(o *envOptions) { o.sinks = append(o.sinks, sink) }
}

// TestEnv manages a test ledger environment for transaction testing.
type TestEnv struct {
	t      *testing.T
	db     database.DB
	store  *state.Store
	engine *tx.Engine

	mu     sync.Mutex
	events []tx.Event
}

// NewTestEnv creates a test environment backed by an in-memory database.
func NewTestEnv(t *testing.T, opts ...EnvOption) *TestEnv {
	t.Helper()
	return newTestEnv(t, memory.NewDB(), opts...)
}

// NewTestEnvBacked creates a test environment backed by pebble on disk.
func NewTestEnvBacked(t *testing.T, opts ...EnvOption) *TestEnv {
	t.Helper()

	manager := pebble.NewManager(t.TempDir())
	t.Cleanup(func() { manager.Close() })

	db, err := manager.OpenDB("state")
	require.NoError(t, err, "open pebble state")
	return newTestEnv(t, db, opts...)
}

func newTestEnv(t *testing.T, db database.DB, opts ...EnvOption) *TestEnv {
	t.Helper()

	o := envOptions{feePercent: tx.DefaultFeePercent}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := state.NewStore(db, 0)
	require.NoError(t, err, "create state store")

	env := &TestEnv{t: t, db: db, store: store}
	sinks := append(tx.MultiSink{tx.EventSinkFunc(env.record)}, o.sinks...)

	engine, err := tx.NewEngine(store, tx.EngineConfig{FeePercent: o.feePercent}, tx.WithEventSink(sinks))
	require.NoError(t, err, "create engine")
	env.engine = engine
	return env
}

func (e *TestEnv) record(ev tx.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return nil
}

// Engine returns the environment's transaction engine.
func (e *TestEnv) Engine() *tx.Engine {
	return e.engine
}

// Store returns the state store the engine commits to.
func (e *TestEnv) Store() *state.Store {
	return e.store
}

// DB returns the database under the state store.
func (e *TestEnv) DB() database.DB {
	return e.db
}

// Submit applies a transaction on behalf of acc, filling in acc's next
// sequence.
func (e *TestEnv) Submit(acc *Account, txn tx.Transaction) TxResult {
	e.t.Helper()

	txn.SetSequence(e.Seq(acc))
	return e.SubmitAsIs(acc, txn)
}

// SubmitAsIs applies a transaction on behalf of acc without touching its
// sequence.
func (e *TestEnv) SubmitAsIs(acc *Account, txn tx.Transaction) TxResult {
	e.t.Helper()

	res := e.engine.Apply(acc.ID, txn)
	return TxResult{
		Code:    res.Result,
		Success: res.Result.IsSuccess(),
		Message: res.Message,
		Event:   res.Event,
	}
}

// Seq returns the sequence acc's next transaction must carry.
func (e *TestEnv) Seq(acc *Account) uint64 {
	e.t.Helper()

	seq, err := e.engine.Sequence(acc.ID)
	require.NoError(e.t, err, "read sequence")
	return seq
}

// Mint credits acc with amount of assetID and fails the test if it does not apply.
func (e *TestEnv) Mint(acc *Account, assetID, amount uint64) {
	e.t.Helper()
	RequireTxSuccess(e.t, e.Submit(acc, token.NewMint(assetID, amount)))
}

// Approve makes operator an approved operator of owner.
func (e *TestEnv) Approve(owner, operator *Account) {
	e.t.Helper()
	RequireTxSuccess(e.t, e.Submit(owner, token.NewSetApproval(operator.ID, true)))
}

// Balance returns the committed balance of assetID held by acc.
func (e *TestEnv) Balance(acc *Account, assetID uint64) uint64 {
	e.t.Helper()

	var balance uint64
	err := e.engine.Query(func(view tx.LedgerView) error {
		var err error
		balance, err = token.NewLedger(view).Balance(assetID, acc.ID)
		return err
	})
	require.NoError(e.t, err, "read balance")
	return balance
}

// Approved reports whether owner has approved operator.
func (e *TestEnv) Approved(owner, operator *Account) bool {
	e.t.Helper()

	var approved bool
	err := e.engine.Query(func(view tx.LedgerView) error {
		var err error
		approved, err = token.NewLedger(view).Approved(owner.ID, operator.ID)
		return err
	})
	require.NoError(e.t, err, "read approval")
	return approved
}

// LPBalance returns the committed LP shares of acc.
func (e *TestEnv) LPBalance(acc *Account) uint64 {
	e.t.Helper()

	var lp uint64
	err := e.engine.Query(func(view tx.LedgerView) error {
		var err error
		lp, err = amm.NewRegistry(view).LPBalance(acc.ID)
		return err
	})
	require.NoError(e.t, err, "read LP balance")
	return lp
}

// Pool returns the committed pool record, nil before init.
func (e *TestEnv) Pool() *amm.Pool {
	e.t.Helper()

	var pool *amm.Pool
	err := e.engine.Query(func(view tx.LedgerView) error {
		var err error
		pool, err = amm.NewRegistry(view).Pool()
		return err
	})
	require.NoError(e.t, err, "read pool")
	return pool
}

// Events returns every event committed so far, in commit order.
func (e *TestEnv) Events() []tx.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]tx.Event(nil), e.events...)
}

// LastEvent returns the most recent committed event, nil if none.
func (e *TestEnv) LastEvent() tx.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.events) == 0 {
		return nil
	}
	return e.events[len(e.events)-1]
}
