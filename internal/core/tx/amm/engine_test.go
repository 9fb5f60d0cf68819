package amm

import (
	"errors"
	"testing"

	"github.com/LeJamon/tokendex/internal/core/state"
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/identity"
	"github.com/LeJamon/tokendex/internal/storage/database/memory"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	provider = identity.AccountID{0x01}
	trader   = identity.AccountID{0x02}
	poolAcct = identity.AccountID{0x0f}
)

const (
	assetA uint64 = 0
	assetB uint64 = 1
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	store, err := state.NewStore(memory.NewDB(), 0)
	require.NoError(t, err)
	return NewRegistry(tx.NewApplyStateTable(store))
}

func seedPool(t *testing.T, r *Registry, supply uint64) {
	t.Helper()
	require.NoError(t, r.SetPool(&Pool{Account: poolAcct, AssetA: assetA, AssetB: assetB, LPTotalSupply: supply}))
	require.NoError(t, r.SetLPBalance(provider, supply))
}

func TestInitMovesSeedAndMintsLP(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)
	registry := newRegistry(t)

	gomock.InOrder(
		tokens.EXPECT().TransferTo(provider, poolAcct, assetA, uint64(9_000_000)).Return(nil),
		tokens.EXPECT().TransferTo(provider, poolAcct, assetB, uint64(4_000_000)).Return(nil),
	)

	ev, err := NewEngine(tokens, registry, 3).Init(provider, poolAcct, assetA, 9_000_000, assetB, 4_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_000_000), ev.LPMinted)

	pool, err := registry.Pool()
	require.NoError(t, err)
	assert.Equal(t, &Pool{Account: poolAcct, AssetA: assetA, AssetB: assetB, LPTotalSupply: 9_000_000}, pool)

	lp, err := registry.LPBalance(provider)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_000_000), lp)
}

func TestInitRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)

	// no ledger calls expected for either failure
	registry := newRegistry(t)
	_, err := NewEngine(tokens, registry, 3).Init(provider, poolAcct, assetA, 1, assetA, 1)
	assert.Equal(t, tx.TemBAD_POOL_ASSETS, tx.ResultFromError(err))

	seedPool(t, registry, 10)
	_, err = NewEngine(tokens, registry, 3).Init(trader, poolAcct, 5, 1, 6, 1)
	assert.Equal(t, tx.TecPOOL_EXISTS, tx.ResultFromError(err))

	pool, err := registry.Pool()
	require.NoError(t, err)
	assert.Equal(t, assetA, pool.AssetA)
}

func TestInitPropagatesLedgerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)
	registry := newRegistry(t)

	tokens.EXPECT().TransferTo(provider, poolAcct, assetA, uint64(5)).Return(tx.TecINSUFFICIENT_BALANCE)

	_, err := NewEngine(tokens, registry, 3).Init(provider, poolAcct, assetA, 5, assetB, 5)
	assert.Equal(t, tx.TecINSUFFICIENT_BALANCE, tx.ResultFromError(err))
}

func TestSwapUsesPreTradeReserves(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)
	registry := newRegistry(t)
	seedPool(t, registry, 9_000_000)

	tokens.EXPECT().Balance(assetA, poolAcct).Return(uint64(9_000_000), nil)
	tokens.EXPECT().Balance(assetB, poolAcct).Return(uint64(9_000_000), nil)
	gomock.InOrder(
		tokens.EXPECT().TransferTo(trader, poolAcct, assetA, uint64(100_000)).Return(nil),
		tokens.EXPECT().TransferTo(poolAcct, trader, assetB, uint64(95_933)).Return(nil),
	)

	ev, err := NewEngine(tokens, registry, 3).Swap(trader, assetA, 100_000)
	require.NoError(t, err)
	assert.Equal(t, Swapped{
		Caller:       trader,
		InputAsset:   assetA,
		InputAmount:  100_000,
		OutputAsset:  assetB,
		OutputAmount: 95_933,
	}, *ev)
}

func TestSwapReverseDirection(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)
	registry := newRegistry(t)
	seedPool(t, registry, 100)

	tokens.EXPECT().Balance(assetB, poolAcct).Return(uint64(1_000), nil)
	tokens.EXPECT().Balance(assetA, poolAcct).Return(uint64(2_000), nil)
	tokens.EXPECT().TransferTo(trader, poolAcct, assetB, uint64(1_000)).Return(nil)
	// floor(2000*1000/2000) = 1000, *97/100 = 970
	tokens.EXPECT().TransferTo(poolAcct, trader, assetA, uint64(970)).Return(nil)

	ev, err := NewEngine(tokens, registry, 3).Swap(trader, assetB, 1_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(970), ev.OutputAmount)
}

func TestSwapFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)

	_, err := NewEngine(tokens, newRegistry(t), 3).Swap(trader, assetA, 1)
	assert.Equal(t, tx.TecPOOL_UNINITIALIZED, tx.ResultFromError(err))

	registry := newRegistry(t)
	seedPool(t, registry, 100)
	_, err = NewEngine(tokens, registry, 3).Swap(trader, 42, 1)
	assert.Equal(t, tx.TecUNKNOWN_ASSET, tx.ResultFromError(err))

	tokens.EXPECT().Balance(assetA, poolAcct).Return(uint64(0), nil)
	tokens.EXPECT().Balance(assetB, poolAcct).Return(uint64(0), nil)
	_, err = NewEngine(tokens, registry, 3).Swap(trader, assetA, 0)
	assert.Equal(t, tx.TefDIVISION_BY_ZERO, tx.ResultFromError(err))
}

func TestDepositTakesRequiredB(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)
	registry := newRegistry(t)
	seedPool(t, registry, 1_000)

	tokens.EXPECT().Balance(assetA, poolAcct).Return(uint64(1_000), nil)
	tokens.EXPECT().Balance(assetB, poolAcct).Return(uint64(2_000), nil)
	gomock.InOrder(
		tokens.EXPECT().TransferTo(trader, poolAcct, assetA, uint64(100)).Return(nil),
		tokens.EXPECT().TransferTo(trader, poolAcct, assetB, uint64(200)).Return(nil),
	)

	ev, err := NewEngine(tokens, registry, 3).Deposit(trader, 100, 250)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), ev.AmountB)
	assert.Equal(t, uint64(100), ev.LPMinted)

	lp, err := registry.LPBalance(trader)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), lp)

	pool, err := registry.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_100), pool.LPTotalSupply)
}

func TestDepositRatioMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)
	registry := newRegistry(t)
	seedPool(t, registry, 1_000)

	tokens.EXPECT().Balance(assetA, poolAcct).Return(uint64(1_000), nil)
	tokens.EXPECT().Balance(assetB, poolAcct).Return(uint64(2_000), nil)

	_, err := NewEngine(tokens, registry, 3).Deposit(trader, 100, 199)
	assert.Equal(t, tx.TecRATIO_MISMATCH, tx.ResultFromError(err))
}

func TestDepositEmptyReserve(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)
	registry := newRegistry(t)
	seedPool(t, registry, 0)

	tokens.EXPECT().Balance(assetA, poolAcct).Return(uint64(0), nil)
	tokens.EXPECT().Balance(assetB, poolAcct).Return(uint64(0), nil)

	_, err := NewEngine(tokens, registry, 3).Deposit(trader, 1, 1)
	assert.Equal(t, tx.TefDIVISION_BY_ZERO, tx.ResultFromError(err))
}

func TestWithdrawFullExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)
	registry := newRegistry(t)
	seedPool(t, registry, 300)
	require.NoError(t, registry.SetLPBalance(provider, 200))
	require.NoError(t, registry.SetLPBalance(trader, 100))

	tokens.EXPECT().Balance(assetA, poolAcct).Return(uint64(1_000), nil)
	tokens.EXPECT().Balance(assetB, poolAcct).Return(uint64(500), nil)
	tokens.EXPECT().TransferTo(poolAcct, trader, assetA, uint64(333)).Return(nil)
	tokens.EXPECT().TransferTo(poolAcct, trader, assetB, uint64(166)).Return(nil)

	ev, err := NewEngine(tokens, registry, 3).Withdraw(trader)
	require.NoError(t, err)
	assert.Equal(t, Withdrawn{Caller: trader, AmountA: 333, AmountB: 166, LPBurned: 100}, *ev)

	lp, err := registry.LPBalance(trader)
	require.NoError(t, err)
	assert.Zero(t, lp)

	pool, err := registry.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(200), pool.LPTotalSupply)
}

func TestWithdrawFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := NewMockMultiToken(ctrl)

	_, err := NewEngine(tokens, newRegistry(t), 3).Withdraw(trader)
	assert.Equal(t, tx.TecPOOL_UNINITIALIZED, tx.ResultFromError(err))

	registry := newRegistry(t)
	seedPool(t, registry, 100)
	_, err = NewEngine(tokens, registry, 3).Withdraw(trader)
	assert.Equal(t, tx.TecNO_LIQUIDITY, tx.ResultFromError(err))

	tokens.EXPECT().Balance(assetA, poolAcct).Return(uint64(0), errors.New("disk"))
	_, err = NewEngine(tokens, registry, 3).Withdraw(provider)
	assert.Equal(t, tx.TefINTERNAL, tx.ResultFromError(err))
}

func TestPoolRecordRoundTrip(t *testing.T) {
	p := &Pool{Account: identity.AccountID{1, 2, 3}, AssetA: 7, AssetB: 9, LPTotalSupply: 1 << 40}
	data, err := encodePool(p)
	require.NoError(t, err)

	got, err := decodePool(data)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = decodePool([]byte{0xc1})
	assert.Error(t, err)
}
