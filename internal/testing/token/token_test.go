// Package token_test exercises asset ledger transactions end to end.
package token_test

import (
	"math"
	"testing"

	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/core/tx/token"
	jtx "github.com/LeJamon/tokendex/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMint(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")

	for _, n := range []int64{1, 1_000, 0} {
		jtx.AssertBalanceChange(t, env, alice, 7, n, func() {
			env.Mint(alice, 7, uint64(n))
		})
	}

	jtx.RequireTxFail(t, env.Submit(alice, token.NewMint(7, math.MaxUint64)), tx.TefARITHMETIC_OVERFLOW)
	jtx.RequireBalance(t, env, alice, 7, 1_001)

	bob := jtx.NewAccount("bob")
	env.Mint(bob, 7, math.MaxUint64)
	jtx.RequireBalance(t, env, bob, 7, math.MaxUint64)
}

func TestMintEmitsOneEvent(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")

	result := env.Submit(alice, token.NewMintBatch([]uint64{1, 2}, []uint64{5, 6}))
	jtx.RequireTxSuccess(t, result)
	assert.Equal(t, token.MintBatchEvent{Account: alice.ID, AssetIDs: []uint64{1, 2}, Amounts: []uint64{5, 6}}, result.Event)
	jtx.RequireEventCount(t, env, 1)
}

func TestTransfer(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Mint(alice, 1, 100)

	result := env.Submit(alice, token.NewTransfer(bob.ID, 1, 30))
	jtx.RequireTxSuccess(t, result)
	assert.Equal(t, token.TransferSingleEvent{Operator: alice.ID, From: alice.ID, To: bob.ID, AssetID: 1, Amount: 30}, result.Event)
	jtx.RequireBalance(t, env, alice, 1, 70)
	jtx.RequireBalance(t, env, bob, 1, 30)

	jtx.AssertNoBalanceChange(t, env, alice, 1, func() {
		jtx.RequireTxFail(t, env.Submit(alice, token.NewTransfer(bob.ID, 1, 71)), tx.TecINSUFFICIENT_BALANCE)
	})
	jtx.RequireEventCount(t, env, 2)
}

func TestTransferToSelf(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Mint(alice, 1, 100)

	jtx.AssertNoBalanceChange(t, env, alice, 1, func() {
		jtx.RequireTxSuccess(t, env.Submit(alice, token.NewTransfer(alice.ID, 1, 100)))
	})
}

func TestTransferFrom(t *testing.T) {
	env := jtx.NewTestEnv(t)
	owner := jtx.NewAccount("owner")
	operator := jtx.NewAccount("operator")
	dest := jtx.NewAccount("dest")
	env.Mint(owner, 1, 100)

	t.Run("NotApproved", func(t *testing.T) {
		jtx.RequireTxFail(t, env.Submit(operator, token.NewTransferFrom(owner.ID, dest.ID, 1, 10)), tx.TecNOT_APPROVED)
	})

	t.Run("RecipientApprovalIsNotEnough", func(t *testing.T) {
		env.Approve(owner, dest)
		jtx.RequireTxFail(t, env.Submit(operator, token.NewTransferFrom(owner.ID, dest.ID, 1, 10)), tx.TecNOT_APPROVED)
	})

	t.Run("Approved", func(t *testing.T) {
		env.Approve(owner, operator)
		require.True(t, env.Approved(owner, operator))

		result := env.Submit(operator, token.NewTransferFrom(owner.ID, dest.ID, 1, 10))
		jtx.RequireTxSuccess(t, result)
		assert.Equal(t, token.TransferSingleEvent{Operator: operator.ID, From: owner.ID, To: dest.ID, AssetID: 1, Amount: 10}, result.Event)
		jtx.RequireBalance(t, env, owner, 1, 90)
		jtx.RequireBalance(t, env, dest, 1, 10)
	})

	t.Run("Revoked", func(t *testing.T) {
		result := env.Submit(owner, token.NewSetApproval(operator.ID, false))
		jtx.RequireTxSuccess(t, result)
		assert.Equal(t, token.ApprovalForAllEvent{Owner: owner.ID, Operator: operator.ID, Approved: false}, result.Event)
		jtx.RequireTxFail(t, env.Submit(operator, token.NewTransferFrom(owner.ID, dest.ID, 1, 10)), tx.TecNOT_APPROVED)
	})
}

func TestBatchLengthMismatch(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Mint(alice, 1, 100)
	env.Approve(alice, bob)
	before := len(env.Events())

	jtx.RequireTxFail(t, env.Submit(alice, token.NewMintBatch([]uint64{1}, []uint64{1, 2})), tx.TecLENGTH_MISMATCH)
	jtx.RequireTxFail(t, env.Submit(alice, token.NewTransferBatch(bob.ID, []uint64{1, 1}, []uint64{1})), tx.TecLENGTH_MISMATCH)
	jtx.RequireTxFail(t, env.Submit(bob, token.NewTransferBatchFrom(alice.ID, bob.ID, nil, []uint64{1})), tx.TecLENGTH_MISMATCH)

	jtx.RequireBalance(t, env, alice, 1, 100)
	jtx.RequireEventCount(t, env, before)
}

func TestTransferBatchAtomicity(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Mint(alice, 1, 100)
	env.Mint(alice, 2, 10)

	// first element is covered, second is not: nothing may move
	jtx.AssertNoBalanceChange(t, env, alice, 1, func() {
		jtx.RequireTxFail(t,
			env.Submit(alice, token.NewTransferBatch(bob.ID, []uint64{1, 2}, []uint64{50, 11})),
			tx.TecINSUFFICIENT_BALANCE)
	})
	jtx.RequireBalance(t, env, bob, 1, 0)
	jtx.RequireBalance(t, env, bob, 2, 0)

	result := env.Submit(alice, token.NewTransferBatch(bob.ID, []uint64{1, 2}, []uint64{50, 10}))
	jtx.RequireTxSuccess(t, result)
	assert.Equal(t, token.TransferBatchEvent{
		Operator: alice.ID,
		From:     alice.ID,
		To:       bob.ID,
		AssetIDs: []uint64{1, 2},
		Amounts:  []uint64{50, 10},
	}, result.Event)
	jtx.RequireBalance(t, env, bob, 1, 50)
	jtx.RequireBalance(t, env, bob, 2, 10)
}

func TestMintBatchAtomicity(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Mint(alice, 2, math.MaxUint64)

	jtx.RequireTxFail(t, env.Submit(alice, token.NewMintBatch([]uint64{1, 2}, []uint64{5, 1})), tx.TefARITHMETIC_OVERFLOW)
	jtx.RequireBalance(t, env, alice, 1, 0)
}

func TestTransferBatchFrom(t *testing.T) {
	env := jtx.NewTestEnvBacked(t)
	owner := jtx.NewAccount("owner")
	operator := jtx.NewAccount("operator")
	dest := jtx.NewAccount("dest")
	env.Mint(owner, 1, 10)
	env.Mint(owner, 2, 20)

	jtx.RequireTxFail(t,
		env.Submit(operator, token.NewTransferBatchFrom(owner.ID, dest.ID, []uint64{1, 2}, []uint64{1, 1})),
		tx.TecNOT_APPROVED)

	env.Approve(owner, operator)
	result := env.Submit(operator, token.NewTransferBatchFrom(owner.ID, dest.ID, []uint64{1, 2}, []uint64{10, 5}))
	jtx.RequireTxSuccess(t, result)
	assert.Equal(t, operator.ID, result.Event.(token.TransferBatchEvent).Operator)

	jtx.RequireBalance(t, env, owner, 1, 0)
	jtx.RequireBalance(t, env, owner, 2, 15)
	jtx.RequireBalance(t, env, dest, 1, 10)
	jtx.RequireBalance(t, env, dest, 2, 5)
}

func TestTransactionsFromJSON(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")

	mint, err := tx.FromJSON([]byte(`{"TransactionType":"Mint","AssetID":4,"Amount":250}`))
	require.NoError(t, err)
	jtx.RequireTxSuccess(t, env.Submit(alice, mint))

	transfer, err := tx.FromJSON([]byte(`{"TransactionType":"Transfer","Destination":"` + bob.ID.String() + `","AssetID":4,"Amount":50}`))
	require.NoError(t, err)
	jtx.RequireTxSuccess(t, env.Submit(alice, transfer))

	jtx.RequireBalance(t, env, alice, 4, 200)
	jtx.RequireBalance(t, env, bob, 4, 50)
}
