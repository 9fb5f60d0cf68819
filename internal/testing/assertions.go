package testing

import (
	"testing"

	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/stretchr/testify/require"
)

// RequireTxSuccess asserts that a transaction result indicates success.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	require.True(t, result.Success,
		"Expected transaction success, got %s: %s", result.Code, result.Message)
	require.Equal(t, tx.TesSUCCESS, result.Code,
		"Expected tesSUCCESS, got %s: %s", result.Code, result.Message)
}

// RequireTxFail asserts that a transaction result indicates failure with a specific code.
func RequireTxFail(t *testing.T, result TxResult, expectedCode tx.Result) {
	t.Helper()
	require.False(t, result.Success,
		"Expected transaction failure with code %s, but transaction succeeded", expectedCode)
	require.Equal(t, expectedCode, result.Code,
		"Expected failure code %s, got %s: %s", expectedCode, result.Code, result.Message)
	require.Nil(t, result.Event, "failed transaction must not carry an event")
}

// RequireBalance asserts that an account holds the expected amount of an asset.
func RequireBalance(t *testing.T, env *TestEnv, acc *Account, assetID uint64, expected uint64) {
	t.Helper()
	actual := env.Balance(acc, assetID)
	require.Equal(t, expected, actual,
		"Account %s balance mismatch for asset %d: expected %d, got %d",
		acc.Name, assetID, expected, actual)
}

// RequireLPBalance asserts that an account holds the expected LP shares.
func RequireLPBalance(t *testing.T, env *TestEnv, acc *Account, expected uint64) {
	t.Helper()
	actual := env.LPBalance(acc)
	require.Equal(t, expected, actual,
		"Account %s LP balance mismatch: expected %d, got %d", acc.Name, expected, actual)
}

// RequireEventCount asserts how many events have been committed.
func RequireEventCount(t *testing.T, env *TestEnv, expected int) {
	t.Helper()
	require.Len(t, env.Events(), expected, "committed event count")
}

// AssertBalanceChange runs a function and asserts the expected balance change.
// The change can be positive (increase) or negative (decrease).
func AssertBalanceChange(t *testing.T, env *TestEnv, acc *Account, assetID uint64, expectedChange int64, fn func()) {
	t.Helper()
	before := env.Balance(acc, assetID)
	fn()
	after := env.Balance(acc, assetID)

	actualChange := int64(after) - int64(before)
	require.Equal(t, expectedChange, actualChange,
		"Account %s balance change mismatch for asset %d: expected %d, got %d (before: %d, after: %d)",
		acc.Name, assetID, expectedChange, actualChange, before, after)
}

// AssertNoBalanceChange runs a function and asserts the balance stays the same.
func AssertNoBalanceChange(t *testing.T, env *TestEnv, acc *Account, assetID uint64, fn func()) {
	t.Helper()
	AssertBalanceChange(t, env, acc, assetID, 0, fn)
}
