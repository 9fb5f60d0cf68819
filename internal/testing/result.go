package testing

import "github.com/LeJamon/tokendex/internal/core/tx"

// TxResult represents the result of applying a transaction.
type TxResult struct {
	// Code is the engine result (e.g., tx.TesSUCCESS).
	Code tx.Result

	// Success indicates whether the transaction was applied.
	Success bool

	// Message provides additional details about the result.
	Message string

	// Event is the event committed with the transaction, nil on failure.
	Event tx.Event
}
