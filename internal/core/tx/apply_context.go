package tx

import (
	"github.com/LeJamon/tokendex/internal/identity"
	"github.com/rs/zerolog"
)

// ApplyContext provides all the state and helpers needed to apply a transaction.
// It is passed to Transaction.Apply() instead of individual parameters.
type ApplyContext struct {
	// View provides read/write access to ledger state (the ApplyStateTable)
	View LedgerView

	// AccountID is the authenticated caller
	AccountID identity.AccountID

	// Config holds engine configuration
	Config EngineConfig

	// Logger is scoped to the transaction being applied
	Logger zerolog.Logger

	events []Event
}

// Emit records the event describing a successful transaction.
func (ctx *ApplyContext) Emit(ev Event) {
	ctx.events = append(ctx.events, ev)
}

// Events returns the events emitted so far.
func (ctx *ApplyContext) Events() []Event {
	return ctx.events
}
