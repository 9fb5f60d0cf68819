// Package relationaldb persists committed events to a SQL journal.
//
// Driver specifics live in dialects registered by the sqlite and postgres
// subpackages; import one of them for its side effect before calling Open.
package relationaldb

import (
	"context"
	"time"

	"github.com/LeJamon/tokendex/internal/core/tx"
)

// EventRecord is one journaled event
type EventRecord struct {
	Seq       int64     `json:"seq"`
	Type      string    `json:"type"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal is an append-only event log. It is also a tx.EventSink, so an
// engine can publish committed events straight into it.
type Journal interface {
	tx.EventSink

	// Append stores ev and returns its sequence number
	Append(ctx context.Context, ev tx.Event) (int64, error)

	// Events returns up to limit records with a sequence above after, in order
	Events(ctx context.Context, after int64, limit int) ([]EventRecord, error)

	// Count returns the number of journaled events
	Count(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// Dialect holds the SQL that differs between drivers
type Dialect interface {
	// DriverName is the database/sql driver the dialect runs on
	DriverName() string

	// Schema returns the statements that create the journal tables
	Schema() []string

	// Placeholder returns the bind marker for the n-th argument, starting at 1
	Placeholder(n int) string

	// InsertReturning reports whether an insert reports its sequence through
	// RETURNING. Otherwise the journal uses sql.Result.LastInsertId.
	InsertReturning() bool
}
