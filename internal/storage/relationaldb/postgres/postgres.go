// Package postgres registers the PostgreSQL journal dialect.
package postgres

import (
	"strconv"

	"github.com/LeJamon/tokendex/internal/storage/relationaldb"
	_ "github.com/lib/pq" // PostgreSQL driver
)

func init() {
	relationaldb.RegisterDialect(relationaldb.DriverPostgres, Dialect{})
}

// Dialect implements relationaldb.Dialect for PostgreSQL
type Dialect struct{}

func (Dialect) DriverName() string { return "postgres" }

func (Dialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

// InsertReturning is true: lib/pq does not implement LastInsertId.
func (Dialect) InsertReturning() bool { return true }

func (Dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS events (
			seq BIGSERIAL PRIMARY KEY,
			event_type VARCHAR(64) NOT NULL,
			payload BYTEA NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type)`,
	}
}
