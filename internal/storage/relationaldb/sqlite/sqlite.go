// Package sqlite registers the SQLite journal dialect on the pure Go
// modernc driver.
package sqlite

import (
	"github.com/LeJamon/tokendex/internal/storage/relationaldb"
	_ "modernc.org/sqlite"
)

func init() {
	relationaldb.RegisterDialect(relationaldb.DriverSQLite, Dialect{})
}

// Dialect implements relationaldb.Dialect for SQLite
type Dialect struct{}

func (Dialect) DriverName() string { return "sqlite" }

func (Dialect) Placeholder(int) string { return "?" }

func (Dialect) InsertReturning() bool { return false }

func (Dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			event_type TEXT NOT NULL,
			payload BLOB NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type)`,
	}
}
