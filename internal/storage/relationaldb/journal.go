package relationaldb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/LeJamon/tokendex/internal/core/tx"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SQLJournal implements Journal over database/sql
type SQLJournal struct {
	db      *sql.DB
	config  *Config
	dialect Dialect

	insertSQL string
	selectSQL string

	mu     sync.RWMutex
	closed bool
}

func newSQLJournal(ctx context.Context, config *Config, dialect Dialect) (*SQLJournal, error) {
	db, err := sql.Open(dialect.DriverName(), config.DSN)
	if err != nil {
		return nil, NewConnectionError("open", "failed to open database connection", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	j := &SQLJournal{
		db:      db,
		config:  config,
		dialect: dialect,
		insertSQL: fmt.Sprintf(
			"INSERT INTO events (event_type, payload, created_at) VALUES (%s, %s, %s)",
			dialect.Placeholder(1), dialect.Placeholder(2), dialect.Placeholder(3)),
		selectSQL: fmt.Sprintf(
			"SELECT seq, event_type, payload, created_at FROM events WHERE seq > %s ORDER BY seq LIMIT %s",
			dialect.Placeholder(1), dialect.Placeholder(2)),
	}

	if err := j.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := j.initSchema(ctx); err != nil {
		db.Close()
		return nil, NewSchemaError("open", "failed to initialize schema", err)
	}
	return j, nil
}

func (j *SQLJournal) initSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.config.DefaultTimeout)
	defer cancel()

	for _, query := range j.dialect.Schema() {
		if _, err := j.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}
	return nil
}

// Append stores ev and returns its sequence number
func (j *SQLJournal) Append(ctx context.Context, ev tx.Event) (int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return 0, ErrJournalClosed
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return 0, NewDataError("append", "failed to encode event", err)
	}

	ctx, cancel := context.WithTimeout(ctx, j.config.DefaultTimeout)
	defer cancel()

	args := []interface{}{ev.EventType(), payload, time.Now().UnixNano()}

	var seq int64
	if j.dialect.InsertReturning() {
		if err := j.db.QueryRowContext(ctx, j.insertSQL+" RETURNING seq", args...).Scan(&seq); err != nil {
			return 0, NewQueryError("append", "failed to insert event", err)
		}
		return seq, nil
	}

	res, err := j.db.ExecContext(ctx, j.insertSQL, args...)
	if err != nil {
		return 0, NewQueryError("append", "failed to insert event", err)
	}
	if seq, err = res.LastInsertId(); err != nil {
		return 0, NewQueryError("append", "failed to read sequence", err)
	}
	return seq, nil
}

// Publish appends ev with the configured timeout
func (j *SQLJournal) Publish(ev tx.Event) error {
	_, err := j.Append(context.Background(), ev)
	return err
}

// Events returns up to limit records with a sequence above after
func (j *SQLJournal) Events(ctx context.Context, after int64, limit int) ([]EventRecord, error) {
	if limit <= 0 {
		return nil, ErrInvalidQueryLimit
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return nil, ErrJournalClosed
	}

	ctx, cancel := context.WithTimeout(ctx, j.config.DefaultTimeout)
	defer cancel()

	rows, err := j.db.QueryContext(ctx, j.selectSQL, after, limit)
	if err != nil {
		return nil, NewQueryError("events", "failed to query events", err)
	}
	defer rows.Close()

	var records []EventRecord
	for rows.Next() {
		var (
			rec   EventRecord
			nanos int64
		)
		if err := rows.Scan(&rec.Seq, &rec.Type, &rec.Payload, &nanos); err != nil {
			return nil, NewDataError("events", "failed to scan event", err)
		}
		rec.CreatedAt = time.Unix(0, nanos).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, NewQueryError("events", "failed to iterate events", err)
	}
	return records, nil
}

// Count returns the number of journaled events
func (j *SQLJournal) Count(ctx context.Context) (int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return 0, ErrJournalClosed
	}

	ctx, cancel := context.WithTimeout(ctx, j.config.DefaultTimeout)
	defer cancel()

	var n int64
	if err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n); err != nil {
		return 0, NewQueryError("count", "failed to count events", err)
	}
	return n, nil
}

// Ping tests the database connection
func (j *SQLJournal) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.config.DefaultTimeout)
	defer cancel()

	if err := j.db.PingContext(ctx); err != nil {
		return NewConnectionError("ping", "database ping failed", err)
	}
	return nil
}

// Close closes the database connection
func (j *SQLJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true

	if err := j.db.Close(); err != nil {
		return NewConnectionError("close", "failed to close database connection", err)
	}
	return nil
}
