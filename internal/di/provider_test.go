package di

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/LeJamon/tokendex/internal/config"
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/core/tx/token"
	"github.com/LeJamon/tokendex/internal/identity"
	"github.com/LeJamon/tokendex/internal/storage/database"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		FeePercent: 3,
		Storage:    config.StorageConfig{Backend: backend, Path: filepath.Join(dir, "data"), CacheSize: 16},
		Events:     config.EventsConfig{Driver: config.EventsDriverSQLite, DSN: filepath.Join(dir, "events.db")},
		Server:     config.ServerConfig{Bind: "127.0.0.1", Port: 5005, Timeout: time.Second},
		Log:        config.LogConfig{Level: "info", Format: config.LogFormatJSON},
	}
}

func TestProviderWiresNode(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendPebble, config.BackendBbolt, config.BackendLevelDB} {
		t.Run(backend, func(t *testing.T) {
			c := New()
			p := NewProvider(c, testConfig(t, backend), zerolog.Nop(), "test")
			require.NoError(t, p.RegisterAll())
			defer c.Close()

			engine, err := p.Engine()
			require.NoError(t, err)
			assert.Equal(t, uint64(3), engine.Config().FeePercent)

			caller := identity.DeriveKeyPair([]byte("alice")).AccountID()
			mint := token.NewMint(1, 10)
			mint.SetSequence(tx.FirstSequence)
			res := engine.Apply(caller, mint)
			require.True(t, res.Result.IsSuccess(), res.Message)

			journal, err := p.Journal()
			require.NoError(t, err)
			require.NotNil(t, journal)
			n, err := journal.Journal().Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			server, err := p.RPCServer()
			require.NoError(t, err)
			assert.NotNil(t, server)
		})
	}
}

func TestProviderWithoutJournal(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	cfg.Events = config.EventsConfig{Driver: config.EventsDriverNone}

	c := New()
	p := NewProvider(c, cfg, zerolog.Nop(), "test")
	require.NoError(t, p.RegisterAll())
	defer c.Close()

	journal, err := p.Journal()
	require.NoError(t, err)
	assert.Nil(t, journal)

	_, err = p.RPCServer()
	require.NoError(t, err)
}

func TestProviderReopensState(t *testing.T) {
	cfg := testConfig(t, config.BackendPebble)
	cfg.Events = config.EventsConfig{Driver: config.EventsDriverNone}
	caller := identity.DeriveKeyPair([]byte("alice")).AccountID()

	c := New()
	p := NewProvider(c, cfg, zerolog.Nop(), "test")
	require.NoError(t, p.RegisterAll())
	engine, err := p.Engine()
	require.NoError(t, err)

	mint := token.NewMint(1, 10)
	mint.SetSequence(tx.FirstSequence)
	require.True(t, engine.Apply(caller, mint).Result.IsSuccess())
	// closing releases the pebble directory lock
	require.NoError(t, c.Close())

	c = New()
	p = NewProvider(c, cfg, zerolog.Nop(), "test")
	require.NoError(t, p.RegisterAll())
	defer c.Close()
	engine, err = p.Engine()
	require.NoError(t, err)

	seq, err := engine.Sequence(caller)
	require.NoError(t, err)
	assert.Equal(t, tx.FirstSequence+1, seq)
	assert.Equal(t, tx.TefPAST_SEQ, engine.Apply(caller, mint).Result)
}

func TestOpenStorageUnknownBackend(t *testing.T) {
	_, err := OpenStorage(config.StorageConfig{Backend: config.BackendMemory + "x", Path: t.TempDir()})
	assert.ErrorIs(t, err, database.ErrUnknownBackend)
}
