package di

import (
	"context"
	"fmt"
	"os"

	"github.com/LeJamon/tokendex/internal/config"
	"github.com/LeJamon/tokendex/internal/core/state"
	"github.com/LeJamon/tokendex/internal/core/tx"
	_ "github.com/LeJamon/tokendex/internal/core/tx/all"
	"github.com/LeJamon/tokendex/internal/rpc"
	"github.com/LeJamon/tokendex/internal/storage/database"
	"github.com/LeJamon/tokendex/internal/storage/database/bbolt"
	"github.com/LeJamon/tokendex/internal/storage/database/leveldb"
	"github.com/LeJamon/tokendex/internal/storage/database/memory"
	"github.com/LeJamon/tokendex/internal/storage/database/pebble"
	"github.com/LeJamon/tokendex/internal/storage/relationaldb"
	_ "github.com/LeJamon/tokendex/internal/storage/relationaldb/postgres"
	_ "github.com/LeJamon/tokendex/internal/storage/relationaldb/sqlite"
	"github.com/rs/zerolog"
)

// StateDBName is the database holding ledger and pool state
const StateDBName = "state"

// Provider configures and registers services in the container.
type Provider struct {
	container *Container
	config    *config.Config
	logger    zerolog.Logger
	version   string
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config, logger zerolog.Logger, version string) *Provider {
	return &Provider{
		container: container,
		config:    cfg,
		logger:    logger,
		version:   version,
	}
}

// RegisterAll registers all services.
func (p *Provider) RegisterAll() error {
	p.container.Register(ServiceConfig, p.config)
	p.container.Register(ServiceLogger, p.logger)

	p.registerStorageBuilders()
	p.registerEventBuilders()
	p.registerEngineBuilders()
	p.registerRPCBuilders()

	return nil
}

// OpenStorage returns the database manager for the configured backend.
func OpenStorage(cfg config.StorageConfig) (database.Manager, error) {
	if cfg.Backend != config.BackendMemory {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewManager(), nil
	case config.BackendPebble:
		return pebble.NewManager(cfg.Path), nil
	case config.BackendBbolt:
		return bbolt.NewManager(cfg.Path), nil
	case config.BackendLevelDB:
		return leveldb.NewManager(cfg.Path), nil
	default:
		return nil, fmt.Errorf("%w: %s", database.ErrUnknownBackend, cfg.Backend)
	}
}

// registerStorageBuilders registers storage service builders.
func (p *Provider) registerStorageBuilders() {
	p.container.RegisterBuilder(ServiceStorage, func(c *Container) (interface{}, error) {
		manager, err := OpenStorage(p.config.Storage)
		if err != nil {
			return nil, err
		}
		c.OnClose(ServiceStorage, manager.Close)
		p.logger.Info().
			Str("backend", p.config.Storage.Backend).
			Str("path", p.config.Storage.Path).
			Msg("storage opened")
		return manager, nil
	})

	p.container.RegisterBuilder(ServiceStateDB, func(c *Container) (interface{}, error) {
		manager, err := Resolve[database.Manager](c, ServiceStorage)
		if err != nil {
			return nil, err
		}
		db, err := manager.OpenDB(StateDBName)
		if err != nil {
			return nil, err
		}
		c.OnClose(ServiceStateDB, func() error {
			return manager.CloseDB(StateDBName)
		})
		return db, nil
	})

	p.container.RegisterBuilder(ServiceStateStore, func(c *Container) (interface{}, error) {
		db, err := Resolve[database.DB](c, ServiceStateDB)
		if err != nil {
			return nil, err
		}
		return state.NewStore(db, p.config.Storage.CacheSize)
	})
}

// registerEventBuilders registers the event hub and, when configured, the journal.
func (p *Provider) registerEventBuilders() {
	p.container.RegisterBuilder(ServiceEventHub, func(c *Container) (interface{}, error) {
		hub := rpc.NewEventHub(p.logger.With().Str("component", "ws").Logger())
		c.OnClose(ServiceEventHub, func() error {
			hub.Close()
			return nil
		})
		return hub, nil
	})

	p.container.RegisterBuilder(ServiceJournal, func(c *Container) (interface{}, error) {
		if !p.config.Events.Enabled() {
			return (*relationaldb.Manager)(nil), nil
		}

		journal, err := relationaldb.Open(context.Background(), p.config.Events.Journal())
		if err != nil {
			return nil, err
		}
		manager := relationaldb.NewManager(journal,
			relationaldb.WithLogger(p.logger.With().Str("component", "journal").Logger()))
		c.OnClose(ServiceJournal, manager.Close)
		p.logger.Info().Str("driver", p.config.Events.Driver).Msg("event journal opened")
		return manager, nil
	})
}

// registerEngineBuilders registers the transaction engine with every event sink.
func (p *Provider) registerEngineBuilders() {
	p.container.RegisterBuilder(ServiceTxEngine, func(c *Container) (interface{}, error) {
		store, err := Resolve[*state.Store](c, ServiceStateStore)
		if err != nil {
			return nil, err
		}
		hub, err := Resolve[*rpc.EventHub](c, ServiceEventHub)
		if err != nil {
			return nil, err
		}
		journal, err := Resolve[*relationaldb.Manager](c, ServiceJournal)
		if err != nil {
			return nil, err
		}

		eventLogger := p.logger.With().Str("component", "events").Logger()
		sinks := tx.MultiSink{tx.LogSink{Logger: eventLogger}, hub}
		if journal != nil {
			sinks = append(sinks, journal.Journal())
		}

		return tx.NewEngine(store,
			tx.EngineConfig{FeePercent: p.config.FeePercent},
			tx.WithEventSink(sinks),
			tx.WithLogger(p.logger.With().Str("component", "engine").Logger()),
		)
	})
}

// registerRPCBuilders registers RPC service builders.
func (p *Provider) registerRPCBuilders() {
	p.container.RegisterBuilder(ServiceRPCServer, func(c *Container) (interface{}, error) {
		engine, err := Resolve[*tx.Engine](c, ServiceTxEngine)
		if err != nil {
			return nil, err
		}
		hub, err := Resolve[*rpc.EventHub](c, ServiceEventHub)
		if err != nil {
			return nil, err
		}
		journal, err := Resolve[*relationaldb.Manager](c, ServiceJournal)
		if err != nil {
			return nil, err
		}

		store, err := Resolve[*state.Store](c, ServiceStateStore)
		if err != nil {
			return nil, err
		}

		services := &rpc.Services{Engine: engine, State: store, Version: p.version}
		if journal != nil {
			services.Journal = journal.Journal()
		}
		return rpc.NewServer(services, p.config.Server.Timeout,
			rpc.WithEventHub(hub),
			rpc.WithServerLogger(p.logger.With().Str("component", "rpc").Logger()),
		), nil
	})
}

// Engine returns the transaction engine from the container.
func (p *Provider) Engine() (*tx.Engine, error) {
	return Resolve[*tx.Engine](p.container, ServiceTxEngine)
}

// RPCServer returns the RPC server from the container.
func (p *Provider) RPCServer() (*rpc.Server, error) {
	return Resolve[*rpc.Server](p.container, ServiceRPCServer)
}

// Journal returns the journal manager, nil when events are not journaled.
func (p *Provider) Journal() (*relationaldb.Manager, error) {
	return Resolve[*relationaldb.Manager](p.container, ServiceJournal)
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}
