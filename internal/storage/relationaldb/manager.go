package relationaldb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]Dialect)
)

// RegisterDialect makes a dialect available to Open under driver.
// It panics if driver is registered twice.
func RegisterDialect(driver string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	if _, exists := dialects[driver]; exists {
		panic(fmt.Sprintf("%v: %s", ErrDialectDuplicate, driver))
	}
	dialects[driver] = d
}

func lookupDialect(driver string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDialectNotFound, driver)
	}
	return d, nil
}

// Open validates config, connects and creates the journal schema
func Open(ctx context.Context, config *Config) (*SQLJournal, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigurationError("open", "invalid configuration", err)
	}
	dialect, err := lookupDialect(config.Driver)
	if err != nil {
		return nil, NewConfigurationError("open", "unsupported driver", err)
	}
	return newSQLJournal(ctx, config, dialect)
}

// Manager owns a journal and watches its connection health
type Manager struct {
	journal Journal
	logger  zerolog.Logger

	healthCheckInterval time.Duration

	mu        sync.RWMutex
	healthy   bool
	lastError error
}

// ManagerOption defines functional options for Manager
type ManagerOption func(*Manager)

// WithLogger sets the logger for the manager
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithHealthCheckInterval sets the health check interval
func WithHealthCheckInterval(interval time.Duration) ManagerOption {
	return func(m *Manager) {
		m.healthCheckInterval = interval
	}
}

// NewManager wraps journal
func NewManager(journal Journal, opts ...ManagerOption) *Manager {
	m := &Manager{
		journal:             journal,
		logger:              zerolog.Nop(),
		healthCheckInterval: 30 * time.Second,
		healthy:             true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Journal returns the managed journal
func (m *Manager) Journal() Journal {
	return m.journal
}

// Run pings the journal every health check interval until ctx is done
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.CheckHealth(ctx)
		}
	}
}

// CheckHealth pings the journal once and records the outcome
func (m *Manager) CheckHealth(ctx context.Context) error {
	err := m.journal.Ping(ctx)

	m.mu.Lock()
	wasHealthy := m.healthy
	m.healthy = err == nil
	m.lastError = err
	m.mu.Unlock()

	switch {
	case err != nil && wasHealthy:
		m.logger.Warn().Err(err).Msg("event journal unhealthy")
	case err == nil && !wasHealthy:
		m.logger.Info().Msg("event journal recovered")
	}
	return err
}

// Healthy reports the outcome of the last health check
func (m *Manager) Healthy() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy, m.lastError
}

// Close closes the journal
func (m *Manager) Close() error {
	return m.journal.Close()
}
