// Package di wires the tokendex node together from configuration.
package di

import (
	"errors"
	"fmt"
	"sync"
)

// ErrServiceNotFound is returned when no instance or builder is registered
var ErrServiceNotFound = errors.New("service not found")

// Container is the dependency injection container.
// It manages service registration and resolution.
type Container struct {
	mu       sync.RWMutex
	services map[string]interface{}
	builders map[string]Builder
	closers  []closer
}

// Builder is a function that creates a service instance. A builder may
// resolve other services from c.
type Builder func(c *Container) (interface{}, error)

type closer struct {
	name string
	fn   func() error
}

// New creates a new dependency injection container.
func New() *Container {
	return &Container{
		services: make(map[string]interface{}),
		builders: make(map[string]Builder),
	}
}

// Register registers a service instance.
func (c *Container) Register(name string, service interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

// RegisterBuilder registers a builder function for lazy instantiation.
func (c *Container) RegisterBuilder(name string, builder Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[name] = builder
}

// Get retrieves a service by name, building it on first use.
func (c *Container) Get(name string) (interface{}, error) {
	c.mu.RLock()
	service, exists := c.services[name]
	builder, hasBuilder := c.builders[name]
	c.mu.RUnlock()

	if exists {
		return service, nil
	}
	if !hasBuilder {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}

	// The lock is not held while building so builders can resolve their
	// own dependencies.
	service, err := builder(c)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.services[name]; ok {
		return existing, nil
	}
	c.services[name] = service
	return service, nil
}

// Resolve retrieves a service and asserts its type.
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	service, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := service.(T)
	if !ok {
		return zero, fmt.Errorf("service %s has type %T, want %T", name, service, zero)
	}
	return typed, nil
}

// MustGet retrieves a service or panics if not found.
func (c *Container) MustGet(name string) interface{} {
	service, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return service
}

// Has checks if a service is registered.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.services[name]
	if exists {
		return true
	}
	_, exists = c.builders[name]
	return exists
}

// OnClose registers fn to run when the container closes. Closers run in
// reverse registration order, so a service closes before its dependencies.
func (c *Container) OnClose(name string, fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, closer{name: name, fn: fn})
}

// Close runs every closer and drops all services.
func (c *Container) Close() error {
	c.mu.Lock()
	closers := c.closers
	c.closers = nil
	c.services = make(map[string]interface{})
	c.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].fn(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", closers[i].name, err))
		}
	}
	return errors.Join(errs...)
}

// Service names constants for type-safe access.
const (
	ServiceConfig     = "config"
	ServiceLogger     = "logger"
	ServiceStorage    = "storage.manager"
	ServiceStateDB    = "storage.state"
	ServiceStateStore = "state.store"
	ServiceJournal    = "events.journal"
	ServiceEventHub   = "events.hub"
	ServiceTxEngine   = "tx.engine"
	ServiceRPCServer  = "rpc.server"
)
