package tx

import (
	"errors"

	"github.com/rs/zerolog"
)

// Event describes the outcome of one successful mutating transaction
type Event interface {
	EventType() string
}

// EventSink receives events after their transaction has been committed
type EventSink interface {
	Publish(ev Event) error
}

// EventSinkFunc adapts a function to EventSink
type EventSinkFunc func(ev Event) error

// Publish calls f(ev)
func (f EventSinkFunc) Publish(ev Event) error {
	return f(ev)
}

// MultiSink fans an event out to several sinks. Every sink is called even
// when an earlier one fails.
type MultiSink []EventSink

// Publish delivers ev to every sink and joins their errors
func (m MultiSink) Publish(ev Event) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Publish(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSink writes each event as a structured log line
type LogSink struct {
	Logger zerolog.Logger
}

// Publish logs ev at info level
func (s LogSink) Publish(ev Event) error {
	s.Logger.Info().
		Str("event", ev.EventType()).
		Interface("data", ev).
		Msg("event committed")
	return nil
}

type discardSink struct{}

func (discardSink) Publish(Event) error { return nil }
