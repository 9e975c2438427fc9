// Package telemetry forwards product events (logins, registrations,
// two-factor changes) to whatever analytics provider is configured. Callers
// fire and forget: a sink must never panic and must be a cheap no-op when
// no provider is wired.
package telemetry

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Sink receives named events with free-form properties.
type Sink interface {
	Track(event string, props map[string]any)
}

// Noop discards every event. It is the sink of record when telemetry is
// switched off.
type Noop struct{}

func (Noop) Track(string, map[string]any) {}

// LogSink writes events to the structured log at debug level.
type LogSink struct {
	Log *slog.Logger
}

func (s LogSink) Track(event string, props map[string]any) {
	if s.Log == nil {
		return
	}
	s.Log.Debug("track", slog.String("event", event), slog.Any("props", props))
}

// PromSink counts events by name in a Prometheus counter. Properties are
// deliberately not turned into labels; free-form keys would blow up
// cardinality.
type PromSink struct {
	events *prometheus.CounterVec
}

// NewPromSink registers the event counter with reg and returns the sink.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_events_total",
			Help: "Total number of tracked directory events.",
		},
		[]string{"event"},
	)
	if err := reg.Register(events); err != nil {
		return nil, err
	}
	return &PromSink{events: events}, nil
}

func (s *PromSink) Track(event string, _ map[string]any) {
	s.events.WithLabelValues(event).Inc()
}

// Multi fans an event out to several sinks.
type Multi []Sink

func (m Multi) Track(event string, props map[string]any) {
	for _, s := range m {
		s.Track(event, props)
	}
}
