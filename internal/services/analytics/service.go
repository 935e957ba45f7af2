// Package analytics forwards usage events to a fire-and-forget sink.
package analytics

import (
	"context"
	"log"
	"sort"
	"strings"
)

// Event names emitted by the estimator.
const (
	EventCalculationCompleted = "calculation_completed"
	EventFeatureToggle        = "feature_toggle"
)

// Properties are the free-form attributes attached to an event.
type Properties map[string]interface{}

// Sink accepts events. Callers log and drop any error it returns.
type Sink interface {
	Track(ctx context.Context, name string, props Properties) error
}

// LogSink writes events to the process log.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

func (s *LogSink) Track(ctx context.Context, name string, props Properties) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(stringify(props[k]))
	}
	log.Printf("event %s%s", name, b.String())
	return nil
}

// Multi fans an event out to every sink and returns the first error.
type Multi []Sink

func (m Multi) Track(ctx context.Context, name string, props Properties) error {
	var first error
	for _, s := range m {
		if err := s.Track(ctx, name, props); err != nil && first == nil {
			first = err
		}
	}
	return first
}
