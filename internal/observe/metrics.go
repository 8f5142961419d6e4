// Package observe provides observability primitives for voxroll:
// OpenTelemetry metrics with a Prometheus exporter bridge so the standard
// /metrics endpoint keeps working.
//
// A package-level default [Metrics] instance ([DefaultMetrics]) is provided
// for convenience; tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all voxroll metrics.
const meterName = "github.com/MrWong99/voxroll"

// Metrics holds all OpenTelemetry metric instruments for the bot.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// SynthesisDuration tracks end-to-end speech synthesis latency
	// (engine run + WAV readback).
	SynthesisDuration metric.Float64Histogram

	// MessagesSpoken counts messages played into a voice channel. Use with
	// attribute: attribute.String("mode", ...).
	MessagesSpoken metric.Int64Counter

	// MessagesRejected counts messages dropped before playback. Use with
	// attribute: attribute.String("reason", ...) — "length", "duration",
	// "malformed_wav", "synthesis".
	MessagesRejected metric.Int64Counter

	// RollChanges counts voice reroll commands.
	RollChanges metric.Int64Counter

	// ActiveVoiceConnections tracks the number of voice channels the bot
	// is currently connected to.
	ActiveVoiceConnections metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// external-process synthesis runs.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.SynthesisDuration, err = m.Float64Histogram("voxroll.synthesis.duration",
		metric.WithDescription("Latency of speech synthesis via the external engine."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.MessagesSpoken, err = m.Int64Counter("voxroll.messages.spoken",
		metric.WithDescription("Total messages played into voice channels by voice mode."),
	); err != nil {
		return nil, err
	}
	if met.MessagesRejected, err = m.Int64Counter("voxroll.messages.rejected",
		metric.WithDescription("Total messages dropped before playback by reason."),
	); err != nil {
		return nil, err
	}
	if met.RollChanges, err = m.Int64Counter("voxroll.roll.changes",
		metric.WithDescription("Total voice reroll commands."),
	); err != nil {
		return nil, err
	}
	if met.ActiveVoiceConnections, err = m.Int64UpDownCounter("voxroll.voice.connections",
		metric.WithDescription("Number of voice channels currently joined."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it
// on first call using [otel.GetMeterProvider]. Subsequent calls return the
// same pointer. Panics if instrument creation fails (should not happen with
// the global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordRejection increments the rejected-messages counter with the
// standard reason attribute.
func (m *Metrics) RecordRejection(ctx context.Context, reason string) {
	m.MessagesRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordSpoken increments the spoken-messages counter with the voice mode
// attribute.
func (m *Metrics) RecordSpoken(ctx context.Context, mode string) {
	m.MessagesSpoken.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
}
