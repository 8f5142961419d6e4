package observe

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

// collect gathers all metric data from the reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

// findMetric searches for a metric by name across all scope metrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetrics_CreatesWithoutError(t *testing.T) {
	m, _ := newTestMetrics(t)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestSynthesisDurationHistogram(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.SynthesisDuration.Record(ctx, 0.123)
	m.SynthesisDuration.Record(ctx, 1.456)

	rm := collect(t, reader)
	met := findMetric(rm, "voxroll.synthesis.duration")
	if met == nil {
		t.Fatal("metric voxroll.synthesis.duration not found")
	}
	hist, ok := met.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("metric is not a histogram")
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("histogram has no data points")
	}
	if got := hist.DataPoints[0].Count; got != 2 {
		t.Errorf("histogram count = %d, want 2", got)
	}
}

func TestRecordRejection_AttachesReason(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordRejection(ctx, "length")
	m.RecordRejection(ctx, "length")
	m.RecordRejection(ctx, "duration")

	rm := collect(t, reader)
	met := findMetric(rm, "voxroll.messages.rejected")
	if met == nil {
		t.Fatal("metric voxroll.messages.rejected not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("metric is not a sum")
	}

	byReason := map[string]int64{}
	for _, dp := range sum.DataPoints {
		if reason, ok := dp.Attributes.Value(attribute.Key("reason")); ok {
			byReason[reason.AsString()] = dp.Value
		}
	}
	if byReason["length"] != 2 {
		t.Errorf("length rejections = %d, want 2", byReason["length"])
	}
	if byReason["duration"] != 1 {
		t.Errorf("duration rejections = %d, want 1", byReason["duration"])
	}
}

func TestRecordSpoken_AttachesMode(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordSpoken(ctx, "generated")

	rm := collect(t, reader)
	met := findMetric(rm, "voxroll.messages.spoken")
	if met == nil {
		t.Fatal("metric voxroll.messages.spoken not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("metric is not a sum")
	}
	if len(sum.DataPoints) != 1 {
		t.Fatalf("got %d data points, want 1", len(sum.DataPoints))
	}
	dp := sum.DataPoints[0]
	if dp.Value != 1 {
		t.Errorf("spoken count = %d, want 1", dp.Value)
	}
	if mode, ok := dp.Attributes.Value(attribute.Key("mode")); !ok || mode.AsString() != "generated" {
		t.Errorf("mode attribute = %v, want %q", mode, "generated")
	}
}

func TestActiveVoiceConnections_UpDown(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.ActiveVoiceConnections.Add(ctx, 1)
	m.ActiveVoiceConnections.Add(ctx, 1)
	m.ActiveVoiceConnections.Add(ctx, -1)

	rm := collect(t, reader)
	met := findMetric(rm, "voxroll.voice.connections")
	if met == nil {
		t.Fatal("metric voxroll.voice.connections not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("metric is not a sum")
	}
	if len(sum.DataPoints) != 1 {
		t.Fatalf("got %d data points, want 1", len(sum.DataPoints))
	}
	if got := sum.DataPoints[0].Value; got != 1 {
		t.Errorf("connections = %d, want 1", got)
	}
}
