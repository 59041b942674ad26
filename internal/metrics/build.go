// Package metrics defines the Prometheus collectors for index builds and the preview server.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "episearch"

// Record outcome labels.
const (
	StatusIndexed = "indexed"
	StatusSkipped = "skipped"
)

// Build holds the collectors for one build run. A nil *Build records nothing.
type Build struct {
	recordsTotal  *prometheus.CounterVec
	tokens        prometheus.Gauge
	artifactBytes *prometheus.GaugeVec
	duration      prometheus.Histogram
	publishErrors *prometheus.CounterVec
	lastSuccess   prometheus.Gauge
}

// NewBuild creates build collectors and registers them on reg.
func NewBuild(reg prometheus.Registerer) *Build {
	b := &Build{
		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "build_records_total",
				Help:      "Episode records processed by the index build",
			},
			[]string{"status"}, // "indexed" / "skipped"
		),
		tokens: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_index_tokens",
			Help:      "Distinct tokens in the last built index",
		}),
		artifactBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "build_artifact_bytes",
				Help:      "Size of the last written artifact",
			},
			[]string{"sink"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Index build duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		publishErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "build_publish_errors_total",
				Help:      "Failed artifact publishes",
			},
			[]string{"sink"},
		),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful build",
		}),
	}

	reg.MustRegister(
		b.recordsTotal,
		b.tokens,
		b.artifactBytes,
		b.duration,
		b.publishErrors,
		b.lastSuccess,
	)
	return b
}

// ObserveRecords counts indexed and skipped records.
func (b *Build) ObserveRecords(indexed, skipped int) {
	if b == nil {
		return
	}
	b.recordsTotal.WithLabelValues(StatusIndexed).Add(float64(indexed))
	b.recordsTotal.WithLabelValues(StatusSkipped).Add(float64(skipped))
}

// ObserveIndex records the token count and build duration.
func (b *Build) ObserveIndex(tokens int, took time.Duration) {
	if b == nil {
		return
	}
	b.tokens.Set(float64(tokens))
	b.duration.Observe(took.Seconds())
}

// ObserveArtifact records the bytes written to a sink.
func (b *Build) ObserveArtifact(sink string, size int) {
	if b == nil {
		return
	}
	b.artifactBytes.WithLabelValues(sink).Set(float64(size))
}

// PublishFailed counts a failed publish to a sink.
func (b *Build) PublishFailed(sink string) {
	if b == nil {
		return
	}
	b.publishErrors.WithLabelValues(sink).Inc()
}

// Succeeded stamps the last successful build time.
func (b *Build) Succeeded(at time.Time) {
	if b == nil {
		return
	}
	b.lastSuccess.Set(float64(at.Unix()))
}

// WriteTextfile dumps everything gathered by g in the node_exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
