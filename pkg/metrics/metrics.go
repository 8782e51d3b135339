// Package metrics records batch parse statistics on a private Prometheus registry and writes them in
// the node_exporter textfile format.
package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nikogura/resume-parser/pkg/resume"
)

// Parse outcome label values.
const (
	StatusSuccess     = "success"
	StatusFailed      = "failed"
	StatusIngestError = "ingest_error"
)

// BatchMetrics is safe for concurrent use by batch workers.
type BatchMetrics struct {
	registry *prometheus.Registry

	filesTotal      *prometheus.CounterVec
	parseDuration   *prometheus.HistogramVec
	confidence      prometheus.Histogram
	sectionsTotal   *prometheus.CounterVec
	warningsTotal   *prometheus.CounterVec
	inFlight        prometheus.Gauge
	lastRunComplete prometheus.Gauge
}

// NewBatchMetrics builds the collectors for one batch run.
func NewBatchMetrics(batchID string) (m *BatchMetrics) {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"batch_id": batchID}

	filesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "resume_parser",
			Subsystem:   "batch",
			Name:        "files_total",
			Help:        "Files processed by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"status", "format"},
	)
	parseDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "resume_parser",
			Subsystem:   "batch",
			Name:        "file_duration_seconds",
			Help:        "Ingest plus parse duration per file.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			ConstLabels: constLabels,
		},
		[]string{"status"},
	)
	confidence := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "resume_parser",
			Subsystem:   "batch",
			Name:        "overall_confidence",
			Help:        "Overall confidence of successful parses.",
			Buckets:     []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
			ConstLabels: constLabels,
		},
	)
	sectionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "resume_parser",
			Subsystem:   "batch",
			Name:        "sections_detected_total",
			Help:        "Detected sections by type.",
			ConstLabels: constLabels,
		},
		[]string{"type"},
	)
	warningsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "resume_parser",
			Subsystem:   "batch",
			Name:        "warnings_total",
			Help:        "Warnings attached to successful parses, by kind.",
			ConstLabels: constLabels,
		},
		[]string{"kind"},
	)
	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "resume_parser",
			Subsystem:   "batch",
			Name:        "files_in_flight",
			Help:        "Files currently being ingested or parsed.",
			ConstLabels: constLabels,
		},
	)
	lastRunComplete := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "resume_parser",
			Subsystem:   "batch",
			Name:        "last_run_completed_timestamp_seconds",
			Help:        "Unix time the batch finished.",
			ConstLabels: constLabels,
		},
	)

	registry.MustRegister(filesTotal, parseDuration, confidence, sectionsTotal, warningsTotal, inFlight, lastRunComplete)

	m = &BatchMetrics{
		registry:        registry,
		filesTotal:      filesTotal,
		parseDuration:   parseDuration,
		confidence:      confidence,
		sectionsTotal:   sectionsTotal,
		warningsTotal:   warningsTotal,
		inFlight:        inFlight,
		lastRunComplete: lastRunComplete,
	}
	return m
}

// StartFile marks a file as in flight.
func (m *BatchMetrics) StartFile() {
	m.inFlight.Inc()
}

// FinishFile records the outcome of one file. A nil result with an error means ingest failed before
// parsing.
func (m *BatchMetrics) FinishFile(format string, duration time.Duration, result *resume.Result, err error) {
	m.inFlight.Dec()

	status := StatusIngestError
	switch {
	case err == nil && result != nil && result.Success:
		status = StatusSuccess
	case result != nil && !result.Success:
		status = StatusFailed
	}

	m.filesTotal.WithLabelValues(status, format).Inc()
	m.parseDuration.WithLabelValues(status).Observe(duration.Seconds())

	if status != StatusSuccess || result.Resume == nil {
		return
	}

	m.confidence.Observe(result.Resume.Confidence.Overall)
	for _, section := range result.Resume.Sections {
		m.sectionsTotal.WithLabelValues(string(section.Type)).Inc()
	}
	for _, warning := range result.Resume.Warnings {
		m.warningsTotal.WithLabelValues(WarningKind(warning)).Inc()
	}
}

// Complete stamps the end of the run.
func (m *BatchMetrics) Complete(at time.Time) {
	m.lastRunComplete.Set(float64(at.Unix()))
}

// WriteTextfile writes every collector to path, replacing it atomically.
func (m *BatchMetrics) WriteTextfile(path string) (err error) {
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create metrics directory: %s", dir)
		return err
	}

	err = prometheus.WriteToTextfile(path, m.registry)
	if err != nil {
		err = errors.Wrapf(err, "failed to write metrics textfile: %s", path)
		return err
	}

	return err
}
