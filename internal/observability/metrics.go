package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once
	registry     = prometheus.NewRegistry()

	messagesCompiled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "msgc",
			Subsystem: "compile",
			Name:      "messages_total",
			Help:      "Concrete messages compiled.",
		},
		[]string{"class"},
	)
	fieldsCompiled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "msgc",
			Subsystem: "compile",
			Name:      "fields_total",
			Help:      "Fields laid out after common-field distribution.",
		},
		[]string{"class", "section"},
	)
	artifactBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "msgc",
			Subsystem: "emit",
			Name:      "artifact_bytes",
			Help:      "Size of each generated artifact.",
		},
		[]string{"artifact"},
	)
	compileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "msgc",
			Subsystem: "compile",
			Name:      "duration_seconds",
			Help:      "Compile phase duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"phase", "success"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		registry.MustRegister(messagesCompiled, fieldsCompiled, artifactBytes, compileDuration)
	})
}

func RecordMessage(class string, fixed, variable int) {
	RegisterMetrics()
	messagesCompiled.WithLabelValues(class).Inc()
	fieldsCompiled.WithLabelValues(class, "fixed").Add(float64(fixed))
	fieldsCompiled.WithLabelValues(class, "variable").Add(float64(variable))
}

func RecordArtifact(name string, size int) {
	RegisterMetrics()
	artifactBytes.WithLabelValues(name).Set(float64(size))
}

func RecordPhase(phase string, duration time.Duration, success bool) {
	RegisterMetrics()
	label := "false"
	if success {
		label = "true"
	}
	compileDuration.WithLabelValues(phase, label).Observe(duration.Seconds())
}

// WriteTextfile dumps every msgc collector to path in the text exposition
// format, for a node exporter textfile collector to pick up.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, registry)
}
