package resolve

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
	"github.com/panyam/flowres/decl"
)

// Metrics counts what resolution passes do.  Counters are safe to share
// between resolvers running concurrently.
type Metrics struct {
	set *metrics.Set
}

func NewMetrics() *Metrics {
	return &Metrics{set: metrics.NewSet()}
}

var defaultMetrics = NewMetrics()

// DefaultMetrics is used by resolvers created without WithMetrics.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}

func (m *Metrics) ConstructResolved(kind decl.Kind) {
	m.set.GetOrCreateCounter(fmt.Sprintf(`flowres_constructs_resolved_total{kind=%q}`, kind.String())).Inc()
}

func (m *Metrics) InferenceError(kind decl.Kind) {
	m.set.GetOrCreateCounter(fmt.Sprintf(`flowres_inference_errors_total{kind=%q}`, kind.String())).Inc()
}

func (m *Metrics) CallPostponed() {
	m.set.GetOrCreateCounter(`flowres_calls_postponed_total`).Inc()
}

func (m *Metrics) CallCompleted() {
	m.set.GetOrCreateCounter(`flowres_calls_completed_total`).Inc()
}

// Count returns the current value of a counter by its full name.
func (m *Metrics) Count(name string) uint64 {
	return m.set.GetOrCreateCounter(name).Get()
}

// WritePrometheus writes all counters in Prometheus text format.
func (m *Metrics) WritePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
}
