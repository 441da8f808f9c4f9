// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Run holds the counters for a single generation run. Counters live on a
// private registry rather than promauto globals so a fresh Run can be built
// per invocation (and per test) without duplicate-registration panics.
type Run struct {
	registry *prometheus.Registry

	rowsGenerated *prometheus.CounterVec
	defects       *prometheus.CounterVec
	filesWritten  prometheus.Counter
}

func NewRun() *Run {
	r := &Run{registry: prometheus.NewRegistry()}

	r.rowsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generator_rows_generated_total",
			Help: "Total number of data rows generated per entity",
		},
		[]string{"entity"},
	)
	r.defects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generator_defects_injected_total",
			Help: "Total number of defects injected per defect class",
		},
		[]string{"kind"},
	)
	r.filesWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "generator_files_written_total",
			Help: "Total number of batch files handed to the sink",
		},
	)

	r.registry.MustRegister(r.rowsGenerated, r.defects, r.filesWritten)
	return r
}

func (r *Run) AddRows(entity string, n int) {
	r.rowsGenerated.WithLabelValues(entity).Add(float64(n))
}

func (r *Run) AddDefect(kind string) {
	r.defects.WithLabelValues(kind).Inc()
}

func (r *Run) AddFile() {
	r.filesWritten.Inc()
}

// Snapshot is the gathered state of a finished run, used by the completion
// summary.
type Snapshot struct {
	Rows    map[string]int
	Defects map[string]int
	Files   int
}

// Snapshot gathers the registry. A one-shot process reads its counters back
// at exit instead of serving them over /metrics.
func (r *Run) Snapshot() Snapshot {
	snap := Snapshot{
		Rows:    map[string]int{},
		Defects: map[string]int{},
	}

	families, err := r.registry.Gather()
	if err != nil {
		return snap
	}

	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			value := int(m.GetCounter().GetValue())
			switch fam.GetName() {
			case "generator_rows_generated_total":
				snap.Rows[labelValue(m, "entity")] = value
			case "generator_defects_injected_total":
				snap.Defects[labelValue(m, "kind")] = value
			case "generator_files_written_total":
				snap.Files = value
			}
		}
	}
	return snap
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}
