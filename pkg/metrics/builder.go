package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BuilderMetrics records builder session activity and compatibility lookups.
type BuilderMetrics struct {
	slotOps       *prometheus.CounterVec
	compatLookups *prometheus.HistogramVec
	publishes     prometheus.Counter
}

// NewBuilderMetrics registers the builder metrics on the provided registerer.
func NewBuilderMetrics(reg prometheus.Registerer) *BuilderMetrics {
	if reg == nil {
		return &BuilderMetrics{}
	}
	slotOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "builder_slot_ops_total",
		Help: "Builder slot mutations by operation.",
	}, []string{"op"})
	compatLookups := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "compat_lookup_duration_seconds",
		Help:    "Duration of compatibility set computations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"pair"})
	publishes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "builds_published_total",
		Help: "Builder sessions published as community builds.",
	})
	reg.MustRegister(slotOps, compatLookups, publishes)
	return &BuilderMetrics{
		slotOps:       slotOps,
		compatLookups: compatLookups,
		publishes:     publishes,
	}
}

// IncSlotOp increments the counter for the named slot operation.
func (b *BuilderMetrics) IncSlotOp(op string) {
	if b == nil || b.slotOps == nil {
		return
	}
	b.slotOps.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObserveCompatLookup records the duration of one compatibility computation.
func (b *BuilderMetrics) ObserveCompatLookup(pair string, duration time.Duration) {
	if b == nil || b.compatLookups == nil {
		return
	}
	b.compatLookups.WithLabelValues(normalizeLabel(pair)).Observe(duration.Seconds())
}

// IncPublish increments the published-builds counter.
func (b *BuilderMetrics) IncPublish() {
	if b == nil || b.publishes == nil {
		return
	}
	b.publishes.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
