// Package trmetrics exposes the trie engine's Prometheus instrumentation:
// insert latency, rehash fan-out, and proof verification outcomes.
package trmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the registered metrics. A nil *Recorder is valid and
// every method is a no-op, so callers that don't want metrics can leave
// Config.Metrics unset.
type Recorder struct {
	insertDuration prometheus.Histogram
	rehashNodes    prometheus.Counter
	verifyTotal    *prometheus.CounterVec
}

// NewRecorder creates and registers a Recorder against reg. Pass
// prometheus.NewRegistry() in tests to avoid colliding with the global
// default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		insertDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trie_insert_duration_seconds",
			Help:    "Latency of Insert/Update calls.",
			Buckets: prometheus.DefBuckets,
		}),
		rehashNodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trie_rehash_nodes_total",
			Help: "Total number of nodes rewritten during spine rehashing.",
		}),
		verifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trie_proof_verify_total",
			Help: "Total number of proof verifications by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(r.insertDuration, r.rehashNodes, r.verifyTotal)
	return r
}

// ObserveInsert records the wall-clock duration of an Insert or Update.
func (r *Recorder) ObserveInsert(d time.Duration) {
	if r == nil {
		return
	}
	r.insertDuration.Observe(d.Seconds())
}

// ObserveRehash adds the number of nodes rewritten in one rehash pass.
func (r *Recorder) ObserveRehash(nodes int) {
	if r == nil {
		return
	}
	r.rehashNodes.Add(float64(nodes))
}

// ObserveVerify records a proof verification outcome.
func (r *Recorder) ObserveVerify(ok bool) {
	if r == nil {
		return
	}
	result := "accept"
	if !ok {
		result = "reject"
	}
	r.verifyTotal.WithLabelValues(result).Inc()
}
