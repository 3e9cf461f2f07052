package trmetrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRecorderRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveInsert(5 * time.Millisecond)
	r.ObserveRehash(3)
	r.ObserveVerify(true)
	r.ObserveVerify(false)

	if got := testutil.ToFloat64(r.rehashNodes); got != 3 {
		t.Fatalf("rehashNodes = %v, want 3", got)
	}
	if got := testutil.ToFloat64(r.verifyTotal.WithLabelValues("accept")); got != 1 {
		t.Fatalf("verifyTotal{accept} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.verifyTotal.WithLabelValues("reject")); got != 1 {
		t.Fatalf("verifyTotal{reject} = %v, want 1", got)
	}
}

func TestNilRecorderIsNoOp(t *testing.T) {
	var r *Recorder
	r.ObserveInsert(time.Second)
	r.ObserveRehash(10)
	r.ObserveVerify(true)
}
