package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestHistogramRendersCumulativeBucketsOnce(t *testing.T) {
	h := newHistogram([]float64{100, 250, 500})
	h.Observe(50)

	var buf bytes.Buffer
	writeHistogram(&buf, "test_duration_ms", "test histogram", h.Snapshot())
	out := buf.String()

	// One observation below every bound: each bucket reports exactly 1.
	for _, line := range []string{
		`test_duration_ms_bucket{le="100"} 1`,
		`test_duration_ms_bucket{le="250"} 1`,
		`test_duration_ms_bucket{le="500"} 1`,
		`test_duration_ms_bucket{le="+Inf"} 1`,
		`test_duration_ms_count 1`,
	} {
		if !strings.Contains(out, line) {
			t.Fatalf("missing line %q in output:\n%s", line, out)
		}
	}
}

func TestHistogramBucketAssignment(t *testing.T) {
	h := newHistogram([]float64{100, 250, 500})
	h.Observe(150)
	h.Observe(400)

	snap := h.Snapshot()
	if snap.counts[0] != 0 {
		t.Fatalf("le=100 should be 0, got %d", snap.counts[0])
	}
	if snap.counts[1] != 1 {
		t.Fatalf("le=250 should be 1, got %d", snap.counts[1])
	}
	if snap.counts[2] != 2 {
		t.Fatalf("le=500 should be 2, got %d", snap.counts[2])
	}
	if snap.count != 2 {
		t.Fatalf("count should be 2, got %d", snap.count)
	}
}
