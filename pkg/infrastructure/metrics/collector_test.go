package metrics

import (
	"context"
	"testing"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type stubProber struct {
	result entity.ProbeResult
}

func (s stubProber) Probe(ctx context.Context, req entity.ProbeRequest) entity.ProbeResult {
	return s.result
}

func TestInstrumentedProber_CountsOutcomes(t *testing.T) {
	c := NewCollector()

	ok := NewInstrumentedProber(stubProber{&entity.Success{StatusCode: 200}}, c)
	notFound := NewInstrumentedProber(stubProber{&entity.Success{StatusCode: 404}}, c)
	failed := NewInstrumentedProber(stubProber{&entity.Failure{Kind: entity.FailureTimeout, Message: "slow"}}, c)

	req := entity.ProbeRequest{URL: "http://example.com"}
	ok.Probe(context.Background(), req)
	ok.Probe(context.Background(), req)
	notFound.Probe(context.Background(), req)
	failed.Probe(context.Background(), req)

	if got := testutil.ToFloat64(c.probes.WithLabelValues("success")); got != 3 {
		t.Errorf("success probes = %v, want 3", got)
	}
	if got := testutil.ToFloat64(c.probes.WithLabelValues("timeout")); got != 1 {
		t.Errorf("timeout probes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.statuses.WithLabelValues("2xx")); got != 2 {
		t.Errorf("2xx = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.statuses.WithLabelValues("4xx")); got != 1 {
		t.Errorf("4xx = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.inflight); got != 0 {
		t.Errorf("inflight = %v, want 0 after all probes return", got)
	}
	if got := testutil.CollectAndCount(c.duration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestStatusClass(t *testing.T) {
	testCases := map[int]string{
		200: "2xx",
		301: "3xx",
		404: "4xx",
		503: "5xx",
		0:   "other",
		999: "other",
	}
	for code, want := range testCases {
		if got := statusClass(code); got != want {
			t.Errorf("statusClass(%d) = %s, want %s", code, got, want)
		}
	}
}
