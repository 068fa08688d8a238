package application

import (
	"context"
	"fmt"
	"os"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/WangYihang/site-probe/pkg/domain/repository"
	"github.com/WangYihang/site-probe/pkg/domain/service"
)

type loggingProber struct {
	next   service.Prober
	writer repository.ProbeLogWriter
}

// WithProbeLog writes a log record for every probe made through next
func WithProbeLog(next service.Prober, writer repository.ProbeLogWriter) service.Prober {
	return &loggingProber{next: next, writer: writer}
}

// Probe implements service.Prober
func (p *loggingProber) Probe(ctx context.Context, req entity.ProbeRequest) entity.ProbeResult {
	result := p.next.Probe(ctx, req)
	if err := p.writer.WriteProbeLog(req, result); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write probe log: %v\n", err)
	}
	return result
}
