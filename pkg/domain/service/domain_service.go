package service

import (
	"context"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
)

// Prober issues a single HTTP probe
type Prober interface {
	// Probe never returns nil; transport failures come back as *entity.Failure
	Probe(ctx context.Context, req entity.ProbeRequest) entity.ProbeResult
}

// RobotsParser turns robots.txt text into a document
type RobotsParser interface {
	// Parse never fails; unrecognised lines are skipped
	Parse(raw string) *entity.RobotsDocument
}

// ProgressObserver observes a batch check as it runs
type ProgressObserver interface {
	// OnBatchStart is called once before any probe is dispatched
	OnBatchStart(total int)
	// OnPathChecked is called from worker goroutines as each probe completes
	OnPathChecked(result entity.PathCheckResult, progress entity.BatchProgress)
	// OnBatchEnd is called once after the last probe, or on cancellation
	OnBatchEnd(progress entity.BatchProgress)
}
