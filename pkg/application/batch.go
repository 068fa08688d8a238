package application

import (
	"context"
	"sync"
	"time"

	"github.com/WangYihang/site-probe/pkg/config"
	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/WangYihang/site-probe/pkg/domain/service"
	"github.com/WangYihang/site-probe/pkg/util"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// BatchProber checks many candidate paths under one base URL
type BatchProber struct {
	prober    service.Prober
	timeout   time.Duration
	limiter   *rate.Limiter
	observers []service.ProgressObserver
}

// BatchConfig holds the batch prober configuration
type BatchConfig struct {
	// Timeout applies to every single probe
	Timeout time.Duration
	// RatePerSecond caps probe starts across all workers, 0 means unlimited
	RatePerSecond float64
}

// NewBatchProber creates a new batch prober
func NewBatchProber(prober service.Prober, cfg BatchConfig) *BatchProber {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}

	b := &BatchProber{
		prober:  prober,
		timeout: cfg.Timeout,
	}
	if cfg.RatePerSecond > 0 {
		burst := int(cfg.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
		b.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return b
}

// RegisterProgressObserver registers a progress observer
func (b *BatchProber) RegisterProgressObserver(observer service.ProgressObserver) {
	b.observers = append(b.observers, observer)
}

// ProbeAll probes every path resolved against baseURL with at most
// concurrency probes in flight. Results are in the order of paths.
//
// A failed probe is recorded in its slot and never stops the batch, and so
// is a probe the rate limiter could not admit before ctx's deadline. If ctx
// is cancelled, scheduling stops, in-flight probes are abandoned and only
// ctx.Err() is returned.
func (b *BatchProber) ProbeAll(ctx context.Context, baseURL string, paths []string, userAgent string, concurrency int) ([]entity.PathCheckResult, error) {
	if len(paths) == 0 {
		return []entity.PathCheckResult{}, nil
	}
	if concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}

	results := make([]entity.PathCheckResult, len(paths))
	tracker := newProgressTracker(len(paths), b.observers)
	tracker.start()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		i, path := i, path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			resolved := util.JoinPath(baseURL, path)

			var outcome entity.ProbeResult
			if err := b.wait(gctx); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// the limiter gave up before the deadline, the batch goes on
				outcome = &entity.Failure{
					Kind:    entity.FailureTimeout,
					Message: err.Error(),
					URL:     resolved,
				}
			} else {
				outcome = b.prober.Probe(gctx, entity.ProbeRequest{
					URL:             resolved,
					UserAgent:       userAgent,
					Timeout:         b.timeout,
					FollowRedirects: true,
				})
			}

			results[i] = entity.PathCheckResult{
				RequestedPath: path,
				ResolvedURL:   resolved,
				Outcome:       outcome,
			}
			tracker.done(results[i])
			return nil
		})
	}

	err := g.Wait()
	tracker.end()

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// wait blocks until the rate limiter admits one more probe
func (b *BatchProber) wait(ctx context.Context) error {
	if b.limiter == nil {
		return nil
	}
	return b.limiter.Wait(ctx)
}

// progressTracker counts completed probes and fans them out to observers
type progressTracker struct {
	mu        sync.Mutex
	progress  entity.BatchProgress
	observers []service.ProgressObserver
}

func newProgressTracker(total int, observers []service.ProgressObserver) *progressTracker {
	return &progressTracker{
		progress:  entity.BatchProgress{Total: total},
		observers: observers,
	}
}

func (t *progressTracker) start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress.StartTime = time.Now()
	for _, observer := range t.observers {
		observer.OnBatchStart(t.progress.Total)
	}
}

func (t *progressTracker) done(result entity.PathCheckResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress.Done++
	if _, ok := result.Outcome.(*entity.Failure); ok {
		t.progress.Failed++
	} else {
		t.progress.Succeeded++
	}
	for _, observer := range t.observers {
		observer.OnPathChecked(result, t.progress)
	}
}

func (t *progressTracker) end() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, observer := range t.observers {
		observer.OnBatchEnd(t.progress)
	}
}
