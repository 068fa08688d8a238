package application

import (
	"context"
	"fmt"
	"time"

	"github.com/WangYihang/site-probe/pkg/config"
	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/WangYihang/site-probe/pkg/domain/service"
	"github.com/WangYihang/site-probe/pkg/robots"
	"github.com/WangYihang/site-probe/pkg/util"
)

// Diagnostics exposes the site checks as structured results
type Diagnostics struct {
	prober      service.Prober
	parser      service.RobotsParser
	batch       *BatchProber
	timeout     time.Duration
	concurrency int
}

// NewDiagnostics creates the diagnostics facade
func NewDiagnostics(cfg config.Config, prober service.Prober, parser service.RobotsParser, batch *BatchProber) *Diagnostics {
	timeout := cfg.Probe.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return &Diagnostics{
		prober:      prober,
		parser:      parser,
		batch:       batch,
		timeout:     timeout,
		concurrency: cfg.Batch.Concurrency,
	}
}

// AnalyzePerformance fetches url once, following redirects. An empty
// userAgent falls back to config.DefaultUserAgent.
func (d *Diagnostics) AnalyzePerformance(ctx context.Context, url, userAgent string) entity.PerformanceReport {
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	result := d.prober.Probe(ctx, entity.ProbeRequest{
		URL:             url,
		UserAgent:       userAgent,
		Timeout:         d.timeout,
		FollowRedirects: true,
	})

	report := entity.PerformanceReport{URL: url, Result: result}
	if s, ok := result.(*entity.Success); ok {
		report.SizeKB = s.SizeKB()
	}
	return report
}

// CheckReachability fetches url once, following redirects. An empty
// userAgent sends no User-Agent header at all.
func (d *Diagnostics) CheckReachability(ctx context.Context, url, userAgent string) entity.ProbeResult {
	return d.prober.Probe(ctx, entity.ProbeRequest{
		URL:             url,
		UserAgent:       userAgent,
		Timeout:         d.timeout,
		FollowRedirects: true,
	})
}

// CheckRobots fetches and parses baseURL/robots.txt. A transport failure or
// a status >= 400 yields a report carrying only a failure. An empty
// userAgent falls back to config.DefaultRobotsUserAgent.
func (d *Diagnostics) CheckRobots(ctx context.Context, baseURL, userAgent string) entity.RobotsReport {
	if userAgent == "" {
		userAgent = config.DefaultRobotsUserAgent
	}

	robotsURL := util.RobotsURL(baseURL)
	report := entity.RobotsReport{URL: robotsURL}

	result := d.prober.Probe(ctx, entity.ProbeRequest{
		URL:             robotsURL,
		UserAgent:       userAgent,
		Timeout:         d.timeout,
		FollowRedirects: true,
		CaptureBody:     true,
		MaxBodyBytes:    config.DefaultMaxRobotsLen,
	})

	switch r := result.(type) {
	case *entity.Failure:
		report.Failure = &entity.RobotsFailure{
			Kind:    r.Kind,
			Message: fmt.Sprintf("Request error: %s", r.Message),
		}
		return report
	case *entity.Success:
		if r.IsHTTPError() {
			report.Failure = &entity.RobotsFailure{
				Kind:       entity.FailureHTTPErrorStatus,
				StatusCode: r.StatusCode,
				Message:    fmt.Sprintf("HTTP error: %d %s for url '%s'", r.StatusCode, r.Reason, r.FinalURL),
			}
			return report
		}
		report.Document = d.parser.Parse(string(r.Body))
		if verdicts, err := robots.Evaluate(r.Body, userAgent, []string{"/"}); err == nil {
			report.Verdicts = verdicts
		}
	}
	return report
}

// CheckSitemapPaths probes every candidate path under baseURL, see
// BatchProber.ProbeAll. An empty userAgent falls back to
// config.DefaultUserAgent.
func (d *Diagnostics) CheckSitemapPaths(ctx context.Context, baseURL string, paths []string, userAgent string) ([]entity.PathCheckResult, error) {
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	return d.batch.ProbeAll(ctx, baseURL, paths, userAgent, d.concurrency)
}
