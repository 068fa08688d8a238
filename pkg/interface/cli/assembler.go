package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/WangYihang/site-probe/pkg/application"
	"github.com/WangYihang/site-probe/pkg/config"
	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/WangYihang/site-probe/pkg/domain/repository"
	"github.com/WangYihang/site-probe/pkg/domain/service"
	probehttp "github.com/WangYihang/site-probe/pkg/infrastructure/http"
	"github.com/WangYihang/site-probe/pkg/infrastructure/metrics"
	"github.com/WangYihang/site-probe/pkg/infrastructure/storage"
	"github.com/WangYihang/site-probe/pkg/input"
	"github.com/WangYihang/site-probe/pkg/robots"
)

// Assembler assembles all components for the application
type Assembler struct {
	config   config.Config
	insecure bool
	closers  []func() error
}

// NewAssembler creates a new assembler
func NewAssembler(options *Options, sitemap *SitemapOptions) *Assembler {
	concurrency, rate := config.DefaultConcurrency, 0.0
	if sitemap != nil {
		concurrency, rate = sitemap.Concurrency, sitemap.Rate
	}

	cfg := config.New(options.TimeoutDuration, concurrency, rate)
	cfg.Output.ProbeLogFile = options.ProbeLog
	cfg.Metrics.ListenAddr = options.MetricsAddr
	if sitemap != nil {
		cfg.Output.ResultsFile = sitemap.Output
	}

	return &Assembler{config: cfg, insecure: options.Insecure}
}

// AssembleDiagnostics assembles the diagnostics facade with all dependencies
func (a *Assembler) AssembleDiagnostics(ctx context.Context) (*application.Diagnostics, *application.BatchProber, error) {
	var prober service.Prober = probehttp.NewProber(probehttp.Config{
		MaxRedirects: a.config.Probe.MaxRedirects,
		Insecure:     a.insecure,
	})

	if addr := a.config.Metrics.ListenAddr; addr != "" {
		collector := metrics.NewCollector()
		prober = metrics.NewInstrumentedProber(prober, collector)
		go func() {
			if err := metrics.Serve(ctx, addr, collector.Registry()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: metrics exporter stopped: %v\n", err)
			}
		}()
	}

	if path := a.config.Output.ProbeLogFile; path != "" {
		logWriter, err := storage.NewLogWriter(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create probe log: %w", err)
		}
		a.closers = append(a.closers, logWriter.Close)
		prober = application.WithProbeLog(prober, logWriter)
	}

	batch := application.NewBatchProber(prober, application.BatchConfig{
		Timeout:       a.config.Probe.Timeout,
		RatePerSecond: a.config.Batch.RatePerSecond,
	})

	return application.NewDiagnostics(a.config, prober, robots.NewParser(), batch), batch, nil
}

// LoadPaths loads candidate paths, optionally dropping repeats
func (a *Assembler) LoadPaths(filePath string, dedup bool) ([]string, error) {
	var filter repository.PathFilter
	if dedup {
		filter = storage.NewBloomFilter(storage.Config{
			Size:              100000,
			FalsePositiveRate: 0.0001,
		})
	}
	return input.NewLoader(filter).Load(filePath)
}

// WriteResults writes batch results to the configured results file, if any
func (a *Assembler) WriteResults(results []entity.PathCheckResult) error {
	if a.config.Output.ResultsFile == "" {
		return nil
	}

	writer, err := storage.NewResultWriter(a.config.Output.ResultsFile)
	if err != nil {
		return fmt.Errorf("failed to create result writer: %w", err)
	}
	defer writer.Close()

	for _, result := range results {
		if err := writer.Write(result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return writer.Flush()
}

// Close releases files opened while assembling
func (a *Assembler) Close() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close: %v\n", err)
		}
	}
	a.closers = nil
}
