package cli

import (
	"fmt"
	"time"

	"github.com/WangYihang/site-probe/pkg/config"
	"github.com/WangYihang/site-probe/pkg/domain"
)

// Options holds the flags shared by every command
type Options struct {
	UserAgent   string `short:"u" long:"user-agent" description:"Custom User-Agent string. If not provided, a default browser user agent is used (reach sends none)"`
	Timeout     int    `long:"timeout" description:"Per-request timeout in seconds" default:"10"`
	Insecure    bool   `long:"insecure" description:"Skip TLS certificate verification"`
	JSON        bool   `long:"json" description:"Print results as JSON instead of a text report"`
	ProbeLog    string `long:"probe-log" description:"Write one JSON record per probe to this file"`
	MetricsAddr string `long:"metrics-addr" description:"Serve Prometheus metrics on this address while running, e.g. :2112"`
	Version     bool   `short:"V" long:"version" description:"Print version information and exit"`

	// Real timeout duration (not parsed from flags directly)
	TimeoutDuration time.Duration
}

// Validate validates the shared options
func (o *Options) Validate() error {
	o.TimeoutDuration = time.Duration(o.Timeout) * time.Second
	if o.TimeoutDuration <= 0 {
		return fmt.Errorf("timeout must be > 0, got %d", o.Timeout)
	}
	return nil
}

type targetArgs struct {
	URL string `positional-arg-name:"url" description:"URL including http:// or https://"`
}

func (t targetArgs) validate() error {
	return domain.NewValidator().Validate(t.URL)
}

// SitemapOptions holds the flags of the sitemaps command
type SitemapOptions struct {
	SitemapFile string  `short:"f" long:"sitemap-file" description:"File with candidate sitemap paths, one per line (- for stdin), defaults to potentialSitemaps.txt"`
	Concurrency int     `short:"c" long:"concurrency" description:"Number of concurrent probes" default:"8"`
	Rate        float64 `long:"rate" description:"Maximum probes started per second, 0 for no limit" default:"0"`
	Dedup       bool    `long:"dedup" description:"Skip repeated paths in the sitemap file"`
	Output      string  `short:"o" long:"output" description:"Also write results to this JSONL file"`
	Dashboard   bool    `long:"dashboard" description:"Show interactive TUI dashboard"`
	NoProgress  bool    `long:"no-progress" description:"Do not show a progress bar"`
}

// Validate validates the sitemap options
func (s *SitemapOptions) Validate() error {
	if s.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0, got %d", s.Concurrency)
	}
	if s.Rate < 0 {
		return fmt.Errorf("rate must be >= 0, got %f", s.Rate)
	}
	if s.SitemapFile == "" {
		s.SitemapFile = config.DefaultSitemapFile
	}
	return nil
}
