package config

import "time"

const (
	// DefaultUserAgent is sent by the performance, reachability and sitemap checks
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
	// DefaultRobotsUserAgent is sent by the robots.txt check
	DefaultRobotsUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	DefaultTimeout      = 10 * time.Second
	DefaultConcurrency  = 8
	MaxRedirects        = 10
	DefaultSitemapFile  = "potentialSitemaps.txt"
	DefaultMaxRobotsLen = 512 * 1024
)

// Config holds all configuration
type Config struct {
	Probe   ProbeConfig
	Batch   BatchConfig
	Output  OutputConfig
	Metrics MetricsConfig
}

// ProbeConfig is shared read-only by every probe
type ProbeConfig struct {
	Timeout      time.Duration
	MaxRedirects int
}

type BatchConfig struct {
	Concurrency   int
	RatePerSecond float64
}

type OutputConfig struct {
	ResultsFile  string
	ProbeLogFile string
}

type MetricsConfig struct {
	ListenAddr string
}

// New creates config
func New(timeout time.Duration, concurrency int, rate float64) Config {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return Config{
		Probe: ProbeConfig{
			Timeout:      timeout,
			MaxRedirects: MaxRedirects,
		},
		Batch: BatchConfig{
			Concurrency:   concurrency,
			RatePerSecond: rate,
		},
	}
}
