package repository

import "github.com/WangYihang/site-probe/pkg/domain/entity"

// PathFilter provides deduplication of candidate paths
type PathFilter interface {
	// Contains checks if a path has been seen before
	Contains(path string) bool
	// Add adds a path to the filter
	Add(path string)
}

// ProbeLogWriter writes one structured record per probe
type ProbeLogWriter interface {
	// WriteProbeLog writes a probe log record
	WriteProbeLog(req entity.ProbeRequest, result entity.ProbeResult) error
	// Close closes the writer
	Close() error
}

// ResultWriter writes batch check results
type ResultWriter interface {
	// Write writes a single result
	Write(result entity.PathCheckResult) error
	// Flush ensures all buffered data is written
	Flush() error
	// Close closes the writer
	Close() error
}
