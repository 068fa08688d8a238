package storage

import (
	"github.com/WangYihang/site-probe/pkg/domain/repository"
	"github.com/bits-and-blooms/bloom/v3"
)

// BloomFilter implements repository.PathFilter using Bloom filter
type BloomFilter struct {
	filter *bloom.BloomFilter
}

// Config holds Bloom filter configuration
type Config struct {
	Size              uint
	FalsePositiveRate float64
}

// NewBloomFilter creates a new Bloom filter
func NewBloomFilter(config Config) repository.PathFilter {
	if config.Size == 0 {
		config.Size = 1
	}
	return &BloomFilter{
		filter: bloom.NewWithEstimates(config.Size, config.FalsePositiveRate),
	}
}

// Contains checks if a path has been seen before
func (bf *BloomFilter) Contains(path string) bool {
	return bf.filter.TestString(path)
}

// Add adds a path to the filter
func (bf *BloomFilter) Add(path string) {
	bf.filter.AddString(path)
}
