package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Validator validates target URLs
type Validator struct{}

// NewValidator creates validator
func NewValidator() *Validator {
	return &Validator{}
}

// IsValid checks that target is an absolute http or https URL
func (v *Validator) IsValid(target string) bool {
	return v.Validate(target) == nil
}

// Validate explains why target cannot be probed
func (v *Validator) Validate(target string) error {
	target = strings.TrimSpace(target)
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return fmt.Errorf("invalid URL %q: please include 'http://' or 'https://'", target)
	}
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", target, err)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", target)
	}
	return nil
}

// Normalizer normalizes candidate paths
type Normalizer struct{}

// NewNormalizer creates normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize trims surrounding whitespace, case is preserved
func (n *Normalizer) Normalize(path string) string {
	return strings.TrimSpace(path)
}
