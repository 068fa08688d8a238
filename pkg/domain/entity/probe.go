package entity

import (
	"encoding/json"
	"net/http"
	"time"
)

// ProbeRequest describes a single GET issued by a prober
type ProbeRequest struct {
	URL             string
	UserAgent       string // empty means no User-Agent header is sent
	Timeout         time.Duration
	FollowRedirects bool
	// CaptureBody keeps up to MaxBodyBytes of the final body on the result
	CaptureBody  bool
	MaxBodyBytes int64
}

// ProbeResult is either *Success or *Failure
type ProbeResult interface {
	// Outcome returns "success" or the failure kind
	Outcome() string
	isProbeResult()
}

// Success is a completed HTTP exchange, whatever its status code
type Success struct {
	StatusCode    int           `json:"status_code"`
	Reason        string        `json:"reason"`
	FinalURL      string        `json:"final_url"`
	RedirectCount int           `json:"redirect_count"`
	BodySizeBytes int64         `json:"body_size_bytes"`
	Elapsed       time.Duration `json:"elapsed"`
	Headers       http.Header   `json:"headers"`
	Body          []byte        `json:"-"`
}

// Outcome implements ProbeResult
func (s *Success) Outcome() string { return "success" }

func (*Success) isProbeResult() {}

// MarshalJSON tags the encoded value with its outcome
func (s *Success) MarshalJSON() ([]byte, error) {
	type plain Success
	return json.Marshal(struct {
		Outcome string `json:"outcome"`
		*plain
	}{s.Outcome(), (*plain)(s)})
}

// SizeKB returns the body size in kilobytes
func (s *Success) SizeKB() float64 {
	return float64(s.BodySizeBytes) / 1024
}

// IsHTTPError reports whether the server answered with a status >= 400
func (s *Success) IsHTTPError() bool {
	return s.StatusCode >= http.StatusBadRequest
}

// FailureKind classifies a failed probe
type FailureKind string

const (
	FailureTimeout         FailureKind = "timeout"
	FailureConnectionError FailureKind = "connection_error"
	FailureProtocolError   FailureKind = "protocol_error"
	FailureOther           FailureKind = "other"
	// FailureHTTPErrorStatus is only produced by the robots check, the
	// prober itself never reports it
	FailureHTTPErrorStatus FailureKind = "http_error_status"
)

// Failure is a probe that did not produce an HTTP response
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	URL     string      `json:"url"`
}

// Outcome implements ProbeResult
func (f *Failure) Outcome() string { return string(f.Kind) }

func (*Failure) isProbeResult() {}

// MarshalJSON tags the encoded value with its outcome
func (f *Failure) MarshalJSON() ([]byte, error) {
	type plain Failure
	return json.Marshal(struct {
		Outcome string `json:"outcome"`
		*plain
	}{f.Outcome(), (*plain)(f)})
}

// PathCheckResult is the outcome of probing one candidate path
type PathCheckResult struct {
	RequestedPath string      `json:"requested_path"`
	ResolvedURL   string      `json:"resolved_url"`
	Outcome       ProbeResult `json:"outcome"`
}

// Reachable reports whether the path answered 200 OK
func (r PathCheckResult) Reachable() bool {
	s, ok := r.Outcome.(*Success)
	return ok && s.StatusCode == http.StatusOK
}

// PerformanceReport is a probe result with the derived page size
type PerformanceReport struct {
	URL    string      `json:"url"`
	Result ProbeResult `json:"result"`
	SizeKB float64     `json:"size_kb"`
}
