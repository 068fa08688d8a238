package storage

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/WangYihang/site-probe/pkg/domain/repository"
	"github.com/google/uuid"
)

// ResultWriter implements repository.ResultWriter
type ResultWriter struct {
	out     io.WriteCloser
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewResultWriter creates a new result writer
func NewResultWriter(filename string) (repository.ResultWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return newResultWriter(file), nil
}

func newResultWriter(out io.WriteCloser) *ResultWriter {
	return &ResultWriter{
		out:     out,
		encoder: json.NewEncoder(out),
	}
}

type resultRecord struct {
	Path       string `json:"path"`
	URL        string `json:"url"`
	Reachable  bool   `json:"reachable"`
	Outcome    string `json:"outcome"`
	StatusCode int    `json:"status_code,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Write writes a single result
func (w *ResultWriter) Write(result entity.PathCheckResult) error {
	record := resultRecord{
		Path:      result.RequestedPath,
		URL:       result.ResolvedURL,
		Reachable: result.Reachable(),
	}
	if result.Outcome != nil {
		record.Outcome = result.Outcome.Outcome()
	}
	switch outcome := result.Outcome.(type) {
	case *entity.Success:
		record.StatusCode = outcome.StatusCode
		record.Reason = outcome.Reason
	case *entity.Failure:
		record.Error = outcome.Message
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return w.encoder.Encode(record)
}

// Flush ensures all buffered data is written
func (w *ResultWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if f, ok := w.out.(*os.File); ok {
		return f.Sync()
	}
	return nil
}

// Close closes the writer
func (w *ResultWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.out.Close()
}

// LogWriter implements repository.ProbeLogWriter
type LogWriter struct {
	out     io.WriteCloser
	encoder *json.Encoder
	runID   string
	now     func() time.Time
	mu      sync.Mutex
}

// NewLogWriter creates a probe log writer appending to filename. Records of
// one process share a run ID.
func NewLogWriter(filename string) (repository.ProbeLogWriter, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return newLogWriter(file), nil
}

func newLogWriter(out io.WriteCloser) *LogWriter {
	return &LogWriter{
		out:     out,
		encoder: json.NewEncoder(out),
		runID:   uuid.NewString(),
		now:     time.Now,
	}
}

type probeRecord struct {
	RunID           string    `json:"run_id"`
	Timestamp       time.Time `json:"timestamp"`
	URL             string    `json:"url"`
	UserAgent       string    `json:"user_agent,omitempty"`
	FollowRedirects bool      `json:"follow_redirects"`
	Outcome         string    `json:"outcome"`
	StatusCode      int       `json:"status_code,omitempty"`
	FinalURL        string    `json:"final_url,omitempty"`
	RedirectCount   int       `json:"redirect_count,omitempty"`
	BodySizeBytes   int64     `json:"body_size_bytes,omitempty"`
	ElapsedMs       int64     `json:"elapsed_ms,omitempty"`
	ErrorKind       string    `json:"error_kind,omitempty"`
	Error           string    `json:"error,omitempty"`
}

// WriteProbeLog writes a probe log record
func (w *LogWriter) WriteProbeLog(req entity.ProbeRequest, result entity.ProbeResult) error {
	record := probeRecord{
		RunID:           w.runID,
		URL:             req.URL,
		UserAgent:       req.UserAgent,
		FollowRedirects: req.FollowRedirects,
		Outcome:         result.Outcome(),
	}
	switch r := result.(type) {
	case *entity.Success:
		record.StatusCode = r.StatusCode
		record.FinalURL = r.FinalURL
		record.RedirectCount = r.RedirectCount
		record.BodySizeBytes = r.BodySizeBytes
		record.ElapsedMs = r.Elapsed.Milliseconds()
	case *entity.Failure:
		record.ErrorKind = string(r.Kind)
		record.Error = r.Message
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	record.Timestamp = w.now().UTC()
	return w.encoder.Encode(record)
}

// Close closes the writer
func (w *LogWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.out.Close()
}
