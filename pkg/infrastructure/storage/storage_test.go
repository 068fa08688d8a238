package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
)

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

func TestBloomFilter_Basic(t *testing.T) {
	filter := NewBloomFilter(Config{
		Size:              1000,
		FalsePositiveRate: 0.01,
	})

	testPath := "/sitemap.xml"

	if filter.Contains(testPath) {
		t.Errorf("Filter should not contain %s initially", testPath)
	}

	filter.Add(testPath)

	if !filter.Contains(testPath) {
		t.Errorf("Filter should contain %s after Add", testPath)
	}
}

func TestBloomFilter_ZeroSize(t *testing.T) {
	filter := NewBloomFilter(Config{FalsePositiveRate: 0.01})
	filter.Add("a")
	if !filter.Contains("a") {
		t.Error("Filter should contain a after Add")
	}
}

func TestResultWriter_Write(t *testing.T) {
	buf := &bytes.Buffer{}
	w := newResultWriter(nopCloser{buf})

	results := []entity.PathCheckResult{
		{
			RequestedPath: "sitemap.xml",
			ResolvedURL:   "https://example.com/sitemap.xml",
			Outcome:       &entity.Success{StatusCode: 200, Reason: "OK"},
		},
		{
			RequestedPath: "missing.xml",
			ResolvedURL:   "https://example.com/missing.xml",
			Outcome:       &entity.Failure{Kind: entity.FailureTimeout, Message: "deadline exceeded"},
		},
	}
	for _, r := range results {
		if err := w.Write(r); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first, second resultRecord
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !first.Reachable || first.StatusCode != 200 || first.Outcome != "success" {
		t.Errorf("first record = %+v", first)
	}
	if second.Reachable || second.Outcome != "timeout" || second.Error != "deadline exceeded" {
		t.Errorf("second record = %+v", second)
	}
}

func TestResultWriter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")

	w, err := NewResultWriter(path)
	if err != nil {
		t.Fatalf("NewResultWriter failed: %v", err)
	}
	if err := w.Write(entity.PathCheckResult{RequestedPath: "a", Outcome: &entity.Success{StatusCode: 404}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `"status_code":404`) {
		t.Errorf("file content = %s", data)
	}
}

func TestLogWriter_WriteProbeLog(t *testing.T) {
	buf := &bytes.Buffer{}
	w := newLogWriter(nopCloser{buf})
	w.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	req := entity.ProbeRequest{URL: "https://example.com", UserAgent: "ua", FollowRedirects: true}
	err := w.WriteProbeLog(req, &entity.Success{
		StatusCode:    200,
		FinalURL:      "https://www.example.com/",
		RedirectCount: 1,
		BodySizeBytes: 512,
		Elapsed:       1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("WriteProbeLog failed: %v", err)
	}

	var record probeRecord
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record.Outcome != "success" || record.RedirectCount != 1 || record.ElapsedMs != 1500 {
		t.Errorf("record = %+v", record)
	}
	if !record.Timestamp.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("Timestamp = %s", record.Timestamp)
	}
	if record.RunID == "" || record.RunID != w.runID {
		t.Errorf("RunID = %q, want %q", record.RunID, w.runID)
	}

	buf.Reset()
	if err := w.WriteProbeLog(req, &entity.Failure{Kind: entity.FailureConnectionError, Message: "refused"}); err != nil {
		t.Fatalf("WriteProbeLog failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"outcome":"connection_error"`) || !strings.Contains(buf.String(), `"error":"refused"`) ||
		!strings.Contains(buf.String(), `"error_kind":"connection_error"`) {
		t.Errorf("failure record = %s", buf.String())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestNewLogWriter_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probes.jsonl")
	req := entity.ProbeRequest{URL: "https://example.com"}

	for i := 0; i < 2; i++ {
		w, err := NewLogWriter(path)
		if err != nil {
			t.Fatalf("NewLogWriter failed: %v", err)
		}
		if err := w.WriteProbeLog(req, &entity.Success{StatusCode: 200}); err != nil {
			t.Fatalf("WriteProbeLog failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d records, want 2", len(lines))
	}

	var first, second probeRecord
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}
	if first.RunID == second.RunID {
		t.Errorf("separate runs share run ID %q", first.RunID)
	}
}
