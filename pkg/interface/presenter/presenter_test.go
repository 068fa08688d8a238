package presenter

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
	tea "github.com/charmbracelet/bubbletea"
)

func TestRenderer_Performance(t *testing.T) {
	r := NewRenderer(80)
	out := r.Performance(entity.PerformanceReport{
		URL: "https://example.com",
		Result: &entity.Success{
			StatusCode:    200,
			FinalURL:      "https://www.example.com/",
			RedirectCount: 1,
			BodySizeBytes: 2048,
			Elapsed:       250 * time.Millisecond,
			Headers:       http.Header{"Content-Type": {"text/html"}},
		},
		SizeKB: 2,
	})

	for _, want := range []string{
		"Performance Report for https://example.com",
		"Status Code: 200",
		"Page Size: 2.00 KB",
		"Load Time: 250ms",
		"Final URL: https://www.example.com/",
		"Redirect Count: 1",
		"Content-Type: text/html",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_PerformanceFailure(t *testing.T) {
	out := NewRenderer(80).Performance(entity.PerformanceReport{
		URL:    "https://down.example",
		Result: &entity.Failure{Kind: entity.FailureConnectionError, Message: "no such host", URL: "https://down.example"},
	})
	if !strings.Contains(out, "Error (connection_error): no such host") {
		t.Errorf("report = %s", out)
	}
}

func TestRenderer_Reachability(t *testing.T) {
	r := NewRenderer(80)

	out := r.Reachability("https://example.com", &entity.Success{StatusCode: 404, Reason: "Not Found", Elapsed: time.Second})
	if !strings.Contains(out, "Status: Reachable") || !strings.Contains(out, "Status Code: 404 (Not Found)") {
		t.Errorf("report = %s", out)
	}
	if !strings.Contains(out, "Response Time: 1.000 seconds") {
		t.Errorf("report = %s", out)
	}

	out = r.Reachability("https://example.com", &entity.Failure{Kind: entity.FailureTimeout, Message: "deadline exceeded"})
	if !strings.Contains(out, "Status: Not Reachable") || !strings.Contains(out, "deadline exceeded") {
		t.Errorf("report = %s", out)
	}
}

func TestRenderer_Robots(t *testing.T) {
	r := NewRenderer(80)
	out := r.Robots(entity.RobotsReport{
		Document: &entity.RobotsDocument{
			Sitemaps: []string{"https://example.com/sitemap.xml"},
			Rules: map[string]*entity.AgentRules{
				"*":   {Allow: []string{"/public"}, Disallow: []string{"/admin"}},
				"bot": {Allow: []string{}, Disallow: []string{"/"}},
			},
			Agents: []string{"*", "bot"},
		},
		Verdicts: []entity.AgentVerdict{{Agent: "ua", Path: "/", Allowed: true}},
	})

	for _, want := range []string{
		"Sitemaps found:",
		"  - https://example.com/sitemap.xml",
		"User-Agent: *",
		"  Allow:",
		"    - /public",
		"    - /admin",
		"User-Agent: bot",
		"allowed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "User-Agent: *") > strings.Index(out, "User-Agent: bot") {
		t.Error("agents should be rendered in file order")
	}

	out = r.Robots(entity.RobotsReport{Failure: &entity.RobotsFailure{Message: "HTTP error: 404 Not Found"}})
	if !strings.Contains(out, "HTTP error: 404 Not Found") {
		t.Errorf("report = %s", out)
	}
}

func TestRenderer_Sitemaps(t *testing.T) {
	out := NewRenderer(80).Sitemaps([]entity.PathCheckResult{
		{ResolvedURL: "https://example.com/sitemap.xml", Outcome: &entity.Success{StatusCode: 200, Reason: "OK"}},
		{ResolvedURL: "https://example.com/missing.xml", Outcome: &entity.Success{StatusCode: 404, Reason: "Not Found"}},
		{ResolvedURL: "https://example.com/slow.xml", Outcome: &entity.Failure{Kind: entity.FailureTimeout, Message: "timed out"}},
	})

	if strings.Count(out, "Status: Reachable") != 1 {
		t.Errorf("only the 200 should be reachable:\n%s", out)
	}
	if strings.Count(out, "Status: Not Reachable") != 2 {
		t.Errorf("404 and timeout should be unreachable:\n%s", out)
	}
	if strings.Index(out, "sitemap.xml") > strings.Index(out, "missing.xml") {
		t.Error("results should keep their order")
	}
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteJSON(buf, entity.PathCheckResult{RequestedPath: "a", Outcome: &entity.Success{StatusCode: 200}}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"requested_path": "a"`) {
		t.Errorf("json = %s", buf.String())
	}
}

func TestProgressBar(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(buf, "example.com", 60)

	bar.OnBatchStart(2)
	bar.OnPathChecked(entity.PathCheckResult{}, entity.BatchProgress{Total: 2, Done: 1})
	bar.OnPathChecked(entity.PathCheckResult{}, entity.BatchProgress{Total: 2, Done: 2})
	bar.OnBatchEnd(entity.BatchProgress{Total: 2, Done: 2})

	if !strings.Contains(buf.String(), "example.com") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestProgressBar_Aborted(t *testing.T) {
	bar := NewProgressBar(&bytes.Buffer{}, "x", 0)
	bar.OnBatchStart(5)
	bar.OnPathChecked(entity.PathCheckResult{}, entity.BatchProgress{Total: 5, Done: 1})

	done := make(chan struct{})
	go func() {
		bar.OnBatchEnd(entity.BatchProgress{Total: 5, Done: 1})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("OnBatchEnd blocked on an incomplete bar")
	}
}

func TestDashboard(t *testing.T) {
	d := NewDashboard("https://example.com")
	if d.View() != "Initializing..." {
		t.Errorf("View before sizing = %q", d.View())
	}

	d.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	d.OnBatchStart(2)
	d.OnPathChecked(entity.PathCheckResult{
		ResolvedURL: "https://example.com/sitemap.xml",
		Outcome:     &entity.Success{StatusCode: 200},
	}, entity.BatchProgress{Total: 2, Done: 1, Succeeded: 1})

	view := d.View()
	for _, want := range []string{"Checked:   1 / 2", "https://example.com/sitemap.xml", "200"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	d.OnBatchEnd(entity.BatchProgress{Total: 2, Done: 2, Succeeded: 1, Failed: 1})
	if !strings.Contains(d.View(), "Done.") {
		t.Error("view should show completion")
	}

	if _, cmd := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}
