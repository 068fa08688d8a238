package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/charmbracelet/lipgloss"
)

// Renderer turns check results into human readable reports
type Renderer struct {
	width int

	titleStyle lipgloss.Style
	labelStyle lipgloss.Style
	okStyle    lipgloss.Style
	errorStyle lipgloss.Style
	mutedStyle lipgloss.Style
}

// NewRenderer creates a renderer whose rules are at most width wide
func NewRenderer(width int) *Renderer {
	if width <= 0 || width > 50 {
		width = 50
	}
	return &Renderer{
		width:      width,
		titleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		labelStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
		okStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		errorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		mutedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

func (r *Renderer) rule(ch string) string {
	return r.mutedStyle.Render(strings.Repeat(ch, r.width))
}

func (r *Renderer) field(label string, value any) string {
	return fmt.Sprintf("%s %v", r.labelStyle.Render(label+":"), value)
}

// Performance renders a performance report
func (r *Renderer) Performance(report entity.PerformanceReport) string {
	lines := []string{
		r.titleStyle.Render(fmt.Sprintf("Performance Report for %s", report.URL)),
		r.rule("="),
	}

	switch res := report.Result.(type) {
	case *entity.Success:
		lines = append(lines,
			r.field("Status Code", res.StatusCode),
			r.field("Page Size", fmt.Sprintf("%.2f KB", report.SizeKB)),
			r.field("Load Time", res.Elapsed),
			r.field("Final URL", res.FinalURL),
			r.field("Redirect Count", res.RedirectCount),
		)
		if len(res.Headers) > 0 {
			lines = append(lines, r.labelStyle.Render("Response Headers:"))
			lines = append(lines, headerLines(res.Headers)...)
		}
	case *entity.Failure:
		lines = append(lines,
			r.field("Status Code", "N/A"),
			r.field("Final URL", res.URL),
			r.errorStyle.Render(fmt.Sprintf("Error (%s): %s", res.Kind, res.Message)),
		)
	}

	lines = append(lines, r.rule("="))
	return strings.Join(lines, "\n")
}

// Reachability renders a reachability report
func (r *Renderer) Reachability(url string, result entity.ProbeResult) string {
	lines := []string{
		r.titleStyle.Render("Website Reachability Report"),
		r.rule("="),
		r.field("URL", url),
	}
	lines = append(lines, r.outcomeLines(result, true)...)
	lines = append(lines, r.rule("="))
	return strings.Join(lines, "\n")
}

// Robots renders a robots.txt report
func (r *Renderer) Robots(report entity.RobotsReport) string {
	if report.Failure != nil {
		return r.errorStyle.Render(report.Failure.Message)
	}

	doc := report.Document
	var lines []string

	if len(doc.Sitemaps) > 0 {
		lines = append(lines, r.titleStyle.Render("Sitemaps found:"))
		for _, sitemap := range doc.Sitemaps {
			lines = append(lines, fmt.Sprintf("  - %s", sitemap))
		}
		lines = append(lines, "")
	}

	for _, agent := range doc.Agents {
		rules := doc.Rules[agent]
		lines = append(lines, r.titleStyle.Render(fmt.Sprintf("User-Agent: %s", agent)))
		if len(rules.Allow) > 0 {
			lines = append(lines, "  Allow:")
			for _, path := range rules.Allow {
				lines = append(lines, fmt.Sprintf("    - %s", path))
			}
		}
		if len(rules.Disallow) > 0 {
			lines = append(lines, "  Disallow:")
			for _, path := range rules.Disallow {
				lines = append(lines, fmt.Sprintf("    - %s", path))
			}
		}
	}

	if len(report.Verdicts) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		for _, verdict := range report.Verdicts {
			status := r.okStyle.Render("allowed")
			if !verdict.Allowed {
				status = r.errorStyle.Render("disallowed")
			}
			lines = append(lines, r.mutedStyle.Render(fmt.Sprintf("%s for %q: ", verdict.Path, verdict.Agent))+status)
		}
	}

	return strings.Join(lines, "\n")
}

// Sitemaps renders the sitemap check report
func (r *Renderer) Sitemaps(results []entity.PathCheckResult) string {
	lines := []string{
		"",
		r.titleStyle.Render("Sitemap Check Report"),
		r.rule("="),
	}
	for _, result := range results {
		lines = append(lines, r.field("URL", result.ResolvedURL))
		lines = append(lines, r.outcomeLines(result.Outcome, false)...)
		if result.Outcome != nil {
			if s, ok := result.Outcome.(*entity.Success); ok && s.StatusCode != http.StatusOK {
				lines = append(lines, r.errorStyle.Render("  Status: Not Reachable"))
			}
		}
		lines = append(lines, r.rule("-"))
	}
	return strings.Join(lines, "\n")
}

// outcomeLines describes a probe result. Reachability treats any HTTP
// response as reachable; the sitemap report only counts 200 as reachable.
func (r *Renderer) outcomeLines(result entity.ProbeResult, anyStatus bool) []string {
	switch res := result.(type) {
	case *entity.Success:
		var lines []string
		if anyStatus || res.StatusCode == http.StatusOK {
			lines = append(lines, r.okStyle.Render("  Status: Reachable"))
		}
		lines = append(lines, fmt.Sprintf("  Status Code: %d (%s)", res.StatusCode, res.Reason))
		if anyStatus {
			lines = append(lines, fmt.Sprintf("  Response Time: %.3f seconds", res.Elapsed.Seconds()))
		}
		return lines
	case *entity.Failure:
		return []string{
			r.errorStyle.Render("  Status: Not Reachable"),
			r.errorStyle.Render(fmt.Sprintf("  Error (%s): %s", res.Kind, res.Message)),
		}
	}
	return []string{r.errorStyle.Render("  Error: Unknown Error")}
}

func headerLines(headers http.Header) []string {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("  %s: %s", key, strings.Join(headers[key], ", ")))
	}
	return lines
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
