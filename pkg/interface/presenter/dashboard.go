package presenter

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dashboard is a TUI dashboard for batch check progress
type Dashboard struct {
	target        string
	progress      entity.BatchProgress
	recentResults []entity.PathCheckResult
	bar           progress.Model
	width         int
	height        int
	finished      bool
	mu            sync.RWMutex
}

type tickMsg time.Time

// NewDashboard creates a new TUI dashboard
func NewDashboard(target string) *Dashboard {
	return &Dashboard{
		target: target,
		bar:    progress.New(progress.WithDefaultGradient()),
	}
}

// Init initializes the dashboard
func (d *Dashboard) Init() tea.Cmd {
	return tickCmd()
}

// Update handles dashboard updates
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c":
			return d, tea.Quit
		}

	case tea.WindowSizeMsg:
		d.mu.Lock()
		d.width = msg.Width
		d.height = msg.Height
		d.bar.Width = msg.Width - 4
		d.mu.Unlock()
		return d, nil

	case tickMsg:
		// Continue ticking to keep the display updating
		return d, tickCmd()
	}

	return d, nil
}

// View renders the dashboard
func (d *Dashboard) View() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.width == 0 {
		return "Initializing..."
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7D56F4")).
		Padding(0, 1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#874BFD")).
		Padding(0, 1).
		Width(d.width - 2)
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#626262")).
		Padding(1, 0)

	percent := 0.0
	if d.progress.Total > 0 {
		percent = float64(d.progress.Done) / float64(d.progress.Total)
	}

	elapsed := time.Duration(0)
	if !d.progress.StartTime.IsZero() {
		elapsed = time.Since(d.progress.StartTime).Truncate(time.Second)
	}

	stats := []string{
		fmt.Sprintf("Checked:   %d / %d", d.progress.Done, d.progress.Total),
		fmt.Sprintf("Responded: %d", d.progress.Succeeded),
		fmt.Sprintf("Failed:    %d", d.progress.Failed),
		fmt.Sprintf("Running:   %s", elapsed),
	}

	sections := []string{
		titleStyle.Render("Sitemap Checks: " + d.target),
		d.bar.ViewAs(percent),
		boxStyle.Render(strings.Join(stats, "\n")),
		boxStyle.Render(d.renderRecent()),
	}

	footer := "Press 'q' or 'Ctrl+C' to quit"
	if d.finished {
		footer = "Done. " + footer
	}
	sections = append(sections, footerStyle.Render(footer))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d *Dashboard) renderRecent() string {
	lines := []string{"Recent Results", ""}
	if len(d.recentResults) == 0 {
		return strings.Join(append(lines, "No paths checked yet..."), "\n")
	}

	// Height - title - bar - stats box - footer - box chrome
	maxLines := d.height - 16
	if maxLines < 1 {
		maxLines = 1
	}
	start := 0
	if len(d.recentResults) > maxLines {
		start = len(d.recentResults) - maxLines
	}

	for _, result := range d.recentResults[start:] {
		status := result.Outcome.Outcome()
		if s, ok := result.Outcome.(*entity.Success); ok {
			status = fmt.Sprintf("%d", s.StatusCode)
		}
		lines = append(lines, fmt.Sprintf("  • %-20s %s", status, result.ResolvedURL))
	}
	return strings.Join(lines, "\n")
}

// OnBatchStart implements service.ProgressObserver
func (d *Dashboard) OnBatchStart(total int) {
	d.mu.Lock()
	d.progress = entity.BatchProgress{Total: total, StartTime: time.Now()}
	d.mu.Unlock()
}

// OnPathChecked implements service.ProgressObserver
func (d *Dashboard) OnPathChecked(result entity.PathCheckResult, progress entity.BatchProgress) {
	d.mu.Lock()
	d.progress = progress
	d.recentResults = append(d.recentResults, result)

	// Keep only the last 50 for memory efficiency
	if len(d.recentResults) > 50 {
		d.recentResults = d.recentResults[len(d.recentResults)-50:]
	}
	d.mu.Unlock()
}

// OnBatchEnd implements service.ProgressObserver
func (d *Dashboard) OnBatchEnd(progress entity.BatchProgress) {
	d.mu.Lock()
	d.progress = progress
	d.finished = true
	d.mu.Unlock()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
