package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/WangYihang/site-probe/pkg/application"
	"github.com/WangYihang/site-probe/pkg/common"
	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/WangYihang/site-probe/pkg/interface/presenter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessevdk/go-flags"
)

// ErrCheckFailed reports that a check ran but its target failed. The report
// has already been printed when it is returned.
var ErrCheckFailed = errors.New("check failed")

// App wires parsed flags to the diagnostics facade
type App struct {
	ctx     context.Context
	stdout  io.Writer
	stderr  io.Writer
	options Options
	width   int
}

// NewApp creates an app writing reports to stdout and status to stderr
func NewApp(ctx context.Context, stdout, stderr io.Writer) *App {
	return &App{
		ctx:    ctx,
		stdout: stdout,
		stderr: stderr,
		width:  common.TerminalWidth(),
	}
}

// Run parses args, runs the selected command and returns the exit code
func (a *App) Run(args []string) int {
	parser := flags.NewParser(&a.options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "site-probe"
	parser.SubcommandsOptional = true

	parser.AddCommand("perf", "Analyze page performance",
		"Fetch the URL once and report status, size, load time, redirects and headers.",
		&perfCommand{app: a})
	parser.AddCommand("reach", "Check website reachability",
		"Fetch the URL once and report whether it answered, with status and response time.",
		&reachCommand{app: a})
	parser.AddCommand("robots", "Fetch and parse robots.txt",
		"Fetch <url>/robots.txt and list its sitemaps and per-agent rules.",
		&robotsCommand{app: a})
	parser.AddCommand("sitemaps", "Probe candidate sitemap paths",
		"Probe every path from the sitemap file under the URL and report which are reachable.",
		&sitemapsCommand{app: a})

	ran := false
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if a.options.Version {
			ran = true
			return a.printVersion()
		}
		if command == nil {
			return nil
		}
		if err := a.options.Validate(); err != nil {
			return err
		}
		ran = true
		return command.Execute(args)
	}

	if _, err := parser.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprintln(a.stdout, err)
			return 0
		}
		if errors.Is(err, ErrCheckFailed) {
			return 1
		}
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}

	if !ran && a.options.Version {
		if err := a.printVersion(); err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	if !ran {
		parser.WriteHelp(a.stderr)
		return 2
	}
	return 0
}

func (a *App) printVersion() error {
	return a.emit(common.PV, func(*presenter.Renderer) string { return common.PV.String() })
}

// emit prints v as JSON when --json is set, otherwise the rendered text
func (a *App) emit(v any, render func(*presenter.Renderer) string) error {
	if a.options.JSON {
		return presenter.WriteJSON(a.stdout, v)
	}
	_, err := fmt.Fprintln(a.stdout, render(presenter.NewRenderer(a.width)))
	return err
}

// diagnostics assembles the facade; the returned assembler must be closed
func (a *App) diagnostics(sitemap *SitemapOptions) (*Assembler, *application.Diagnostics, *application.BatchProber, error) {
	assembler := NewAssembler(&a.options, sitemap)
	diagnostics, batch, err := assembler.AssembleDiagnostics(a.ctx)
	if err != nil {
		assembler.Close()
		return nil, nil, nil, err
	}
	return assembler, diagnostics, batch, nil
}

type perfCommand struct {
	Args targetArgs `positional-args:"yes" required:"yes"`
	app  *App
}

// Execute runs the performance check
func (c *perfCommand) Execute(args []string) error {
	if err := c.Args.validate(); err != nil {
		return err
	}
	assembler, diagnostics, _, err := c.app.diagnostics(nil)
	if err != nil {
		return err
	}
	defer assembler.Close()

	report := diagnostics.AnalyzePerformance(c.app.ctx, c.Args.URL, c.app.options.UserAgent)
	if err := c.app.emit(report, func(r *presenter.Renderer) string { return r.Performance(report) }); err != nil {
		return err
	}
	if _, failed := report.Result.(*entity.Failure); failed {
		return ErrCheckFailed
	}
	return nil
}

type reachCommand struct {
	Args targetArgs `positional-args:"yes" required:"yes"`
	app  *App
}

type reachReport struct {
	URL    string             `json:"url"`
	Result entity.ProbeResult `json:"result"`
}

// Execute runs the reachability check
func (c *reachCommand) Execute(args []string) error {
	if err := c.Args.validate(); err != nil {
		return err
	}
	assembler, diagnostics, _, err := c.app.diagnostics(nil)
	if err != nil {
		return err
	}
	defer assembler.Close()

	result := diagnostics.CheckReachability(c.app.ctx, c.Args.URL, c.app.options.UserAgent)
	report := reachReport{URL: c.Args.URL, Result: result}
	if err := c.app.emit(report, func(r *presenter.Renderer) string { return r.Reachability(c.Args.URL, result) }); err != nil {
		return err
	}
	if _, failed := result.(*entity.Failure); failed {
		return ErrCheckFailed
	}
	return nil
}

type robotsCommand struct {
	Args targetArgs `positional-args:"yes" required:"yes"`
	app  *App
}

// Execute runs the robots.txt check
func (c *robotsCommand) Execute(args []string) error {
	if err := c.Args.validate(); err != nil {
		return err
	}
	assembler, diagnostics, _, err := c.app.diagnostics(nil)
	if err != nil {
		return err
	}
	defer assembler.Close()

	report := diagnostics.CheckRobots(c.app.ctx, c.Args.URL, c.app.options.UserAgent)
	if err := c.app.emit(report, func(r *presenter.Renderer) string { return r.Robots(report) }); err != nil {
		return err
	}
	if report.Failure != nil {
		return ErrCheckFailed
	}
	return nil
}

type sitemapsCommand struct {
	SitemapOptions
	Args targetArgs `positional-args:"yes" required:"yes"`
	app  *App
}

// Execute runs the sitemap path check
func (c *sitemapsCommand) Execute(args []string) error {
	if err := c.Args.validate(); err != nil {
		return err
	}
	if err := c.SitemapOptions.Validate(); err != nil {
		return err
	}

	assembler, diagnostics, batch, err := c.app.diagnostics(&c.SitemapOptions)
	if err != nil {
		return err
	}
	defer assembler.Close()

	paths, err := assembler.LoadPaths(c.SitemapFile, c.Dedup)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no candidate paths in %s", c.SitemapFile)
	}

	var results []entity.PathCheckResult
	if c.Dashboard {
		results, err = c.runWithDashboard(diagnostics, batch, paths)
	} else {
		if !c.NoProgress {
			batch.RegisterProgressObserver(presenter.NewProgressBar(c.app.stderr, c.Args.URL, c.app.width))
		}
		results, err = diagnostics.CheckSitemapPaths(c.app.ctx, c.Args.URL, paths, c.app.options.UserAgent)
	}
	if err != nil {
		return fmt.Errorf("sitemap check interrupted: %w", err)
	}

	if err := assembler.WriteResults(results); err != nil {
		return err
	}
	return c.app.emit(results, func(r *presenter.Renderer) string { return r.Sitemaps(results) })
}

// runWithDashboard runs the batch in the background while the TUI owns the
// terminal. Quitting the TUI cancels the batch.
func (c *sitemapsCommand) runWithDashboard(diagnostics *application.Diagnostics, batch *application.BatchProber, paths []string) ([]entity.PathCheckResult, error) {
	ctx, cancel := context.WithCancel(c.app.ctx)
	defer cancel()

	dashboard := presenter.NewDashboard(c.Args.URL)
	batch.RegisterProgressObserver(dashboard)

	p := tea.NewProgram(dashboard, tea.WithAltScreen(), tea.WithContext(ctx))

	var (
		results []entity.PathCheckResult
		err     error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		results, err = diagnostics.CheckSitemapPaths(ctx, c.Args.URL, paths, c.app.options.UserAgent)
		p.Quit()
	}()

	if _, runErr := p.Run(); runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		fmt.Fprintf(c.app.stderr, "TUI error: %v\n", runErr)
	}
	cancel()
	<-done
	return results, err
}
