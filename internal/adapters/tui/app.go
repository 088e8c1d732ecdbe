package tui

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"dsaudit/internal/adapters/report"
	"dsaudit/internal/adapters/tui/views"
	"dsaudit/internal/application"
	"dsaudit/internal/application/commands"
	"dsaudit/internal/domain"
	"dsaudit/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewAnalyzing ViewState = iota
	ViewReport
	ViewOrphans
	ViewHelp
)

// Document is a loaded design document
type Document interface {
	ports.SceneGraph
	ports.VariableStore
}

// LoadFunc loads (or reloads) the document being audited
type LoadFunc func() (Document, error)

// Options configures an App
type Options struct {
	Source    string   // shown while analysing
	Selection []string // empty uses the document's selection
	Weights   domain.Weights
	BatchSize int
	WatchPath string // re-analyse when this file changes
	Logger    *slog.Logger

	// ConfigPath is opened in Editor; ReloadCatalog rebuilds the catalog
	// once the editor exits
	ConfigPath    string
	Editor        ports.EditorOpener
	ReloadCatalog func() (ports.LibraryCatalog, error)
}

// App is the main TUI application model
type App struct {
	load    LoadFunc
	catalog ports.LibraryCatalog
	store   ports.IgnoreStore
	opts    Options
	logger  *slog.Logger

	state     ViewState
	analyzing *views.AnalyzingModel
	report    *views.ReportModel
	orphans   *views.OrphansModel
	help      *views.HelpModel

	// last completed analysis and the live ignore sets
	metrics  *domain.CoverageMetrics
	ignores  domain.IgnoreSets
	filtered domain.FilteredMetrics

	running bool
	// rerun records a change seen while a run was in flight
	rerun   bool
	cancel  context.CancelFunc
	watcher *watcher

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(load LoadFunc, catalog ports.LibraryCatalog, store ports.IgnoreStore, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Weights == (domain.Weights{}) {
		opts.Weights = domain.DefaultWeights
	}
	return &App{
		load:      load,
		catalog:   catalog,
		store:     store,
		opts:      opts,
		logger:    logger,
		state:     ViewAnalyzing,
		analyzing: views.NewAnalyzingModel(opts.Source),
		report:    views.NewReportModel(),
		orphans:   views.NewOrphansModel(),
		help:      views.NewHelpModel(),
		ignores:   domain.NewIgnoreSets(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.startAnalysis()}
	if a.opts.WatchPath != "" {
		cmds = append(cmds, startWatcher(a.opts.WatchPath))
	}
	return tea.Batch(cmds...)
}

// Close releases the file watcher and cancels a running analysis
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

type progressMsg struct {
	progress domain.Progress
	updates  <-chan domain.Progress
}

type analysisDoneMsg struct {
	metrics *domain.CoverageMetrics
	ignores domain.IgnoreSets
	err     error
}

type errMsg struct {
	err error
}

type infoMsg struct {
	message string
}

type configEditedMsg struct {
	err error
}

// startAnalysis runs an analysis off the update loop. Checkpoints arrive as
// progressMsg; the result as analysisDoneMsg.
func (a *App) startAnalysis() tea.Cmd {
	if a.running {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.running = true
	a.state = ViewAnalyzing
	a.analyzing.Reset()

	// the run only sees values captured here, never App fields
	catalog := a.catalog
	updates := make(chan domain.Progress, 8)
	run := func() tea.Msg {
		defer close(updates)
		return a.analyze(ctx, catalog, updates)
	}
	return tea.Batch(run, waitForProgress(updates))
}

// requestAnalysis starts a run, or queues one behind the run in flight
func (a *App) requestAnalysis() tea.Cmd {
	if a.running {
		a.rerun = true
		return nil
	}
	return a.startAnalysis()
}

// analyze runs on its own goroutine. It reads only its arguments and
// the immutable load, store, opts and logger.
func (a *App) analyze(ctx context.Context, catalog ports.LibraryCatalog, updates chan<- domain.Progress) analysisDoneMsg {
	doc, err := a.load()
	if err != nil {
		return analysisDoneMsg{err: err}
	}

	cmd := commands.NewAnalyzeCommand(doc, doc, catalog, a.opts.Selection).
		WithLogger(a.logger).
		WithProgress(ports.ProgressFunc(func(p domain.Progress) {
			// drop checkpoints the UI has not caught up with
			select {
			case updates <- p:
			default:
			}
		}))
	cmd.Weights = a.opts.Weights
	cmd.BatchSize = a.opts.BatchSize

	metrics, err := cmd.Execute(ctx)
	if err != nil {
		return analysisDoneMsg{err: err}
	}

	ignores, err := commands.NewListIgnoresCommand(a.store, metrics.DocumentKey).Execute(ctx)
	if err != nil {
		return analysisDoneMsg{err: fmt.Errorf("failed to load ignores: %w", err)}
	}
	return analysisDoneMsg{metrics: metrics, ignores: ignores}
}

func waitForProgress(updates <-chan domain.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-updates
		if !ok {
			return nil
		}
		return progressMsg{progress: p, updates: updates}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.analyzing.SetSize(msg.Width, msg.Height)
		a.report.SetSize(msg.Width, msg.Height)
		a.orphans.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case progressMsg:
		a.analyzing.SetProgress(msg.progress)
		return a, waitForProgress(msg.updates)

	case analysisDoneMsg:
		return a, a.finishAnalysis(msg)

	case views.CancelAnalysisMsg:
		a.rerun = false
		if a.cancel != nil {
			a.cancel()
		}
		return a, nil

	case views.ReanalyzeMsg:
		return a, a.requestAnalysis()

	case views.EditConfigMsg:
		return a, a.editConfig()

	case configEditedMsg:
		return a, a.reloadCatalog(msg.err)

	// View switching messages
	case views.SwitchToReportMsg:
		a.state = ViewReport
		return a, nil

	case views.SwitchToOrphansMsg:
		if a.metrics == nil || msg.Row < 0 || msg.Row >= len(a.metrics.Rows) {
			return a, nil
		}
		a.orphans.SetRow(&a.metrics.Rows[msg.Row], a.ignores)
		a.state = ViewOrphans
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Ignore and clipboard actions
	case views.ToggleIgnoreMsg:
		return a, a.toggleIgnore(msg.Kind, msg.Key)

	case views.ClearIgnoresMsg:
		return a, a.clearIgnores()

	case views.CopySummaryMsg:
		return a, a.copySummary()

	case documentChangedMsg:
		return a, tea.Batch(a.requestAnalysis(), a.watcher.wait())

	case watcherStartedMsg:
		a.watcher = msg.watcher
		return a, a.watcher.wait()

	case watchErrMsg:
		a.setMessage("watch: "+msg.err.Error(), true)
		return a, a.watcher.wait()

	case errMsg:
		a.setMessage(msg.err.Error(), true)
		return a, nil

	case infoMsg:
		a.setMessage(msg.message, false)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewAnalyzing:
		_, cmd = a.analyzing.Update(msg)
	case ViewReport:
		_, cmd = a.report.Update(msg)
	case ViewOrphans:
		_, cmd = a.orphans.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) finishAnalysis(msg analysisDoneMsg) tea.Cmd {
	a.running = false
	a.cancel = nil
	a.state = ViewReport

	switch {
	case application.IsCancelled(msg.err):
		a.report.SetMessage("Analysis cancelled", false)
	case msg.err != nil:
		a.report.SetMessage(msg.err.Error(), true)
	default:
		a.metrics = msg.metrics
		a.ignores = msg.ignores
		a.recompute()
		a.report.SetResult(a.metrics, a.filtered, a.ignores)
	}

	// the result above may predate a document or mapping change
	if a.rerun {
		a.rerun = false
		return a.startAnalysis()
	}
	return nil
}

// recompute re-sums the last analysis under the live ignore sets
func (a *App) recompute() {
	if a.metrics == nil {
		return
	}
	ignores := a.ignores
	filtered, err := commands.NewRecomputeCommand(a.store, a.metrics).WithIgnores(ignores).Execute(context.Background())
	if err != nil {
		a.setMessage(err.Error(), true)
		return
	}
	a.filtered = *filtered
	a.report.SetFiltered(a.filtered, a.ignores)
	a.orphans.SetIgnores(a.ignores)
}

// toggleIgnore flips an ignore, recomputes at once and persists the change
func (a *App) toggleIgnore(kind domain.IgnoreKind, key string) tea.Cmd {
	if a.metrics == nil {
		return nil
	}
	docKey := a.metrics.DocumentKey
	ignored := a.ignores.Toggle(kind, key)
	a.recompute()

	store := a.store
	return func() tea.Msg {
		ctx := context.Background()
		if ignored {
			if _, err := commands.NewIgnoreCommand(store, docKey, string(kind), key).Execute(ctx); err != nil {
				return errMsg{err}
			}
			return infoMsg{fmt.Sprintf("Ignoring %s %s", kind, key)}
		}
		if _, err := commands.NewUnignoreCommand(store, docKey, string(kind), key).Execute(ctx); err != nil {
			return errMsg{err}
		}
		return infoMsg{fmt.Sprintf("Restored %s %s", kind, key)}
	}
}

func (a *App) clearIgnores() tea.Cmd {
	if a.metrics == nil {
		return nil
	}
	docKey := a.metrics.DocumentKey
	a.ignores = domain.NewIgnoreSets()
	a.recompute()

	store := a.store
	return func() tea.Msg {
		if err := commands.NewClearIgnoresCommand(store, docKey).Execute(context.Background()); err != nil {
			return errMsg{err}
		}
		return infoMsg{"Ignores cleared"}
	}
}

func (a *App) copySummary() tea.Cmd {
	if a.metrics == nil {
		return nil
	}
	var buf bytes.Buffer
	err := report.WriteText(&buf, report.Result{Metrics: a.metrics, Filtered: a.filtered}, report.Options{})
	text := buf.String()
	return func() tea.Msg {
		if err != nil {
			return errMsg{err}
		}
		if err := clipboard.WriteAll(text); err != nil {
			return errMsg{fmt.Errorf("failed to copy summary: %w", err)}
		}
		return infoMsg{"Summary copied to clipboard"}
	}
}

// editConfig suspends the UI while the library mapping is edited
func (a *App) editConfig() tea.Cmd {
	if a.opts.Editor == nil || a.opts.ConfigPath == "" {
		a.setMessage("No library config to edit", true)
		return nil
	}
	cmd, err := a.opts.Editor.Command(a.opts.ConfigPath)
	if err != nil {
		a.setMessage(err.Error(), true)
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return configEditedMsg{err: err}
	})
}

func (a *App) reloadCatalog(editErr error) tea.Cmd {
	if editErr != nil {
		a.setMessage(fmt.Sprintf("editor failed: %v", editErr), true)
		return nil
	}
	if a.opts.ReloadCatalog == nil {
		return a.requestAnalysis()
	}
	catalog, err := a.opts.ReloadCatalog()
	if err != nil {
		// keep the previous mapping until the file is fixed
		a.setMessage(err.Error(), true)
		return nil
	}
	a.catalog = catalog
	a.logger.Debug("library mapping reloaded", slog.String("path", a.opts.ConfigPath))
	return a.requestAnalysis()
}

func (a *App) setMessage(message string, isErr bool) {
	switch a.state {
	case ViewOrphans:
		a.orphans.SetMessage(message, isErr)
	case ViewAnalyzing:
		a.analyzing.SetMessage(message, isErr)
	default:
		a.report.SetMessage(message, isErr)
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewAnalyzing:
		return a.analyzing.View()
	case ViewOrphans:
		return a.orphans.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.report.View()
	}
}
