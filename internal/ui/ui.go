package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/statsweb/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	WarmingView ViewState = iota
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	view         ViewState
	warmer       *tasks.Warmer
	tags         []string
	ids          []int
	opts         tasks.WarmOpts
	width        int
	height       int
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	summary      *tasks.WarmSummary
	err          error
	results      list.Model
	help         help.Model
	keys         keyMap
}

type progressUpdateMsg tasks.ProgressUpdate

type warmCompleteMsg struct {
	summary *tasks.WarmSummary
	err     error
}

// NewModel creates a TUI that warms tags and ids with warmer.
func NewModel(ctx context.Context, warmer *tasks.Warmer, tags []string, ids []int, opts tasks.WarmOpts) *Model {
	ctx, cancel := context.WithCancel(ctx)
	return &Model{
		ctx:    ctx,
		cancel: cancel,
		view:   WarmingView,
		warmer: warmer,
		tags:   tags,
		ids:    ids,
		opts:   opts,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Summary returns the result of the run once it completed.
func (m *Model) Summary() (*tasks.WarmSummary, error) {
	return m.summary, m.err
}

// Init starts the warming run.
func (m *Model) Init() tea.Cmd {
	return m.startWarm()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.view == ResultView {
			m.results.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) && (m.view == WarmingView || m.results.FilterState() != list.Filtering) {
			m.cancel()
			return m, tea.Quit
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case warmCompleteMsg:
		m.summary = msg.summary
		m.err = msg.err
		m.showResults()
		return m, nil
	}

	if m.view == ResultView {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case WarmingView:
		return m.renderWarming()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) showResults() {
	m.view = ResultView

	var results []tasks.WarmResult
	if m.summary != nil {
		results = m.summary.Results
	}
	items := make([]list.Item, len(results))
	for i, res := range results {
		items[i] = resultItem{result: res}
	}

	m.results = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.results.Title = "Warmed pages"
	if m.width > 0 && m.height > 0 {
		m.results.SetSize(m.width-4, m.height-8)
	}
}

func (m *Model) startWarm() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		summary, err := m.warmer.Warm(m.ctx, m.progressChan, m.tags, m.ids, m.opts)
		m.summary = summary
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return warmCompleteMsg{summary: m.summary, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderWarming() string {
	title := styles.title.Render("Warming cache")
	counter := fmt.Sprintf("%d/%d", m.progress.Step, m.progress.Total)
	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s", title, counter, m.progress.Message, m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) renderResult() string {
	if m.err != nil && m.summary == nil {
		return styles.error.Render(fmt.Sprintf("Warming failed: %v\n\nPress q to quit", m.err))
	}

	header := Summary(m.summary)
	if m.err != nil {
		header += "\n" + styles.warning.Render(fmt.Sprintf("Stopped early: %v", m.err))
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.filter, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s\n\n%s", header, m.results.View(), m.help.ShortHelpView(helpKeys))
}
