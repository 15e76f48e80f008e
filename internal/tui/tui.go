package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/mdv/internal/highlight"
	"github.com/sokinpui/mdv/internal/perf"
	"github.com/sokinpui/mdv/internal/render"
	"github.com/sokinpui/mdv/internal/state"
	"github.com/sokinpui/mdv/internal/virtual"
	"github.com/sokinpui/mdv/model"
)

// --- Styles ---
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// Loader produces the file diffs to show. It is called again on reload.
type Loader interface {
	Load() ([]model.FileDiff, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func() ([]model.FileDiff, error)

func (f LoaderFunc) Load() ([]model.FileDiff, error) { return f() }

// Compacter is implemented by loaders that can switch between showing the
// lines around changes and whole documents.
type Compacter interface {
	Compact() bool
	SetCompact(compact bool)
}

// Options configures the program.
type Options struct {
	Title       string
	Limits      perf.Limits
	Highlighter highlight.Highlighter
	// Changes, when set, triggers a reload for every value received.
	Changes <-chan struct{}
}

// --- Messages ---
type diffsMsg struct {
	diffs  []model.FileDiff
	reload bool
}

type errorMsg struct {
	err    error
	reload bool
}

func (e errorMsg) Error() string { return e.err.Error() }

type changedMsg struct{}

// --- Model ---
type Model struct {
	loader   Loader
	opts     Options
	states   *state.Manager
	ctrls    []*virtual.Controller
	offsets  []int
	cursor   int
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	state    viewState
	status   string
	err      error
	width    int
	height   int
}

type viewState int

const (
	stateLoading viewState = iota
	stateReady
	stateError
)

func New(loader Loader, opts Options) Model {
	if opts.Highlighter == nil {
		opts.Highlighter = highlight.Plain{}
	}
	if opts.Title == "" {
		opts.Title = "mdv"
	}
	if opts.Limits == (perf.Limits{}) {
		opts.Limits = perf.DefaultLimits()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	vp := viewport.New(80, 20)
	vp.KeyMap = viewportKeys()

	return Model{
		loader:   loader,
		opts:     opts,
		states:   state.New(opts.Limits),
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		viewport: vp,
		state:    stateLoading,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(false), m.waitForChange())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
		m.refresh()
		return m, nil

	case diffsMsg:
		m.ctrls = m.states.Sync(msg.diffs)
		m.cursor = min(m.cursor, max(len(m.ctrls)-1, 0))
		m.state = stateReady
		if msg.reload {
			m.status = fmt.Sprintf("Reloaded %d file(s).", len(m.ctrls))
			if c, ok := m.loader.(Compacter); ok && !c.Compact() {
				m.status += " Showing whole documents."
			}
		}
		m.refresh()
		return m, nil

	case errorMsg:
		if msg.reload && m.state == stateReady {
			m.status = "Reload failed: " + msg.Error()
			return m, nil
		}
		m.state = stateError
		m.err = msg
		return m, nil

	case changedMsg:
		return m, tea.Batch(m.load(true), m.waitForChange())

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case m.state != stateReady:
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		if c := m.selected(); c != nil {
			c.ToggleCollapse()
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.LoadMore):
		if c := m.selected(); c != nil && !c.Collapsed() && c.LoadMore() {
			m.status = ""
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.Compact):
		c, ok := m.loader.(Compacter)
		if !ok {
			return m, nil
		}
		c.SetCompact(!c.Compact())
		return m, m.load(true)
	case key.Matches(msg, m.keys.Reload):
		return m, m.load(true)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return fmt.Sprintf("%s Loading diff...", m.spinner.View())
	case stateError:
		return errorStyle.Render("Error: " + m.err.Error())
	}

	if len(m.ctrls) == 0 {
		return titleStyle.Render(m.opts.Title) + "\n" + statusStyle.Render("No changes.") + "\n" + m.help.View(m.keys)
	}

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "  " + footer
	}
	return m.title() + "\n" + m.viewport.View() + "\n" + footer
}

// Selected returns the controller under the cursor.
func (m Model) Selected() *virtual.Controller { return m.selected() }

func (m Model) selected() *virtual.Controller {
	if m.cursor < 0 || m.cursor >= len(m.ctrls) {
		return nil
	}
	return m.ctrls[m.cursor]
}

func (m *Model) moveCursor(delta int) {
	if len(m.ctrls) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.ctrls)) % len(m.ctrls)
	m.refresh()
	m.viewport.SetYOffset(m.offsets[m.cursor])
}

// refresh re-renders every section from the current controller state.
func (m *Model) refresh() {
	var lines []string
	m.offsets = make([]int, len(m.ctrls))
	for i, c := range m.ctrls {
		if i > 0 {
			lines = append(lines, "")
		}
		m.offsets[i] = len(lines)
		lines = append(lines, render.Section(c, m.opts.Highlighter, render.Options{
			Width:       m.width,
			Selected:    i == m.cursor,
			LoadMoreKey: "m",
		})...)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m Model) title() string {
	var large int
	for _, c := range m.ctrls {
		if c.Info().IsLarge {
			large++
		}
	}
	t := titleStyle.Render(m.opts.Title) + statusStyle.Render(fmt.Sprintf("  %d/%d files", m.cursor+1, len(m.ctrls)))
	if large > 0 {
		t += errorStyle.Render(fmt.Sprintf("  %d large", large))
	}
	return t
}

func (m Model) load(reload bool) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		diffs, err := loader.Load()
		if err != nil {
			return errorMsg{err: err, reload: reload}
		}
		return diffsMsg{diffs: diffs, reload: reload}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.opts.Changes == nil {
		return nil
	}
	changes := m.opts.Changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changedMsg{}
	}
}
