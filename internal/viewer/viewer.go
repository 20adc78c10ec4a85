// Package viewer is a terminal host for the styler: it shows one styled
// source file in a scrollable viewport and restyles it when it changes.
package viewer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/lexstyle/internal/app"
	"github.com/zjrosen/lexstyle/internal/keys"
	"github.com/zjrosen/lexstyle/internal/log"
	"github.com/zjrosen/lexstyle/internal/pubsub"
	"github.com/zjrosen/lexstyle/internal/theme"
)

// Host styles and paints documents. *app.Session implements it.
type Host interface {
	StyleFile(path string) (app.Document, error)
	Render(doc app.Document) string
	Registry() *theme.Registry
}

var _ Host = (*app.Session)(nil)

// SaveFunc persists the chosen preset name.
type SaveFunc func(preset string) error

// savedMsg reports the result of a SaveFunc call.
type savedMsg struct {
	preset string
	err    error
}

// Option configures a Model.
type Option func(*Model)

// WithSaveFunc enables the save key.
func WithSaveFunc(fn SaveFunc) Option {
	return func(m *Model) {
		m.save = fn
	}
}

// WithEvents subscribes the model to file and theme change events.
func WithEvents(sub pubsub.Subscriber[string]) Option {
	return func(m *Model) {
		m.events = sub
	}
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(km keys.ViewerKeyMap) Option {
	return func(m *Model) {
		m.keys = km
	}
}

// Model is the viewer state.
type Model struct {
	ctx     context.Context
	host    Host
	path    string
	absPath string
	doc     app.Document

	keys     keys.ViewerKeyMap
	help     help.Model
	showHelp bool
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	status    string
	statusErr bool

	save     SaveFunc
	events   pubsub.Subscriber[string]
	listener *pubsub.ContinuousListener[string]
}

// New styles path and returns a viewer for it. The initial styling pass
// must succeed; later failures only show in the status line.
func New(ctx context.Context, host Host, path string, opts ...Option) (Model, error) {
	doc, err := host.StyleFile(path)
	if err != nil {
		return Model{}, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	m := Model{
		ctx:     ctx,
		host:    host,
		path:    path,
		absPath: abs,
		doc:     doc,
		keys:    keys.Viewer,
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.events != nil {
		m.listener = pubsub.NewContinuousListener(ctx, m.events)
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.listener != nil {
		return m.listener.Listen()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case pubsub.Event[string]:
		m = m.handleEvent(msg)
		if m.listener == nil {
			return m, nil
		}
		return m, m.listener.Listen()

	case savedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("save failed: %v", msg.err))
		} else {
			m.setStatus("saved preset " + msg.preset)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ScrollUp(max(m.viewport.Height, 1))
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ScrollDown(max(m.viewport.Height, 1))
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()

	case key.Matches(msg, m.keys.ToggleMode):
		m.applyTheme(m.host.Registry().Toggle)
	case key.Matches(msg, m.keys.NextPreset):
		m.applyTheme(m.host.Registry().Next)

	case key.Matches(msg, m.keys.SavePreset):
		if m.save == nil {
			m.setError("no config file to save to")
			return m, nil
		}
		preset := m.host.Registry().PresetName()
		save := m.save
		return m, func() tea.Msg {
			return savedMsg{preset: preset, err: save(preset)}
		}

	case key.Matches(msg, m.keys.Reload):
		m.restyle()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.resize()
	}
	return m, nil
}

func (m Model) handleEvent(ev pubsub.Event[string]) Model {
	switch ev.Type {
	case pubsub.FileChangedEvent:
		if ev.Payload == m.absPath || ev.Payload == m.path {
			m.restyle()
		}
	case pubsub.ThemeChangedEvent:
		m.refresh()
	}
	return m
}

func (m *Model) applyTheme(fn func() error) {
	if err := fn(); err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus("")
	m.refresh()
}

// restyle re-reads the file. On failure the previous rendering stays.
func (m *Model) restyle() {
	doc, err := m.host.StyleFile(m.path)
	if err != nil {
		log.ErrorErr(log.CatView, "Restyle failed", err, "file", m.path)
		m.setError(err.Error())
		return
	}
	m.doc = doc
	m.setStatus("")
	log.Debug(log.CatView, "Restyled", "file", m.path, "runs", len(doc.Runs))
	m.refresh()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// resize rebuilds the viewport for the current window, keeping the offset.
func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	height := max(m.height-m.footerHeight(), 1)
	if !m.ready {
		m.viewport = viewport.New(m.width, height)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = height
	}
	m.refresh()
}

func (m Model) footerHeight() int {
	if m.showHelp {
		return 1 + lipgloss.Height(m.help.FullHelpView(m.keys.FullHelp()))
	}
	return 2
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.content())
	m.viewport.SetYOffset(offset)
}

// content renders the document and clips each line to the viewport width.
func (m Model) content() string {
	lines := strings.Split(m.host.Render(m.doc), "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > m.viewport.Width {
			lines[i] = ansi.Truncate(line, m.viewport.Width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

func (m Model) statusLine() string {
	reg := m.host.Registry()
	left := fmt.Sprintf(" %s  %s (%s)  %d runs",
		filepath.Base(m.path), reg.PresetName(), reg.Mode(), len(m.doc.Runs))
	if m.ready && m.viewport.TotalLineCount() > m.viewport.Height {
		left += fmt.Sprintf("  %3.f%%", m.viewport.ScrollPercent()*100)
	}
	if m.status != "" {
		left += "  " + m.status
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(reg.Color(theme.TokenPaper))).
		Background(lipgloss.Color(reg.Color(theme.TokenRegular)))
	if m.statusErr {
		style = style.Background(lipgloss.Color(reg.Color(theme.TokenFunction)))
	}

	if m.width > 0 {
		left = ansi.Truncate(left, m.width, "…")
		style = style.Width(m.width)
	}
	return style.Render(left)
}

// Document returns the document currently shown.
func (m Model) Document() app.Document { return m.doc }

// Status returns the status message and whether it reports an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }
