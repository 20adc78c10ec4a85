package viewer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lexstyle/internal/app"
	"github.com/zjrosen/lexstyle/internal/config"
	"github.com/zjrosen/lexstyle/internal/pubsub"
	"github.com/zjrosen/lexstyle/internal/styler"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

const source = "import os\n\ndef main():\n    print(os.getcwd())\n"

func newSession(t *testing.T) *app.Session {
	t.Helper()
	t.Setenv("PYTHONPATH", "")
	cfg := config.Defaults()
	cfg.Styler.StdlibSnapshot = false
	cfg.Styler.ExtraModules = []string{"os"}
	s, err := app.NewSession(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func sourceFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.py")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func sized(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: w, Height: h})
	return m
}

// failingHost fails StyleFile once fail is set.
type failingHost struct {
	*app.Session
	fail bool
}

func (h *failingHost) StyleFile(path string) (app.Document, error) {
	if h.fail {
		return app.Document{}, errors.New("styled runs cover 3 bytes, text has 4")
	}
	return h.Session.StyleFile(path)
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(context.Background(), newSession(t), filepath.Join(t.TempDir(), "nope.py"))
	require.Error(t, err)
}

func TestView_LoadingUntilSized(t *testing.T) {
	m, err := New(context.Background(), newSession(t), sourceFile(t, source))
	require.NoError(t, err)
	require.Equal(t, "loading…", m.View())
	require.Nil(t, m.Init(), "no listener without events")
}

func TestView_ShowsStyledFileAndStatus(t *testing.T) {
	s := newSession(t)
	m, err := New(context.Background(), s, sourceFile(t, source))
	require.NoError(t, err)
	m = sized(t, m, 80, 12)

	view := m.View()
	plain := ansi.Strip(view)
	require.Contains(t, plain, "import os")
	require.Contains(t, plain, "    print(os.getcwd())")
	require.Contains(t, plain, "main.py  default (dark)")
	require.Contains(t, plain, "runs")
	require.Contains(t, view, s.Registry().Style(styler.Module).Render("os"), "expected raw ANSI styling in the view")
}

func TestUpdate_ThemeKeys(t *testing.T) {
	s := newSession(t)
	m, err := New(context.Background(), s, sourceFile(t, source))
	require.NoError(t, err)
	m = sized(t, m, 80, 12)

	m, _ = update(t, m, keyMsg("t"))
	require.Equal(t, "light", s.Registry().PresetName())
	require.Contains(t, ansi.Strip(m.View()), "light (light)")

	m, _ = update(t, m, keyMsg("t"))
	require.Equal(t, "default", s.Registry().PresetName())

	_, _ = update(t, m, keyMsg("p"))
	require.Equal(t, "dracula", s.Registry().PresetName())
}

func TestUpdate_Save(t *testing.T) {
	s := newSession(t)
	path := sourceFile(t, source)

	m, err := New(context.Background(), s, path)
	require.NoError(t, err)
	m, cmd := update(t, m, keyMsg("w"))
	require.Nil(t, cmd)
	status, isErr := m.Status()
	require.True(t, isErr)
	require.Contains(t, status, "no config file")

	var saved []string
	m, err = New(context.Background(), s, path, WithSaveFunc(func(preset string) error {
		saved = append(saved, preset)
		return nil
	}))
	require.NoError(t, err)
	m, cmd = update(t, m, keyMsg("w"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.Equal(t, []string{"default"}, saved)
	status, isErr = m.Status()
	require.False(t, isErr)
	require.Equal(t, "saved preset default", status)

	m, _ = update(t, m, savedMsg{preset: "nord", err: errors.New("read-only")})
	status, isErr = m.Status()
	require.True(t, isErr)
	require.Contains(t, status, "read-only")
}

func TestUpdate_FileChangedRestyles(t *testing.T) {
	s := newSession(t)
	path := sourceFile(t, source)
	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	m, err := New(context.Background(), s, path)
	require.NoError(t, err)
	m = sized(t, m, 80, 12)

	require.NoError(t, os.WriteFile(path, []byte("x = 2\n"), 0o600))

	m, _ = update(t, m, pubsub.Event[string]{Type: pubsub.FileChangedEvent, Payload: "/elsewhere/other.py"})
	require.Equal(t, source, m.Document().Text)

	m, _ = update(t, m, pubsub.Event[string]{Type: pubsub.FileChangedEvent, Payload: abs})
	require.Equal(t, "x = 2\n", m.Document().Text)
	require.Contains(t, ansi.Strip(m.View()), "x = 2")
}

func TestUpdate_RestyleFailureKeepsRendering(t *testing.T) {
	host := &failingHost{Session: newSession(t)}
	m, err := New(context.Background(), host, sourceFile(t, source))
	require.NoError(t, err)
	m = sized(t, m, 80, 12)
	before := m.Document()

	host.fail = true
	m, _ = update(t, m, keyMsg("r"))

	require.Equal(t, before, m.Document())
	status, isErr := m.Status()
	require.True(t, isErr)
	require.Contains(t, status, "styled runs cover")
	require.Contains(t, ansi.Strip(m.View()), "import os")
}

func TestView_TruncatesLongLines(t *testing.T) {
	long := "value = " + strings.Repeat("abc + ", 40) + "1\n"
	m, err := New(context.Background(), newSession(t), sourceFile(t, long))
	require.NoError(t, err)
	m = sized(t, m, 20, 6)

	for _, line := range strings.Split(ansi.Strip(m.View()), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 20, line)
	}
}

func TestUpdate_ScrollKeys(t *testing.T) {
	m, err := New(context.Background(), newSession(t), sourceFile(t, strings.Repeat("pass\n", 50)))
	require.NoError(t, err)
	m = sized(t, m, 80, 10)

	m, _ = update(t, m, keyMsg("j"))
	require.Equal(t, 1, m.viewport.YOffset)
	m, _ = update(t, m, keyMsg("G"))
	require.True(t, m.viewport.AtBottom())
	m, _ = update(t, m, keyMsg("g"))
	require.True(t, m.viewport.AtTop())

	m, _ = update(t, m, keyMsg("?"))
	require.True(t, m.showHelp)
	require.Contains(t, ansi.Strip(m.View()), "save preset")

	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestProgram_LiveReloadAndToggle(t *testing.T) {
	s := newSession(t)
	path := sourceFile(t, source)
	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m, err := New(ctx, s, path, WithEvents(s.Events()))
	require.NoError(t, err)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 12))
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("main.py"))
	}, teatest.WithDuration(2*time.Second))

	require.NoError(t, os.WriteFile(path, []byte("reloaded = 1\n"), 0o600))
	s.Events().Publish(pubsub.FileChangedEvent, abs)
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("reloaded"))
	}, teatest.WithDuration(2*time.Second))

	tm.Type("t")
	tm.Type("q")

	fm, ok := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)
	require.True(t, ok)
	require.Equal(t, "reloaded = 1\n", fm.Document().Text)
	require.Equal(t, "light", s.Registry().PresetName())
}
