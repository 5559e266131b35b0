package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vizlearn/internal/clock"
	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/registry"
	"github.com/abhisek/vizlearn/internal/screen"
	"github.com/abhisek/vizlearn/internal/storage"
)

func testOptions(t *testing.T) (Options, *progress.Store) {
	t.Helper()
	fc := clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	adapter := storage.New(storage.NewMemory(), nil)
	prog := progress.New(adapter, progress.WithClock(fc), progress.WithLocation(time.UTC))
	return Options{Progress: prog, Storage: adapter, Clock: fc}, prog
}

func newTestApp(t *testing.T, opts Options) AppModel {
	t.Helper()
	m, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(m.router.Close)
	return m
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestNew_StartsOnWelcome(t *testing.T) {
	opts, _ := testOptions(t)
	m := newTestApp(t, opts)
	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "", m.router.Active().Title())
}

func TestNew_SkipWelcome(t *testing.T) {
	opts, _ := testOptions(t)
	opts.SkipWelcome = true
	m := newTestApp(t, opts)
	assert.Equal(t, "Home", m.router.Active().Title())
}

func TestNew_StartSlug(t *testing.T) {
	opts, _ := testOptions(t)
	opts.StartSlug = "glbb"
	m := newTestApp(t, opts)

	assert.Equal(t, 2, m.router.Depth())
	cfg, _ := registry.GetConfigBySlug("glbb")
	assert.Equal(t, cfg.Title, m.router.Active().Title())
}

func TestNew_StartQuiz(t *testing.T) {
	opts, _ := testOptions(t)
	opts.StartSlug = "websocket"
	opts.StartMode = StartQuiz
	m := newTestApp(t, opts)
	assert.Equal(t, "How WebSocket Works · Quiz", m.router.Active().Title())
}

func TestNew_StartErrors(t *testing.T) {
	opts, _ := testOptions(t)
	opts.StartSlug = "no-such-viz"
	_, err := New(opts)
	assert.ErrorIs(t, err, registry.ErrUnknownSlug)

	opts.StartSlug = "glbb"
	opts.StartMode = "rewind"
	_, err = New(opts)
	assert.Error(t, err)
}

func TestApp_EscPops(t *testing.T) {
	opts, _ := testOptions(t)
	opts.StartSlug = "glbb"
	m := newTestApp(t, opts)

	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())
	assert.Equal(t, 1, m.router.Depth())

	// Esc at the root does nothing.
	_, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestApp_CtrlCQuits(t *testing.T) {
	opts, _ := testOptions(t)
	m := newTestApp(t, opts)
	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_ProgressChangedRefreshesStreak(t *testing.T) {
	opts, prog := testOptions(t)
	opts.SkipWelcome = true
	m := newTestApp(t, opts)

	prog.MarkCompleted(context.Background(), "glbb")
	_, cmd := update(m, screen.ProgressChangedMsg{})
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(streakLoadedMsg); ok {
			m, _ = update(m, msg)
		}
	}
	assert.Equal(t, 1, m.streak)
}

func TestApp_View(t *testing.T) {
	opts, _ := testOptions(t)
	opts.SkipWelcome = true
	m := newTestApp(t, opts)
	m.streak = 2
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := ansi.Strip(m.render())
	assert.Contains(t, view, "VizLearn")
	assert.Contains(t, view, "🔥 2 days")
	assert.Contains(t, view, "Navigate")
}

func TestApp_ViewTooSmall(t *testing.T) {
	opts, _ := testOptions(t)
	m := newTestApp(t, opts)
	m, _ = update(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small")
}
