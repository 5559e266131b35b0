package stats

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

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testConfigs() []registry.Config {
	return []registry.Config{
		{Slug: "http-request", Title: "HTTP Request", Category: "programming", Icon: "🌐"},
		{Slug: "glbb", Title: "GLBB", Category: "physics", Icon: "🚗"},
	}
}

func newTestStats(t *testing.T) (*StatsScreen, *progress.Store) {
	t.Helper()
	fc := clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	prog := progress.New(storage.New(storage.NewMemory(), nil),
		progress.WithClock(fc), progress.WithLocation(time.UTC))
	return New(prog, testConfigs()), prog
}

// runInit executes the load command and feeds its message back.
func runInit(s *StatsScreen) {
	s.Update(s.Init()())
}

func TestStats_LoadingView(t *testing.T) {
	s, _ := newTestStats(t)
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "Loading progress")
}

func TestStats_ShowsRecords(t *testing.T) {
	s, prog := newTestStats(t)
	ctx := context.Background()
	prog.MarkCompleted(ctx, "glbb")
	prog.SaveQuizScore(ctx, "glbb", 3, 4)

	runInit(s)
	view := ansi.Strip(s.View(100, 30))

	assert.Contains(t, view, "1/2 watched")
	assert.Contains(t, view, "best 3/4")
	assert.Contains(t, view, "no quiz yet")
	assert.Contains(t, view, "75% average")
}

func TestStats_ExpandDetails(t *testing.T) {
	s, prog := newTestStats(t)
	prog.SaveQuizScore(context.Background(), "http-request", 1, 3)
	runInit(s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := ansi.Strip(s.View(100, 30))
	assert.Contains(t, view, "programming")
	assert.Contains(t, view, "1 quiz attempt")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.NotContains(t, ansi.Strip(s.View(100, 30)), "quiz attempt")
}

func TestStats_Navigation(t *testing.T) {
	s, _ := newTestStats(t)
	runInit(s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected, "selection stops at the last row")
}

func TestStats_ResetConfirmed(t *testing.T) {
	s, prog := newTestStats(t)
	ctx := context.Background()
	prog.MarkCompleted(ctx, "glbb")
	runInit(s)

	s.Update(keyPress('x'))
	require.True(t, s.confirming)
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "Reset all progress")

	_, cmd := s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	_, cmd = s.Update(cmd())
	assert.Empty(t, prog.All(ctx))

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var changed bool
	for _, c := range batch {
		msg := c()
		if _, ok := msg.(screen.ProgressChangedMsg); ok {
			changed = true
		}
		s.Update(msg)
	}
	assert.True(t, changed, "reset announces a progress change")
	assert.Contains(t, ansi.Strip(s.View(100, 30)), "0/2 watched")
}

func TestStats_ResetCancelled(t *testing.T) {
	s, prog := newTestStats(t)
	ctx := context.Background()
	prog.MarkCompleted(ctx, "glbb")
	runInit(s)

	s.Update(keyPress('x'))
	_, cmd := s.Update(keyPress('n'))
	assert.Nil(t, cmd)
	assert.False(t, s.confirming)
	assert.Len(t, prog.All(ctx), 1)
}

func TestStats_KeyHintsFollowMode(t *testing.T) {
	s, _ := newTestStats(t)
	assert.Len(t, s.KeyHints(), 4)
	s.confirming = true
	assert.Len(t, s.KeyHints(), 2)
}
