package player

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/vizlearn/internal/clock"
	"github.com/abhisek/vizlearn/internal/playback"
	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/quiz"
	"github.com/abhisek/vizlearn/internal/registry"
	"github.com/abhisek/vizlearn/internal/router"
	"github.com/abhisek/vizlearn/internal/screen"
	"github.com/abhisek/vizlearn/internal/storage"
	"github.com/abhisek/vizlearn/internal/viz"
)

var start = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return s.title }
func (s *stubScreen) Title() string                          { return s.title }

type stubOpener struct {
	quizSlugs []string
	err       error
}

func (o *stubOpener) Player(slug string) (screen.Screen, error) {
	return &stubScreen{title: "player " + slug}, o.err
}

func (o *stubOpener) Quiz(slug string) (screen.Screen, error) {
	o.quizSlugs = append(o.quizSlugs, slug)
	if o.err != nil {
		return nil, o.err
	}
	return &stubScreen{title: "quiz " + slug}, nil
}

func testConfig() registry.Config {
	return registry.Config{
		Slug:  "demo",
		Title: "Demo",
		Color: "blue",
		Steps: []playback.Step{
			{ID: "a", Title: "First", Explanation: "One.", DurationMs: 1000},
			{ID: "b", Title: "Second", Explanation: "Two.", DurationMs: 1000},
			{ID: "c", Title: "Third", Explanation: "Three.", DurationMs: 1000},
		},
		Quiz: []quiz.Question{
			quiz.MultipleChoice{ID: "q1", Prompt: "?", Options: []string{"x", "y"}, CorrectOption: 0},
		},
	}
}

var plainRenderer = viz.RendererFunc(func(p viz.Props, w, h int) string {
	return "illustration step " + string(rune('0'+p.ActiveStepIndex))
})

func newTestPlayer(t *testing.T, r viz.Renderer) (*PlayerScreen, *clock.Fake, *progress.Store, *stubOpener) {
	t.Helper()
	fc := clock.NewFake(start)
	prog := progress.New(storage.New(storage.NewMemory(), nil),
		progress.WithClock(fc), progress.WithLocation(time.UTC))
	op := &stubOpener{}
	p, err := New(testConfig(), r, prog, op, WithClock(fc))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(p.Close)
	return p, fc, prog, op
}

func TestNew_EmptyScript(t *testing.T) {
	cfg := testConfig()
	cfg.Steps = nil
	_, err := New(cfg, plainRenderer, nil, nil)
	if !errors.Is(err, playback.ErrEmptyScript) {
		t.Fatalf("expected ErrEmptyScript, got %v", err)
	}
}

func TestPlayer_Title(t *testing.T) {
	p, _, _, _ := newTestPlayer(t, plainRenderer)
	if p.Title() != "Demo" {
		t.Errorf("expected title Demo, got %q", p.Title())
	}
}

func TestPlayer_SpaceTogglesPlayback(t *testing.T) {
	p, _, _, _ := newTestPlayer(t, plainRenderer)

	p.Update(specialKey(tea.KeySpace))
	if !p.Snapshot().IsRunning {
		t.Fatal("expected running after space")
	}
	p.Update(specialKey(tea.KeySpace))
	if p.Snapshot().IsRunning {
		t.Fatal("expected paused after second space")
	}
}

func TestPlayer_StepKeys(t *testing.T) {
	p, _, _, _ := newTestPlayer(t, plainRenderer)

	p.Update(specialKey(tea.KeyRight))
	p.Update(specialKey(tea.KeyRight))
	if got := p.Snapshot().ActiveIndex; got != 2 {
		t.Errorf("expected index 2, got %d", got)
	}
	p.Update(specialKey(tea.KeyLeft))
	if got := p.Snapshot().ActiveIndex; got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}
	p.Update(keyPress('r'))
	if got := p.Snapshot().ActiveIndex; got != 0 {
		t.Errorf("expected index 0 after restart, got %d", got)
	}
	p.Update(keyPress('3'))
	if got := p.Snapshot().ActiveIndex; got != 2 {
		t.Errorf("expected index 2 after seeking with 3, got %d", got)
	}
}

func TestPlayer_CompletionRecordsProgress(t *testing.T) {
	p, fc, prog, _ := newTestPlayer(t, plainRenderer)

	p.Update(specialKey(tea.KeySpace))
	fc.Advance(3 * time.Second)

	snap := p.Snapshot()
	if snap.IsRunning || snap.ActiveIndex != 2 {
		t.Fatalf("expected stopped at last step, got %+v", snap)
	}
	if !prog.GetProgress(context.Background(), "demo").Completed {
		t.Fatal("expected demo marked completed")
	}

	_, cmd := p.Update(frameMsg{id: p.id})
	if cmd == nil {
		t.Fatal("expected commands from frame")
	}
	if !containsMsg(cmd(), screen.ProgressChangedMsg{}) {
		t.Error("expected ProgressChangedMsg after completion")
	}

	// Drained: the next frame only re-ticks.
	_, cmd = p.Update(frameMsg{id: p.id})
	if msg := cmd(); containsMsg(msg, screen.ProgressChangedMsg{}) {
		t.Error("ProgressChangedMsg should be emitted once")
	}
}

func TestPlayer_StaleFrameIgnored(t *testing.T) {
	p, _, _, _ := newTestPlayer(t, plainRenderer)
	_, cmd := p.Update(frameMsg{id: p.id + 1000})
	if cmd != nil {
		t.Error("stale frame should not re-tick")
	}
}

func TestPlayer_ClosedStopsTimerAndFrames(t *testing.T) {
	p, fc, _, _ := newTestPlayer(t, plainRenderer)
	p.Update(specialKey(tea.KeySpace))
	if fc.Pending() != 1 {
		t.Fatalf("expected one pending timer, got %d", fc.Pending())
	}

	p.Close()
	if fc.Pending() != 0 {
		t.Errorf("expected timer cancelled on close, got %d pending", fc.Pending())
	}
	if _, cmd := p.Update(frameMsg{id: p.id}); cmd != nil {
		t.Error("closed screen should stop ticking")
	}
}

func TestPlayer_QuizKeyReplacesScreen(t *testing.T) {
	p, _, _, op := newTestPlayer(t, plainRenderer)

	_, cmd := p.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("expected a command from q")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "quiz demo" {
		t.Errorf("unexpected screen %q", msg.Screen.Title())
	}
	if len(op.quizSlugs) != 1 || op.quizSlugs[0] != "demo" {
		t.Errorf("opener calls = %v", op.quizSlugs)
	}
}

func TestPlayer_QuizKeyWithoutQuestions(t *testing.T) {
	cfg := testConfig()
	cfg.Quiz = nil
	p, err := New(cfg, plainRenderer, nil, &stubOpener{}, WithClock(clock.NewFake(start)))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if _, cmd := p.Update(keyPress('q')); cmd != nil {
		t.Error("q should do nothing without quiz questions")
	}
	for _, h := range p.KeyHints() {
		if h.Key == "Q" {
			t.Error("quiz hint should be hidden without questions")
		}
	}
}

func TestPlayer_RenderFaultFallbackAndRetry(t *testing.T) {
	broken := true
	r := viz.RendererFunc(func(viz.Props, int, int) string {
		if broken {
			panic("boom")
		}
		return "recovered drawing"
	})
	p, _, _, _ := newTestPlayer(t, r)

	view := ansi.Strip(p.View(80, 24))
	if !strings.Contains(view, "could not be drawn") {
		t.Fatalf("expected fallback, got:\n%s", view)
	}
	if !strings.Contains(view, "One.") {
		t.Error("step explanation should still show beside the fallback")
	}

	// Keys other than enter do not drive playback while the fallback shows.
	p.Update(specialKey(tea.KeyRight))
	if p.Snapshot().ActiveIndex != 0 {
		t.Error("step keys should be inert while the fallback is shown")
	}

	broken = false
	p.Update(specialKey(tea.KeyEnter))
	view = ansi.Strip(p.View(80, 24))
	if !strings.Contains(view, "recovered drawing") {
		t.Errorf("expected illustration after retry, got:\n%s", view)
	}
}

func TestPlayer_ViewShowsStep(t *testing.T) {
	p, _, _, _ := newTestPlayer(t, plainRenderer)
	p.Update(specialKey(tea.KeyRight))

	view := ansi.Strip(p.View(80, 24))
	for _, want := range []string{"Step 2/3 · Second", "Two.", "illustration step 1", "paused"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

// containsMsg reports whether msg, or any message produced by a batch,
// equals want. Tick commands in a batch resolve after one frame.
func containsMsg(msg tea.Msg, want tea.Msg) bool {
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil && containsMsg(c(), want) {
				return true
			}
		}
		return false
	}
	return msg == want
}
