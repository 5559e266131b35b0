package player

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vizlearn/internal/clock"
	"github.com/abhisek/vizlearn/internal/playback"
	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/registry"
	"github.com/abhisek/vizlearn/internal/router"
	"github.com/abhisek/vizlearn/internal/screen"
	"github.com/abhisek/vizlearn/internal/ui/layout"
	"github.com/abhisek/vizlearn/internal/viz"
)

const frameInterval = 80 * time.Millisecond

// PlayerScreen plays one visualization's step script next to its
// illustration.
type PlayerScreen struct {
	id       uint64
	cfg      registry.Config
	engine   *playback.Engine
	renderer viz.Renderer
	progress *progress.Store
	opener   screen.Opener
	logger   *slog.Logger

	// changed is set from the engine's completion callback, which may run
	// on a timer goroutine, and drained on the next frame.
	changed atomic.Bool

	renderErr error
	closed    bool
}

var _ screen.Screen = (*PlayerScreen)(nil)
var _ screen.KeyHintProvider = (*PlayerScreen)(nil)
var _ screen.Closer = (*PlayerScreen)(nil)

// Option configures a PlayerScreen.
type Option func(*options)

type options struct {
	clock  clock.Clock
	logger *slog.Logger
}

// WithClock sets the clock that drives auto-advance.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a PlayerScreen for cfg drawn by r. prog and opener may be nil.
func New(cfg registry.Config, r viz.Renderer, prog *progress.Store, opener screen.Opener, opts ...Option) (*PlayerScreen, error) {
	o := options{clock: clock.Real(), logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	p := &PlayerScreen{
		id:       nextID(),
		cfg:      cfg,
		renderer: r,
		progress: prog,
		opener:   opener,
		logger:   o.logger.With("slug", cfg.Slug),
	}

	engine, err := playback.New(cfg.Steps,
		playback.WithClock(o.clock),
		playback.OnComplete(p.onComplete),
	)
	if err != nil {
		return nil, err
	}
	p.engine = engine
	return p, nil
}

// onComplete runs whenever playback reaches the final step.
func (p *PlayerScreen) onComplete() {
	p.logger.Info("visualization completed")
	if p.progress != nil {
		p.progress.MarkCompleted(context.Background(), p.cfg.Slug)
	}
	p.changed.Store(true)
}

func (p *PlayerScreen) Init() tea.Cmd {
	return p.tick()
}

func (p *PlayerScreen) tick() tea.Cmd {
	id := p.id
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

func (p *PlayerScreen) Title() string {
	return p.cfg.Title
}

func (p *PlayerScreen) KeyHints() []layout.KeyHint {
	if p.renderErr != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	play := "Play"
	if p.engine.State().IsRunning() {
		play = "Pause"
	}
	hints := []layout.KeyHint{
		{Key: "Space", Description: play},
		{Key: "←→", Description: "Step"},
		{Key: "R", Description: "Restart"},
	}
	if len(p.cfg.Quiz) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Q", Description: "Quiz"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (p *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != p.id || p.closed {
			return p, nil
		}
		cmds := []tea.Cmd{p.tick()}
		if p.changed.Swap(false) {
			cmds = append(cmds, func() tea.Msg { return screen.ProgressChangedMsg{} })
		}
		return p, tea.Batch(cmds...)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PlayerScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	// Playback keys are inert while the fallback is shown.
	if p.renderErr != nil {
		if k := msg.String(); k == "enter" || k == "r" {
			p.renderErr = nil
		}
		return p, nil
	}

	key := msg.String()
	switch key {
	case "space", " ":
		p.engine.Toggle()
	case "left", "h":
		p.engine.Prev()
	case "right", "l":
		p.engine.Next()
	case "r":
		p.engine.Reset()
	case "q":
		return p, p.openQuiz()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			p.engine.Seek(int(key[0] - '1'))
		}
	}
	return p, nil
}

func (p *PlayerScreen) openQuiz() tea.Cmd {
	if p.opener == nil || len(p.cfg.Quiz) == 0 {
		return nil
	}
	s, err := p.opener.Quiz(p.cfg.Slug)
	if err != nil {
		p.logger.Warn("open quiz failed", "err", err)
		return nil
	}
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

// Close stops playback. Called by the router when the screen leaves the
// stack.
func (p *PlayerScreen) Close() {
	p.closed = true
	p.engine.Close()
}

// Snapshot exposes the engine state for tests and callers embedding the
// screen.
func (p *PlayerScreen) Snapshot() playback.Snapshot {
	return p.engine.Snapshot()
}
