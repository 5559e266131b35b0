package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vizlearn/internal/clock"
	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/registry"
	"github.com/abhisek/vizlearn/internal/router"
	"github.com/abhisek/vizlearn/internal/screen"
	"github.com/abhisek/vizlearn/internal/screens/home"
	"github.com/abhisek/vizlearn/internal/screens/welcome"
	"github.com/abhisek/vizlearn/internal/storage"
	"github.com/abhisek/vizlearn/internal/ui/layout"
)

// Start modes for Options.StartMode.
const (
	StartPlay = "play"
	StartQuiz = "quiz"
)

// Options configures the application.
type Options struct {
	Progress *progress.Store
	// Storage is consulted for the fallback warning on the home screen.
	// May be nil.
	Storage *storage.Adapter
	Clock   clock.Clock
	Logger  *slog.Logger

	// StartSlug opens a visualization on top of the home screen.
	StartSlug string
	// StartMode is StartPlay or StartQuiz. Empty means StartPlay.
	StartMode   string
	SkipWelcome bool
}

type streakLoadedMsg struct{ streak int }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initCmd tea.Cmd
	prog    *progress.Store
	streak  int
	width   int
	height  int
}

// New builds the root model: the welcome screen, or the home screen with
// the requested visualization pushed on top.
func New(opts Options) (AppModel, error) {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	op := &opener{prog: opts.Progress, clock: opts.Clock, logger: opts.Logger}

	newHome := func() screen.Screen {
		h := home.Options{
			Configs:  registry.GetAllConfigs(),
			Progress: opts.Progress,
			Opener:   op,
		}
		if opts.Storage != nil {
			h.UsingFallback = opts.Storage.UsingFallback
		}
		return home.New(h)
	}

	var root screen.Screen
	if opts.SkipWelcome || opts.StartSlug != "" {
		root = newHome()
	} else {
		root = welcome.New(newHome)
	}
	m := AppModel{
		router: router.New(root),
		prog:   opts.Progress,
	}
	cmds := []tea.Cmd{root.Init()}

	if opts.StartSlug != "" {
		var (
			s   screen.Screen
			err error
		)
		switch opts.StartMode {
		case "", StartPlay:
			s, err = op.Player(opts.StartSlug)
		case StartQuiz:
			s, err = op.Quiz(opts.StartSlug)
		default:
			err = fmt.Errorf("unknown start mode %q", opts.StartMode)
		}
		if err != nil {
			return AppModel{}, err
		}
		cmds = append(cmds, m.router.Push(s))
	}
	m.initCmd = tea.Batch(cmds...)
	return m, nil
}

func (m AppModel) loadStreak() tea.Cmd {
	prog := m.prog
	if prog == nil {
		return nil
	}
	return func() tea.Msg {
		return streakLoadedMsg{streak: prog.GetStats(context.Background()).Streak}
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.loadStreak(), m.initCmd)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case streakLoadedMsg:
		m.streak = msg.streak
		return m, nil

	case screen.ProgressChangedMsg:
		return m, tea.Batch(m.router.Broadcast(msg), m.loadStreak())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame, or nothing before the first window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.streak, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(0, m.height-headerHeight-footerHeight)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and closes every screen on exit.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.router.Close()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
