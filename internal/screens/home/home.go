package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/registry"
	"github.com/abhisek/vizlearn/internal/router"
	"github.com/abhisek/vizlearn/internal/screen"
	"github.com/abhisek/vizlearn/internal/screens/stats"
	"github.com/abhisek/vizlearn/internal/ui/components"
	"github.com/abhisek/vizlearn/internal/ui/layout"
	"github.com/abhisek/vizlearn/internal/ui/theme"
)

// homeLoadedMsg carries the progress data shown on the home screen.
type homeLoadedMsg struct {
	stats   progress.Stats
	records map[string]progress.Progress
	today   string
}

// Options are the home screen's dependencies. Progress, Opener and
// UsingFallback may be nil.
type Options struct {
	Configs       []registry.Config
	Progress      *progress.Store
	Opener        screen.Opener
	UsingFallback func() bool
}

// HomeScreen lists the visualizations with the learner's progress.
type HomeScreen struct {
	opts          Options
	menu          components.Menu
	stats         progress.Stats
	records       map[string]progress.Progress
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}
	h.rebuildMenu()
	return h
}

func (h *HomeScreen) rebuildMenu() {
	selected := h.menu.Selected

	items := make([]components.MenuItem, 0, len(h.opts.Configs)+2)
	for _, c := range h.opts.Configs {
		slug := c.Slug
		items = append(items, components.MenuItem{
			Label:  c.Icon + " " + c.Title,
			Status: statusText(h.records[slug]),
			Action: func() tea.Cmd { return h.open(slug) },
		})
	}

	items = append(items, components.MenuItem{Label: "📊 STATS", Action: func() tea.Cmd {
		if h.opts.Progress == nil {
			return nil
		}
		s := stats.New(h.opts.Progress, h.opts.Configs)
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}})

	items = append(items, components.MenuItem{Label: "⏻ EXIT", Action: func() tea.Cmd {
		return tea.Quit
	}})

	h.menu = components.NewMenu(items)
	h.menu.Select(selected)
}

// statusText summarizes one record: a check once watched, then the best
// quiz score.
func statusText(p progress.Progress) string {
	var parts []string
	if p.Completed {
		parts = append(parts, "✓")
	}
	if p.QuizScore != nil && p.QuizTotal != nil {
		parts = append(parts, fmt.Sprintf("%d/%d", *p.QuizScore, *p.QuizTotal))
	}
	return strings.Join(parts, " ")
}

func (h *HomeScreen) open(slug string) tea.Cmd {
	if h.opts.Opener == nil {
		return nil
	}
	s, err := h.opts.Opener.Player(slug)
	if err != nil {
		return nil
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) load() tea.Cmd {
	prog := h.opts.Progress
	if prog == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		return homeLoadedMsg{
			stats:   prog.GetStats(ctx),
			records: prog.All(ctx),
			today:   prog.Today(),
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Q", Description: "Quiz"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		h.stats = msg.stats
		h.records = msg.records
		h.mascotVariant = mascotFor(msg.stats, msg.today)
		h.rebuildMenu()
		return h, nil

	case screen.ProgressChangedMsg:
		return h, h.load()

	case tea.KeyMsg:
		// q jumps straight to the selected visualization's quiz.
		if msg.String() == "q" {
			return h, h.openQuiz()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) openQuiz() tea.Cmd {
	i := h.menu.Selected
	if h.opts.Opener == nil || i >= len(h.opts.Configs) || len(h.opts.Configs[i].Quiz) == 0 {
		return nil
	}
	s, err := h.opts.Opener.Quiz(h.opts.Configs[i].Slug)
	if err != nil {
		return nil
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}

	if h.opts.UsingFallback != nil && h.opts.UsingFallback() {
		sections = append(sections, renderStorageNote(cw))
	}

	sections = append(sections, renderStatsBar(h.stats, len(h.opts.Configs), cw, compact))

	menu := h.menu.View(cw)
	if i := h.menu.Selected; i < len(h.opts.Configs) {
		menu += "\n\n" + renderDescription(h.opts.Configs[i].Description, cw)
	}
	sections = append(sections, menu)

	content := strings.Join(sections, "\n\n")

	// The cabinet turns orange while progress is session-only.
	border := theme.Primary
	if h.opts.UsingFallback != nil && h.opts.UsingFallback() {
		border = theme.Accent
	}
	return components.CabinetFrame(content, width, height, border)
}

// Selected returns the index of the highlighted menu row.
func (h *HomeScreen) Selected() int {
	return h.menu.Selected
}
