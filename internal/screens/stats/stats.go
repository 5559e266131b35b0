package stats

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/registry"
	"github.com/abhisek/vizlearn/internal/screen"
	"github.com/abhisek/vizlearn/internal/ui/layout"
	"github.com/abhisek/vizlearn/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats   progress.Stats
	Records map[string]progress.Progress
}

type resetDoneMsg struct{}

// StatsScreen displays per-visualization progress and lets the learner
// wipe it.
type StatsScreen struct {
	prog       *progress.Store
	configs    []registry.Config
	stats      progress.Stats
	records    map[string]progress.Progress
	selected   int
	expanded   map[int]bool
	loaded     bool
	confirming bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(prog *progress.Store, configs []registry.Config) *StatsScreen {
	return &StatsScreen{
		prog:     prog,
		configs:  configs,
		expanded: make(map[int]bool),
	}
}

func (s *StatsScreen) load() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return statsLoadedMsg{
			Stats:   s.prog.GetStats(ctx),
			Records: s.prog.All(ctx),
		}
	}
}

func (s *StatsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "X", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.stats = msg.Stats
		s.records = msg.Records
		s.loaded = true
		return s, nil

	case resetDoneMsg:
		return s, tea.Batch(
			s.load(),
			func() tea.Msg { return screen.ProgressChangedMsg{} },
		)

	case screen.ProgressChangedMsg:
		return s, s.load()

	case tea.KeyMsg:
		if s.confirming {
			s.confirming = false
			if msg.String() == "y" {
				prog := s.prog
				return s, func() tea.Msg {
					prog.ResetProgress(context.Background())
					return resetDoneMsg{}
				}
			}
			return s, nil
		}

		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.configs)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "x":
			s.confirming = true
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}

	var b strings.Builder
	b.WriteString("\n")

	summary := fmt.Sprintf("%d/%d watched  ·  %d quizzes  ·  %d%% average  ·  🔥 %d",
		s.stats.TotalVisualized, len(s.configs), s.stats.TotalQuizCompleted,
		s.stats.AverageScore, s.stats.Streak)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(summary)))
	b.WriteString("\n\n")

	for i, c := range s.configs {
		p := s.records[c.Slug]

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		watched := "·"
		if p.Completed {
			watched = "✓"
		}
		score := "no quiz yet"
		if p.QuizScore != nil && p.QuizTotal != nil {
			score = fmt.Sprintf("best %d/%d", *p.QuizScore, *p.QuizTotal)
		}
		line := fmt.Sprintf("%s%s %s %-28s %s", prefix, watched, c.Icon, c.Title, score)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(categoryColor(c.Category)).Italic(true).
					Render(detailLine(c, p))))
			b.WriteString("\n")
		}
	}

	if s.confirming {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render("Reset all progress and the streak? (y/n)")))
	}

	return b.String()
}

func detailLine(c registry.Config, p progress.Progress) string {
	var parts []string
	parts = append(parts, c.Category)
	if p.CompletedAt != nil {
		parts = append(parts, "watched "+p.CompletedAt.Format("Jan 02, 2006"))
	}
	if p.Attempts > 0 {
		parts = append(parts, fmt.Sprintf("%d quiz attempt%s", p.Attempts, plural(p.Attempts)))
	}
	return "    " + strings.Join(parts, "  ·  ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func categoryColor(category string) color.Color {
	switch category {
	case "physics":
		return theme.Accent
	case "protocol":
		return theme.Secondary
	case "programming":
		return theme.Primary
	default:
		return theme.TextDim
	}
}
