package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/screens/welcome"
	"github.com/abhisek/vizlearn/internal/ui/theme"
)

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := welcome.BannerArt
	if compact || cw < welcome.BannerWidth {
		art = welcome.BannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(strings.TrimPrefix(art, "\n")))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(stats progress.Stats, total, cw int, compact bool) string {
	watchedStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	streak := dimStyle.Render("🔥 0")
	if stats.Streak > 0 {
		streak = streakStyle.Render(fmt.Sprintf("🔥 %d", stats.Streak))
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s %s",
			watchedStyle.Render(fmt.Sprintf("★%d/%d", stats.TotalVisualized, total)),
			quizStyle.Render(fmt.Sprintf("✎%d", stats.TotalQuizCompleted)),
			scoreStyle.Render(fmt.Sprintf("◎%d%%", stats.AverageScore)),
			streak,
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s  %s",
			watchedStyle.Render(fmt.Sprintf("★ %d/%d WATCHED", stats.TotalVisualized, total)),
			quizStyle.Render(fmt.Sprintf("✎ %d QUIZZES", stats.TotalQuizCompleted)),
			scoreStyle.Render(fmt.Sprintf("◎ %d%% AVG", stats.AverageScore)),
			streak,
		)
	}

	// Wrap in a double-border box at the same content width
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// renderDescription renders the selected item's description under the menu.
func renderDescription(desc string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(desc)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderStorageNote warns that progress will not survive a restart.
func renderStorageNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Storage unavailable: progress is kept for this session only")
}
