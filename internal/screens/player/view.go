package player

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vizlearn/internal/playback"
	"github.com/abhisek/vizlearn/internal/ui/components"
	"github.com/abhisek/vizlearn/internal/ui/theme"
	"github.com/abhisek/vizlearn/internal/viz"
)

// stepPanelHeight is the rows reserved below the illustration for the
// step title, explanation and progress bar.
const stepPanelHeight = 9

func (p *PlayerScreen) View(width, height int) string {
	snap := p.engine.Snapshot()
	accent := theme.Named(p.cfg.Color)

	cw := max(20, width-4)
	illoHeight := max(3, height-stepPanelHeight-2)

	var sections []string
	sections = append(sections, p.renderIllustration(snap, cw, illoHeight))
	sections = append(sections, renderDots(snap, accent))
	sections = append(sections, renderStep(snap, accent, cw))

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(strings.Join(sections, "\n"))
}

func (p *PlayerScreen) renderIllustration(snap playback.Snapshot, width, height int) string {
	if p.renderErr == nil {
		out, err := viz.SafeRender(p.renderer, viz.Props{
			ActiveStepIndex: snap.ActiveIndex,
			IsRunning:       snap.IsRunning,
		}, width, height)
		if err == nil {
			return out
		}
		p.renderErr = err
		p.logger.Error("render failed", "err", err)
	}
	return renderFallback(width, height)
}

func renderFallback(width, height int) string {
	msg := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
		Render("⚠ This visualization could not be drawn.")
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("You can still read the steps below, or try again.")
	retry := components.ButtonRow([]string{"RETRY"}, 0, components.ContentWidth(width)/2)
	content := lipgloss.JoinVertical(lipgloss.Center, msg, "", hint, "", retry)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderDots draws one marker per step; the active one is filled.
func renderDots(snap playback.Snapshot, accent color.Color) string {
	var b strings.Builder
	for i := range snap.StepCount {
		if i > 0 {
			b.WriteString(" ")
		}
		switch {
		case i == snap.ActiveIndex:
			b.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render("●"))
		case i < snap.ActiveIndex:
			b.WriteString(lipgloss.NewStyle().Foreground(accent).Render("•"))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("○"))
		}
	}
	return b.String()
}

func renderStep(snap playback.Snapshot, accent color.Color, width int) string {
	title := lipgloss.NewStyle().Foreground(accent).Bold(true).
		Render(fmt.Sprintf("Step %d/%d · %s", snap.ActiveIndex+1, snap.StepCount, snap.Step.Title))

	explanation := lipgloss.NewStyle().Foreground(theme.Text).Width(width).
		Render(snap.Step.Explanation)

	status := "⏸ paused"
	switch {
	case snap.IsRunning:
		status = "▶ playing"
	case snap.AtEnd():
		status = "✓ done"
	}
	bar := components.NewProgressBar(status, snap.Progress(), false, width)
	bar.Fill = accent

	return title + "\n\n" + explanation + "\n\n" + bar.View()
}
