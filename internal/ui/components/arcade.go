package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vizlearn/internal/ui/theme"
)

const (
	minContentWidth = 20
	maxContentWidth = 66
	// cabinet border (2) plus inner padding (4)
	cabinetInset = 6
)

// ContentWidth is the shared inner width of every section drawn inside a
// cabinet of the given width.
func ContentWidth(frameWidth int) int {
	return min(maxContentWidth, max(minContentWidth, frameWidth-cabinetInset))
}

// CabinetFrame centers content inside a double border filling width x height.
func CabinetFrame(content string, width, height int, border color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card draws content in a rounded box cw columns wide.
func Card(content string, cw int, border color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ButtonRow lays out labels side by side, splitting cw evenly. The
// selected button is filled.
func ButtonRow(labels []string, selected, cw int) string {
	if len(labels) == 0 {
		return ""
	}
	w := max(10, (cw-4)/len(labels))
	buttons := make([]string, len(labels))
	for i, label := range labels {
		buttons[i] = button(label, i == selected, w)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}

func button(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if selected {
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	}
	return style.
		Foreground(theme.Text).
		BorderForeground(theme.Border).
		Render(label)
}
