package viz

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vizlearn/internal/ui/theme"
)

func fg(c color.Color) *lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(c)
	return &s
}

var (
	stDim     = fg(theme.TextDim)
	stText    = fg(theme.Text)
	stBorder  = fg(theme.Border)
	stActive  = fg(theme.ArcadeCyan)
	stPacket  = fg(theme.ArcadeYellow)
	stOK      = fg(theme.Success)
	stBad     = fg(theme.Error)
	stAccent  = fg(theme.Accent)
	stPrimary = fg(theme.Primary)
	stBlue    = fg(theme.Blue)
)
