package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vizlearn/internal/ui/theme"
)

// BannerArt is the block-letter title, also used on the home screen.
const BannerArt = `
 ██╗   ██╗██╗███████╗██╗     ███████╗ █████╗ ██████╗ ███╗   ██╗
 ██║   ██║██║╚══███╔╝██║     ██╔════╝██╔══██╗██╔══██╗████╗  ██║
 ██║   ██║██║  ███╔╝ ██║     █████╗  ███████║██████╔╝██╔██╗ ██║
 ╚██╗ ██╔╝██║ ███╔╝  ██║     ██╔══╝  ██╔══██║██╔══██╗██║╚██╗██║
  ╚████╔╝ ██║███████╗███████╗███████╗██║  ██║██║  ██║██║ ╚████║
   ╚═══╝  ╚═╝╚══════╝╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝`

// BannerCompact is the one-line fallback for narrow terminals.
const BannerCompact = "V · I · Z · L · E · A · R · N"

// BannerWidth is the widest row of BannerArt.
const BannerWidth = 63

// RenderBanner returns the VIZLEARN banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < BannerWidth+2 {
		return style.Render(BannerCompact)
	}
	return style.Render(BannerArt)
}
