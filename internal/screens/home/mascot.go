package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: active today
	MascotAlert                            // Orange, exclamation: streak at risk
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ▶ ▮▮│
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ▶ ▮▮│
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ▶ ▮▮│
└─────┘`

// mascotFor picks the mascot mood: celebrating once the learner has been
// active today, alert while a streak would break tomorrow.
func mascotFor(stats progress.Stats, today string) MascotVariant {
	switch {
	case stats.LastActivityDate == today && today != "":
		return MascotCelebrating
	case stats.Streak > 0:
		return MascotAlert
	}
	return MascotIdle
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant MascotVariant) string {
	var art string
	var fg = theme.Primary

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
