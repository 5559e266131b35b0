package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vizlearn/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that hold resources, such as a running
// playback timer. The router calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// Opener builds the screens for one visualization so that screens can
// navigate to each other without importing each other.
type Opener interface {
	// Player opens the step-by-step playback for slug.
	Player(slug string) (Screen, error)
	// Quiz opens the quiz for slug.
	Quiz(slug string) (Screen, error)
}

// ProgressChangedMsg is emitted after a screen records progress, so that
// views showing stats can refresh.
type ProgressChangedMsg struct{}
