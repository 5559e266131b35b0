package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vizlearn/internal/ui/theme"
)

// MenuItem is one row of a Menu. Status is drawn right-aligned.
type MenuItem struct {
	Label  string
	Status string
	Action func() tea.Cmd
}

// Menu is a vertical list of full-width rows with one highlighted.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first row selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Select highlights row i if it exists.
func (m *Menu) Select(i int) {
	if i >= 0 && i < len(m.Items) {
		m.Selected = i
	}
}

// Update moves the highlight and runs the selected action on enter.
// Movement stops at either end.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Select(m.Selected - 1)
	case "down", "j":
		m.Select(m.Selected + 1)
	case "home", "g":
		m.Select(0)
	case "end", "G":
		m.Select(len(m.Items) - 1)
	case "enter":
		if m.Selected < len(m.Items) {
			if action := m.Items[m.Selected].Action; action != nil {
				return m, action()
			}
		}
	}
	return m, nil
}

// View renders every row padded to width.
func (m Menu) View(width int) string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		lines = append(lines, m.row(item, i == m.Selected, width))
	}
	return strings.Join(lines, "\n")
}

func (m Menu) row(item MenuItem, selected bool, width int) string {
	prefix := "   "
	if selected {
		prefix = " ▸ "
	}
	gap := max(1, width-lipgloss.Width(prefix+item.Label)-lipgloss.Width(item.Status)-1)
	text := prefix + item.Label + strings.Repeat(" ", gap) + item.Status + " "

	if selected {
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(text)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(text)
}
