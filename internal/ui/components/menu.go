package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/algebrix/algebrix/internal/ui/theme"
)

// MenuItem is one menu entry. Detail is shown dimmed after the label.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a single selection that skips disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move advances the selection to the next enabled item in direction dir,
// staying put at either end.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if m.Selected < len(m.Items) {
			if it := m.Items[m.Selected]; it.Action != nil && !it.Disabled {
				return m, it.Action()
			}
		}
	}
	return m, nil
}

func (m Menu) View() string {
	detail := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	for i, it := range m.Items {
		var line string
		switch {
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + it.Label)
		case it.Disabled:
			line = theme.Locked.Render("    " + it.Label)
		default:
			line = theme.Body.Render("    " + it.Label)
		}
		if it.Detail != "" {
			line += "  " + detail.Render(it.Detail)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
