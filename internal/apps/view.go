package apps

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/hitmandev/syscleanx/internal/ui"
)

func (m Model) renderView() string {
	if m.quitting {
		return ""
	}
	w := m.width
	if w < 50 {
		w = 50
	}

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")

	if m.loading {
		s.WriteString("  " + m.spin.View() + " " +
			lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render("Loading applications…"))
	} else if m.err != nil {
		s.WriteString(lipgloss.NewStyle().
			Foreground(ui.ColorError).
			Render("  Could not read installed applications: " + m.err.Error()))
	} else {
		s.WriteString(m.renderList())
	}

	s.WriteString("\n")
	s.WriteString(m.renderStatus())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model) renderHeader(w int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Render("  " + ui.IconDiamond + " Application Uninstaller")

	var sub string
	if m.searching || m.searchQuery != "" {
		sub = "search: " + m.searchQuery
		if m.searching {
			sub += "█"
		}
	} else {
		order := "name"
		if m.sortSize {
			order = "size"
		}
		sub = fmt.Sprintf("%s shown · sorted by %s", ui.FormatCount(len(m.filtered)), order)
	}
	subtitle := lipgloss.NewStyle().
		Foreground(ui.ColorTextDim).
		Render("  " + sub)

	inner := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Width(w - 2).
		Render(inner)
}

func (m Model) renderList() string {
	if len(m.filtered) == 0 {
		return lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render("  (no matching applications)")
	}

	vh := m.viewportHeight()
	nameWidth := m.width - 36
	if nameWidth < 20 {
		nameWidth = 20
	}

	var lines []string
	for i := m.offset; i < len(m.filtered) && i < m.offset+vh; i++ {
		app := m.filtered[i]

		cursor := "  "
		nameStyle := lipgloss.NewStyle().Foreground(ui.ColorText)
		if i == m.cursor {
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render(ui.IconChevron + " ")
			nameStyle = nameStyle.Bold(true)
		}

		name := truncateName(app.Name, nameWidth)

		size := ""
		if app.EstimatedSize > 0 {
			size = ui.FormatSize(app.EstimatedSize)
		}

		line := fmt.Sprintf("%s%s %s %s",
			cursor,
			nameStyle.Width(nameWidth).Render(name),
			lipgloss.NewStyle().Foreground(ui.ColorTextDim).Width(12).Render(app.Version),
			lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(size))
		lines = append(lines, line)
	}

	if len(m.filtered) > vh {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render(fmt.Sprintf("  ── %d/%d apps ──", min(m.offset+vh, len(m.filtered)), len(m.filtered))))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	return "    " + lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(m.status)
}

func (m Model) renderFooter() string {
	keys := "enter uninstall · / search · s sort · r refresh · tab cleaner · q quit"
	if m.searching {
		keys = "type to filter · enter keep · esc clear"
	}
	return lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Render("  " + keys)
}

// truncateName fits a name into n columns, measured in runes so that
// multi-byte names are not cut early.
func truncateName(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return truncate(s, n-1) + "…"
}

// truncate cuts a string to at most n runes without splitting one.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
