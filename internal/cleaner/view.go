package cleaner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hitmandev/syscleanx/internal/ui"
)

var (
	clrTitle    = ui.ColorPrimary
	clrSelected = ui.ColorSuccess
	clrDisabled = ui.ColorMuted
	clrAdmin    = ui.ColorWarning
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
	s.WriteString(m.renderList(w))
	s.WriteString("\n")
	s.WriteString(m.renderStatus())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model) renderHeader(w int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(clrTitle).
		Render("  " + ui.IconDiamond + " SysCleanX")

	sub := "System cleaner"
	if !m.elev {
		sub += "  ·  standard user (system targets need admin)"
	}
	subtitle := lipgloss.NewStyle().
		Foreground(ui.ColorTextDim).
		Render("  " + sub)

	inner := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(clrTitle).
		Width(w - 2).
		Render(inner)
}

func (m Model) renderList(w int) string {
	vh := m.viewportHeight()
	var lines []string

	for i := m.offset; i < len(m.items) && i < m.offset+vh; i++ {
		lines = append(lines, m.renderItem(i, i == m.cursor))
	}

	if len(m.items) > vh {
		hint := lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render(fmt.Sprintf("  ── %d/%d targets ──", min(m.offset+vh, len(m.items)), len(m.items)))
		lines = append(lines, hint)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderItem(i int, selected bool) string {
	it := m.items[i]

	cursor := "  "
	if selected {
		cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render(ui.IconChevron + " ")
	}

	box := ui.IconCheckbox
	boxStyle := lipgloss.NewStyle().Foreground(ui.ColorTextDim)
	if it.selected {
		box = ui.IconChecked
		boxStyle = lipgloss.NewStyle().Foreground(clrSelected)
	}

	var label string
	nameStyle := lipgloss.NewStyle().Foreground(ui.ColorText)
	switch {
	case !it.scanned:
		label = fmt.Sprintf("%s  (scanning…)", it.target.Name)
		nameStyle = nameStyle.Foreground(clrDisabled)
	case it.result.Files == 0:
		label = fmt.Sprintf("%s  (empty)", it.target.Name)
		nameStyle = nameStyle.Foreground(clrDisabled)
		boxStyle = boxStyle.Foreground(clrDisabled)
	default:
		label = fmt.Sprintf("%s  (%s files, %s)",
			it.target.Name, ui.FormatCount(int(it.result.Files)), ui.FormatSize(it.result.Bytes))
	}

	line := cursor + boxStyle.Render(box) + " " + nameStyle.Render(label)

	if it.target.RequiresAdmin && !m.elev {
		line += lipgloss.NewStyle().Foreground(clrAdmin).Render("  admin")
	}
	return line
}

func (m Model) renderStatus() string {
	style := lipgloss.NewStyle().Foreground(ui.ColorTextDim)
	if m.phase == phaseCleaning && m.cleanTotal > 0 {
		return "  " + m.spin.View() + " " + style.Render(m.status) + "\n  " +
			m.prog.ViewAs(float64(m.cleanDone)/float64(m.cleanTotal))
	}
	if m.phase == phaseScanning || m.phase == phaseCleaning {
		return "  " + m.spin.View() + " " + style.Render(m.status)
	}
	if m.phase == phaseDone {
		style = style.Foreground(ui.ColorSuccess)
	}
	return "    " + style.Render(m.status)
}

func (m Model) renderFooter() string {
	var keys string
	switch m.phase {
	case phaseSelect:
		keys = "space toggle · a all · enter clean · r rescan · tab apps · q quit"
	case phaseDone:
		keys = "r scan again · tab apps · q quit"
	default:
		keys = "q quit"
	}
	return lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Render("  " + keys)
}
