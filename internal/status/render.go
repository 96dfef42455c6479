package status

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hitmandev/syscleanx/internal/ui"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(ui.ColorTextDim).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(ui.ColorText)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
)

// RenderText renders the snapshot as an aligned, colored report.
// reclaimable is the total cleanable size found by a scan; pass a negative
// value to omit the line.
func RenderText(m *Metrics, reclaimable int64) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("  " + ui.IconDiamond + " System Status"))
	s.WriteString("\n\n")

	row := func(label, value string) {
		s.WriteString("  ")
		s.WriteString(labelStyle.Render(label))
		s.WriteString(valueStyle.Render(value))
		s.WriteString("\n")
	}

	osName := m.OSCaption
	if osName == "" {
		osName = m.OSVersion
	} else {
		osName = fmt.Sprintf("%s — %s", osName, m.OSVersion)
	}
	row("Host", m.Hostname)
	row("OS", osName)
	row("Uptime", formatUptime(m.Uptime))
	if m.Elevated {
		row("Privileges", "Administrator")
	} else {
		row("Privileges", "Standard user")
	}

	s.WriteString("\n")
	cpuLabel := m.CPUModel
	if cpuLabel == "" {
		cpuLabel = "CPU"
	}
	if m.CPUCores > 0 {
		cpuLabel = fmt.Sprintf("%s (%d threads)", cpuLabel, m.CPUCores)
	}
	row("CPU", cpuLabel)
	row("CPU usage", fmt.Sprintf("%s %.0f%%", ui.GradientBar(m.CPUPercent, 20), m.CPUPercent))
	row("Memory", fmt.Sprintf("%s %.0f%%  (%s / %s)",
		ui.GradientBar(m.MemPercent, 20), m.MemPercent,
		ui.FormatSize(int64(m.MemUsed)), ui.FormatSize(int64(m.MemTotal))))

	if len(m.Disks) > 0 {
		s.WriteString("\n")
		for _, d := range m.Disks {
			row("Disk "+d.Mount, fmt.Sprintf("%s %.0f%%  (%s free of %s)",
				ui.GradientBar(d.UsedPercent, 20), d.UsedPercent,
				ui.FormatSize(int64(d.Free)), ui.FormatSize(int64(d.Total))))
		}
	}

	if reclaimable >= 0 {
		s.WriteString("\n")
		row("Cleanable", ui.FormatSize(reclaimable)+" across temp files and caches")
	}

	return s.String()
}

// RenderJSON renders the snapshot as indented JSON, with the reclaimable
// estimate attached when non-negative.
func RenderJSON(m *Metrics, reclaimable int64) (string, error) {
	type payload struct {
		*Metrics
		Reclaimable *int64 `json:"reclaimable_bytes,omitempty"`
	}
	p := payload{Metrics: m}
	if reclaimable >= 0 {
		p.Reclaimable = &reclaimable
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode status: %w", err)
	}
	return string(data), nil
}

// formatUptime renders a duration as "3d 4h 12m".
func formatUptime(d time.Duration) string {
	if d <= 0 {
		return "unknown"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
