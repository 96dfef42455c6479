package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─── Color tokens ────────────────────────────────────────────────────────────

// Shared palette. Adaptive colors keep the TUI readable on both light and
// dark terminal backgrounds.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}
	ColorTextDim = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconBullet   = "•"
	IconChevron  = "›"
	IconCheck    = "✓"
	IconCross    = "✗"
	IconFolder   = "▸ "
	IconDiamond  = "◆"
	IconCheckbox = "[ ]"
	IconChecked  = "[x]"
)

// ─── Formatting helpers ──────────────────────────────────────────────────────

// FormatSize renders a byte count as a human-readable string using binary
// units (KB = 1024). Sizes below 10 units keep one decimal place.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(bytes) / float64(div)
	suffix := "KMGTPE"[exp : exp+1]
	if value < 10 {
		return fmt.Sprintf("%.1f %sB", value, suffix)
	}
	return fmt.Sprintf("%.0f %sB", value, suffix)
}

// FormatCount renders a file count with a thousands separator.
func FormatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// GradientBar renders a horizontal usage bar of the given width for a
// percentage in [0,100]. The fill color shifts from green through yellow
// to red as the percentage grows.
func GradientBar(pct float64, width int) string {
	if width < 1 {
		width = 1
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}

	color := ColorSuccess
	switch {
	case pct >= 85:
		color = ColorError
	case pct >= 60:
		color = ColorWarning
	}

	fill := lipgloss.NewStyle().Foreground(color).
		Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(ColorMuted).
		Render(strings.Repeat("░", width-filled))
	return fill + rest
}
