package cleaner

import (
	"fmt"
	"io"
	"strings"

	"github.com/hitmandev/syscleanx/internal/config"
	"github.com/hitmandev/syscleanx/internal/scan"
	"github.com/hitmandev/syscleanx/internal/ui"
)

// PrintScanReport writes a plain-text scan summary. Used by `scx scan` and
// as the fallback when stdout is not a terminal and the interactive view
// cannot render.
func PrintScanReport(w io.Writer, targets []config.CleanTarget, results map[string]scan.Result) {
	fmt.Fprintf(w, "  %-22s %10s  %10s  %s\n", "TARGET", "FILES", "SIZE", "CATEGORY")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))

	var totalFiles, totalBytes int64
	for _, t := range targets {
		r := results[t.Name]
		totalFiles += r.Files
		totalBytes += r.Bytes

		size := ui.FormatSize(r.Bytes)
		if r.Files == 0 {
			size = "-"
		}
		admin := ""
		if t.RequiresAdmin {
			admin = " (admin)"
		}
		fmt.Fprintf(w, "  %-22s %10s  %10s  %s%s\n",
			t.Name, ui.FormatCount(int(r.Files)), size, t.Category, admin)
	}

	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	fmt.Fprintf(w, "  %-22s %10s  %10s\n",
		"TOTAL", ui.FormatCount(int(totalFiles)), ui.FormatSize(totalBytes))
}
