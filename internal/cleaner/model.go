package cleaner

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/hitmandev/syscleanx/internal/clean"
	"github.com/hitmandev/syscleanx/internal/config"
	"github.com/hitmandev/syscleanx/internal/scan"
	"github.com/hitmandev/syscleanx/internal/ui"
)

// phase tracks where the cleaner view is in its scan → select → clean flow.
type phase int

const (
	phaseScanning phase = iota
	phaseSelect
	phaseCleaning
	phaseDone
)

// item is one clean target with its scan result and selection state.
type item struct {
	target   config.CleanTarget
	result   scan.Result
	scanned  bool
	selected bool
}

// ─── Messages ────────────────────────────────────────────────────────────────

type targetScannedMsg struct {
	index  int
	result scan.Result
}

type targetCleanedMsg struct {
	index  int
	result clean.Result
}

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea model for the interactive cleaner view. It scans
// every target on startup, lets the user toggle targets, then cleans the
// selection.
type Model struct {
	engine  *clean.Engine
	items   []item
	cursor  int
	offset  int
	phase   phase
	spin    spinner.Model
	prog    progress.Model
	width   int
	height  int
	status  string
	elev    bool
	cleaned int64 // files removed across the run
	freed   int64 // bytes freed across the run
	errs    []error

	// cleanQueue holds indices of selected items still to clean;
	// cleanDone/cleanTotal drive the progress bar.
	cleanQueue []int
	cleanDone  int
	cleanTotal int
	quitting   bool
}

// New creates the cleaner model over the given engine and targets.
func New(engine *clean.Engine, targets []config.CleanTarget, elevated bool) Model {
	items := make([]item, len(targets))
	for i, t := range targets {
		items[i] = item{target: t}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(ui.ColorPrimary)

	return Model{
		engine: engine,
		items:  items,
		spin:   sp,
		prog:   progress.New(progress.WithDefaultGradient()),
		width:  80,
		height: 24,
		elev:   elevated,
		status: "Scanning…",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.scanTarget(0))
}

// scanTarget sizes one target off the UI goroutine.
func (m Model) scanTarget(index int) tea.Cmd {
	t := m.items[index].target
	engine := m.engine
	return func() tea.Msg {
		return targetScannedMsg{index: index, result: engine.ScanTarget(t)}
	}
}

// cleanTarget cleans one target off the UI goroutine.
func (m Model) cleanTarget(index int) tea.Cmd {
	t := m.items[index].target
	engine := m.engine
	return func() tea.Msg {
		return targetCleanedMsg{index: index, result: engine.CleanTarget(t)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseScanning && m.phase != phaseCleaning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case targetScannedMsg:
		m.items[msg.index].result = msg.result
		m.items[msg.index].scanned = true
		// Pre-select anything worth cleaning; empty targets stay off.
		m.items[msg.index].selected = msg.result.Files > 0

		next := msg.index + 1
		if next < len(m.items) {
			m.status = "Scanning: " + m.items[next].target.Name
			return m, m.scanTarget(next)
		}
		m.phase = phaseSelect
		files, bytes := m.totals(true)
		if files == 0 {
			m.status = "Nothing to clean."
		} else {
			m.status = "Found " + ui.FormatCount(int(files)) + " files (" + ui.FormatSize(bytes) + ") to clean."
		}
		return m, nil

	case targetCleanedMsg:
		res := msg.result
		m.cleanDone++
		m.cleaned += res.FilesRemoved
		m.freed += res.BytesFreed
		m.errs = append(m.errs, res.Errs...)
		m.items[msg.index].result = scan.Result{}
		m.items[msg.index].selected = false

		if len(m.cleanQueue) > 0 {
			next := m.cleanQueue[0]
			m.cleanQueue = m.cleanQueue[1:]
			m.status = "Cleaning: " + m.items[next].target.Name
			return m, m.cleanTarget(next)
		}

		m.phase = phaseDone
		m.status = "Cleaned " + ui.FormatCount(int(m.cleaned)) + " files, freed " + ui.FormatSize(m.freed) + "."
		if len(m.errs) > 0 {
			m.status += " (" + ui.FormatCount(len(m.errs)) + " items skipped)"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	// Navigation and selection only make sense between operations.
	if m.phase == phaseScanning || m.phase == phaseCleaning {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.ensureVisible()
		}

	case " ":
		if m.phase == phaseSelect {
			it := &m.items[m.cursor]
			if it.result.Files > 0 {
				it.selected = !it.selected
			}
		}

	case "a":
		if m.phase == phaseSelect {
			all := true
			for _, it := range m.items {
				if it.result.Files > 0 && !it.selected {
					all = false
					break
				}
			}
			for i := range m.items {
				if m.items[i].result.Files > 0 {
					m.items[i].selected = !all
				}
			}
		}

	case "enter":
		if m.phase != phaseSelect {
			return m, nil
		}
		var queue []int
		for i, it := range m.items {
			if it.selected && it.result.Files > 0 {
				queue = append(queue, i)
			}
		}
		if len(queue) == 0 {
			m.status = "Select at least one item to clean."
			return m, nil
		}
		first := queue[0]
		m.cleanQueue = queue[1:]
		m.cleanDone, m.cleanTotal = 0, len(queue)
		m.cleaned, m.freed, m.errs = 0, 0, nil
		m.phase = phaseCleaning
		m.status = "Cleaning: " + m.items[first].target.Name
		return m, tea.Batch(m.spin.Tick, m.cleanTarget(first))

	case "r":
		// Rescan from scratch (Done phase offers "Scan Again").
		for i := range m.items {
			m.items[i].result = scan.Result{}
			m.items[i].scanned = false
			m.items[i].selected = false
		}
		m.phase = phaseScanning
		m.status = "Scanning: " + m.items[0].target.Name
		return m, tea.Batch(m.spin.Tick, m.scanTarget(0))
	}

	return m, nil
}

// View delegates to view.go.
func (m Model) View() string {
	return m.renderView()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// totals sums scanned files/bytes, optionally only for selected items.
func (m Model) totals(selectedOnly bool) (files, bytes int64) {
	for _, it := range m.items {
		if selectedOnly && !it.selected {
			continue
		}
		files += it.result.Files
		bytes += it.result.Bytes
	}
	return files, bytes
}

func (m *Model) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m Model) viewportHeight() int {
	h := m.height - 9 // header + status + footer
	if h < 1 {
		h = 1
	}
	return h
}
