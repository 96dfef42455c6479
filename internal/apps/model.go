package apps

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/hitmandev/syscleanx/internal/ui"
	"github.com/hitmandev/syscleanx/internal/uninstall"
)

// ─── Messages ────────────────────────────────────────────────────────────────

type appsLoadedMsg struct {
	apps []uninstall.InstalledApp
	err  error
}

type launchResultMsg struct {
	name string
	err  error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea model for the installed-applications view: a
// filterable list read from the registry, where Enter launches the selected
// application's native uninstaller.
type Model struct {
	apps     []uninstall.InstalledApp // full list
	filtered []uninstall.InstalledApp // view after search filter
	cursor   int
	offset   int
	loading  bool
	spin     spinner.Model
	showAll  bool
	sortSize bool
	width    int
	height   int
	status   string
	err      error

	searching   bool
	searchQuery string

	quitting bool
}

// New creates the apps model. showAll includes system components and
// Windows updates in the listing; a non-empty query pre-filters the list
// as if the user had already typed a search.
func New(showAll bool, query string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(ui.ColorPrimary)

	return Model{
		spin:        sp,
		showAll:     showAll,
		searchQuery: query,
		loading:     true,
		width:       80,
		height:      24,
		status:      "Loading applications…",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, loadApps(m.showAll))
}

// loadApps reads the registry off the UI goroutine.
func loadApps(showAll bool) tea.Cmd {
	return func() tea.Msg {
		apps, err := uninstall.ListInstalledApps(showAll)
		return appsLoadedMsg{apps: apps, err: err}
	}
}

// launchApp starts the uninstaller off the UI goroutine.
func launchApp(app uninstall.InstalledApp) tea.Cmd {
	return func() tea.Msg {
		return launchResultMsg{name: app.Name, err: uninstall.LaunchUninstall(app)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case appsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.status = "Could not read installed applications."
			return m, nil
		}
		m.apps = msg.apps
		m.applyFilter()
		m.status = ui.FormatCount(len(m.apps)) + " applications"
		return m, nil

	case launchResultMsg:
		if msg.err != nil {
			m.status = "Failed to launch uninstaller for " + msg.name + ": " + msg.err.Error()
		} else {
			m.status = "Launched uninstaller for " + msg.name + ". Press r to refresh when it finishes."
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input captures printable keys.
	if m.searching {
		switch msg.Type {
		case tea.KeyEscape:
			m.searching = false
			m.searchQuery = ""
			m.applyFilter()
			return m, nil
		case tea.KeyEnter:
			m.searching = false
			return m, nil
		case tea.KeyBackspace:
			if len(m.searchQuery) > 0 {
				_, size := utf8.DecodeLastRuneInString(m.searchQuery)
				m.searchQuery = m.searchQuery[:len(m.searchQuery)-size]
				m.applyFilter()
			}
			return m, nil
		case tea.KeyRunes, tea.KeySpace:
			m.searchQuery += string(msg.Runes)
			m.applyFilter()
			return m, nil
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				m.ensureVisible()
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.ensureVisible()
			}
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}

	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.ensureVisible()
		}

	case "/":
		m.searching = true
		m.searchQuery = ""
		m.applyFilter()

	case "s":
		m.sortSize = !m.sortSize
		m.applyFilter()

	case "r":
		m.loading = true
		m.status = "Loading applications…"
		return m, tea.Batch(m.spin.Tick, loadApps(m.showAll))

	case "enter":
		if m.loading || m.cursor >= len(m.filtered) {
			return m, nil
		}
		app := m.filtered[m.cursor]
		m.status = "Launching uninstaller for " + app.Name + "…"
		return m, launchApp(app)
	}

	return m, nil
}

// View delegates to view.go.
func (m Model) View() string {
	return m.renderView()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// applyFilter rebuilds the visible list from the search query and sort
// order, clamping the cursor.
func (m *Model) applyFilter() {
	filtered := uninstall.Filter(m.apps, m.searchQuery)
	// Filter returns a shared slice for an empty query; copy before sorting.
	m.filtered = append([]uninstall.InstalledApp(nil), filtered...)
	if m.sortSize {
		uninstall.SortBySize(m.filtered)
	} else {
		uninstall.SortByName(m.filtered)
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
		m.offset = 0
	}
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
	h := m.height - 8
	if h < 1 {
		h = 1
	}
	return h
}
