package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hitmandev/syscleanx/internal/apps"
	"github.com/hitmandev/syscleanx/internal/cleaner"
)

// view identifies the active pane.
type view int

const (
	viewCleaner view = iota
	viewApps
)

// App is the top-level model: the cleaner and uninstaller panes, with Tab
// switching between them.
type App struct {
	cleaner cleaner.Model
	apps    apps.Model
	active  view

	// appsStarted delays the registry read until the pane is first shown.
	appsStarted bool
}

// NewApp wires both panes together, starting on the cleaner.
func NewApp(cleanerModel cleaner.Model, appsModel apps.Model) App {
	return App{cleaner: cleanerModel, apps: appsModel}
}

func (a App) Init() tea.Cmd {
	return a.cleaner.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Tab flips between the two panes.
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyTab {
		if a.active == viewCleaner {
			a.active = viewApps
			if !a.appsStarted {
				a.appsStarted = true
				return a, a.apps.Init()
			}
		} else {
			a.active = viewCleaner
		}
		return a, nil
	}

	// Key input goes to the active pane only; everything else (window
	// sizes, spinner ticks, operation results) reaches both so background
	// work keeps flowing while the other pane is shown.
	if _, ok := msg.(tea.KeyMsg); ok {
		return a.updateActive(msg)
	}

	var cmds []tea.Cmd
	next, cmd := a.cleaner.Update(msg)
	a.cleaner = next.(cleaner.Model)
	cmds = append(cmds, cmd)

	next, cmd = a.apps.Update(msg)
	a.apps = next.(apps.Model)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.active == viewCleaner {
		next, cmd := a.cleaner.Update(msg)
		a.cleaner = next.(cleaner.Model)
		return a, cmd
	}
	next, cmd := a.apps.Update(msg)
	a.apps = next.(apps.Model)
	return a, cmd
}

func (a App) View() string {
	if a.active == viewApps {
		return a.apps.View()
	}
	return a.cleaner.View()
}
