package apps

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitmandev/syscleanx/internal/uninstall"
)

func testApps() []uninstall.InstalledApp {
	return []uninstall.InstalledApp{
		{Name: "Mozilla Firefox", Version: "128.0"},
		{Name: "Google Chrome", Version: "126.0"},
		{Name: "7-Zip", Version: "23.01"},
	}
}

// advance applies a message and returns the concrete model.
func advance(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	require.IsType(t, Model{}, next)
	return next.(Model), cmd
}

func TestLoadedApplyFilter(t *testing.T) {
	m := New(false, "")
	m, _ = advance(t, m, appsLoadedMsg{apps: testApps()})

	assert.False(t, m.loading)
	assert.Len(t, m.filtered, 3)
	assert.Contains(t, m.status, "3 applications")
}

func TestNewWithQuery(t *testing.T) {
	// A query passed at construction must filter the first load, exactly
	// as if the user had typed it.
	m := New(false, "firefox")
	m, _ = advance(t, m, appsLoadedMsg{apps: testApps()})

	require.Len(t, m.filtered, 1)
	assert.Equal(t, "Mozilla Firefox", m.filtered[0].Name)
	assert.Len(t, m.apps, 3, "the full list stays available for a cleared search")
}

func TestSearchKeys(t *testing.T) {
	m := New(false, "")
	m, _ = advance(t, m, appsLoadedMsg{apps: testApps()})

	m, _ = advance(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	require.True(t, m.searching)

	for _, r := range "chrome" {
		m, _ = advance(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "Google Chrome", m.filtered[0].Name)

	// Escape clears the query and restores the full list.
	m, _ = advance(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.False(t, m.searching)
	assert.Len(t, m.filtered, 3)
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		width    int
		expected string
	}{
		{"fits", "7-Zip", 10, "7-Zip"},
		{"exact fit", "1234567890", 10, "1234567890"},
		{"too long", "a very long application name", 10, "a very lo…"},
		// Multi-byte but within the column: must not be cut even though
		// the byte length exceeds the width.
		{"multibyte fits", "Ćirilica™", 10, "Ćirilica™"},
		{"multibyte too long", "Ćirilica™ Уредник", 10, "Ćirilica™…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateName(tt.in, tt.width))
		})
	}
}
