package cleaner

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitmandev/syscleanx/internal/clean"
	"github.com/hitmandev/syscleanx/internal/config"
	"github.com/hitmandev/syscleanx/internal/scan"
)

func testModel(t *testing.T) Model {
	t.Helper()
	engine := clean.NewEngine(scan.NewScanner(4, nil), clean.Options{DryRun: true})
	targets := []config.CleanTarget{
		{Name: "Alpha", Paths: []string{t.TempDir()}, Category: "user"},
		{Name: "Beta", Paths: []string{t.TempDir()}, Category: "user"},
	}
	return New(engine, targets, true)
}

// advance applies a message and returns the concrete model.
func advance(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	require.IsType(t, Model{}, next)
	return next.(Model), cmd
}

func TestScanFlow(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, phaseScanning, m.phase)

	m, cmd := advance(t, m, targetScannedMsg{index: 0, result: scan.Result{Files: 3, Bytes: 300}})
	require.NotNil(t, cmd, "should chain the next scan")
	assert.Equal(t, phaseScanning, m.phase)
	assert.True(t, m.items[0].selected, "non-empty targets are pre-selected")

	m, cmd = advance(t, m, targetScannedMsg{index: 1, result: scan.Result{}})
	assert.Nil(t, cmd)
	assert.Equal(t, phaseSelect, m.phase)
	assert.False(t, m.items[1].selected, "empty targets stay unselected")
	assert.Contains(t, m.status, "Found 3 files")
}

func TestScanFlow_NothingFound(t *testing.T) {
	m := testModel(t)
	m, _ = advance(t, m, targetScannedMsg{index: 0, result: scan.Result{}})
	m, _ = advance(t, m, targetScannedMsg{index: 1, result: scan.Result{}})
	assert.Equal(t, phaseSelect, m.phase)
	assert.Equal(t, "Nothing to clean.", m.status)
}

func TestSelectionKeys(t *testing.T) {
	m := testModel(t)
	m, _ = advance(t, m, targetScannedMsg{index: 0, result: scan.Result{Files: 3, Bytes: 300}})
	m, _ = advance(t, m, targetScannedMsg{index: 1, result: scan.Result{Files: 1, Bytes: 10}})

	// Space toggles the item under the cursor.
	m, _ = advance(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, m.items[0].selected)
	m, _ = advance(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.items[0].selected)

	// With everything selected, "a" deselects all, then reselects all.
	m, _ = advance(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.False(t, m.items[0].selected)
	assert.False(t, m.items[1].selected)
	m, _ = advance(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.True(t, m.items[0].selected)
	assert.True(t, m.items[1].selected)
}

func TestCleanFlow(t *testing.T) {
	m := testModel(t)
	m, _ = advance(t, m, targetScannedMsg{index: 0, result: scan.Result{Files: 3, Bytes: 300}})
	m, _ = advance(t, m, targetScannedMsg{index: 1, result: scan.Result{Files: 1, Bytes: 10}})

	m, cmd := advance(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, phaseCleaning, m.phase)
	assert.Equal(t, 2, m.cleanTotal)
	assert.Equal(t, []int{1}, m.cleanQueue)

	m, cmd = advance(t, m, targetCleanedMsg{index: 0, result: clean.Result{FilesRemoved: 3, BytesFreed: 300}})
	require.NotNil(t, cmd, "should chain the next target")
	assert.Equal(t, 1, m.cleanDone)

	m, cmd = advance(t, m, targetCleanedMsg{index: 1, result: clean.Result{FilesRemoved: 1, BytesFreed: 10}})
	assert.Nil(t, cmd)
	assert.Equal(t, phaseDone, m.phase)
	assert.Contains(t, m.status, "Cleaned 4 files")
	assert.Contains(t, m.status, "freed")
}

func TestCleanFlow_NoSelection(t *testing.T) {
	m := testModel(t)
	m, _ = advance(t, m, targetScannedMsg{index: 0, result: scan.Result{}})
	m, _ = advance(t, m, targetScannedMsg{index: 1, result: scan.Result{}})

	m, cmd := advance(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, phaseSelect, m.phase)
	assert.Contains(t, m.status, "Select at least one")
}

func TestRescan(t *testing.T) {
	m := testModel(t)
	m, _ = advance(t, m, targetScannedMsg{index: 0, result: scan.Result{Files: 3, Bytes: 300}})
	m, _ = advance(t, m, targetScannedMsg{index: 1, result: scan.Result{}})

	m, cmd := advance(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.Equal(t, phaseScanning, m.phase)
	assert.False(t, m.items[0].scanned)
	assert.False(t, m.items[0].selected)
}

func TestQuitKey(t *testing.T) {
	m := testModel(t)
	_, cmd := advance(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
