package clean

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// runMRUKeyPath is where Explorer stores the Run dialog (Win+R) history.
// Each entry is a single-letter value; the MRUList value records their
// display order.
const runMRUKeyPath = `Software\Microsoft\Windows\CurrentVersion\Explorer\RunMRU`

// runHistoryNominalBytes is the size reported for a Run-history wipe.
// The operation frees registry values, not disk space; the figure exists
// only so scan summaries have a nonzero entry.
const runHistoryNominalBytes = 1024

// RunHistoryCount returns the number of Run dialog history entries.
// A missing key means zero entries, not an error.
func RunHistoryCount() (int, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runMRUKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("open RunMRU: %w", err)
	}
	defer key.Close()

	mru, _, err := key.GetStringValue("MRUList")
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read MRUList: %w", err)
	}

	return len(mru), nil
}

// ClearRunHistory deletes every Run dialog history value and resets
// MRUList to empty. Returns the number of entries removed.
func ClearRunHistory(dryRun bool) (int, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runMRUKeyPath,
		registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("open RunMRU: %w", err)
	}
	defer key.Close()

	mru, _, err := key.GetStringValue("MRUList")
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read MRUList: %w", err)
	}
	if mru == "" {
		return 0, nil
	}

	if dryRun {
		return len(mru), nil
	}

	removed := 0
	for _, letter := range mru {
		if err := key.DeleteValue(string(letter)); err != nil {
			if errors.Is(err, registry.ErrNotExist) {
				continue
			}
			return removed, fmt.Errorf("delete RunMRU value %q: %w", string(letter), err)
		}
		removed++
	}

	if err := key.SetStringValue("MRUList", ""); err != nil {
		return removed, fmt.Errorf("reset MRUList: %w", err)
	}

	return removed, nil
}
