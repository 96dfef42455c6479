package uninstall

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/sys/windows/registry"
)

// InstalledApp is one application record from the Windows registry
// uninstall keys. The list is read fresh on each call and never persisted.
type InstalledApp struct {
	Name                 string `json:"name"`
	Version              string `json:"version,omitempty"`
	Publisher            string `json:"publisher,omitempty"`
	InstallDate          string `json:"install_date,omitempty"`
	InstallLocation      string `json:"install_location,omitempty"`
	EstimatedSize        int64  `json:"estimated_size,omitempty"`
	UninstallString      string `json:"uninstall_string,omitempty"`
	QuietUninstallString string `json:"quiet_uninstall_string,omitempty"`
	IsSystemComponent    bool   `json:"system_component,omitempty"`
}

// ─── Registry Sources ────────────────────────────────────────────────────────

// registrySource describes one registry hive + path to scan.
type registrySource struct {
	root registry.Key
	path string
}

// uninstallSources are the three standard locations for installed programs:
// 64-bit machine-wide, 32-bit machine-wide (WOW6432Node), and per-user.
var uninstallSources = []registrySource{
	{registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
	{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`},
	{registry.CURRENT_USER, `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
}

// kbPattern matches Windows update identifiers like KB1234567.
var kbPattern = regexp.MustCompile(`(?i)\bKB\d{6,}\b`)

// ─── Public API ──────────────────────────────────────────────────────────────

// ListInstalledApps reads installed applications from the registry,
// deduplicated across hives and sorted by display name. Records without an
// uninstall command are dropped: the point of the list is launching
// uninstallers. If showAll is true, system components and Windows updates
// are included.
func ListInstalledApps(showAll bool) ([]InstalledApp, error) {
	seen := make(map[string]bool)
	var apps []InstalledApp

	for _, src := range uninstallSources {
		found, err := readAppsFromKey(src.root, src.path)
		if err != nil {
			// Registry path may not exist (e.g., WOW6432Node on 32-bit);
			// skip silently.
			continue
		}

		for _, app := range found {
			key := strings.ToLower(app.Name + "|" + app.Version)
			if seen[key] {
				continue
			}
			seen[key] = true

			if !includeApp(app, showAll) {
				continue
			}
			apps = append(apps, app)
		}
	}

	SortByName(apps)
	return apps, nil
}

// includeApp decides whether an app record belongs in the listing.
func includeApp(app InstalledApp, showAll bool) bool {
	if app.Name == "" {
		return false
	}
	if app.UninstallString == "" && app.QuietUninstallString == "" {
		return false
	}
	if showAll {
		return true
	}
	if app.IsSystemComponent {
		return false
	}
	if kbPattern.MatchString(app.Name) {
		return false
	}
	return true
}

// SortByName orders apps alphabetically, case-insensitively.
func SortByName(apps []InstalledApp) {
	sort.Slice(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})
}

// SortBySize orders apps by estimated size, largest first. Ties fall back
// to name order so the result is stable across runs.
func SortBySize(apps []InstalledApp) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].EstimatedSize != apps[j].EstimatedSize {
			return apps[i].EstimatedSize > apps[j].EstimatedSize
		}
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})
}

// Filter returns the apps whose name or publisher contains the query,
// case-insensitively. An empty query returns the input unchanged.
func Filter(apps []InstalledApp, query string) []InstalledApp {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return apps
	}
	var out []InstalledApp
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.Name), query) ||
			strings.Contains(strings.ToLower(app.Publisher), query) {
			out = append(out, app)
		}
	}
	return out
}

// ─── Registry Helpers ────────────────────────────────────────────────────────

// readAppsFromKey enumerates subkeys under the given registry path and
// reads application metadata from each.
func readAppsFromKey(root registry.Key, path string) ([]InstalledApp, error) {
	key, err := registry.OpenKey(root, path, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	subkeys, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, err
	}

	var apps []InstalledApp
	for _, name := range subkeys {
		app, readErr := readAppFromSubKey(root, path+`\`+name)
		if readErr != nil {
			continue
		}
		if app.Name == "" {
			continue
		}
		apps = append(apps, app)
	}

	return apps, nil
}

// readAppFromSubKey reads a single application's metadata from a registry key.
func readAppFromSubKey(root registry.Key, path string) (InstalledApp, error) {
	key, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return InstalledApp{}, err
	}
	defer key.Close()

	app := InstalledApp{
		Name:                 readStringValue(key, "DisplayName"),
		Version:              readStringValue(key, "DisplayVersion"),
		Publisher:            readStringValue(key, "Publisher"),
		InstallDate:          readStringValue(key, "InstallDate"),
		InstallLocation:      readStringValue(key, "InstallLocation"),
		UninstallString:      readStringValue(key, "UninstallString"),
		QuietUninstallString: readStringValue(key, "QuietUninstallString"),
	}

	// EstimatedSize is stored in KB as a DWORD.
	if size, _, sizeErr := key.GetIntegerValue("EstimatedSize"); sizeErr == nil {
		app.EstimatedSize = int64(size) * 1024
	}

	// SystemComponent is a DWORD (1 = system).
	if sc, _, scErr := key.GetIntegerValue("SystemComponent"); scErr == nil {
		app.IsSystemComponent = sc == 1
	}

	return app, nil
}

// readStringValue safely reads a string value from a registry key.
// Returns an empty string on any error.
func readStringValue(key registry.Key, name string) string {
	val, _, err := key.GetStringValue(name)
	if err != nil {
		return ""
	}
	return val
}
