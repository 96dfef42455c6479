package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hitmandev/syscleanx/internal/envutil"
)

// Special identifies targets that are not cleaned by plain file deletion.
type Special int

const (
	// SpecialNone targets are cleaned by deleting their Paths.
	SpecialNone Special = iota
	// SpecialRecycleBin targets are emptied via the SHEmptyRecycleBinW
	// Shell API (no direct path on disk is touched).
	SpecialRecycleBin
	// SpecialRunHistory targets are cleared by wiping the Explorer RunMRU
	// registry key.
	SpecialRunHistory
)

// CleanTarget represents one category of files that can be cleaned.
type CleanTarget struct {
	// Name is the unique identifier for this target.
	Name string

	// Paths is the list of filesystem paths to clean. Entries may contain
	// glob metacharacters (e.g. thumbcache_*.db, Profiles\*\cache2).
	Paths []string

	// Description is a human-readable description.
	Description string

	// Category groups related targets ("user", "system", "browser", "apps").
	Category string

	// RiskLevel is one of "low", "medium", "high".
	RiskLevel string

	// RequiresAdmin indicates whether elevated privileges are needed.
	RequiresAdmin bool

	// Special marks targets cleaned through the shell or registry rather
	// than file deletion.
	Special Special
}

// expand resolves environment variables in a path, supporting both
// Windows %VAR% and Unix $VAR / ${VAR} syntax.
func expand(path string) string {
	return envutil.ExpandWindowsEnv(path)
}

// userProfile returns the user profile directory.
func userProfile() string {
	return os.Getenv("USERPROFILE")
}

// localAppData returns the local app data directory.
func localAppData() string {
	return os.Getenv("LOCALAPPDATA")
}

// appData returns the roaming app data directory.
func appData() string {
	return os.Getenv("APPDATA")
}

// winDir returns the Windows directory (e.g., C:\Windows).
// Falls back to C:\Windows only if %WINDIR% is not set.
func winDir() string {
	if w := os.Getenv("WINDIR"); w != "" {
		return w
	}
	return `C:\Windows`
}

// programData returns the ProgramData directory (e.g., C:\ProgramData).
func programData() string {
	if p := os.Getenv("PROGRAMDATA"); p != "" {
		return p
	}
	return `C:\ProgramData`
}

// systemDrive returns the system drive letter with backslash (e.g., C:\).
func systemDrive() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	return `C:\`
}

// programFiles returns the Program Files directory.
func programFiles() string {
	if p := os.Getenv("PROGRAMFILES"); p != "" {
		return p
	}
	return `C:\Program Files`
}

// programFilesX86 returns the Program Files (x86) directory.
func programFilesX86() string {
	if p := os.Getenv("PROGRAMFILES(X86)"); p != "" {
		return p
	}
	return `C:\Program Files (x86)`
}

// chromiumCacheDirs returns the standard cache directories inside a
// Chromium-derived browser's "User Data\Default" profile.
func chromiumCacheDirs(userData string) []string {
	return []string{
		filepath.Join(userData, "Default", "Cache"),
		filepath.Join(userData, "Default", "Code Cache"),
		filepath.Join(userData, "Default", "GPUCache"),
	}
}

// GetCleanTargets returns all cleanup targets with paths expanded.
func GetCleanTargets() []CleanTarget {
	home := userProfile()
	local := localAppData()
	roaming := appData()

	return []CleanTarget{
		// ── User Temp ───────────────────────────────────────────
		{
			Name:        "UserTemp",
			Paths:       dedupePaths(expand("%TEMP%"), filepath.Join(local, "Temp")),
			Description: "User temporary files",
			Category:    "user",
			RiskLevel:   "low",
		},

		// ── Recent Items ────────────────────────────────────────
		{
			Name: "RecentItems",
			Paths: []string{
				filepath.Join(home, "Recent"),
				filepath.Join(roaming, "Microsoft", "Windows", "Recent"),
			},
			Description: "Recently opened file shortcuts",
			Category:    "user",
			RiskLevel:   "low",
		},

		// ── Browser Caches ──────────────────────────────────────
		{
			Name:        "ChromeCache",
			Paths:       chromiumCacheDirs(filepath.Join(local, "Google", "Chrome", "User Data")),
			Description: "Google Chrome browser cache",
			Category:    "browser",
			RiskLevel:   "low",
		},
		{
			Name:        "EdgeCache",
			Paths:       chromiumCacheDirs(filepath.Join(local, "Microsoft", "Edge", "User Data")),
			Description: "Microsoft Edge browser cache",
			Category:    "browser",
			RiskLevel:   "low",
		},
		{
			Name: "FirefoxCache",
			Paths: []string{
				filepath.Join(local, "Mozilla", "Firefox", "Profiles", "*", "cache2"),
			},
			Description: "Mozilla Firefox browser cache (cache2 within profiles)",
			Category:    "browser",
			RiskLevel:   "low",
		},
		{
			Name:        "OperaCache",
			Paths:       []string{filepath.Join(roaming, "Opera Software", "Opera Stable", "Cache")},
			Description: "Opera browser cache",
			Category:    "browser",
			RiskLevel:   "low",
		},
		{
			Name:        "BraveCache",
			Paths:       chromiumCacheDirs(filepath.Join(local, "BraveSoftware", "Brave-Browser", "User Data")),
			Description: "Brave browser cache",
			Category:    "browser",
			RiskLevel:   "low",
		},
		{
			Name:        "VivaldiCache",
			Paths:       chromiumCacheDirs(filepath.Join(local, "Vivaldi", "User Data")),
			Description: "Vivaldi browser cache",
			Category:    "browser",
			RiskLevel:   "low",
		},
		{
			Name:        "INetCache",
			Paths:       []string{filepath.Join(local, "Microsoft", "Windows", "INetCache")},
			Description: "Internet Explorer / legacy WinINet cache",
			Category:    "browser",
			RiskLevel:   "low",
		},

		// ── Run Dialog History ──────────────────────────────────
		{
			Name:        "RunHistory",
			Paths:       nil, // Cleared via registry, no path on disk.
			Description: "Run dialog (Win+R) command history",
			Category:    "user",
			RiskLevel:   "low",
			Special:     SpecialRunHistory,
		},

		// ── Prefetch ────────────────────────────────────────────
		{
			Name:          "Prefetch",
			Paths:         []string{filepath.Join(winDir(), "Prefetch")},
			Description:   "Application prefetch files",
			Category:      "system",
			RiskLevel:     "medium",
			RequiresAdmin: true,
		},

		// ── Recycle Bin ─────────────────────────────────────────
		{
			Name:        "RecycleBin",
			Paths:       nil, // Emptied via Shell API, no direct path.
			Description: "Windows Recycle Bin (all drives)",
			Category:    "user",
			RiskLevel:   "medium",
			Special:     SpecialRecycleBin,
		},

		// ── System Temp ─────────────────────────────────────────
		{
			Name:          "WindowsTemp",
			Paths:         []string{filepath.Join(winDir(), "Temp")},
			Description:   "System temporary files",
			Category:      "system",
			RiskLevel:     "low",
			RequiresAdmin: true,
		},

		// ── Driver Caches ───────────────────────────────────────
		{
			Name: "DriverCache",
			Paths: []string{
				filepath.Join(winDir(), "System32", "DriverStore", "Temp"),
				filepath.Join(winDir(), "Temp", "DriverStore"),
				filepath.Join(programData(), "NVIDIA Corporation", "Downloader"),
			},
			Description:   "Driver installation leftovers and NVIDIA downloads",
			Category:      "system",
			RiskLevel:     "low",
			RequiresAdmin: true,
		},

		// ── Windows Update ──────────────────────────────────────
		{
			Name:          "WindowsUpdateCache",
			Paths:         []string{filepath.Join(winDir(), "SoftwareDistribution", "Download")},
			Description:   "Windows Update download cache",
			Category:      "system",
			RiskLevel:     "medium",
			RequiresAdmin: true,
		},

		// ── Thumbnails ──────────────────────────────────────────
		{
			Name: "ThumbnailCache",
			Paths: []string{
				filepath.Join(local, "Microsoft", "Windows", "Explorer", "thumbcache_*.db"),
			},
			Description: "Windows Explorer thumbnail cache",
			Category:    "user",
			RiskLevel:   "low",
		},

		// ── Application Caches ──────────────────────────────────
		{
			Name: "AppCaches",
			Paths: []string{
				filepath.Join(roaming, "discord", "Cache"),
				filepath.Join(roaming, "discord", "Code Cache"),
				filepath.Join(programFilesX86(), "Steam", "appcache"),
			},
			Description: "Discord and Steam application caches",
			Category:    "apps",
			RiskLevel:   "low",
		},

		// ── Memory Dumps ────────────────────────────────────────
		{
			Name: "MemoryDumps",
			Paths: []string{
				filepath.Join(winDir(), "Minidump"),
				filepath.Join(winDir(), "MEMORY.DMP"),
			},
			Description:   "Kernel and minidump crash files",
			Category:      "system",
			RiskLevel:     "low",
			RequiresAdmin: true,
		},
	}
}

// GetTargetByName returns the clean target with the given name
// (case-insensitive), or false if no such target exists.
func GetTargetByName(name string) (CleanTarget, bool) {
	for _, t := range GetCleanTargets() {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return CleanTarget{}, false
}

// GetTargetsByCategory returns clean targets filtered by category.
func GetTargetsByCategory(category string) []CleanTarget {
	var result []CleanTarget
	for _, t := range GetCleanTargets() {
		if t.Category == category {
			result = append(result, t)
		}
	}
	return result
}

// dedupePaths removes case-insensitive duplicates while preserving order.
// %TEMP% usually points at %LOCALAPPDATA%\Temp, so the pair collapses to
// a single entry on most systems.
func dedupePaths(paths ...string) []string {
	seen := make(map[string]bool, len(paths))
	var unique []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		cleaned := filepath.Clean(p)
		key := strings.ToLower(cleaned)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, cleaned)
		}
	}
	return unique
}

// GetNeverDeletePaths returns paths that must never be deleted under any
// circumstances. The delete engine refuses any path equal to or above one
// of these. Environment variables keep the list correct for Windows
// installations on any drive letter.
func GetNeverDeletePaths() []string {
	w := winDir()
	sd := systemDrive()
	return []string{
		w,
		filepath.Join(w, "System32"),
		filepath.Join(w, "SysWOW64"),
		filepath.Join(w, "WinSxS"),
		filepath.Join(w, "assembly"),
		filepath.Join(w, "System32", "config"),
		filepath.Join(sd, "Boot"),
		filepath.Join(sd, "bootmgr"),
		filepath.Join(sd, "EFI"),
		programFiles(),
		programFilesX86(),
		filepath.Join(sd, "Users"),
		programData(),
		filepath.Join(sd, "Recovery"),
		filepath.Join(w, "Installer"),
		filepath.Join(w, "servicing"),
	}
}
