package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCleanTargets(t *testing.T) {
	targets := GetCleanTargets()
	require.NotEmpty(t, targets)

	names := make(map[string]bool)
	for _, tgt := range targets {
		assert.False(t, names[tgt.Name], "duplicate target name %q", tgt.Name)
		names[tgt.Name] = true

		assert.NotEmpty(t, tgt.Description, "%s has no description", tgt.Name)
		assert.Contains(t, []string{"user", "system", "browser", "apps"}, tgt.Category,
			"%s has unknown category %q", tgt.Name, tgt.Category)
		assert.Contains(t, []string{"low", "medium", "high"}, tgt.RiskLevel,
			"%s has unknown risk level %q", tgt.Name, tgt.RiskLevel)

		// Special targets carry no filesystem paths; all others must.
		if tgt.Special != SpecialNone {
			assert.Empty(t, tgt.Paths, "%s is special but has paths", tgt.Name)
		}
	}

	// Every cleanable location must be represented.
	for _, want := range []string{
		"UserTemp", "RecentItems", "ChromeCache", "EdgeCache", "FirefoxCache",
		"OperaCache", "BraveCache", "VivaldiCache", "RunHistory", "Prefetch",
		"RecycleBin", "WindowsTemp", "DriverCache", "WindowsUpdateCache",
		"ThumbnailCache", "AppCaches", "MemoryDumps",
	} {
		assert.True(t, names[want], "missing target %q", want)
	}
}

func TestGetTargetByName(t *testing.T) {
	tgt, ok := GetTargetByName("usertemp")
	require.True(t, ok)
	assert.Equal(t, "UserTemp", tgt.Name)

	_, ok = GetTargetByName("NoSuchTarget")
	assert.False(t, ok)
}

func TestGetTargetsByCategory(t *testing.T) {
	browsers := GetTargetsByCategory("browser")
	require.NotEmpty(t, browsers)
	for _, tgt := range browsers {
		assert.Equal(t, "browser", tgt.Category)
	}

	assert.Empty(t, GetTargetsByCategory("nonsense"))
}

func TestSystemTargetsRequireAdmin(t *testing.T) {
	for _, tgt := range GetTargetsByCategory("system") {
		assert.True(t, tgt.RequiresAdmin, "%s is system but does not require admin", tgt.Name)
	}
}

func TestDedupePaths(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			"case-insensitive duplicate",
			[]string{`C:\Users\a\Temp`, `c:\users\a\temp`},
			[]string{`C:\Users\a\Temp`},
		},
		{
			"distinct paths kept",
			[]string{`C:\Temp`, `D:\Temp`},
			[]string{`C:\Temp`, `D:\Temp`},
		},
		{
			"empty entries dropped",
			[]string{"", `C:\Temp`, ""},
			[]string{`C:\Temp`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dedupePaths(tt.input...))
		})
	}
}

func TestGetNeverDeletePaths(t *testing.T) {
	t.Setenv("WINDIR", `C:\Windows`)
	t.Setenv("SYSTEMDRIVE", "C:")

	guards := GetNeverDeletePaths()
	require.NotEmpty(t, guards)

	joined := strings.ToLower(strings.Join(guards, ";"))
	for _, want := range []string{`system32`, `winsxs`, `program files`, `users`} {
		assert.Contains(t, joined, want)
	}

	// All guard paths are absolute-style (drive-rooted).
	for _, g := range guards {
		assert.True(t, len(g) >= 2 && g[1] == ':', "guard %q is not drive-rooted", g)
	}
}

func TestExpandHelpers(t *testing.T) {
	t.Setenv("WINDIR", "")
	assert.Equal(t, `C:\Windows`, winDir())

	t.Setenv("WINDIR", `D:\Win`)
	assert.Equal(t, `D:\Win`, winDir())

	t.Setenv("SYSTEMDRIVE", "D:")
	assert.Equal(t, `D:\`, systemDrive())

	t.Setenv("PROGRAMDATA", "")
	assert.Equal(t, `C:\ProgramData`, programData())
}

func TestChromiumCacheDirs(t *testing.T) {
	dirs := chromiumCacheDirs(filepath.Join("base", "User Data"))
	require.Len(t, dirs, 3)
	assert.Equal(t, filepath.Join("base", "User Data", "Default", "Cache"), dirs[0])
}
