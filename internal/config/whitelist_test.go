package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWhitelist_Missing(t *testing.T) {
	wl, err := LoadWhitelist(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, wl.Paths)
}

func TestLoadWhitelist_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whitelist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: {not: a list}"), 0o644))

	_, err := LoadWhitelist(path)
	assert.Error(t, err)
}

func TestWhitelistSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "whitelist.yaml")

	wl := &Whitelist{}
	wl.Add(filepath.Join(dir, "keep"))
	wl.Add(filepath.Join(dir, "keep")) // duplicate is ignored
	require.NoError(t, wl.Save(path))

	loaded, err := LoadWhitelist(path)
	require.NoError(t, err)
	require.Len(t, loaded.Paths, 1)
	assert.Equal(t, filepath.Join(dir, "keep"), loaded.Paths[0])
}

func TestWhitelistRemove(t *testing.T) {
	wl := &Whitelist{}
	wl.Add(`C:\Data\keep`)

	assert.False(t, wl.Remove(`C:\Data\other`))
	assert.True(t, wl.Remove(`c:\data\KEEP`))
	assert.Empty(t, wl.Paths)
}

func TestIsWhitelisted(t *testing.T) {
	wl := &Whitelist{Paths: []string{`C:\Data\keep`}}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"exact match", `C:\Data\keep`, true},
		{"case-insensitive", `c:\data\KEEP`, true},
		{"child path", filepath.Join(`C:\Data\keep`, "sub", "file.txt"), true},
		{"sibling", `C:\Data\keeper`, false},
		{"parent", `C:\Data`, false},
		{"unrelated", `D:\other`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wl.IsWhitelisted(tt.path))
		})
	}

	var nilWL *Whitelist
	assert.False(t, nilWL.IsWhitelisted(`C:\anything`))
}

func TestHasEntryUnder(t *testing.T) {
	entry := filepath.Join("C:", "Temp", "proj", "keep")
	wl := &Whitelist{Paths: []string{entry}}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"grandparent", filepath.Join("C:", "Temp"), true},
		{"parent", filepath.Join("C:", "Temp", "proj"), true},
		{"case-insensitive", filepath.Join("c:", "temp", "PROJ"), true},
		{"entry itself is not under", entry, false},
		{"below the entry", filepath.Join(entry, "sub"), false},
		{"sibling prefix", filepath.Join("C:", "Temp", "pro"), false},
		{"unrelated", filepath.Join("D:", "other"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wl.HasEntryUnder(tt.path))
		})
	}

	var nilWL *Whitelist
	assert.False(t, nilWL.HasEntryUnder(filepath.Join("C:", "Temp")))
}
