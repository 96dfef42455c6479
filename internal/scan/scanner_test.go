package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitmandev/syscleanx/internal/config"
)

// writeFile creates a file of the given size under dir.
func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestScanPath_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.tmp", 100)

	s := NewScanner(4, nil)
	res := s.ScanPath(path)
	assert.Equal(t, int64(1), res.Files)
	assert.Equal(t, int64(100), res.Bytes)
}

func TestScanPath_DirectoryTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.tmp", 10)
	writeFile(t, dir, filepath.Join("sub", "b.tmp"), 20)
	writeFile(t, dir, filepath.Join("sub", "deep", "c.tmp"), 30)

	s := NewScanner(4, nil)
	res := s.ScanPath(dir)
	assert.Equal(t, int64(3), res.Files)
	assert.Equal(t, int64(60), res.Bytes)
	assert.GreaterOrEqual(t, s.SeenCount(), int64(3))
}

func TestScanPath_Missing(t *testing.T) {
	s := NewScanner(4, nil)
	res := s.ScanPath(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Equal(t, Result{}, res)
}

func TestScanPaths_Globs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "thumbcache_32.db", 5)
	writeFile(t, dir, "thumbcache_96.db", 7)
	writeFile(t, dir, "other.db", 100)

	s := NewScanner(4, nil)
	res := s.ScanPaths([]string{filepath.Join(dir, "thumbcache_*.db")})
	assert.Equal(t, int64(2), res.Files)
	assert.Equal(t, int64(12), res.Bytes)
}

func TestScanPaths_ProfileGlob(t *testing.T) {
	// Mirrors the Firefox layout: Profiles\<name>\cache2.
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("Profiles", "abc.default", "cache2", "x"), 1)
	writeFile(t, dir, filepath.Join("Profiles", "xyz.dev", "cache2", "y"), 2)
	writeFile(t, dir, filepath.Join("Profiles", "xyz.dev", "storage", "z"), 50)

	s := NewScanner(4, nil)
	res := s.ScanPaths([]string{filepath.Join(dir, "Profiles", "*", "cache2")})
	assert.Equal(t, int64(2), res.Files)
	assert.Equal(t, int64(3), res.Bytes)
}

func TestScanPaths_EmptyAndMixed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.tmp", 8)

	s := NewScanner(4, nil)
	res := s.ScanPaths([]string{"", dir, filepath.Join(dir, "missing")})
	assert.Equal(t, int64(1), res.Files)
	assert.Equal(t, int64(8), res.Bytes)
}

func TestScanPath_Whitelisted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.tmp", 10)
	writeFile(t, dir, filepath.Join("protected", "b.tmp"), 20)

	wl := &config.Whitelist{Paths: []string{filepath.Join(dir, "protected")}}
	s := NewScanner(4, wl)

	res := s.ScanPath(dir)
	assert.Equal(t, int64(1), res.Files)
	assert.Equal(t, int64(10), res.Bytes)

	// The whitelisted directory itself scans to nothing.
	assert.Equal(t, Result{}, s.ScanPath(filepath.Join(dir, "protected")))
}

func TestHasGlobMeta(t *testing.T) {
	assert.True(t, hasGlobMeta(`C:\x\thumbcache_*.db`))
	assert.True(t, hasGlobMeta(`C:\Profiles\?\cache2`))
	assert.False(t, hasGlobMeta(`C:\Windows\Temp`))
}
