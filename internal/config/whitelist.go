package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Whitelist holds user-protected path prefixes. Whitelisted paths are
// excluded from scans and refused by the delete engine.
type Whitelist struct {
	// Paths are absolute path prefixes to protect. Matching is
	// case-insensitive and covers the path and everything under it.
	Paths []string `yaml:"paths"`
}

// WhitelistPath returns the location of the user's whitelist file.
func WhitelistPath() string {
	return filepath.Join(localAppData(), "SysCleanX", "whitelist.yaml")
}

// LoadWhitelist reads the whitelist from the given file. A missing file
// yields an empty whitelist, not an error.
func LoadWhitelist(path string) (*Whitelist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Whitelist{}, nil
		}
		return nil, fmt.Errorf("read whitelist: %w", err)
	}

	var wl Whitelist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse whitelist %s: %w", path, err)
	}

	// Normalize entries once at load time.
	var cleaned []string
	for _, p := range wl.Paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(p))
	}
	wl.Paths = cleaned

	return &wl, nil
}

// Save writes the whitelist to the given file, creating parent
// directories as needed.
func (w *Whitelist) Save(path string) error {
	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal whitelist: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create whitelist dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write whitelist: %w", err)
	}
	return nil
}

// Add appends a path if it is not already covered.
func (w *Whitelist) Add(path string) {
	cleaned := filepath.Clean(path)
	for _, p := range w.Paths {
		if strings.EqualFold(p, cleaned) {
			return
		}
	}
	w.Paths = append(w.Paths, cleaned)
}

// Remove deletes a path from the whitelist. Returns true if it was present.
func (w *Whitelist) Remove(path string) bool {
	cleaned := filepath.Clean(path)
	for i, p := range w.Paths {
		if strings.EqualFold(p, cleaned) {
			w.Paths = append(w.Paths[:i], w.Paths[i+1:]...)
			return true
		}
	}
	return false
}

// HasEntryUnder reports whether any whitelisted path lies strictly below
// the given directory. Such a directory cannot be removed wholesale.
func (w *Whitelist) HasEntryUnder(path string) bool {
	if w == nil || len(w.Paths) == 0 {
		return false
	}
	prefix := strings.ToLower(filepath.Clean(path)) + string(filepath.Separator)
	for _, p := range w.Paths {
		if strings.HasPrefix(strings.ToLower(p), prefix) {
			return true
		}
	}
	return false
}

// IsWhitelisted reports whether the given path equals or lies under a
// whitelisted prefix. Comparison is case-insensitive, matching NTFS.
func (w *Whitelist) IsWhitelisted(path string) bool {
	if w == nil || len(w.Paths) == 0 {
		return false
	}
	target := strings.ToLower(filepath.Clean(path))
	for _, p := range w.Paths {
		prefix := strings.ToLower(p)
		if target == prefix {
			return true
		}
		if strings.HasPrefix(target, prefix+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
