package scan

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/hitmandev/syscleanx/internal/config"
)

// Result is the outcome of sizing one or more paths.
type Result struct {
	Files int64
	Bytes int64
}

func (r *Result) add(other Result) {
	r.Files += other.Files
	r.Bytes += other.Bytes
}

// Scanner sizes directories with bounded concurrency. It never follows
// junction points or symlinks, and treats unreadable entries as absent
// rather than failing the scan.
type Scanner struct {
	sem      chan struct{}
	wl       *config.Whitelist
	mu       sync.Mutex
	warnings []string
	seen     atomic.Int64
}

// NewScanner creates a scanner with bounded concurrency. wl may be nil.
func NewScanner(maxConcurrency int, wl *config.Whitelist) *Scanner {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}
	return &Scanner{
		sem: make(chan struct{}, maxConcurrency),
		wl:  wl,
	}
}

// Warnings returns any warnings accumulated during scanning.
func (s *Scanner) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// SeenCount returns the number of entries examined so far, for progress
// reporting from another goroutine.
func (s *Scanner) SeenCount() int64 {
	return s.seen.Load()
}

func (s *Scanner) addWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.warnings) < 500 {
		s.warnings = append(s.warnings, msg)
	}
}

// isReparsePoint returns true if the path is a Windows junction or symlink
// (FILE_ATTRIBUTE_REPARSE_POINT). Must be checked to avoid infinite recursion.
func isReparsePoint(path string) bool {
	pathp, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := syscall.GetFileAttributes(pathp)
	if err != nil {
		return false
	}
	const fileAttributeReparsePoint = 0x0400
	return attrs&fileAttributeReparsePoint != 0
}

// longPath adds the \\?\ prefix for paths exceeding MAX_PATH on Windows.
func longPath(path string) string {
	if len(path) >= 260 && !strings.HasPrefix(path, `\\?\`) {
		return `\\?\` + filepath.Clean(path)
	}
	return path
}

// hasGlobMeta reports whether a path contains glob metacharacters.
func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, `*?[`)
}

// ScanPaths sizes a list of paths. Entries containing glob metacharacters
// (thumbcache_*.db, Profiles\*\cache2) are expanded first. Missing paths
// contribute zero.
func (s *Scanner) ScanPaths(paths []string) Result {
	var total Result
	for _, p := range paths {
		if p == "" {
			continue
		}
		if hasGlobMeta(p) {
			matches, err := filepath.Glob(p)
			if err != nil {
				s.addWarning("bad pattern " + p + ": " + err.Error())
				continue
			}
			for _, m := range matches {
				total.add(s.ScanPath(m))
			}
			continue
		}
		total.add(s.ScanPath(p))
	}
	return total
}

// ScanPath sizes a single file or directory tree.
func (s *Scanner) ScanPath(path string) Result {
	if s.wl.IsWhitelisted(path) {
		return Result{}
	}

	info, err := os.Lstat(longPath(path))
	if err != nil {
		// Missing or inaccessible — nothing to report.
		return Result{}
	}

	if !info.IsDir() {
		if info.Mode()&os.ModeSymlink != 0 {
			return Result{}
		}
		s.seen.Add(1)
		return Result{Files: 1, Bytes: info.Size()}
	}

	if isReparsePoint(path) {
		s.addWarning("skipping junction/reparse: " + path)
		return Result{}
	}

	return s.scanDir(path)
}

// scanDir recursively sizes a directory, using the semaphore only during
// I/O to prevent deadlocks from nested goroutine semaphore acquisition.
func (s *Scanner) scanDir(dir string) Result {
	s.sem <- struct{}{}
	entries, err := os.ReadDir(longPath(dir))
	<-s.sem

	if err != nil {
		s.addWarning("cannot read " + dir + ": " + err.Error())
		return Result{}
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var total Result

	for _, e := range entries {
		childPath := filepath.Join(dir, e.Name())
		s.seen.Add(1)

		if s.wl.IsWhitelisted(childPath) {
			continue
		}

		if e.IsDir() {
			// Never follow junction points — infinite recursion risk.
			if isReparsePoint(childPath) {
				s.addWarning("skipping junction/reparse: " + childPath)
				continue
			}
			wg.Add(1)
			go func(p string) {
				defer wg.Done()
				r := s.scanDir(p)
				mu.Lock()
				total.add(r)
				mu.Unlock()
			}(childPath)
			continue
		}

		if e.Type()&os.ModeSymlink != 0 {
			continue
		}

		info, infoErr := e.Info()
		if infoErr != nil {
			// Permission denied or removed mid-scan — skip, don't fail.
			s.addWarning("cannot stat " + childPath + ": " + infoErr.Error())
			continue
		}

		mu.Lock()
		total.Files++
		total.Bytes += info.Size()
		mu.Unlock()
	}

	wg.Wait()
	return total
}
