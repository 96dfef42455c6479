package clean

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hitmandev/syscleanx/internal/config"
	"github.com/hitmandev/syscleanx/internal/scan"
)

// Options configures an Engine.
type Options struct {
	// DryRun reports what would be removed without deleting anything.
	DryRun bool

	// Whitelist holds user-protected paths. May be nil.
	Whitelist *config.Whitelist

	// Guards overrides the never-delete list. Nil means
	// config.GetNeverDeletePaths().
	Guards []string

	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// Engine scans and cleans targets. All deletion goes through the guard
// check: a path equal to, or containing, a never-delete path is refused.
type Engine struct {
	scanner *scan.Scanner
	opts    Options
	guards  []string
	log     *slog.Logger
}

// Result is the outcome of cleaning one target.
type Result struct {
	Target       string
	FilesRemoved int64
	BytesFreed   int64
	Errs         []error
}

// NewEngine creates an Engine sharing the given scanner.
func NewEngine(scanner *scan.Scanner, opts Options) *Engine {
	guards := opts.Guards
	if guards == nil {
		guards = config.GetNeverDeletePaths()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		scanner: scanner,
		opts:    opts,
		guards:  guards,
		log:     log,
	}
}

// ─── Scanning ────────────────────────────────────────────────────────────────

// ScanTarget sizes one target, including the shell and registry specials.
func (e *Engine) ScanTarget(t config.CleanTarget) scan.Result {
	switch t.Special {
	case config.SpecialRecycleBin:
		bytes, items, err := QueryRecycleBin()
		if err != nil {
			e.log.Debug("recycle bin query failed", "err", err)
			return scan.Result{}
		}
		return scan.Result{Files: items, Bytes: bytes}

	case config.SpecialRunHistory:
		n, err := RunHistoryCount()
		if err != nil || n == 0 {
			return scan.Result{}
		}
		// The registry wipe has no meaningful byte size; report a nominal
		// figure so the UI has something to show.
		return scan.Result{Files: 1, Bytes: runHistoryNominalBytes}

	default:
		return e.scanner.ScanPaths(t.Paths)
	}
}

// ScanAll sizes every target, invoking progress before each one.
func (e *Engine) ScanAll(targets []config.CleanTarget, progress func(done, total int, name string)) map[string]scan.Result {
	results := make(map[string]scan.Result, len(targets))
	for i, t := range targets {
		if progress != nil {
			progress(i, len(targets), t.Name)
		}
		results[t.Name] = e.ScanTarget(t)
	}
	if progress != nil {
		progress(len(targets), len(targets), "")
	}
	return results
}

// ─── Cleaning ────────────────────────────────────────────────────────────────

// CleanTarget removes one target's contents. Per-path failures are
// collected in Result.Errs and never abort the rest of the target.
func (e *Engine) CleanTarget(t config.CleanTarget) Result {
	res := Result{Target: t.Name}

	switch t.Special {
	case config.SpecialRecycleBin:
		bytes, items, qerr := QueryRecycleBin()
		if qerr != nil {
			res.Errs = append(res.Errs, qerr)
			return res
		}
		if items == 0 {
			return res
		}
		if err := EmptyRecycleBin(e.opts.DryRun); err != nil {
			res.Errs = append(res.Errs, err)
			return res
		}
		res.FilesRemoved = items
		res.BytesFreed = bytes
		return res

	case config.SpecialRunHistory:
		n, err := ClearRunHistory(e.opts.DryRun)
		if err != nil {
			res.Errs = append(res.Errs, err)
			return res
		}
		if n > 0 {
			res.FilesRemoved = 1
			res.BytesFreed = runHistoryNominalBytes
		}
		return res
	}

	for _, p := range t.Paths {
		if p == "" {
			continue
		}
		paths := []string{p}
		if strings.ContainsAny(p, `*?[`) {
			matches, err := filepath.Glob(p)
			if err != nil {
				res.Errs = append(res.Errs, fmt.Errorf("bad pattern %s: %w", p, err))
				continue
			}
			paths = matches
		}
		for _, path := range paths {
			files, bytes, errs := e.cleanPath(path)
			res.FilesRemoved += files
			res.BytesFreed += bytes
			res.Errs = append(res.Errs, errs...)
		}
	}

	return res
}

// cleanPath removes a single file, or the contents of a single directory.
// Freed space is measured by rescanning after deletion, so locked files
// that survive are not counted.
func (e *Engine) cleanPath(path string) (files, bytes int64, errs []error) {
	before := e.scanner.ScanPath(path)
	if before.Files == 0 {
		return 0, 0, nil
	}

	if err := e.checkGuard(path); err != nil {
		return 0, 0, []error{err}
	}

	if e.opts.DryRun {
		e.log.Debug("dry-run, would remove", "path", path, "files", before.Files, "bytes", before.Bytes)
		return before.Files, before.Bytes, nil
	}

	info, err := os.Lstat(path)
	if err != nil {
		return 0, 0, nil // vanished between scan and clean
	}

	if !info.IsDir() {
		if err := os.Remove(path); err != nil {
			return 0, 0, []error{fmt.Errorf("remove %s: %w", path, err)}
		}
		return before.Files, before.Bytes, nil
	}

	// Remove the directory's contents but keep the directory itself:
	// Windows recreates temp directories lazily and some apps assume
	// they exist.
	errs = e.removeContents(path)

	after := e.scanner.ScanPath(path)
	files = max(0, before.Files-after.Files)
	bytes = max(0, before.Bytes-after.Bytes)

	e.log.Debug("cleaned", "path", path, "files", files, "bytes", bytes, "errors", len(errs))
	return files, bytes, errs
}

// removeContents deletes every entry inside dir. Entries that cannot be
// removed (in use, access denied) are recorded and skipped. Directories
// with a whitelisted path somewhere beneath them are descended into and
// deleted selectively, so the protected subtree survives.
func (e *Engine) removeContents(dir string) []error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []error{fmt.Errorf("read %s: %w", dir, err)}
	}

	var errs []error
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if e.opts.Whitelist.IsWhitelisted(child) {
			continue
		}
		if entry.IsDir() && e.opts.Whitelist.HasEntryUnder(child) {
			errs = append(errs, e.removeContents(child)...)
			continue
		}
		if err := os.RemoveAll(child); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", child, err))
		}
	}
	return errs
}

// checkGuard refuses paths outside the deletable set: anything equal to a
// never-delete path, anything containing one, and anything whitelisted.
func (e *Engine) checkGuard(path string) error {
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return fmt.Errorf("refusing to clean relative path %q", path)
	}

	if e.opts.Whitelist.IsWhitelisted(cleaned) {
		return fmt.Errorf("refusing to clean whitelisted path %s", cleaned)
	}

	lower := strings.ToLower(cleaned)
	for _, g := range e.guards {
		guard := strings.ToLower(filepath.Clean(g))
		if lower == guard {
			return fmt.Errorf("refusing to clean protected path %s", cleaned)
		}
		// Deleting an ancestor would take the protected path with it.
		if strings.HasPrefix(guard, lower+string(filepath.Separator)) {
			return fmt.Errorf("refusing to clean %s: contains protected path %s", cleaned, g)
		}
	}
	return nil
}
