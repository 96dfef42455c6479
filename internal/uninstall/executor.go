package uninstall

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// uninstallTimeout is the maximum time to wait for an uninstall process.
const uninstallTimeout = 120 * time.Second

// msiGUIDPattern matches MSI product GUIDs like {XXXXXXXX-XXXX-...}.
var msiGUIDPattern = regexp.MustCompile(`\{[0-9A-Fa-f-]+\}`)

// uninstallStringPattern splits quoted and unquoted segments in an
// UninstallString.
var uninstallStringPattern = regexp.MustCompile(`[^\s"]+|"([^"]*)"`)

// uninsPattern matches InnoSetup uninstaller executables like unins000.exe.
var uninsPattern = regexp.MustCompile(`unins\d+\.exe`)

// InstallerType represents the detected installer technology.
type InstallerType int

const (
	InstallerMSI InstallerType = iota
	InstallerSquirrel
	InstallerNSIS
	InstallerInnoSetup
	InstallerGenericEXE
)

// ─── Public API ──────────────────────────────────────────────────────────────

// RunUninstall executes the uninstall command for the given application and
// waits for it to finish, up to a 120-second timeout. If quiet is true, a
// QuietUninstallString is preferred and installer-specific silent flags are
// added.
func RunUninstall(ctx context.Context, app InstalledApp, quiet bool) error {
	cmdStr := chooseUninstallCommand(app, quiet)
	if cmdStr == "" {
		return fmt.Errorf("no uninstall command found for %q", app.Name)
	}

	installerType := detectInstallerType(cmdStr)
	if installerType == InstallerMSI {
		return runMSIUninstall(ctx, cmdStr, quiet)
	}

	return runUninstallCommand(ctx, cmdStr, installerType, quiet)
}

// LaunchUninstall starts the uninstaller and returns immediately, leaving
// the (usually interactive) uninstall wizard running on its own. This is
// the behavior behind the Uninstall action in the apps view.
func LaunchUninstall(app InstalledApp) error {
	cmdStr := chooseUninstallCommand(app, false)
	if cmdStr == "" {
		return fmt.Errorf("no uninstall command found for %q", app.Name)
	}

	exe, args := parseUninstallString(cmdStr)
	if exe == "" {
		return fmt.Errorf("unable to parse uninstall command: %q", cmdStr)
	}

	cmd := exec.Command(exe, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch uninstaller for %q: %w", app.Name, err)
	}
	// Detach: the wizard outlives us, and we must not leave a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// ─── Internal Helpers ────────────────────────────────────────────────────────

// parseUninstallString splits an UninstallString into executable path and
// arguments, handling quoted paths with spaces.
// Example: `"C:\Program Files\App\uninstall.exe" /S`
// → ["C:\Program Files\App\uninstall.exe", "/S"]
func parseUninstallString(cmdStr string) (string, []string) {
	cmdStr = strings.TrimSpace(cmdStr)
	if cmdStr == "" {
		return "", nil
	}

	matches := uninstallStringPattern.FindAllStringSubmatch(cmdStr, -1)
	var parts []string
	for _, match := range matches {
		// If match[1] is non-empty, it's a quoted string.
		if match[1] != "" {
			parts = append(parts, match[1])
		} else {
			parts = append(parts, match[0])
		}
	}

	if len(parts) == 0 {
		return "", nil
	}

	exe := strings.Trim(parts[0], `"`)
	return exe, parts[1:]
}

// detectInstallerType analyzes the uninstall command to determine installer
// technology. Detection is based on the executable name (not the full path)
// to avoid false matches from directory names containing patterns like
// "update.exe" or "uninst".
func detectInstallerType(cmdStr string) InstallerType {
	exe, _ := parseUninstallString(cmdStr)
	exeName := strings.ToLower(filepath.Base(exe))

	switch {
	case exeName == "msiexec.exe" || exeName == "msiexec":
		return InstallerMSI
	case exeName == "update.exe":
		// Squirrel/Electron apps uninstall through Update.exe.
		return InstallerSquirrel
	case uninsPattern.MatchString(exeName):
		return InstallerInnoSetup
	case strings.Contains(exeName, "uninst"):
		return InstallerNSIS
	default:
		return InstallerGenericEXE
	}
}

// applySilentFlags adds installer-specific silent flags to the arguments
// when quiet mode is requested.
func applySilentFlags(args []string, installerType InstallerType, quiet bool) []string {
	if !quiet {
		return args
	}

	hasFlag := func(flag string) bool {
		for _, arg := range args {
			if strings.EqualFold(arg, flag) {
				return true
			}
		}
		return false
	}

	switch installerType {
	case InstallerSquirrel:
		if !hasFlag("--uninstall") && !hasFlag("-uninstall") {
			args = append(args, "--uninstall")
		}
		if !hasFlag("-s") && !hasFlag("--silent") {
			args = append(args, "-s")
		}

	case InstallerNSIS:
		// NSIS uses /S for silent (must be uppercase).
		hasUpperS := false
		for _, arg := range args {
			if arg == "/S" {
				hasUpperS = true
				break
			}
		}
		if !hasUpperS {
			args = append(args, "/S")
		}

	case InstallerInnoSetup:
		for _, flag := range []string{"/VERYSILENT", "/SUPPRESSMSGBOXES", "/NORESTART"} {
			if !hasFlag(flag) {
				args = append(args, flag)
			}
		}

	case InstallerGenericEXE:
		// /S is the most common silent flag; a guess, but a harmless one.
		if !hasFlag("/S") {
			args = append(args, "/S")
		}

	case InstallerMSI:
		// Handled in runMSIUninstall.
	}

	return args
}

// chooseUninstallCommand selects the appropriate uninstall string.
func chooseUninstallCommand(app InstalledApp, quiet bool) string {
	if quiet && app.QuietUninstallString != "" {
		return app.QuietUninstallString
	}
	if app.UninstallString != "" {
		return app.UninstallString
	}
	return app.QuietUninstallString
}

// runMSIUninstall extracts the product GUID and runs msiexec with proper
// flags instead of replaying the recorded command verbatim.
func runMSIUninstall(ctx context.Context, cmdStr string, quiet bool) error {
	guid := msiGUIDPattern.FindString(cmdStr)
	if guid == "" {
		// Can't parse the GUID — fall back to running the raw command.
		return runUninstallCommand(ctx, cmdStr, InstallerGenericEXE, quiet)
	}

	args := []string{"/x", guid}
	if quiet {
		args = append(args, "/qn", "/norestart")
	}

	ctx, cancel := context.WithTimeout(ctx, uninstallTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "msiexec.exe", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return handleExitError(err, output)
	}
	return nil
}

// runUninstallCommand runs an arbitrary uninstall command. The command
// string is parsed properly instead of being passed raw to cmd.exe, so
// quoted paths with spaces work.
func runUninstallCommand(ctx context.Context, cmdStr string, installerType InstallerType, quiet bool) error {
	exe, args := parseUninstallString(cmdStr)
	if exe == "" {
		return fmt.Errorf("unable to parse uninstall command: %q", cmdStr)
	}

	args = applySilentFlags(args, installerType, quiet)

	ctx, cancel := context.WithTimeout(ctx, uninstallTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, exe, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return handleExitError(err, output)
	}
	return nil
}

// handleExitError wraps an exec error with contextual information.
// Common MSI exit codes are translated to human-readable messages.
func handleExitError(err error, output []byte) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("uninstall timed out after %s", uninstallTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		switch code {
		case 1605:
			return fmt.Errorf("product is not currently installed (exit code 1605)")
		case 1641, 3010:
			// Restart required but the uninstall itself succeeded.
			return nil
		default:
			outputStr := strings.TrimSpace(string(output))
			if len(outputStr) > 200 {
				// Truncate at a valid UTF-8 boundary.
				outputStr = outputStr[:200]
				for len(outputStr) > 0 && !utf8.ValidString(outputStr) {
					outputStr = outputStr[:len(outputStr)-1]
				}
				outputStr += "..."
			}
			if outputStr != "" {
				return fmt.Errorf("uninstall failed (exit code %d): %s", code, outputStr)
			}
			return fmt.Errorf("uninstall failed (exit code %d)", code)
		}
	}

	return fmt.Errorf("uninstall command error: %w", err)
}
