package core

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// WindowsVersion returns the major, minor, and build numbers of the running
// Windows version. RtlGetNtVersionNumbers works on all Windows versions
// without manifest requirements.
func WindowsVersion() (major, minor, build uint32) {
	major, minor, build = windows.RtlGetNtVersionNumbers()
	// The build number comes back with high bits set; mask them off.
	build &= 0xFFFF
	return major, minor, build
}

// WindowsVersionString returns a human-readable Windows version, e.g.
// "Windows 11 (Build 22631)". Windows 11 reports major version 10 and is
// distinguished by build >= 22000.
func WindowsVersionString() string {
	major, minor, build := WindowsVersion()

	var name string
	switch {
	case major == 10 && build >= 22000:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	case major == 6 && minor == 3:
		name = "Windows 8.1"
	case major == 6 && minor == 1:
		name = "Windows 7"
	default:
		name = fmt.Sprintf("Windows %d.%d", major, minor)
	}

	return fmt.Sprintf("%s (Build %d)", name, build)
}
