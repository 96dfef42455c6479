package envutil

import (
	"os"
	"strings"
)

// ExpandWindowsEnv resolves environment variable references in a path,
// supporting both Windows %VAR% and Unix $VAR / ${VAR} syntax. Unknown
// variables expand to the empty string, matching os.ExpandEnv.
func ExpandWindowsEnv(path string) string {
	expanded := expandPercent(path)
	return os.ExpandEnv(expanded)
}

// expandPercent replaces %VAR% references. A lone or unmatched percent
// sign is left as-is.
func expandPercent(s string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.IndexByte(s[start+1:], '%')
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		end += start + 1

		name := s[start+1 : end]
		b.WriteString(s[:start])
		if name == "" {
			// "%%" — literal percent.
			b.WriteByte('%')
		} else {
			b.WriteString(os.Getenv(name))
		}
		s = s[end+1:]
	}
}
