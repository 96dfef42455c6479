package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandWindowsEnv(t *testing.T) {
	t.Setenv("SCX_TEST_DIR", `C:\Users\demo`)
	t.Setenv("SCX_EMPTY", "")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"percent syntax", `%SCX_TEST_DIR%\Temp`, `C:\Users\demo\Temp`},
		{"dollar syntax", `$SCX_TEST_DIR/Temp`, `C:\Users\demo/Temp`},
		{"braced dollar", `${SCX_TEST_DIR}`, `C:\Users\demo`},
		{"unknown percent var", `%SCX_DOES_NOT_EXIST%\x`, `\x`},
		{"empty var", `%SCX_EMPTY%\x`, `\x`},
		{"no variables", `C:\Windows\Temp`, `C:\Windows\Temp`},
		{"unmatched percent", `100% done`, `100% done`},
		{"double percent", `100%%`, `100%`},
		{"two percent vars", `%SCX_TEST_DIR%;%SCX_TEST_DIR%`, `C:\Users\demo;C:\Users\demo`},
		{"empty string", ``, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandWindowsEnv(tt.input))
		})
	}
}
