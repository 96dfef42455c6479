package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitmandev/syscleanx/internal/config"
	"github.com/hitmandev/syscleanx/internal/uninstall"
)

func resetCleanFlags() {
	cleanAll = false
	cleanUser = false
	cleanSystem = false
	cleanBrowser = false
	cleanApps = false
	cleanNames = nil
}

func TestSelectCleanTargets(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
		check func(t *testing.T, targets []config.CleanTarget, err error)
	}{
		{
			name:  "nothing selected",
			setup: func() {},
			check: func(t *testing.T, targets []config.CleanTarget, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "nothing selected")
			},
		},
		{
			name:  "all",
			setup: func() { cleanAll = true },
			check: func(t *testing.T, targets []config.CleanTarget, err error) {
				require.NoError(t, err)
				assert.Len(t, targets, len(config.GetCleanTargets()))
			},
		},
		{
			name:  "category",
			setup: func() { cleanBrowser = true },
			check: func(t *testing.T, targets []config.CleanTarget, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, targets)
				for _, tgt := range targets {
					assert.Equal(t, "browser", tgt.Category)
				}
			},
		},
		{
			name:  "by name",
			setup: func() { cleanNames = []string{"usertemp"} },
			check: func(t *testing.T, targets []config.CleanTarget, err error) {
				require.NoError(t, err)
				require.Len(t, targets, 1)
				assert.Equal(t, "UserTemp", targets[0].Name)
			},
		},
		{
			name:  "unknown name",
			setup: func() { cleanNames = []string{"NoSuchTarget"} },
			check: func(t *testing.T, targets []config.CleanTarget, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "NoSuchTarget")
			},
		},
		{
			name:  "category plus name deduplicates",
			setup: func() { cleanUser = true; cleanNames = []string{"UserTemp"} },
			check: func(t *testing.T, targets []config.CleanTarget, err error) {
				require.NoError(t, err)
				seen := make(map[string]int)
				for _, tgt := range targets {
					seen[tgt.Name]++
				}
				assert.Equal(t, 1, seen["UserTemp"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCleanFlags()
			tt.setup()
			targets, err := selectCleanTargets()
			tt.check(t, targets, err)
		})
	}
	resetCleanFlags()
}

func TestResolveTargets(t *testing.T) {
	all, err := resolveTargets(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(config.GetCleanTargets()))

	one, err := resolveTargets([]string{"Prefetch"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Prefetch", one[0].Name)

	_, err = resolveTargets([]string{"bogus"})
	assert.Error(t, err)
}

func TestMatchApp(t *testing.T) {
	installed := []uninstall.InstalledApp{
		{Name: "Mozilla Firefox"},
		{Name: "Firefox Developer Edition"},
		{Name: "7-Zip"},
	}

	app, err := matchApp(installed, "mozilla firefox")
	require.NoError(t, err)
	assert.Equal(t, "Mozilla Firefox", app.Name)

	app, err = matchApp(installed, "7-zip")
	require.NoError(t, err)
	assert.Equal(t, "7-Zip", app.Name)

	_, err = matchApp(installed, "firefox")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches 2")

	_, err = matchApp(installed, "chrome")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no installed application")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "exactlyten", clip("exactlyten", 10))
	assert.Equal(t, "very long…", clip("very long application name", 10))
}
