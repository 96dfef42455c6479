package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMetrics() *Metrics {
	return &Metrics{
		Hostname:   "DESKTOP-TEST",
		OSCaption:  "Microsoft Windows 11 Pro",
		OSVersion:  "Windows 11 (Build 22631)",
		Uptime:     26*time.Hour + 30*time.Minute,
		CPUModel:   "Test CPU",
		CPUCores:   8,
		CPUPercent: 42.5,
		MemTotal:   16 << 30,
		MemUsed:    8 << 30,
		MemPercent: 50,
		Disks: []DiskMetrics{
			{Mount: `C:\`, Total: 500 << 30, Free: 100 << 30, UsedPercent: 80},
		},
	}
}

func TestRenderText(t *testing.T) {
	out := RenderText(sampleMetrics(), 123456789)

	assert.Contains(t, out, "DESKTOP-TEST")
	assert.Contains(t, out, "Microsoft Windows 11 Pro")
	assert.Contains(t, out, "1d 2h 30m")
	assert.Contains(t, out, "Test CPU (8 threads)")
	assert.Contains(t, out, `C:\`)
	assert.Contains(t, out, "Cleanable")
	assert.Contains(t, out, "Standard user")
}

func TestRenderText_NoReclaimable(t *testing.T) {
	out := RenderText(sampleMetrics(), -1)
	assert.NotContains(t, out, "Cleanable")
}

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON(sampleMetrics(), 1024)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "DESKTOP-TEST", decoded["hostname"])
	assert.Equal(t, float64(1024), decoded["reclaimable_bytes"])

	out, err = RenderJSON(sampleMetrics(), -1)
	require.NoError(t, err)
	assert.NotContains(t, out, "reclaimable_bytes")
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "unknown"},
		{5 * time.Minute, "5m"},
		{90 * time.Minute, "1h 30m"},
		{49*time.Hour + 5*time.Minute, "2d 1h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatUptime(tt.d))
	}
}
