package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/yusufpapurcu/wmi"

	"github.com/hitmandev/syscleanx/internal/core"
)

// cpuSampleInterval is how long the CPU usage sample runs. Long enough for
// a stable reading, short enough that `scx status` feels instant.
const cpuSampleInterval = 500 * time.Millisecond

// Metrics is a one-shot system snapshot.
type Metrics struct {
	Hostname   string        `json:"hostname"`
	OSCaption  string        `json:"os_caption,omitempty"`
	OSVersion  string        `json:"os_version"`
	Uptime     time.Duration `json:"uptime_ns"`
	Elevated   bool          `json:"elevated"`
	CPUModel   string        `json:"cpu_model,omitempty"`
	CPUCores   int           `json:"cpu_cores"`
	CPUPercent float64       `json:"cpu_percent"`
	MemTotal   uint64        `json:"mem_total"`
	MemUsed    uint64        `json:"mem_used"`
	MemPercent float64       `json:"mem_percent"`
	Disks      []DiskMetrics `json:"disks"`
}

// DiskMetrics describes one mounted volume.
type DiskMetrics struct {
	Mount       string  `json:"mount"`
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// win32OperatingSystem maps the WMI Win32_OperatingSystem class; only the
// fields we query are declared.
type win32OperatingSystem struct {
	Caption string
}

// Collect gathers a system snapshot. Individual probe failures degrade the
// snapshot (empty field) rather than failing it; only a total inability to
// read memory or disks is an error.
func Collect(ctx context.Context) (*Metrics, error) {
	m := &Metrics{
		OSVersion: core.WindowsVersionString(),
		Elevated:  core.IsElevated(),
		OSCaption: osCaption(),
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		m.Hostname = info.Hostname
		m.Uptime = time.Duration(info.Uptime) * time.Second
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		m.CPUModel = strings.TrimSpace(infos[0].ModelName)
	}
	if counts, err := cpu.CountsWithContext(ctx, true); err == nil {
		m.CPUCores = counts
	}
	if percents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err == nil && len(percents) > 0 {
		m.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("read memory stats: %w", err)
	}
	m.MemTotal = vm.Total
	m.MemUsed = vm.Used
	m.MemPercent = vm.UsedPercent

	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}
	for _, p := range parts {
		usage, uerr := disk.UsageWithContext(ctx, p.Mountpoint)
		if uerr != nil {
			continue // e.g. empty card reader
		}
		m.Disks = append(m.Disks, DiskMetrics{
			Mount:       p.Mountpoint,
			Total:       usage.Total,
			Free:        usage.Free,
			UsedPercent: usage.UsedPercent,
		})
	}

	return m, nil
}

// osCaption reads the marketing OS name ("Microsoft Windows 11 Pro") from
// WMI. Best effort: an empty string on failure.
func osCaption() string {
	var dst []win32OperatingSystem
	if err := wmi.Query("SELECT Caption FROM Win32_OperatingSystem", &dst); err != nil {
		return ""
	}
	if len(dst) == 0 {
		return ""
	}
	return strings.TrimSpace(dst[0].Caption)
}
