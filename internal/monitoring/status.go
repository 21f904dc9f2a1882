package monitoring

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStatus is a point-in-time snapshot of the machine running the panel,
// shown on the admin status page.
type HostStatus struct {
	Hostname      string
	UptimeSeconds uint64
	CPUPercent    float64
	MemUsedMB     uint64
	MemTotalMB    uint64
	MemPercent    float64
	DiskUsedGB    uint64
	DiskTotalGB   uint64
	DiskPercent   float64
	CollectedAt   time.Time
}

// CollectHostStatus gathers host metrics. Individual probe failures leave
// the corresponding fields zeroed rather than failing the whole snapshot.
func CollectHostStatus() HostStatus {
	status := HostStatus{CollectedAt: time.Now()}

	if info, err := host.Info(); err == nil {
		status.Hostname = info.Hostname
		status.UptimeSeconds = info.Uptime
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemUsedMB = vm.Used / 1024 / 1024
		status.MemTotalMB = vm.Total / 1024 / 1024
		status.MemPercent = vm.UsedPercent
	}

	if du, err := disk.Usage("/"); err == nil {
		status.DiskUsedGB = du.Used / 1024 / 1024 / 1024
		status.DiskTotalGB = du.Total / 1024 / 1024 / 1024
		status.DiskPercent = du.UsedPercent
	}

	return status
}
