package ui

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
)

// CPUModel returns the processor model name, or the architecture when it
// cannot be determined.
func CPUModel() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 || infos[0].ModelName == "" {
		return runtime.GOARCH
	}
	return infos[0].ModelName
}

// FreeSpace returns the free bytes on the filesystem holding dir.
func FreeSpace(dir string) (uint64, error) {
	usage, err := disk.Usage(dir)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}
