//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific debug probes.

package control

import (
	"runtime"
)

// RegisterPlatformProbes sets Linux-specific debug probes. Android builds
// report their own GOOS.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.os", func() any {
		return runtime.GOOS
	})
	dp.RegisterProbe("platform.sched_affinity", func() any {
		return true
	})
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
}
