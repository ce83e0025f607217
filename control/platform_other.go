//go:build !linux
// +build !linux

// control/platform_other.go
// Author: momentics <momentics@gmail.com>
//
// Debug probes for hosts without a native CPU layer.

package control

import (
	"runtime"
)

// RegisterPlatformProbes sets the generic debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.os", func() any {
		return runtime.GOOS
	})
	dp.RegisterProbe("platform.sched_affinity", func() any {
		return false
	})
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
}
