// control/debug_test.go
// Author: momentics <momentics@gmail.com>

package control_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/peuck/control"
)

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	calls := 0
	dp.RegisterProbe("b", func() any { calls++; return calls })
	dp.RegisterProbe("a", func() any { return "x" })
	dp.RegisterProbe("a", func() any { return "y" })

	assert.Equal(t, []string{"a", "b"}, dp.Names())
	assert.Equal(t, map[string]any{"a": "y", "b": 1}, dp.DumpState())
	assert.Equal(t, 2, dp.DumpState()["b"])
}

func TestProbeMayRegisterFromDump(t *testing.T) {
	dp := control.NewDebugProbes()
	dp.RegisterProbe("self", func() any {
		dp.RegisterProbe("late", func() any { return true })
		return nil
	})
	dp.DumpState()
	assert.Contains(t, dp.Names(), "late")
}

func TestPlatformProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	control.RegisterPlatformProbes(dp)
	state := dp.DumpState()
	assert.Equal(t, runtime.GOOS, state["platform.os"])
	assert.Equal(t, runtime.NumCPU(), state["platform.cpus"])
}
