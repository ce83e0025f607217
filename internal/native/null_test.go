package native_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/peuck/api"
	"github.com/momentics/peuck/internal/native"
)

type closedGate struct{}

func (closedGate) Available() bool { return false }

func TestNullBackendDegradeValues(t *testing.T) {
	var n api.Native = native.Null{}
	assert.Equal(t, 0, n.CoresCount())
	assert.Equal(t, "", n.CPUHardware())
	assert.Equal(t, "", n.CPUTopology())
	assert.Equal(t, "", n.EnumerateThreads())
	assert.NotPanics(t, func() {
		n.SetThreadAffinityMaskByName("UnityMain", api.MaskLittle)
		n.SetThreadAffinityMask(1, api.MaskBig)
		n.SetCurrentThreadAffinityMask(api.MaskAll)
	})
}

func TestNewWithClosedGateReturnsNull(t *testing.T) {
	assert.Equal(t, native.Null{}, native.New(closedGate{}, native.Options{}))
	assert.Equal(t, native.Null{}, native.New(nil, native.Options{}))
}

func TestGateDisabledByConfig(t *testing.T) {
	assert.False(t, native.NewGate(false).Available())
	assert.Equal(t, native.Supported, native.NewGate(true).Available())
}
