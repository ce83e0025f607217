// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control over the configuration snapshot
// and the debug probe registry.

package adapters

import (
	"github.com/momentics/peuck/affinity"
	"github.com/momentics/peuck/api"
	"github.com/momentics/peuck/control"
)

type ControlAdapter struct {
	config map[string]any
	debug  *control.DebugProbes
}

var _ api.Control = (*ControlAdapter)(nil)

// NewControlAdapter exposes cfg and registers platform probes. A nil cfg
// exposes the defaults.
func NewControlAdapter(cfg *control.Config) *ControlAdapter {
	if cfg == nil {
		cfg = control.DefaultConfig()
	}
	adapter := &ControlAdapter{
		config: cfg.Snapshot(),
		debug:  control.NewDebugProbes(),
	}
	control.RegisterPlatformProbes(adapter.debug)
	return adapter
}

// RegisterAffinityProbes adds probes reporting what the controller sees.
func (c *ControlAdapter) RegisterAffinityProbes(ctrl *affinity.Controller) {
	c.debug.RegisterProbe("platform.available", func() any { return ctrl.Available() })
	c.debug.RegisterProbe("cpu.cores", func() any { return ctrl.CoreCount() })
	c.debug.RegisterProbe("cpu.hardware", func() any { return ctrl.CPUHardwareName() })
}

func (c *ControlAdapter) GetConfig() map[string]any {
	out := make(map[string]any, len(c.config))
	for k, v := range c.config {
		out[k] = v
	}
	return out
}

func (c *ControlAdapter) Stats() map[string]any {
	combined := make(map[string]any)
	for k, v := range c.debug.DumpState() {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}
