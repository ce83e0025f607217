package adapters_test

import (
	"testing"

	"github.com/momentics/peuck/adapters"
	"github.com/momentics/peuck/affinity"
	"github.com/momentics/peuck/control"
	"github.com/momentics/peuck/fake"
)

func TestControlAdapterBasic(t *testing.T) {
	ctrl := adapters.NewControlAdapter(nil)
	cfg := ctrl.GetConfig()
	if cfg["log.level"] != "info" {
		t.Errorf("Expected default log level, got %v", cfg["log.level"])
	}
	cfg["log.level"] = "debug"
	if ctrl.GetConfig()["log.level"] != "info" {
		t.Error("GetConfig returned shared map")
	}

	ctrl.RegisterDebugProbe("k", func() any { return 1 })
	stats := ctrl.Stats()
	if stats["debug.k"] != 1 {
		t.Error("RegisterDebugProbe did not apply")
	}
	if _, ok := stats["debug.platform.cpus"]; !ok {
		t.Error("Platform probes missing")
	}
}

func TestControlAdapterAffinityProbes(t *testing.T) {
	native := &fake.Native{Cores: 8, Hardware: "SDM845"}
	ctrl := adapters.NewControlAdapter(control.DefaultConfig())
	ctrl.RegisterAffinityProbes(affinity.New(native, fake.Open))

	stats := ctrl.Stats()
	if stats["debug.cpu.cores"] != 8 {
		t.Errorf("cpu.cores = %v", stats["debug.cpu.cores"])
	}
	if stats["debug.cpu.hardware"] != "SDM845" {
		t.Errorf("cpu.hardware = %v", stats["debug.cpu.hardware"])
	}
	if stats["debug.platform.available"] != true {
		t.Errorf("platform.available = %v", stats["debug.platform.available"])
	}
}
