// control/config_test.go
// Author: momentics <momentics@gmail.com>

package control_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/peuck/control"
)

func TestDefaultConfig(t *testing.T) {
	cfg := control.DefaultConfig()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Platform.Enabled)
	assert.Equal(t, "/proc", cfg.Platform.ProcMount)
	assert.Equal(t, "/sys", cfg.Platform.SysMount)
	assert.False(t, cfg.Trace.Enabled)
	assert.Equal(t, "none", cfg.Trace.Exporter)
	assert.Equal(t, "peuck", cfg.Trace.ServiceName)
	assert.Equal(t, 1.0, cfg.Trace.SampleRate)
	assert.True(t, cfg.Metrics.Enabled)
	assert.NoError(t, cfg.Validate())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "peuck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
platform:
  enabled: false
  proc_mount: /host/proc
trace:
  enabled: true
  exporter: stdout
  sample_rate: 0.25
`)
	cfg, err := control.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Platform.Enabled)
	assert.Equal(t, "/host/proc", cfg.Platform.ProcMount)
	assert.Equal(t, "/sys", cfg.Platform.SysMount)
	assert.True(t, cfg.Trace.Enabled)
	assert.Equal(t, "stdout", cfg.Trace.Exporter)
	assert.Equal(t, 0.25, cfg.Trace.SampleRate)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PEUCK_LOG_LEVEL", "warn")
	t.Setenv("PEUCK_TRACE_EXPORTER", "stdout")
	path := writeConfig(t, "log:\n  level: debug\n")

	cfg, err := control.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "stdout", cfg.Trace.Exporter)
}

func TestLoadWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := control.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, control.DefaultConfig(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := control.Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"format":   "log:\n  format: xml\n",
		"exporter": "trace:\n  exporter: zipkin\n",
		"rate":     "trace:\n  sample_rate: 1.5\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := control.Load(viper.New(), writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestSnapshot(t *testing.T) {
	snap := control.DefaultConfig().Snapshot()
	assert.Equal(t, "info", snap["log.level"])
	assert.Equal(t, true, snap["platform.enabled"])
	assert.Equal(t, "none", snap["trace.exporter"])
	assert.Len(t, snap, 10)
}
