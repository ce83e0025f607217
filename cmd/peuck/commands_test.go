package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/peuck/api"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "peuck.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("platform:\n  enabled: false\n"), 0o644))

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestMaskExplicitCores(t *testing.T) {
	out, err := execute(t, "mask", "--cluster", "big", "--cores", "8")
	require.NoError(t, err)
	assert.Equal(t, "0xF0 cores=8 cpus=[4 5 6 7]\n", out)
}

func TestMaskDetectedCoresWithPlatformDisabled(t *testing.T) {
	out, err := execute(t, "mask", "--cluster", "little")
	require.NoError(t, err)
	assert.Equal(t, "0xFFFF cores=0 cpus=[0 1 2 3 4 5 6 7 8 9 10 11 12 13 14 15]\n", out)
}

func TestMaskRejectsUnknownCluster(t *testing.T) {
	_, err := execute(t, "mask", "--cluster", "medium")
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))
}

func TestInfoPlatformDisabled(t *testing.T) {
	out, err := execute(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "platform:  false")
	assert.Contains(t, out, "cores:     0")
	assert.Contains(t, out, "CPU")
}

func TestPinRequiresPlatform(t *testing.T) {
	_, err := execute(t, "pin", "--tid", "1", "--mask", "0xF0")
	assert.True(t, errors.Is(err, api.ErrNotSupported))
}

func TestPinRejectsBadMask(t *testing.T) {
	_, err := execute(t, "pin", "--tid", "1", "--mask", "0")
	assert.Error(t, err)
}

func TestStatsListsConfig(t *testing.T) {
	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "platform.enabled=false\n")
	assert.Contains(t, out, "debug.platform.available=false\n")
}

func TestLogicalRequiresPlatform(t *testing.T) {
	_, err := execute(t, "logical", "--thread", "main", "--cluster", "big")
	assert.True(t, errors.Is(err, api.ErrNotSupported))
}

func TestLogicalRejectsUnknownThread(t *testing.T) {
	_, err := execute(t, "logical", "--thread", "renderer")
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))
}

func TestLogicalThreadMissingFromProcess(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "peuck.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: error\n"), 0o644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfg, "logical", "--thread", "audio-mixer"})

	err := root.Execute()
	if errors.Is(err, api.ErrNotSupported) {
		t.Skip("platform unavailable on this build")
	}
	assert.True(t, errors.Is(err, api.ErrNotFound))
}
