// control/logging_test.go
// Author: momentics <momentics@gmail.com>

package control_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/peuck/control"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := control.NewLogger(control.LogConfig{Level: "debug", Format: "json"}, &buf)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("cores", 8).Debug("probe")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "probe", entry["msg"])
	assert.Equal(t, float64(8), entry["cores"])
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := control.NewLogger(control.LogConfig{Level: "loud", Format: "text"}, &buf)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")
}
