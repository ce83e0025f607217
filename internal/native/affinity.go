// File: internal/native/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform gate and backend selection.

package native

import (
	"github.com/sirupsen/logrus"

	"github.com/momentics/peuck/api"
)

// PlatformGate is the api.Gate derived from the build platform and configuration.
type PlatformGate struct {
	open bool
}

var _ api.Gate = PlatformGate{}

// NewGate opens the gate only when the build supports the native layer and
// the caller has not disabled it.
func NewGate(enabled bool) PlatformGate {
	return PlatformGate{open: Supported && enabled}
}

// Available reports whether native calls may be attempted.
func (g PlatformGate) Available() bool {
	return g.open
}

// Options configures the native backend.
type Options struct {
	ProcMount string // defaults to /proc
	SysMount  string // defaults to /sys
	Logger    logrus.FieldLogger
}

func (o Options) normalize() Options {
	if o.ProcMount == "" {
		o.ProcMount = "/proc"
	}
	if o.SysMount == "" {
		o.SysMount = "/sys"
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// New returns the platform backend when gate is open and Null otherwise.
func New(gate api.Gate, opts Options) api.Native {
	if gate == nil || !gate.Available() {
		return Null{}
	}
	return newPlatform(opts.normalize())
}
