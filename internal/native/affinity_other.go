//go:build !linux
// +build !linux

// File: internal/native/affinity_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback for platforms without a native CPU layer.

package native

import "github.com/momentics/peuck/api"

// Supported is false on builds without a native CPU layer.
const Supported = false

// newPlatform returns the Null backend on unsupported platforms.
func newPlatform(Options) api.Native {
	return Null{}
}
