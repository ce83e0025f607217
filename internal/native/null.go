// File: internal/native/null.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package native

import "github.com/momentics/peuck/api"

// Null is the native backend for hosts without affinity support.
type Null struct{}

var _ api.Native = Null{}

func (Null) CoresCount() int                                      { return 0 }
func (Null) CPUHardware() string                                  { return "" }
func (Null) CPUTopology() string                                  { return "" }
func (Null) EnumerateThreads() string                             { return "" }
func (Null) SetThreadAffinityMaskByName(string, api.AffinityMask) {}
func (Null) SetThreadAffinityMask(int, api.AffinityMask)          {}
func (Null) SetCurrentThreadAffinityMask(api.AffinityMask)        {}
