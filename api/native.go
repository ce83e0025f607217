// Package api
// Author: momentics <momentics@gmail.com>
//
// Contract of the native CPU layer and the gate guarding access to it.

package api

// Native is the platform layer reading kernel CPU state and applying affinity.
// Dumps are plain text; parsing happens above this boundary.
// Every method is best-effort and never fails loudly.
type Native interface {
	// CoresCount returns the number of logical CPUs.
	CoresCount() int
	// CPUHardware returns a free-form hardware identifier.
	CPUHardware() string
	// CPUTopology returns one "<index> <frequency> <clusterId>" line per core.
	CPUTopology() string
	// EnumerateThreads returns one "<tid> <name>" line per live thread.
	EnumerateThreads() string
	// SetThreadAffinityMaskByName applies mask to every thread whose name starts with name.
	SetThreadAffinityMaskByName(name string, mask AffinityMask)
	// SetThreadAffinityMask applies mask to the given thread id.
	SetThreadAffinityMask(tid int, mask AffinityMask)
	// SetCurrentThreadAffinityMask applies mask to the calling OS thread.
	SetCurrentThreadAffinityMask(mask AffinityMask)
}

// Gate reports whether the native layer is reachable on this build and host.
type Gate interface {
	Available() bool
}
