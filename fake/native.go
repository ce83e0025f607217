// File: fake/native.go
// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT
//
// Scripted api.Native recording every affinity request.

package fake

import (
	"sync"

	"github.com/momentics/peuck/api"
)

// AffinityCall records one affinity request received by Native.
type AffinityCall struct {
	Op   string // "name", "tid" or "current"
	Name string
	Tid  int
	Mask api.AffinityMask
}

// Native returns canned dumps and records affinity requests.
type Native struct {
	Cores    int
	Hardware string
	Topology string
	Threads  string

	mu    sync.Mutex
	calls []AffinityCall
	reads int
}

var _ api.Native = (*Native)(nil)

func (n *Native) CoresCount() int {
	n.read()
	return n.Cores
}

func (n *Native) CPUHardware() string {
	n.read()
	return n.Hardware
}

func (n *Native) CPUTopology() string {
	n.read()
	return n.Topology
}

func (n *Native) EnumerateThreads() string {
	n.read()
	return n.Threads
}

func (n *Native) SetThreadAffinityMaskByName(name string, mask api.AffinityMask) {
	n.record(AffinityCall{Op: "name", Name: name, Mask: mask})
}

func (n *Native) SetThreadAffinityMask(tid int, mask api.AffinityMask) {
	n.record(AffinityCall{Op: "tid", Tid: tid, Mask: mask})
}

func (n *Native) SetCurrentThreadAffinityMask(mask api.AffinityMask) {
	n.record(AffinityCall{Op: "current", Mask: mask})
}

// Calls returns a copy of the recorded affinity requests.
func (n *Native) Calls() []AffinityCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]AffinityCall(nil), n.calls...)
}

// Reads returns how many query methods were invoked.
func (n *Native) Reads() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.reads
}

func (n *Native) read() {
	n.mu.Lock()
	n.reads++
	n.mu.Unlock()
}

func (n *Native) record(c AffinityCall) {
	n.mu.Lock()
	n.calls = append(n.calls, c)
	n.mu.Unlock()
}
