// File: adapters/affinity_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
// Description:
//   Adapter implementing the api.Affinity interface, delegating to the
//   affinity controller for pinning the calling goroutine's OS thread.
//
// Package adapters provides glue code between the core API contracts
// and the internal implementation.

package adapters

import (
	"runtime"
	"sync"

	"github.com/momentics/peuck/affinity"
	"github.com/momentics/peuck/api"
)

// ThreadPinner implements api.Affinity on top of an affinity.Controller.
// Pin and Unpin must be called from the same goroutine.
type ThreadPinner struct {
	ctrl *affinity.Controller

	mu     sync.Mutex
	hint   api.ClusterHint
	mask   api.AffinityMask
	pinned bool
	locks  int // runtime.LockOSThread calls taken by the controller
}

var _ api.Affinity = (*ThreadPinner)(nil)

// NewThreadPinner creates an unpinned ThreadPinner.
func NewThreadPinner(ctrl *affinity.Controller) *ThreadPinner {
	return &ThreadPinner{ctrl: ctrl, hint: api.ClusterAll, mask: api.MaskAll}
}

// Pin restricts the calling goroutine's OS thread to the hinted cluster and
// keeps the goroutine on that thread. Pinning again replaces the cluster.
// With the platform unavailable only the recorded state changes.
func (p *ThreadPinner) Pin(hint api.ClusterHint) {
	mask := p.ctrl.ResolveClusterMask(hint, p.ctrl.CoreCount())
	p.ctrl.SetAffinityForCurrentThread(mask)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl.Available() {
		p.locks++
	}
	p.hint = hint
	p.mask = mask
	p.pinned = true
}

// Unpin resets the thread to api.MaskAll and releases the goroutine. On hosts
// with more than 16 CPUs the thread stays restricted to CPUs 0-15.
func (p *ThreadPinner) Unpin() {
	p.mu.Lock()
	wasPinned := p.pinned
	locks := p.locks
	p.pinned = false
	p.locks = 0
	p.hint = api.ClusterAll
	p.mask = api.MaskAll
	p.mu.Unlock()

	if !wasPinned {
		return
	}
	p.ctrl.SetAffinityForCurrentThread(api.MaskAll)
	if p.ctrl.Available() {
		locks++
	}
	for ; locks > 0; locks-- {
		runtime.UnlockOSThread()
	}
}

// Get returns a snapshot of the current binding.
func (p *ThreadPinner) Get() api.AffinityDescriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return api.AffinityDescriptor{Hint: p.hint, Mask: p.mask, Pinned: p.pinned}
}
