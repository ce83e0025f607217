// File: fake/tracer.go
// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import "sync"

// Tracer records begin/end events as "begin:<name>" and "end".
type Tracer struct {
	Disabled bool

	mu     sync.Mutex
	events []string
}

func (t *Tracer) BeginSection(name string) {
	t.mu.Lock()
	t.events = append(t.events, "begin:"+name)
	t.mu.Unlock()
}

func (t *Tracer) EndSection() {
	t.mu.Lock()
	t.events = append(t.events, "end")
	t.mu.Unlock()
}

func (t *Tracer) Enabled() bool { return !t.Disabled }

// Events returns a copy of the recorded events.
func (t *Tracer) Events() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.events...)
}
