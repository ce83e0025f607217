// File: trace/section.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Named profiling sections forwarded to the platform tracer.

package trace

import (
	"github.com/momentics/peuck/api"
	"github.com/momentics/peuck/control"
)

// Section forwards begin/end markers to a tracer when the platform gate is
// open. It keeps no state: pairing begin and end calls is up to the caller,
// and a pair belongs to the OS thread it runs on.
type Section struct {
	gate    api.Gate
	tracer  api.Tracer
	metrics *control.Metrics
}

// New creates a Section. A nil gate or tracer makes every call a no-op.
func New(gate api.Gate, tracer api.Tracer) *Section {
	return &Section{gate: gate, tracer: tracer}
}

// WithMetrics returns s counting begun sections on m.
func (s *Section) WithMetrics(m *control.Metrics) *Section {
	s.metrics = m
	return s
}

func (s *Section) reachable() bool {
	return s.gate != nil && s.tracer != nil && s.gate.Available()
}

// Active reports whether Begin would currently record a section.
func (s *Section) Active() bool {
	return s.reachable() && s.tracer.Enabled()
}

// Begin opens a named section.
func (s *Section) Begin(name string) {
	if !s.Active() {
		return
	}
	s.tracer.BeginSection(name)
	s.metrics.TraceSection()
}

// End closes the innermost open section.
func (s *Section) End() {
	if !s.reachable() {
		return
	}
	s.tracer.EndSection()
}

// Scoped opens a section and returns the function closing it. The section
// is only closed if it was actually opened:
//
//	defer sections.Scoped("LoadLevel")()
func (s *Section) Scoped(name string) func() {
	if !s.Active() {
		return func() {}
	}
	s.Begin(name)
	return s.End
}
