// Package api
// Author: momentics <momentics@gmail.com>
//
// Named profiling section contract.

package api

// Tracer is the platform profiler hook for named sections.
// Sections nest; EndSection closes the most recently begun one.
type Tracer interface {
	// BeginSection opens a named section.
	BeginSection(name string)

	// EndSection closes the innermost open section.
	EndSection()

	// Enabled reports whether sections are currently being recorded.
	Enabled() bool
}
