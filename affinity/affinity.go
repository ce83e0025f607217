// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Controller turns logical thread and cluster intents into affinity masks and
// parses the native layer's topology and thread dumps. Every operation first
// consults the platform gate; with the gate closed it returns zero values or
// does nothing. No operation returns an error: affinity tuning is a
// best-effort optimisation.

package affinity

import (
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/momentics/peuck/api"
	"github.com/momentics/peuck/control"
)

// Operation labels used for metrics and logs.
const (
	OpLogicalThread = "logical_thread"
	OpTid           = "tid"
	OpCurrentThread = "current_thread"
)

// Controller is safe for concurrent use; it holds no mutable state.
type Controller struct {
	native  api.Native
	gate    api.Gate
	names   ThreadNames
	logger  logrus.FieldLogger
	metrics *control.Metrics
}

// Option configures a Controller.
type Option func(*Controller)

// WithThreadNames replaces the default logical thread table.
func WithThreadNames(names ThreadNames) Option {
	return func(c *Controller) { c.names = names }
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *control.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// New creates a Controller over native, guarded by gate.
func New(native api.Native, gate api.Gate, opts ...Option) *Controller {
	c := &Controller{
		native: native,
		gate:   gate,
		names:  DefaultThreadNames(),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether the native layer is reachable.
func (c *Controller) Available() bool {
	return c.native != nil && c.gate != nil && c.gate.Available()
}

// ThreadNames returns the logical thread table in use.
func (c *Controller) ThreadNames() ThreadNames {
	return c.names
}

// CoreCount returns the number of logical CPUs, or 0 when unavailable.
func (c *Controller) CoreCount() int {
	if !c.Available() {
		return 0
	}
	n := c.native.CoresCount()
	if n < 0 {
		n = 0
	}
	c.metrics.SetCores(n)
	return n
}

// CPUHardwareName returns the hardware identifier, or "" when unavailable.
func (c *Controller) CPUHardwareName() string {
	if !c.Available() {
		return ""
	}
	return c.native.CPUHardware()
}

// Topology returns the cores in reported order; empty when unavailable.
func (c *Controller) Topology() []api.CoreDescriptor {
	if !c.Available() {
		return []api.CoreDescriptor{}
	}
	cores, dropped := parseTopology(c.native.CPUTopology())
	c.reportDropped("topology", dropped)
	return cores
}

// EnumerateThreads returns a fresh tid to name map; empty when unavailable.
func (c *Controller) EnumerateThreads() api.ThreadInfo {
	if !c.Available() {
		return api.ThreadInfo{}
	}
	threads, dropped := parseThreads(c.native.EnumerateThreads())
	c.reportDropped("threads", dropped)
	return threads
}

// ResolveClusterMask is the package-level ResolveClusterMask.
func (c *Controller) ResolveClusterMask(hint api.ClusterHint, totalCores int) api.AffinityMask {
	return ResolveClusterMask(hint, totalCores)
}

// SetAffinityForLogicalThread restricts every thread named after the logical
// thread to the hinted cluster. Threads missing from the table or from the
// process are ignored.
func (c *Controller) SetAffinityForLogicalThread(thread api.LogicalThread, hint api.ClusterHint) {
	if !c.Available() {
		c.metrics.AffinityRequest(OpLogicalThread, control.ResultDegraded)
		return
	}
	name, ok := c.names.Lookup(thread)
	if !ok {
		c.logger.WithField("thread", thread.String()).Debug("Logical thread has no native name")
		c.metrics.AffinityRequest(OpLogicalThread, control.ResultSkipped)
		return
	}
	cores := c.CoreCount()
	mask := ResolveClusterMask(hint, cores)
	c.logger.WithFields(logrus.Fields{
		"thread":  thread.String(),
		"native":  name,
		"cluster": hint.String(),
		"cores":   cores,
		"mask":    mask.String(),
	}).Debug("Setting logical thread affinity")
	c.native.SetThreadAffinityMaskByName(name, mask)
	c.metrics.AffinityRequest(OpLogicalThread, control.ResultApplied)
}

// SetAffinityForTid forwards mask for tid to the native layer.
func (c *Controller) SetAffinityForTid(tid int, mask api.AffinityMask) {
	if !c.Available() {
		c.metrics.AffinityRequest(OpTid, control.ResultDegraded)
		return
	}
	c.native.SetThreadAffinityMask(tid, mask)
	c.metrics.AffinityRequest(OpTid, control.ResultApplied)
}

// SetAffinityForCurrentThread locks the calling goroutine to its OS thread
// and forwards mask for that thread. The lock is kept so the goroutine stays
// on the restricted thread; each call adds one runtime.LockOSThread that the
// caller releases with runtime.UnlockOSThread. Nothing is locked when the
// platform is unavailable.
func (c *Controller) SetAffinityForCurrentThread(mask api.AffinityMask) {
	if !c.Available() {
		c.metrics.AffinityRequest(OpCurrentThread, control.ResultDegraded)
		return
	}
	runtime.LockOSThread()
	c.native.SetCurrentThreadAffinityMask(mask)
	c.metrics.AffinityRequest(OpCurrentThread, control.ResultApplied)
}

func (c *Controller) reportDropped(source string, n int) {
	if n == 0 {
		return
	}
	c.logger.WithFields(logrus.Fields{"source": source, "lines": n}).Debug("Skipped malformed dump lines")
	c.metrics.DroppedLines(source, n)
}
