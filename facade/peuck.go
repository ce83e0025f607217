// File: facade/peuck.go
// Unified facade layer for peuck.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Peuck aggregates the platform gate, native backend, affinity controller,
// section tracer and control surface behind a single entry point built from
// control.Config.

package facade

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/momentics/peuck/adapters"
	"github.com/momentics/peuck/affinity"
	"github.com/momentics/peuck/api"
	"github.com/momentics/peuck/control"
	"github.com/momentics/peuck/internal/concurrency"
	"github.com/momentics/peuck/internal/native"
	"github.com/momentics/peuck/internal/tracing"
	"github.com/momentics/peuck/trace"
)

// Peuck is the top-level facade.
type Peuck struct {
	cfg      *control.Config
	logger   *logrus.Logger
	gate     native.PlatformGate
	metrics  *control.Metrics
	registry *prometheus.Registry
	affinity *affinity.Controller
	tracer   *tracing.Tracer
	section  *trace.Section
	control  *adapters.ControlAdapter
}

type options struct {
	registerer prometheus.Registerer
	output     io.Writer
	traceOpts  []tracing.Option
}

// Option customises facade construction.
type Option func(*options)

// WithRegisterer registers metrics on reg instead of a private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithOutput sets the log destination (stderr by default).
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithTraceOptions passes options through to the section tracer.
func WithTraceOptions(opts ...tracing.Option) Option {
	return func(o *options) { o.traceOpts = append(o.traceOpts, opts...) }
}

// New builds every component from cfg. A nil cfg uses the defaults.
func New(cfg *control.Config, opts ...Option) (*Peuck, error) {
	if cfg == nil {
		cfg = control.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Peuck{cfg: cfg}
	p.logger = control.NewLogger(cfg.Log, o.output)

	if cfg.Metrics.Enabled {
		reg := o.registerer
		if reg == nil {
			p.registry = prometheus.NewRegistry()
			reg = p.registry
		}
		p.metrics = control.NewMetrics(reg)
	}

	p.gate = native.NewGate(cfg.Platform.Enabled)
	backend := native.New(p.gate, native.Options{
		ProcMount: cfg.Platform.ProcMount,
		SysMount:  cfg.Platform.SysMount,
		Logger:    p.logger,
	})
	p.affinity = affinity.New(backend, p.gate,
		affinity.WithLogger(p.logger),
		affinity.WithMetrics(p.metrics),
	)

	tracer, err := tracing.New(cfg.Trace, p.logger, o.traceOpts...)
	if err != nil {
		return nil, err
	}
	p.tracer = tracer
	p.section = trace.New(p.gate, tracer).WithMetrics(p.metrics)

	p.control = adapters.NewControlAdapter(cfg)
	p.control.RegisterAffinityProbes(p.affinity)
	p.control.RegisterDebugProbe("trace.depth", func() any { return tracer.Depth() })

	p.logger.WithFields(logrus.Fields{
		"platform": p.gate.Available(),
		"trace":    cfg.Trace.Enabled,
		"metrics":  cfg.Metrics.Enabled,
	}).Debug("Peuck initialized")
	return p, nil
}

// Affinity returns the affinity controller.
func (p *Peuck) Affinity() *affinity.Controller { return p.affinity }

// Trace returns the section tracer.
func (p *Peuck) Trace() *trace.Section { return p.section }

// Control returns the control surface.
func (p *Peuck) Control() api.Control { return p.control }

// Pinner returns a fresh pinner for the calling goroutine.
func (p *Peuck) Pinner() *adapters.ThreadPinner { return adapters.NewThreadPinner(p.affinity) }

// NewExecutor starts a pool of workers pinned to the hinted cluster. The
// caller closes it.
func (p *Peuck) NewExecutor(workers int, hint api.ClusterHint) *concurrency.Executor {
	return concurrency.NewExecutor(workers, hint, func() api.Affinity {
		return p.Pinner()
	}, p.logger)
}

// Gate returns the platform gate.
func (p *Peuck) Gate() api.Gate { return p.gate }

// Logger returns the facade's logger.
func (p *Peuck) Logger() *logrus.Logger { return p.logger }

// Registry returns the private metrics registry, or nil when metrics are
// disabled or registered elsewhere.
func (p *Peuck) Registry() *prometheus.Registry { return p.registry }

// Close ends open sections and flushes the tracer.
func (p *Peuck) Close(ctx context.Context) error {
	return p.tracer.Shutdown(ctx)
}
