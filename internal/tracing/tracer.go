// File: internal/tracing/tracer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// OpenTelemetry-backed api.Tracer. Sections nest per OS thread: each begun
// section becomes a child span of the section open before it on the same
// thread. Goroutines keeping a section open across blocking calls should be
// locked to their thread (runtime.LockOSThread).

package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/momentics/peuck/api"
	"github.com/momentics/peuck/control"
)

const instrumentationName = "github.com/momentics/peuck/trace"

// Tracer records named sections as spans.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	enabled  bool
	logger   logrus.FieldLogger

	mu     sync.Mutex
	stacks map[int][]openSection // by OS thread id
}

type openSection struct {
	ctx  context.Context
	span oteltrace.Span
}

var _ api.Tracer = (*Tracer)(nil)

type options struct {
	processors []sdktrace.SpanProcessor
	writer     io.Writer
}

// Option customises the tracer.
type Option func(*options)

// WithSpanProcessor adds a span processor, e.g. a tracetest.SpanRecorder.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) { o.processors = append(o.processors, sp) }
}

// WithWriter sets the destination of the stdout exporter.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// New builds a tracer from cfg.
func New(cfg control.TraceConfig, logger logrus.FieldLogger, opts ...Option) (*Tracer, error) {
	o := options{writer: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(attribute.String("service.name", cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
	}

	switch cfg.Exporter {
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithWriter(o.writer))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exp))
	case "none", "":
	default:
		return nil, fmt.Errorf("unknown trace exporter %q: %w", cfg.Exporter, api.ErrInvalidArgument)
	}
	for _, sp := range o.processors {
		providerOpts = append(providerOpts, sdktrace.WithSpanProcessor(sp))
	}

	tp := sdktrace.NewTracerProvider(providerOpts...)

	logger.WithFields(logrus.Fields{
		"service":     cfg.ServiceName,
		"exporter":    cfg.Exporter,
		"sample_rate": cfg.SampleRate,
		"enabled":     cfg.Enabled,
	}).Debug("Section tracer initialized")

	return &Tracer{
		provider: tp,
		tracer:   tp.Tracer(instrumentationName),
		enabled:  cfg.Enabled,
		logger:   logger,
		stacks:   make(map[int][]openSection),
	}, nil
}

// Enabled reports whether sections are recorded.
func (t *Tracer) Enabled() bool {
	return t.enabled
}

// BeginSection starts a span nested in the innermost section open on the
// calling thread.
func (t *Tracer) BeginSection(name string) {
	tid := threadID()
	t.mu.Lock()
	defer t.mu.Unlock()

	stack := t.stacks[tid]
	parent := context.Background()
	if n := len(stack); n > 0 {
		parent = stack[n-1].ctx
	}
	ctx, span := t.tracer.Start(parent, name)
	t.stacks[tid] = append(stack, openSection{ctx: ctx, span: span})
}

// EndSection ends the innermost section open on the calling thread; without
// one it does nothing.
func (t *Tracer) EndSection() {
	tid := threadID()
	t.mu.Lock()
	stack := t.stacks[tid]
	n := len(stack)
	if n == 0 {
		t.mu.Unlock()
		return
	}
	top := stack[n-1]
	stack[n-1] = openSection{}
	if n == 1 {
		delete(t.stacks, tid)
	} else {
		t.stacks[tid] = stack[:n-1]
	}
	t.mu.Unlock()

	top.span.End()
}

// Depth returns the number of open sections across all threads.
func (t *Tracer) Depth() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	depth := 0
	for _, stack := range t.stacks {
		depth += len(stack)
	}
	return depth
}

// Shutdown ends sections left open on any thread and flushes the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	t.mu.Lock()
	dangling := t.stacks
	t.stacks = make(map[int][]openSection)
	t.mu.Unlock()

	open := 0
	for _, stack := range dangling {
		open += len(stack)
	}
	if open > 0 {
		t.logger.WithField("sections", open).Warn("Ending unclosed trace sections")
	}
	for _, stack := range dangling {
		for i := len(stack) - 1; i >= 0; i-- {
			stack[i].span.End()
		}
	}

	if err := t.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer: %w", err)
	}
	return nil
}
