package trace_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/momentics/peuck/control"
	"github.com/momentics/peuck/fake"
	"github.com/momentics/peuck/trace"
)

func TestSectionForwardsWhenOpen(t *testing.T) {
	tr := &fake.Tracer{}
	s := trace.New(fake.Open, tr)

	s.Begin("frame")
	s.Begin("physics")
	s.End()
	s.End()

	assert.Equal(t, []string{"begin:frame", "begin:physics", "end", "end"}, tr.Events())
}

func TestSectionClosedGateIsNoop(t *testing.T) {
	tr := &fake.Tracer{}
	s := trace.New(fake.Closed, tr)

	s.Begin("frame")
	s.End()
	s.Scoped("scoped")()

	assert.Empty(t, tr.Events())
	assert.False(t, s.Active())
}

func TestSectionNilTracerIsNoop(t *testing.T) {
	s := trace.New(fake.Open, nil)
	assert.NotPanics(t, func() {
		s.Begin("frame")
		s.End()
		s.Scoped("x")()
	})
}

func TestSectionDisabledTracerSkipsBegin(t *testing.T) {
	tr := &fake.Tracer{Disabled: true}
	s := trace.New(fake.Open, tr)

	s.Begin("frame")
	s.End()

	// End is forwarded regardless; the tracer ignores unmatched ends.
	assert.Equal(t, []string{"end"}, tr.Events())
}

func TestSectionUnmatchedEndIsForwarded(t *testing.T) {
	tr := &fake.Tracer{}
	s := trace.New(fake.Open, tr)
	s.End()
	assert.Equal(t, []string{"end"}, tr.Events())
}

func TestScopedEndsOnlyWhatItBegan(t *testing.T) {
	tr := &fake.Tracer{}
	s := trace.New(fake.Open, tr)

	func() {
		defer s.Scoped("outer")()
		func() {
			defer s.Scoped("inner")()
		}()
	}()
	assert.Equal(t, []string{"begin:outer", "begin:inner", "end", "end"}, tr.Events())

	disabled := &fake.Tracer{Disabled: true}
	trace.New(fake.Open, disabled).Scoped("skipped")()
	assert.Empty(t, disabled.Events())
}

func TestSectionMetrics(t *testing.T) {
	m := control.NewMetrics(prometheus.NewRegistry())
	s := trace.New(fake.Open, &fake.Tracer{}).WithMetrics(m)

	s.Begin("a")
	s.End()
	s.Scoped("b")()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TraceSectionsCollector()))
}
