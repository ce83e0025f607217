package adapters_test

import (
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/momentics/peuck/adapters"
	"github.com/momentics/peuck/affinity"
	"github.com/momentics/peuck/api"
	"github.com/momentics/peuck/fake"
)

func TestThreadPinnerPinUnpin(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	native := &fake.Native{Cores: 8}
	pinner := adapters.NewThreadPinner(affinity.New(native, fake.Open, affinity.WithLogger(logger)))

	done := make(chan struct{})
	go func() {
		defer close(done)
		pinner.Pin(api.ClusterLittle)
		assert.Equal(t, api.AffinityDescriptor{Hint: api.ClusterLittle, Mask: api.MaskLittle, Pinned: true}, pinner.Get())

		pinner.Pin(api.ClusterBig)
		assert.Equal(t, api.MaskBig, pinner.Get().Mask)

		pinner.Unpin()
	}()
	<-done

	assert.Equal(t, api.AffinityDescriptor{Hint: api.ClusterAll, Mask: api.MaskAll, Pinned: false}, pinner.Get())
	assert.Equal(t, []fake.AffinityCall{
		{Op: "current", Mask: api.MaskLittle},
		{Op: "current", Mask: api.MaskBig},
		{Op: "current", Mask: api.MaskAll},
	}, native.Calls())
}

func TestThreadPinnerUnpinWithoutPinIsNoop(t *testing.T) {
	native := &fake.Native{Cores: 8}
	pinner := adapters.NewThreadPinner(affinity.New(native, fake.Open))
	pinner.Unpin()
	assert.Empty(t, native.Calls())
}

func TestThreadPinnerClosedGate(t *testing.T) {
	native := &fake.Native{Cores: 8}
	pinner := adapters.NewThreadPinner(affinity.New(native, fake.Closed))

	pinner.Pin(api.ClusterBig)
	// zero cores reported, so the heuristic falls back to all cores
	assert.Equal(t, api.AffinityDescriptor{Hint: api.ClusterBig, Mask: api.MaskAll, Pinned: true}, pinner.Get())
	pinner.Unpin()

	assert.Empty(t, native.Calls())
	assert.False(t, pinner.Get().Pinned)
}
