package affinity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/peuck/affinity"
	"github.com/momentics/peuck/api"
)

func TestResolveClusterMaskEightCores(t *testing.T) {
	assert.Equal(t, api.AffinityMask(0xFFFF), affinity.ResolveClusterMask(api.ClusterAll, 8))
	assert.Equal(t, api.AffinityMask(0x0F), affinity.ResolveClusterMask(api.ClusterLittle, 8))
	assert.Equal(t, api.AffinityMask(0xF0), affinity.ResolveClusterMask(api.ClusterBig, 8))
}

func TestResolveClusterMaskOtherCoreCounts(t *testing.T) {
	hints := []api.ClusterHint{api.ClusterAll, api.ClusterLittle, api.ClusterBig, api.ClusterHint(42)}
	for _, cores := range []int{-1, 0, 1, 4, 6, 7, 9, 12, 16, 64} {
		for _, hint := range hints {
			assert.Equal(t, api.MaskAll, affinity.ResolveClusterMask(hint, cores), "hint %s cores %d", hint, cores)
		}
	}
}

func TestResolveClusterMaskUnknownHint(t *testing.T) {
	assert.Equal(t, api.MaskAll, affinity.ResolveClusterMask(api.ClusterHint(-3), 8))
}
