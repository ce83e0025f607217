// File: affinity/mask.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package affinity

import "github.com/momentics/peuck/api"

// SupportedCoreCount is the only core count the cluster heuristic handles.
const SupportedCoreCount = 8

// ResolveClusterMask turns a cluster hint into an affinity mask.
//
// Only 8-core SoCs are handled; any other core count yields MaskAll. On 8
// cores the first four logical CPUs are assumed to be the little cluster and
// the next four the big one. This is a heuristic, not derived from the
// reported topology; it should give way to cluster ids from Topology once
// those are trusted across devices.
func ResolveClusterMask(hint api.ClusterHint, totalCores int) api.AffinityMask {
	if totalCores != SupportedCoreCount {
		return api.MaskAll
	}
	switch hint {
	case api.ClusterLittle:
		return api.MaskLittle
	case api.ClusterBig:
		return api.MaskBig
	default:
		return api.MaskAll
	}
}
