// Package api
// Author: momentics <momentics@gmail.com>
//
// Logical threads, cluster hints, topology and affinity mask definitions.

package api

import (
	"fmt"
	"strconv"
	"strings"
)

// LogicalThread identifies a well-known application thread role.
type LogicalThread int

const (
	ThreadMain LogicalThread = iota + 1
	ThreadGraphics
	ThreadChoreographer
	ThreadWorker
	ThreadBackgroundWorker
	ThreadAudioMixer
	ThreadAudioStreamer
)

// LogicalThreads lists every known logical thread in declaration order.
var LogicalThreads = []LogicalThread{
	ThreadMain,
	ThreadGraphics,
	ThreadChoreographer,
	ThreadWorker,
	ThreadBackgroundWorker,
	ThreadAudioMixer,
	ThreadAudioStreamer,
}

func (t LogicalThread) String() string {
	switch t {
	case ThreadMain:
		return "main"
	case ThreadGraphics:
		return "gfx"
	case ThreadChoreographer:
		return "choreographer"
	case ThreadWorker:
		return "worker"
	case ThreadBackgroundWorker:
		return "background"
	case ThreadAudioMixer:
		return "audio-mixer"
	case ThreadAudioStreamer:
		return "audio-streamer"
	default:
		return "unknown"
	}
}

// ParseLogicalThread maps a case-insensitive role name to a LogicalThread.
func ParseLogicalThread(s string) (LogicalThread, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "main":
		return ThreadMain, nil
	case "gfx", "graphics":
		return ThreadGraphics, nil
	case "choreographer":
		return ThreadChoreographer, nil
	case "worker":
		return ThreadWorker, nil
	case "background":
		return ThreadBackgroundWorker, nil
	case "audio-mixer":
		return ThreadAudioMixer, nil
	case "audio-streamer":
		return ThreadAudioStreamer, nil
	}
	return 0, fmt.Errorf("logical thread %q: %w", s, ErrInvalidArgument)
}

// ClusterHint expresses which CPU cluster a thread should run on.
// It carries no mask value of its own.
type ClusterHint int

const (
	ClusterAll ClusterHint = iota
	ClusterLittle
	ClusterBig
)

func (h ClusterHint) String() string {
	switch h {
	case ClusterAll:
		return "all"
	case ClusterLittle:
		return "little"
	case ClusterBig:
		return "big"
	default:
		return "unknown"
	}
}

// ParseClusterHint maps "all", "little" or "big" to a ClusterHint.
func ParseClusterHint(s string) (ClusterHint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return ClusterAll, nil
	case "little":
		return ClusterLittle, nil
	case "big":
		return ClusterBig, nil
	}
	return ClusterAll, fmt.Errorf("cluster hint %q: %w", s, ErrInvalidArgument)
}

// CoreDescriptor is one core as reported by the platform topology dump.
// Frequency is in the platform's native unit (kHz on Linux).
type CoreDescriptor struct {
	Index     int
	Frequency int
	ClusterID int
}

// ThreadInfo maps OS thread ids to thread names.
type ThreadInfo map[int]string

// AffinityMask has bit i set when the thread may run on logical CPU i.
type AffinityMask uint32

// MaskAll covers logical CPUs 0-15 only; CPUs above 15 are not reachable
// through these masks.
const (
	MaskAll    AffinityMask = 0xFFFF
	MaskLittle AffinityMask = 0x0F
	MaskBig    AffinityMask = 0xF0
)

func (m AffinityMask) String() string {
	return fmt.Sprintf("0x%X", uint32(m))
}

// CPUs returns the logical CPU indices set in the mask, ascending.
func (m AffinityMask) CPUs() []int {
	var cpus []int
	for i := 0; i < 32; i++ {
		if m&(1<<uint(i)) != 0 {
			cpus = append(cpus, i)
		}
	}
	return cpus
}

// ParseAffinityMask accepts decimal, 0x-prefixed hex and 0b-prefixed binary.
// A zero mask is rejected.
func ParseAffinityMask(s string) (AffinityMask, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("affinity mask %q: %w", s, ErrInvalidArgument)
	}
	if v == 0 {
		return 0, fmt.Errorf("affinity mask %q is empty: %w", s, ErrInvalidArgument)
	}
	return AffinityMask(v), nil
}

// AffinityDescriptor is a snapshot of a pinned thread's binding.
type AffinityDescriptor struct {
	Hint   ClusterHint
	Mask   AffinityMask
	Pinned bool
}

// Affinity pins the calling goroutine's OS thread to a cluster.
type Affinity interface {
	// Pin locks the current goroutine to its OS thread and restricts it to the hint's cluster.
	Pin(hint ClusterHint)
	// Unpin lifts the restriction and releases the OS thread.
	Unpin()
	// Get returns the current binding.
	Get() AffinityDescriptor
}
