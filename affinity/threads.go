// File: affinity/threads.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Logical thread to native thread name table.

package affinity

import (
	"fmt"

	"github.com/momentics/peuck/api"
)

// MaxThreadNameLen is the longest thread name the Linux kernel keeps
// (TASK_COMM_LEN minus the terminating NUL).
const MaxThreadNameLen = 15

// ThreadNames maps logical threads to native thread name prefixes.
// A ThreadNames value is immutable once constructed and safe for concurrent use.
type ThreadNames struct {
	names map[api.LogicalThread]string
}

// NewThreadNames copies names into a new table. Empty names and names the
// kernel would truncate are rejected.
func NewThreadNames(names map[api.LogicalThread]string) (ThreadNames, error) {
	table := make(map[api.LogicalThread]string, len(names))
	for thread, name := range names {
		if name == "" {
			return ThreadNames{}, fmt.Errorf("thread %s: empty native name: %w", thread, api.ErrInvalidArgument)
		}
		if len(name) > MaxThreadNameLen {
			return ThreadNames{}, fmt.Errorf("thread %s: native name %q exceeds %d bytes: %w",
				thread, name, MaxThreadNameLen, api.ErrInvalidArgument)
		}
		table[thread] = name
	}
	return ThreadNames{names: table}, nil
}

// Lookup returns the native name prefix for thread.
func (t ThreadNames) Lookup(thread api.LogicalThread) (string, bool) {
	name, ok := t.names[thread]
	return name, ok
}

// Len returns the number of entries.
func (t ThreadNames) Len() int {
	return len(t.names)
}

// Names returns a copy of the table.
func (t ThreadNames) Names() map[api.LogicalThread]string {
	out := make(map[api.LogicalThread]string, len(t.names))
	for k, v := range t.names {
		out[k] = v
	}
	return out
}

// defaultThreadNames follows the thread naming of Unity player builds on
// Android; FMOD names are the kernel-truncated forms.
var defaultThreadNames = mustThreadNames(map[api.LogicalThread]string{
	api.ThreadMain:             "UnityMain",
	api.ThreadGraphics:         "UnityGfxDeviceW",
	api.ThreadChoreographer:    "UnityChoreograp",
	api.ThreadWorker:           "Worker Thread",
	api.ThreadBackgroundWorker: "Background Job.",
	api.ThreadAudioMixer:       "FMOD mixer thre",
	api.ThreadAudioStreamer:    "FMOD stream thr",
})

// DefaultThreadNames returns the built-in table.
func DefaultThreadNames() ThreadNames {
	return defaultThreadNames
}

func mustThreadNames(names map[api.LogicalThread]string) ThreadNames {
	t, err := NewThreadNames(names)
	if err != nil {
		panic(err)
	}
	return t
}
