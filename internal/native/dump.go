// File: internal/native/dump.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Text rendering of topology and thread dumps.

package native

import (
	"sort"
	"strconv"
	"strings"
)

type coreRecord struct {
	index     int
	frequency int
	cluster   int
}

// formatTopology renders one "<index> <frequency> <cluster>" line per core,
// ordered by index.
func formatTopology(cores []coreRecord) string {
	sorted := append([]coreRecord(nil), cores...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })

	var b strings.Builder
	for _, c := range sorted {
		b.WriteString(strconv.Itoa(c.index))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(c.frequency))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(c.cluster))
		b.WriteByte('\n')
	}
	return b.String()
}

// formatThreads renders one "<tid> <name>" line per thread, ordered by tid.
// Line breaks inside names are flattened so every thread stays on one line.
func formatThreads(threads map[int]string) string {
	tids := sortedTids(threads)
	var b strings.Builder
	for _, tid := range tids {
		b.WriteString(strconv.Itoa(tid))
		b.WriteByte(' ')
		b.WriteString(strings.NewReplacer("\r", " ", "\n", " ").Replace(threads[tid]))
		b.WriteByte('\n')
	}
	return b.String()
}

func sortedTids(threads map[int]string) []int {
	tids := make([]int, 0, len(threads))
	for tid := range threads {
		tids = append(tids, tid)
	}
	sort.Ints(tids)
	return tids
}

// hardwareFromCPUInfo extracts the value of the "Hardware" key that ARM
// kernels add to /proc/cpuinfo.
func hardwareFromCPUInfo(cpuinfo string) string {
	for _, line := range strings.Split(cpuinfo, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "Hardware" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
