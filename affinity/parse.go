// File: affinity/parse.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Parsers for the native topology and thread dumps. Neither parser fails:
// malformed lines are skipped and unparsable thread ids become 0.

package affinity

import (
	"strconv"
	"strings"

	"github.com/momentics/peuck/api"
)

const (
	topologyFields = 3
	threadFields   = 2
)

// ParseIntOrZero parses a decimal integer, yielding 0 when s is not one.
func ParseIntOrZero(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// ParseTopologyLine parses "<index> <frequency> <clusterId>" separated by
// single spaces. Tokens after the third are ignored. The line is rejected when it has fewer than three
// tokens, when any of the three is not an integer, or when index or
// frequency is negative.
func ParseTopologyLine(line string) (api.CoreDescriptor, bool) {
	tokens := strings.Split(line, " ")
	if len(tokens) < topologyFields {
		return api.CoreDescriptor{}, false
	}
	index, err := strconv.Atoi(tokens[0])
	if err != nil || index < 0 {
		return api.CoreDescriptor{}, false
	}
	freq, err := strconv.Atoi(tokens[1])
	if err != nil || freq < 0 {
		return api.CoreDescriptor{}, false
	}
	cluster, err := strconv.Atoi(tokens[2])
	if err != nil {
		return api.CoreDescriptor{}, false
	}
	return api.CoreDescriptor{Index: index, Frequency: freq, ClusterID: cluster}, true
}

// ParseThreadLine parses "<tid> <name...>". The name is everything after the
// first space, so multi-word names survive. A non-numeric tid yields 0.
// Lines without a space are rejected.
func ParseThreadLine(line string) (tid int, name string, ok bool) {
	tokens := strings.Split(line, " ")
	if len(tokens) < threadFields {
		return 0, "", false
	}
	return ParseIntOrZero(tokens[0]), strings.Join(tokens[1:], " "), true
}

// ParseTopology parses a topology dump in input order. The result is never nil.
func ParseTopology(text string) []api.CoreDescriptor {
	cores, _ := parseTopology(text)
	return cores
}

// ParseThreads parses a thread dump. Duplicate tids resolve to the last
// occurrence. The result is never nil.
func ParseThreads(text string) api.ThreadInfo {
	threads, _ := parseThreads(text)
	return threads
}

// parseTopology also reports how many non-blank lines were dropped.
func parseTopology(text string) ([]api.CoreDescriptor, int) {
	cores := make([]api.CoreDescriptor, 0)
	dropped := 0
	for _, line := range strings.Split(text, "\n") {
		core, ok := ParseTopologyLine(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				dropped++
			}
			continue
		}
		cores = append(cores, core)
	}
	return cores, dropped
}

func parseThreads(text string) (api.ThreadInfo, int) {
	threads := make(api.ThreadInfo)
	dropped := 0
	for _, line := range strings.Split(text, "\n") {
		tid, name, ok := ParseThreadLine(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				dropped++
			}
			continue
		}
		threads[tid] = name
	}
	return threads, dropped
}
