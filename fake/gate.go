// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

// Gate is a fixed api.Gate.
type Gate bool

func (g Gate) Available() bool { return bool(g) }

// Open and Closed are ready-made gates.
const (
	Open   Gate = true
	Closed Gate = false
)
