// File: internal/tracing/thread_linux.go
//go:build linux
// +build linux

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package tracing

import "golang.org/x/sys/unix"

// threadID keys section stacks by kernel thread, as ATrace does.
func threadID() int {
	return unix.Gettid()
}
