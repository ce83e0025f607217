// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cluster-pinned task execution. Each executor worker pins its OS thread to
// one CPU cluster for its whole lifetime and drains a shared FIFO.
package concurrency
