// File: internal/native/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Native CPU layer for peuck: core count, hardware name, topology and thread
// dumps, and thread affinity control.
//
// The Linux backend (also used on Android) reads procfs/sysfs and calls
// sched_setaffinity through golang.org/x/sys/unix. Every other platform, and
// any build whose platform gate is closed, gets the Null backend, which
// returns zero values and ignores affinity requests.
package native
