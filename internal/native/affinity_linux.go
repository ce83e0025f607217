// File: internal/native/affinity_linux.go
//go:build linux
// +build linux

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux (and Android) native layer: procfs/sysfs readers and
// sched_setaffinity through golang.org/x/sys/unix. No cgo required.

package native

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/prometheus/procfs"
	"github.com/prometheus/procfs/sysfs"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/momentics/peuck/api"
)

// Supported is true on builds where the native layer exists.
const Supported = true

// Linux reads CPU state of the running process from procfs and sysfs.
type Linux struct {
	proc      procfs.FS
	sys       sysfs.FS
	procMount string
	sysMount  string
	pid       int
	logger    logrus.FieldLogger
}

var _ api.Native = (*Linux)(nil)

func newPlatform(opts Options) api.Native {
	l, err := NewLinux(opts)
	if err != nil {
		opts.Logger.WithError(err).Warn("Native CPU layer unavailable, using null backend")
		return Null{}
	}
	return l
}

// NewLinux opens procfs and sysfs at the configured mount points.
func NewLinux(opts Options) (*Linux, error) {
	opts = opts.normalize()
	proc, err := procfs.NewFS(opts.ProcMount)
	if err != nil {
		return nil, fmt.Errorf("open procfs %s: %w", opts.ProcMount, err)
	}
	sys, err := sysfs.NewFS(opts.SysMount)
	if err != nil {
		return nil, fmt.Errorf("open sysfs %s: %w", opts.SysMount, err)
	}
	return &Linux{
		proc:      proc,
		sys:       sys,
		procMount: opts.ProcMount,
		sysMount:  opts.SysMount,
		pid:       os.Getpid(),
		logger:    opts.Logger,
	}, nil
}

// CoresCount counts sysfs CPU entries, which include offline cores on
// hotplug-capable SoCs, and falls back to /proc/cpuinfo processors.
func (l *Linux) CoresCount() int {
	cpus, err := l.sys.CPUs()
	if err == nil && len(cpus) > 0 {
		return len(cpus)
	}
	info, err := l.proc.CPUInfo()
	if err != nil {
		l.logger.WithError(err).Debug("Failed to read cpuinfo")
		return 0
	}
	return len(info)
}

// CPUHardware prefers the SoC name from the "Hardware" cpuinfo key, then the
// first model name, then the CPUID brand string.
func (l *Linux) CPUHardware() string {
	if raw, err := os.ReadFile(filepath.Join(l.procMount, "cpuinfo")); err == nil {
		if hw := hardwareFromCPUInfo(string(raw)); hw != "" {
			return hw
		}
	}
	if info, err := l.proc.CPUInfo(); err == nil && len(info) > 0 && info[0].ModelName != "" {
		return info[0].ModelName
	}
	return strings.TrimSpace(cpuid.CPU.BrandName)
}

// CPUTopology renders index, cpuinfo_max_freq and physical_package_id per core.
// Values the kernel does not expose are reported as 0, core by core.
func (l *Linux) CPUTopology() string {
	cpus, err := l.sys.CPUs()
	if err != nil {
		l.logger.WithError(err).Debug("Failed to list sysfs CPUs")
		return ""
	}

	cores := make([]coreRecord, 0, len(cpus))
	for _, cpu := range cpus {
		index, err := strconv.Atoi(cpu.Number())
		if err != nil {
			continue
		}
		rec := coreRecord{index: index, frequency: l.maxFrequency(cpu.Number())}
		if topo, err := cpu.Topology(); err == nil {
			if id, err := strconv.Atoi(strings.TrimSpace(topo.PhysicalPackageID)); err == nil {
				rec.cluster = id
			}
		}
		cores = append(cores, rec)
	}
	return formatTopology(cores)
}

// maxFrequency reads cpufreq/cpuinfo_max_freq of one core, 0 when absent.
func (l *Linux) maxFrequency(number string) int {
	path := filepath.Join(l.sysMount, "devices", "system", "cpu", "cpu"+number, "cpufreq", "cpuinfo_max_freq")
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	freq, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || freq < 0 {
		return 0
	}
	return freq
}

// EnumerateThreads dumps the threads of the current process.
func (l *Linux) EnumerateThreads() string {
	return formatThreads(l.threads())
}

func (l *Linux) threads() map[int]string {
	procs, err := l.proc.AllThreads(l.pid)
	if err != nil {
		l.logger.WithError(err).Debug("Failed to enumerate threads")
		return map[int]string{}
	}
	threads := make(map[int]string, len(procs))
	for _, p := range procs {
		comm, err := p.Comm()
		if err != nil {
			// thread exited between listing and reading
			continue
		}
		threads[p.PID] = comm
	}
	return threads
}

// SetThreadAffinityMaskByName applies mask to every thread of the process
// whose name starts with name. The thread list is read fresh on every call.
func (l *Linux) SetThreadAffinityMaskByName(name string, mask api.AffinityMask) {
	if name == "" {
		return
	}
	threads := l.threads()
	matched := 0
	for _, tid := range sortedTids(threads) {
		if !strings.HasPrefix(threads[tid], name) {
			continue
		}
		l.logger.WithFields(logrus.Fields{"thread": threads[tid], "tid": tid}).Debug("Found thread")
		l.SetThreadAffinityMask(tid, mask)
		matched++
	}
	if matched == 0 {
		l.logger.WithField("thread", name).Debug("No thread matches name")
	}
}

// SetThreadAffinityMask restricts tid to the CPUs in mask.
func (l *Linux) SetThreadAffinityMask(tid int, mask api.AffinityMask) {
	fields := logrus.Fields{"tid": tid, "mask": mask.String()}
	if err := applyMask(tid, mask); err != nil {
		l.logger.WithError(err).WithFields(fields).Warn("Failed to set thread affinity")
		return
	}
	l.logger.WithFields(fields).Debug("Set thread affinity")
}

// SetCurrentThreadAffinityMask restricts the calling OS thread. Callers lock
// the goroutine to its thread first (runtime.LockOSThread), otherwise the
// restriction lands on whichever thread the scheduler happened to use.
func (l *Linux) SetCurrentThreadAffinityMask(mask api.AffinityMask) {
	l.SetThreadAffinityMask(unix.Gettid(), mask)
}

func applyMask(tid int, mask api.AffinityMask) error {
	if mask == 0 {
		return fmt.Errorf("empty affinity mask: %w", api.ErrInvalidArgument)
	}
	var set unix.CPUSet
	set.Zero()
	for _, cpu := range mask.CPUs() {
		set.Set(cpu)
	}
	if err := unix.SchedSetaffinity(tid, &set); err != nil {
		return fmt.Errorf("sched_setaffinity tid %d: %w", tid, err)
	}
	return nil
}
