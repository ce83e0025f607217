// File: internal/concurrency/executor.go
// Package concurrency implements a cluster-pinned task executor.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Executor dispatches tasks to worker goroutines that stay on threads
// restricted to one cluster. Tasks are queued in FIFO order.

package concurrency

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/sirupsen/logrus"

	"github.com/momentics/peuck/api"
)

// ErrExecutorClosed is returned by Submit after Close.
var ErrExecutorClosed = errors.New("executor closed")

// TaskFunc is a unit of work to execute.
type TaskFunc func()

// PinnerFactory returns a fresh api.Affinity for one worker.
type PinnerFactory func() api.Affinity

// Executor manages a fixed pool of pinned workers.
type Executor struct {
	hint      api.ClusterHint
	newPinner PinnerFactory
	logger    logrus.FieldLogger

	mu     sync.Mutex
	cond   *sync.Cond
	tasks  *queue.Queue
	closed bool
	wg     sync.WaitGroup

	numWorkers     int
	totalTasks     int64
	completedTasks int64
	panics         int64
}

// NewExecutor starts numWorkers workers pinned to hint. If numWorkers <= 0,
// defaults to runtime.NumCPU(). A nil newPinner runs workers unpinned.
func NewExecutor(numWorkers int, hint api.ClusterHint, newPinner PinnerFactory, logger logrus.FieldLogger) *Executor {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	e := &Executor{
		hint:       hint,
		newPinner:  newPinner,
		logger:     logger.WithField("cluster", hint.String()),
		tasks:      queue.New(),
		numWorkers: numWorkers,
	}
	e.cond = sync.NewCond(&e.mu)
	e.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go e.run(i)
	}
	return e
}

// Submit enqueues a task, returning ErrExecutorClosed if the executor is closed.
func (e *Executor) Submit(task TaskFunc) error {
	if task == nil {
		return api.ErrInvalidArgument
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrExecutorClosed
	}
	e.tasks.Add(task)
	atomic.AddInt64(&e.totalTasks, 1)
	e.cond.Signal()
	return nil
}

// NumWorkers returns the number of workers.
func (e *Executor) NumWorkers() int {
	return e.numWorkers
}

// Close stops accepting tasks, lets workers drain the queue and waits for them.
func (e *Executor) Close() {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		e.cond.Broadcast()
	}
	e.mu.Unlock()
	e.wg.Wait()
}

// Stats returns basic executor metrics.
func (e *Executor) Stats() map[string]int64 {
	total := atomic.LoadInt64(&e.totalTasks)
	completed := atomic.LoadInt64(&e.completedTasks)
	return map[string]int64{
		"total_tasks":     total,
		"completed_tasks": completed,
		"pending_tasks":   total - completed,
		"panicked_tasks":  atomic.LoadInt64(&e.panics),
		"num_workers":     int64(e.numWorkers),
	}
}

// next blocks until a task is queued or the executor is closed and drained.
func (e *Executor) next() (TaskFunc, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for e.tasks.Length() == 0 && !e.closed {
		e.cond.Wait()
	}
	if e.tasks.Length() == 0 {
		return nil, false
	}
	return e.tasks.Remove().(TaskFunc), true
}

func (e *Executor) run(id int) {
	defer e.wg.Done()
	if e.newPinner != nil {
		pinner := e.newPinner()
		pinner.Pin(e.hint)
		defer pinner.Unpin()
		e.logger.WithFields(logrus.Fields{
			"worker": id,
			"mask":   pinner.Get().Mask.String(),
		}).Debug("Worker pinned")
	}
	for {
		task, ok := e.next()
		if !ok {
			return
		}
		e.execute(id, task)
	}
}

// execute runs the task and updates statistics, recovering from panics.
func (e *Executor) execute(id int, task TaskFunc) {
	defer func() {
		if r := recover(); r != nil {
			atomic.AddInt64(&e.panics, 1)
			e.logger.WithFields(logrus.Fields{"worker": id, "panic": r}).Error("Task panicked")
		}
		atomic.AddInt64(&e.completedTasks, 1)
	}()
	task()
}
