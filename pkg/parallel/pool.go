// Package parallel provides a bounded worker pool for running
// independent analysis sections concurrently.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// WorkerPool runs submitted tasks on a fixed set of goroutines.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewWorkerPool creates a pool with the given worker count. Counts at
// or below zero fall back to GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}
	pool.start()
	return pool
}

func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		task()
	}
}

// Submit queues a task. Returns false if the pool is already closed.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// Close drains the queue and stops the workers. Safe to call twice.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Run executes the tasks on the pool and blocks until all finish.
// Panics inside a task are recovered and reported as errors. The first
// error in submission order wins; later tasks still run to completion
// so partial results stay consistent.
func (wp *WorkerPool) Run(ctx context.Context, tasks ...func(context.Context) error) error {
	errs := make([]error, len(tasks))
	var group sync.WaitGroup
	for i, task := range tasks {
		i, task := i, task
		group.Add(1)
		ok := wp.Submit(func() {
			defer group.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("task panic: %v", r)
				}
			}()
			errs[i] = task(ctx)
		})
		if !ok {
			group.Done()
			errs[i] = fmt.Errorf("worker pool closed")
		}
	}
	group.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
