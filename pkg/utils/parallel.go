package utils

import "sync"

// WorkerPool runs submitted tasks on a fixed number of workers. It exists to
// keep CPU-expensive work (password hashing in particular) off request
// goroutines that hold storage locks.
type WorkerPool struct {
	maxWorkers int
	taskChan   chan func()
	wg         sync.WaitGroup
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	pool := &WorkerPool{
		maxWorkers: maxWorkers,
		taskChan:   make(chan func(), maxWorkers*2),
	}

	for i := 0; i < maxWorkers; i++ {
		go pool.worker()
	}

	return pool
}

// worker processes tasks from the task channel
func (p *WorkerPool) worker() {
	for task := range p.taskChan {
		task()
		p.wg.Done()
	}
}

// AddTask adds a task to the worker pool
func (p *WorkerPool) AddTask(task func()) {
	p.wg.Add(1)
	p.taskChan <- task
}

// Wait waits for all submitted tasks to complete
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

// Close closes the worker pool. No tasks may be added afterwards.
func (p *WorkerPool) Close() {
	close(p.taskChan)
}
