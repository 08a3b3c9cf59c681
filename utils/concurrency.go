package utils

import (
	"sync"
)

// UploadPool runs independent jobs (secondary image uploads) with bounded
// concurrency. A failing job never aborts the others; failures are collected
// and reported once the pool drains.
type UploadPool struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup

	mu       sync.Mutex
	failures []error
}

// NewUploadPool creates an UploadPool with the given concurrency.
func NewUploadPool(maxWorkers int) *UploadPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &UploadPool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
	}
}

// Submit enqueues a job for execution in the pool.
func (p *UploadPool) Submit(job func() error) {
	p.wg.Add(1)
	p.semaphore <- struct{}{}

	go func() {
		defer p.wg.Done()
		defer func() { <-p.semaphore }()

		if err := job(); err != nil {
			p.mu.Lock()
			p.failures = append(p.failures, err)
			p.mu.Unlock()
		}
	}()
}

// Wait blocks until all submitted jobs have completed and returns the
// failures that occurred, in no particular order.
func (p *UploadPool) Wait() []error {
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failures
}
