// Package worker provides the background executor that runs scan jobs off
// the consumer's loop.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/martinsuchenak/minerscan/internal/log"
)

// ErrNoWorkers is returned when a pool is created with no worker slots.
var ErrNoWorkers = errors.New("worker pool needs at least one worker")

// Pool runs jobs concurrently on a bounded set of background goroutines.
// A panicking job is contained and reported as that job's error; it never
// takes down the pool or its sibling jobs.
type Pool struct {
	maxWorkers int
	jobs       chan Job
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

// Job represents a unit of work
type Job struct {
	ID      string
	Handler func(context.Context) error
	Result  chan error
}

// NewPool creates a new worker pool
func NewPool(maxWorkers int) (*Pool, error) {
	if maxWorkers < 1 {
		return nil, ErrNoWorkers
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		maxWorkers: maxWorkers,
		jobs:       make(chan Job, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Start starts the worker pool
func (p *Pool) Start() {
	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	log.Debug("Worker pool started", "workers", p.maxWorkers)
}

// Stop stops the worker pool and waits for running jobs to finish.
// Jobs still queued are failed with the pool's context error so no
// submitter is left waiting on a result.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()

	for {
		select {
		case job := <-p.jobs:
			if job.Result != nil {
				job.Result <- p.ctx.Err()
			}
		default:
			return
		}
	}
}

// Submit submits a job to the pool
func (p *Pool) Submit(job Job) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}

	select {
	case p.jobs <- job:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// worker is the worker goroutine
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.jobs:
			log.Debug("Worker executing job", "worker_id", id, "job_id", job.ID)

			err := p.execute(job)
			if job.Result != nil {
				job.Result <- err
			}
		}
	}
}

// execute runs the job handler and converts a panic into an error
func (p *Pool) execute(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "job_id", job.ID, "panic", r)
			err = fmt.Errorf("background execution failed: %v", r)
		}
	}()

	return job.Handler(p.ctx)
}
