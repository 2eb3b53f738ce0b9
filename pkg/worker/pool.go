package worker

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Utgast/cabletherm/pkg/models"
)

// ProcessorFunc runs one solve request to completion.
type ProcessorFunc func(requestID string, req models.SolveRequest) models.SolveResult

// SinkFunc receives every finished result. When set, results bypass the
// internal results channel and go straight to the sink.
type SinkFunc func(models.WorkResult)

// Pool runs solve jobs on a fixed set of workers. Jobs queue without
// blocking submitters until the buffer fills; results either stream to the
// sink or sit in the results channel for polling.
type Pool struct {
	jobs      chan models.WorkItem
	results   chan models.WorkResult
	workers   int
	processor ProcessorFunc
	sink      SinkFunc
	shutdown  chan struct{}
	wg        sync.WaitGroup
}

// Options holds configuration for creating a worker pool.
type Options struct {
	Workers   int
	Processor ProcessorFunc
	Sink      SinkFunc
}

// New creates and starts a worker pool.
func New(opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 5
	}

	p := &Pool{
		jobs:      make(chan models.WorkItem, opts.Workers*2),
		results:   make(chan models.WorkResult, opts.Workers*2),
		workers:   opts.Workers,
		processor: opts.Processor,
		sink:      opts.Sink,
		shutdown:  make(chan struct{}),
	}

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	log.Printf("worker pool started with %d workers", p.workers)
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobs:
			start := time.Now()
			result := p.processor(job.RequestID, job.Request)
			out := models.WorkResult{
				RequestID:      job.RequestID,
				Result:         result,
				ProcessingTime: time.Since(start),
			}
			if p.sink != nil {
				p.sink(out)
			} else {
				p.results <- out
			}

		case <-p.shutdown:
			return
		}
	}
}

// SubmitJob queues a job, blocking only when the buffer is full.
func (p *Pool) SubmitJob(job models.WorkItem) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("worker pool jobs channel full, job %s may be delayed", job.RequestID)
		p.jobs <- job
	}
}

// GetResult retrieves a finished result without blocking. Only meaningful
// when no sink is configured.
func (p *Pool) GetResult() (models.WorkResult, bool) {
	select {
	case result := <-p.results:
		return result, true
	default:
		return models.WorkResult{}, false
	}
}

// Shutdown stops the workers after their current jobs finish.
func (p *Pool) Shutdown() {
	log.Printf("shutting down worker pool")
	close(p.shutdown)
	p.wg.Wait()
	log.Printf("worker pool shutdown complete")
}
