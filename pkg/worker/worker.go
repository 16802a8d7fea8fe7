package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/VladPetriv/currency_beacon/pkg/logger"
)

var (
	// ErrPoolStopped is returned when a job is added to a stopped pool.
	ErrPoolStopped = errors.New("worker pool stopped")
	// ErrQueueFull is returned when a job can't be queued without waiting for a free worker.
	ErrQueueFull = errors.New("worker pool queue is full")
)

type job[T any] struct {
	ID   string
	Data T
}

// Func is a function that handles a worker job.
type Func[T any] func(ctx context.Context, id string, data T) error

// Options represents options for a new worker pool.
type Options struct {
	WorkersCount int
	// QueueSize is a number of jobs which can wait for a free worker. AddJob never waits for a free slot.
	QueueSize int
	Logger    *logger.Logger
}

// Pool is a worker pool.
type Pool[T any] struct {
	workersCount int
	handlerFunc  Func[T]
	logger       *logger.Logger
	jobs         chan job[T]
	wg           *sync.WaitGroup
	dedup        map[string]struct{}
	mu           *sync.Mutex
	// stopMu guards stopped flag and closing of jobs channel.
	stopMu  *sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool.
func NewPool[T any](opts Options, handlerFunc Func[T]) *Pool[T] {
	workersCount := opts.WorkersCount
	if workersCount < 1 {
		workersCount = 1
	}
	queueSize := opts.QueueSize
	if queueSize < 0 {
		queueSize = 0
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Pool[T]{
		workersCount: workersCount,
		handlerFunc:  handlerFunc,
		logger:       log,
		jobs:         make(chan job[T], queueSize),
		wg:           &sync.WaitGroup{},
		dedup:        make(map[string]struct{}),
		mu:           &sync.Mutex{},
		stopMu:       &sync.RWMutex{},
	}
}

// Start starts the number of workers that were passed in constructor.
func (p *Pool[T]) Start(ctx context.Context) {
	for range p.workersCount {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool[T]) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Err(ctx.Err()).Msg("worker stopping due to context cancellation")
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}

			err := p.handlerFunc(ctx, job.ID, job.Data)
			if err != nil {
				p.logger.Error().Err(err).Str("jobID", job.ID).Msg("handle job")
			}
			p.mu.Lock()
			delete(p.dedup, job.ID)
			p.mu.Unlock()
		}
	}
}

// Stop stops accepting new jobs and waits until queued ones are handled.
func (p *Pool[T]) Stop() {
	p.stopMu.Lock()
	if p.stopped {
		p.stopMu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.stopMu.Unlock()

	p.wg.Wait()
}

// AddJob adds a new job to the worker pool. Jobs with an ID which is already queued are skipped.
// Returns ErrQueueFull when all workers are busy and the queue has no free slot.
func (p *Pool[T]) AddJob(id string, data T) error {
	p.stopMu.RLock()
	defer p.stopMu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}

	p.mu.Lock()
	if _, ok := p.dedup[id]; ok {
		p.mu.Unlock()
		return nil
	}
	p.dedup[id] = struct{}{}
	p.mu.Unlock()

	select {
	case p.jobs <- job[T]{ID: id, Data: data}:
		return nil
	default:
		p.mu.Lock()
		delete(p.dedup, id)
		p.mu.Unlock()

		return ErrQueueFull
	}
}
