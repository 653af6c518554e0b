package worker

import (
	"context"
	"sync"
)

// Job is one unit of analysis work submitted to the pool: a segment
// evaluation during a check, or a whole target check during a batch
// run.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	GetError() error
}

// Pool fans analysis jobs out over a fixed number of goroutines. The
// analyzers are pure and the rule tables read-only, so jobs share no
// state; callers that need input order back (the per-segment fan-out
// does) carry an index inside the job and reorder after Wait.
type Pool struct {
	size   int
	jobs   chan Job
	out    chan Result
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewPool creates a pool of the given size; sizes below 1 degrade to
// sequential execution rather than failing.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		size:   size,
		jobs:   make(chan Job, size*2),
		out:    make(chan Result, size*2),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the workers. Submit before Start only buffers.
func (p *Pool) Start() {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.out <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. After Shutdown the job is silently dropped so
// a racing producer never blocks on a dead pool.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, drains every result, and returns them in
// completion order. Call exactly once, after the last Submit.
func (p *Pool) Wait() []Result {
	close(p.jobs)

	go func() {
		p.wg.Wait()
		p.closeOut()
	}()

	var results []Result
	for result := range p.out {
		results = append(results, result)
	}
	return results
}

// Shutdown cancels in-flight jobs and releases the workers. Used when
// a batch run is aborted mid-way.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeOut()
}

func (p *Pool) closeOut() {
	p.once.Do(func() {
		close(p.out)
	})
}
