package stream

import (
	"errors"
	"sync"
)

// ErrPoolClosed is returned when taking a Pipeline from a closed pool
var ErrPoolClosed = errors.New("pipeline pool closed")

// Pool is a simple pool of Pipelines shared across streams which bounds the
// number of frames being post processed at once
type Pool struct {
	// pool of pipelines
	pipelines chan *Pipeline
	// size of pool
	size int
	// closed is set once the pool has been closed
	closed bool
	mu     sync.RWMutex
}

// NewPool creates a new pipeline pool
func NewPool(size int, params PipelineParams) (*Pool, error) {

	if size < 1 {
		return nil, errors.New("pool size must be at least 1")
	}

	p := &Pool{
		pipelines: make(chan *Pipeline, size),
		size:      size,
	}

	for i := 0; i < size; i++ {
		pl, err := NewPipeline(params)

		if err != nil {
			p.Close()
			return nil, err
		}

		// attach to pool
		p.Return(pl)
	}

	return p, nil
}

// Get a pipeline from the pool, blocking until one is free
func (p *Pool) Get() (*Pipeline, error) {

	pl, ok := <-p.pipelines

	if !ok {
		return nil, ErrPoolClosed
	}

	return pl, nil
}

// Return a pipeline to the pool
func (p *Pool) Return(pl *Pipeline) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return
	}

	select {
	case p.pipelines <- pl:
	default:
		// pool is full
	}
}

// Size returns the number of pipelines in the pool
func (p *Pool) Size() int {
	return p.size
}

// Close the pool.  Get returns ErrPoolClosed once the remaining pipelines
// have been taken
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.closed = true
	close(p.pipelines)
}
