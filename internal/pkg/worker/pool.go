// Package worker provides a bounded goroutine pool.
//
// All fan-out in locaudit goes through Pool so concurrency stays bounded and
// panics in a task are logged instead of killing the process.
package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/locaudit/locaudit/internal/pkg/logger"
)

// ErrPoolClosed is returned when submitting to a released pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is a context-aware unit of work.
type Task func(ctx context.Context)

// Pool wraps ants.Pool with context-aware submission.
type Pool struct {
	pool *ants.Pool
	name string
}

// DefaultSize is the pool size used when a caller passes size <= 0.
func DefaultSize() int {
	return max(runtime.NumCPU()*2, 4)
}

// New creates a named pool. size <= 0 selects DefaultSize.
func New(name string, size int) (*Pool, error) {
	if size <= 0 {
		size = DefaultSize()
	}

	panicHandler := func(p any) {
		logger.Error("worker panic recovered",
			zap.String("pool", name),
			zap.Any("panic", p),
			zap.Stack("stack"),
		)
	}

	p, err := ants.NewPool(size,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Pool{pool: p, name: name}, nil
}

// submit queues task. If ctx is already cancelled it returns ctx.Err()
// without submitting.
func (p *Pool) submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := p.pool.Submit(func() { task(ctx) })
	if errors.Is(err, ants.ErrPoolClosed) {
		return ErrPoolClosed
	}
	return err
}

// Each runs fn for every index in [0, n) on the pool and waits for all of them.
// Indices dequeued after cancellation are skipped.
func (p *Pool) Each(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		idx := i
		err := p.submit(ctx, func(ctx context.Context) {
			defer wg.Done()
			if ctx.Err() != nil {
				logger.Debug("task skipped: context cancelled",
					zap.String("pool", p.name),
					zap.Int("index", idx),
				)
				return
			}
			fn(ctx, idx)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}
	wg.Wait()
	return ctx.Err()
}

// Release shuts the pool down, waiting at most timeout for running tasks.
func (p *Pool) Release(timeout time.Duration) {
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		logger.Warn("worker pool shutdown timeout", zap.String("pool", p.name), zap.Error(err))
	}
}
