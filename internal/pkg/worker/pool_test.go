package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_submit(t *testing.T) {
	p, err := New("test", 4)
	require.NoError(t, err)
	defer p.Release(time.Second)

	var executed atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)

	require.NoError(t, p.submit(context.Background(), func(ctx context.Context) {
		executed.Store(true)
		wg.Done()
	}))

	wg.Wait()
	assert.True(t, executed.Load())
}

func TestPool_submit_CancelledContext(t *testing.T) {
	p, err := New("test", 2)
	require.NoError(t, err)
	defer p.Release(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = p.submit(ctx, func(ctx context.Context) {
		t.Error("task should not run with a cancelled context")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPool_Each_VisitsEveryIndex(t *testing.T) {
	p, err := New("test", 3)
	require.NoError(t, err)
	defer p.Release(time.Second)

	out := make([]int, 50)
	require.NoError(t, p.Each(context.Background(), len(out), func(_ context.Context, i int) {
		out[i] = i * i
	}))

	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestPool_Each_Cancelled(t *testing.T) {
	p, err := New("test", 1)
	require.NoError(t, err)
	defer p.Release(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err = p.Each(ctx, 10, func(context.Context, int) { calls.Add(1) })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestPool_RecoversPanics(t *testing.T) {
	p, err := New("test", 1)
	require.NoError(t, err)
	defer p.Release(time.Second)

	require.NoError(t, p.Each(context.Background(), 1, func(context.Context, int) {
		panic("boom")
	}))

	var ran atomic.Bool
	require.NoError(t, p.Each(context.Background(), 1, func(context.Context, int) {
		ran.Store(true)
	}))
	assert.True(t, ran.Load())
}

func TestPool_Each_AfterRelease(t *testing.T) {
	p, err := New("test", 1)
	require.NoError(t, err)
	p.Release(time.Second)

	err = p.Each(context.Background(), 3, func(context.Context, int) {
		t.Error("released pool should not run tasks")
	})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestDefaultSize(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultSize(), 4)
}
