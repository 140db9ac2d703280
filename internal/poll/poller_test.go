package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPollerTicks(t *testing.T) {
	var runs int32
	p := New("test", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}, zap.NewNop())

	p.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	p.Stop()

	got := atomic.LoadInt32(&runs)
	assert.GreaterOrEqual(t, got, int32(3))

	// No more cycles after Stop.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, got, atomic.LoadInt32(&runs))
}

func TestPollerImmediateFirstRun(t *testing.T) {
	ran := make(chan struct{})
	var once atomic.Bool
	p := New("test", time.Hour, func(ctx context.Context) error {
		if once.CompareAndSwap(false, true) {
			close(ran)
		}
		return nil
	}, zap.NewNop(), WithImmediate())

	p.Start(context.Background())
	defer p.Stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("immediate cycle never ran")
	}
}

func TestPollerKeepsGoingAfterErrors(t *testing.T) {
	var runs int32
	p := New("test", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return errors.New("backend hiccup")
	}, zap.NewNop())

	p.Start(context.Background())
	time.Sleep(45 * time.Millisecond)
	p.Stop()

	// No backoff, no abort: failed cycles do not slow the schedule.
	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(3))
}

func TestReentrancyGuardSkipsOverlappingTrigger(t *testing.T) {
	block := make(chan struct{})
	var runs int32
	p := New("test", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		<-block
		return nil
	}, zap.NewNop())

	ctx := context.Background()
	p.Trigger(ctx)

	// Let the first cycle take the guard, then fire overlapping triggers.
	time.Sleep(20 * time.Millisecond)
	p.Trigger(ctx)
	p.Trigger(ctx)
	time.Sleep(20 * time.Millisecond)

	close(block)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs), "overlapping cycles must be skipped, not queued")
}

func TestStopIsIdempotent(t *testing.T) {
	p := New("test", time.Hour, func(ctx context.Context) error { return nil }, zap.NewNop())
	p.Start(context.Background())
	p.Stop()
	p.Stop()
}

func TestStopBeforeStartReturns(t *testing.T) {
	var runs int32
	p := New("test", time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}, zap.NewNop(), WithImmediate())

	returned := make(chan struct{})
	go func() {
		p.Stop()
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Stop on a never-started poller must not block")
	}

	// A Start after Stop must not loop either.
	p.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs))
}

func TestContextCancelStopsLoop(t *testing.T) {
	var runs int32
	p := New("test", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)
	after := atomic.LoadInt32(&runs)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&runs))
}