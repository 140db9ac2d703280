// Package poll provides the one shared fixed-interval polling loop used by
// chat, application and notification views. One tested implementation
// instead of an ad hoc interval per consumer.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Func is one poll cycle. Returning an error never stops the loop; errors
// are reported to the logger and the next tick fires on schedule. There is
// deliberately no backoff.
type Func func(ctx context.Context) error

type Poller struct {
	name     string
	interval time.Duration
	fn       Func
	log      *zap.Logger

	immediate bool
	inFlight  atomic.Bool
	started   atomic.Bool
	stop      chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
}

type Option func(*Poller)

// WithImmediate runs the first cycle right away instead of waiting a full
// interval.
func WithImmediate() Option {
	return func(p *Poller) { p.immediate = true }
}

func New(name string, interval time.Duration, fn Func, log *zap.Logger, opts ...Option) *Poller {
	p := &Poller{
		name:     name,
		interval: interval,
		fn:       fn,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the loop. It returns immediately; cancelling ctx or calling
// Stop ends the loop.
func (p *Poller) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	go p.run(ctx)
}

// Stop halts the loop and waits for any cycle the loop itself dispatched to
// return. Trigger-launched cycles run outside this lifecycle and are not
// waited on. Safe to call from any goroutine, more than once, and before
// Start (in which case it only prevents a later Start from looping).
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	if !p.started.Load() {
		return
	}
	<-p.done
}

// Trigger forces a cycle outside the schedule, e.g. right after an
// optimistic send. It shares the re-entrancy guard with the loop: if a cycle
// is already running the trigger is dropped.
func (p *Poller) Trigger(ctx context.Context) {
	go p.cycle(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	select {
	case <-ctx.Done():
		return
	case <-p.stop:
		return
	default:
	}

	if p.immediate {
		p.cycle(ctx)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

// cycle runs one poll unless the previous one is still in flight, in which
// case the tick is skipped. The guard keeps a slow backend from stacking up
// duplicate requests.
func (p *Poller) cycle(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.log.Debug("skipping poll tick, previous cycle still running", zap.String("poller", p.name))
		return
	}
	defer p.inFlight.Store(false)

	if err := p.fn(ctx); err != nil {
		p.log.Warn("poll cycle failed", zap.String("poller", p.name), zap.Error(err))
	}
}
