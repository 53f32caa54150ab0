package typewriter

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// Target receives the visible text after every tick.
type Target interface {
	SetText(text string)
}

// TargetFunc adapts a function to Target.
type TargetFunc func(text string)

// SetText implements Target.
func (f TargetFunc) SetText(text string) { f(text) }

// Timer is a pending scheduled tick.
type Timer interface {
	Stop() bool
}

// Scheduler defers a callback. time.AfterFunc satisfies it through Clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Clock schedules ticks on the runtime timer.
type Clock struct{}

// AfterFunc implements Scheduler.
func (Clock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Engine drives a Session against a Target with a Scheduler. Each tick
// schedules exactly the next one, so ticks never overlap.
type Engine struct {
	target Target
	opts   Options
	sched  Scheduler

	mu      sync.Mutex
	session Session
	timer   Timer
	started bool
	stopped bool

	done     chan struct{}
	doneOnce sync.Once
}

// New builds an engine on the runtime clock. A nil target, including a typed
// nil such as a nil *LineTarget, is allowed and turns Start into a no-op.
func New(target Target, opts Options) (*Engine, error) {
	return NewWithScheduler(target, opts, Clock{})
}

// NewWithScheduler builds an engine with a custom scheduler.
func NewWithScheduler(target Target, opts Options, sched Scheduler) (*Engine, error) {
	normalized, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	if sched == nil {
		sched = Clock{}
	}
	if isNilTarget(target) {
		target = nil
	}
	return &Engine{
		target: target,
		opts:   normalized,
		sched:  sched,
		done:   make(chan struct{}),
	}, nil
}

// Options returns the normalized options.
func (e *Engine) Options() Options {
	return e.opts
}

// Start schedules the first tick after the start delay. Calling it again,
// after Stop, or without a target does nothing.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	if e.target == nil {
		e.finishLocked()
		return
	}
	e.timer = e.sched.AfterFunc(e.opts.StartDelay, e.tick)
}

// Stop cancels the pending tick and ends the session.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.finishLocked()
}

// Done is closed once the session stops on its own or through Stop.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Session returns a snapshot of the current state.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Run starts the engine and blocks until it stops or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	e.Start()
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		e.Stop()
		return ctx.Err()
	}
}

// tick renders outside the lock so a target may call Stop from SetText.
func (e *Engine) tick() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	next, text, delay := Step(e.session, e.opts)
	e.session = next
	e.timer = nil
	e.mu.Unlock()

	e.target.SetText(text)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	if next.Stopped() {
		e.timer = nil
		e.finishLocked()
		return
	}
	e.timer = e.sched.AfterFunc(delay, e.tick)
}

func (e *Engine) finishLocked() {
	e.stopped = true
	e.doneOnce.Do(func() { close(e.done) })
}

func isNilTarget(target Target) bool {
	if target == nil {
		return true
	}
	v := reflect.ValueOf(target)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
