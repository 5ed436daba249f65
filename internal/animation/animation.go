// Package animation drives the feeding animation played after every accepted
// check-in or feed. Exactly one timer is pending at a time and every cycle is
// tagged with a generation so callbacks from a cancelled cycle are ignored.
package animation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Phase is a state of the feeding animation.
type Phase int

const (
	Idle Phase = iota
	Dropping
	Chewing
	Swallowing
	Happy
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dropping:
		return "dropping"
	case Chewing:
		return "chewing"
	case Swallowing:
		return "swallowing"
	case Happy:
		return "happy"
	default:
		return "unknown"
	}
}

// ErrBusy is returned by Start while a cycle is in progress.
var ErrBusy = errors.New("animation in progress")

// step is a phase entered at a fixed offset from the trigger.
type step struct {
	phase Phase
	at    time.Duration
}

var steps = []step{
	{Dropping, 0},
	{Chewing, 800 * time.Millisecond},
	{Swallowing, 1800 * time.Millisecond},
	{Happy, 2400 * time.Millisecond},
	{Idle, 4000 * time.Millisecond},
}

// CycleDuration is the trigger-to-idle length of one cycle at normal speed.
var CycleDuration = steps[len(steps)-1].at

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Sequence is the animation state machine.
type Sequence struct {
	sched Scheduler

	mu        sync.Mutex
	phase     Phase
	index     int
	gen       uint64
	timer     Timer
	onSwallow func()
	done      chan struct{}
	listeners []func(Phase)
}

func NewSequence(sched Scheduler) *Sequence {
	done := make(chan struct{})
	close(done)
	return &Sequence{sched: sched, done: done}
}

// OnPhase registers fn to be called on every phase change, outside the lock.
func (s *Sequence) OnPhase(fn func(Phase)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Phase returns the current phase.
func (s *Sequence) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Busy reports whether a cycle is in progress.
func (s *Sequence) Busy() bool {
	return s.Phase() != Idle
}

// Start begins a cycle. onSwallow, if non-nil, runs once when the cycle
// enters Swallowing. Returns ErrBusy if a cycle is already running.
func (s *Sequence) Start(onSwallow func()) error {
	s.mu.Lock()
	if s.phase != Idle {
		s.mu.Unlock()
		return ErrBusy
	}
	s.gen++
	s.index = 0
	s.phase = steps[0].phase
	s.onSwallow = onSwallow
	s.done = make(chan struct{})
	s.scheduleNext()
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, Dropping)
	return nil
}

// scheduleNext arms the timer for the step after s.index. Caller holds mu.
func (s *Sequence) scheduleNext() {
	next := s.index + 1
	if next >= len(steps) {
		return
	}
	gen := s.gen
	delay := steps[next].at - steps[s.index].at
	s.timer = s.sched.AfterFunc(delay, func() { s.advance(gen) })
}

func (s *Sequence) advance(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.phase == Idle {
		s.mu.Unlock()
		return
	}
	s.index++
	s.phase = steps[s.index].phase
	s.timer = nil

	var swallow func()
	if s.phase == Swallowing {
		swallow, s.onSwallow = s.onSwallow, nil
	}
	if s.phase == Idle {
		close(s.done)
	} else {
		s.scheduleNext()
	}
	phase := s.phase
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if swallow != nil {
		swallow()
	}
	notify(listeners, phase)
}

// Cancel abandons the running cycle and returns to Idle. A pending swallow
// callback is dropped. Cancel on an idle sequence is a no-op.
func (s *Sequence) Cancel() {
	s.mu.Lock()
	if s.phase == Idle {
		s.mu.Unlock()
		return
	}
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.phase = Idle
	s.onSwallow = nil
	close(s.done)
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, Idle)
}

// Done returns a channel closed when the current cycle reaches Idle.
func (s *Sequence) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Wait blocks until the current cycle finishes or ctx is done.
func (s *Sequence) Wait(ctx context.Context) error {
	select {
	case <-s.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sequence) snapshotListeners() []func(Phase) {
	return append([]func(Phase){}, s.listeners...)
}

func notify(listeners []func(Phase), p Phase) {
	for _, fn := range listeners {
		fn(p)
	}
}

// Caption is the line shown under the cat for a phase.
func Caption(p Phase) string {
	switch p {
	case Dropping:
		return "A kibble drops into the bowl..."
	case Chewing:
		return "Nom nom nom..."
	case Swallowing:
		return "Gulp!"
	case Happy:
		return "Purr~ so happy!"
	default:
		return ""
	}
}
