// Package badge animates the hidden-message counter shown on the panel trigger.
package badge

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Animation is a transient visual state applied to the badge.
type Animation string

const (
	AnimationIn     Animation = "badge-in"
	AnimationOut    Animation = "badge-out"
	AnimationBounce Animation = "badge-bounce"
)

// Transition describes what an Update call did.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionDropped
	TransitionIn
	TransitionOut
	TransitionBounce
)

func (t Transition) String() string {
	switch t {
	case TransitionDropped:
		return "dropped"
	case TransitionIn:
		return "in"
	case TransitionOut:
		return "out"
	case TransitionBounce:
		return "bounce"
	default:
		return "none"
	}
}

// Sink receives badge render operations.
type Sink interface {
	SetCount(value string)
	AddAnimation(anim Animation)
	RemoveAnimation(anim Animation)
}

// Timings are the animation durations for each transition.
type Timings struct {
	In     time.Duration
	Out    time.Duration
	Bounce time.Duration
}

// DefaultTimings match the trigger stylesheet keyframes.
func DefaultTimings() Timings {
	return Timings{
		In:     510 * time.Millisecond,
		Out:    510 * time.Millisecond,
		Bounce: 1010 * time.Millisecond,
	}
}

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Controller serializes badge updates: at most one update is in flight and
// calls arriving meanwhile are dropped, not queued.
type Controller struct {
	sink     Sink
	timings  Timings
	wait     WaitFunc
	updating atomic.Bool

	mu      sync.Mutex
	current string
}

// Option customizes a Controller.
type Option func(*Controller)

// WithTimings overrides the animation durations.
func WithTimings(timings Timings) Option {
	return func(c *Controller) {
		c.timings = timings
	}
}

// WithWait replaces the timer used between animation steps.
func WithWait(wait WaitFunc) Option {
	return func(c *Controller) {
		c.wait = wait
	}
}

// NewController creates a controller with an empty displayed value.
func NewController(sink Sink, opts ...Option) *Controller {
	c := &Controller{
		sink:    sink,
		timings: DefaultTimings(),
		wait:    sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Value returns the last value a completed transition settled on.
func (c *Controller) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Updating reports whether a transition is in flight.
func (c *Controller) Updating() bool {
	return c.updating.Load()
}

// Update moves the badge to newValue.
//
// Clearing plays the exit animation before the value changes; showing a first
// value sets it before the entrance animation; changing a visible value sets it
// and bounces.
func (c *Controller) Update(ctx context.Context, newValue string) (Transition, error) {
	if !c.updating.CompareAndSwap(false, true) {
		return TransitionDropped, nil
	}
	defer c.updating.Store(false)

	current := c.Value()
	if newValue == current {
		return TransitionNone, nil
	}

	var transition Transition
	var err error
	switch {
	case isEmpty(newValue):
		transition = TransitionOut
		c.sink.AddAnimation(AnimationOut)
		err = c.wait(ctx, c.timings.Out)
		if err == nil {
			c.sink.SetCount(newValue)
		}
		c.sink.RemoveAnimation(AnimationOut)
	case isEmpty(current):
		transition = TransitionIn
		c.sink.SetCount(newValue)
		c.sink.AddAnimation(AnimationIn)
		err = c.wait(ctx, c.timings.In)
		c.sink.RemoveAnimation(AnimationIn)
	default:
		transition = TransitionBounce
		c.sink.SetCount(newValue)
		c.sink.AddAnimation(AnimationBounce)
		err = c.wait(ctx, c.timings.Bounce)
		c.sink.RemoveAnimation(AnimationBounce)
	}
	if err != nil {
		return transition, err
	}

	c.mu.Lock()
	c.current = newValue
	c.mu.Unlock()
	return transition, nil
}

func isEmpty(value string) bool {
	return value == "" || value == "0"
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
