// Package panel drives the hidden-messages overview: it recomputes the
// classification on every change, animates the badge and renders the panel
// through host-provided sinks.
package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/adamavenir/ghostpanel/internal/badge"
	"github.com/adamavenir/ghostpanel/internal/core"
	"github.com/adamavenir/ghostpanel/internal/eventbus"
	"github.com/adamavenir/ghostpanel/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMissingMountPoint is returned when no sink is available to render into.
var ErrMissingMountPoint = errors.New("panel mount point not found")

// Level is the severity of a user-facing notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
)

// Notification is a transient toast.
type Notification struct {
	Level Level
	Title string
	Text  string
}

// NotificationSink is where the panel renders. Badge operations may arrive
// from a background goroutine; the rest are called from whichever goroutine
// invoked the controller.
type NotificationSink interface {
	badge.Sink
	RenderPanel(view View)
	RenderTitle(title string)
	Notify(n Notification)
}

// Viewport is the transcript view navigation operates on.
type Viewport interface {
	// Reveal scrolls message id into the centre of the view and reports
	// whether it is currently rendered.
	Reveal(id int) bool
	Highlight(id int, d time.Duration)
	ScrollToTop()
}

// Options configure a Controller.
type Options struct {
	Source    types.MessageSource
	Sink      NotificationSink
	Timings   core.Timings
	Logger    *zap.Logger
	OnReady   func()
	BadgeWait badge.WaitFunc
	Now       func() time.Time
}

// Controller owns the state of one panel instance.
type Controller struct {
	id      string
	source  types.MessageSource
	sink    NotificationSink
	badge   *badge.Controller
	timings core.Timings
	log     *zap.Logger
	onReady func()
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	open     bool
	messages []types.Message
	data     types.HiddenData
}

// New creates a controller. It fails with ErrMissingMountPoint when opts has
// no sink.
func New(opts Options) (*Controller, error) {
	if opts.Sink == nil {
		return nil, ErrMissingMountPoint
	}
	if opts.Source == nil {
		return nil, errors.New("panel requires a message source")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timings := opts.Timings
	if timings == (core.Timings{}) {
		timings = core.DefaultConfig().Timings()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	badgeOpts := []badge.Option{badge.WithTimings(badge.Timings{
		In:     timings.BadgeIn,
		Out:    timings.BadgeOut,
		Bounce: timings.BadgeBounce,
	})}
	if opts.BadgeWait != nil {
		badgeOpts = append(badgeOpts, badge.WithWait(opts.BadgeWait))
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		id:      id,
		source:  opts.Source,
		sink:    opts.Sink,
		badge:   badge.NewController(opts.Sink, badgeOpts...),
		timings: timings,
		log:     log.With(zap.String("panel", id)),
		onReady: opts.OnReady,
		now:     now,
		ctx:     ctx,
		cancel:  cancel,
		data:    types.HiddenData{HiddenMessages: []int{}, Boundaries: []int{}},
	}, nil
}

// ID identifies this panel instance in logs.
func (c *Controller) ID() string {
	return c.id
}

// Data returns the most recent classification.
func (c *Controller) Data() types.HiddenData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// BadgeValue returns the value the badge last settled on.
func (c *Controller) BadgeValue() string {
	return c.badge.Value()
}

// IsOpen reports whether the panel is shown.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// UpdateCounter recomputes from a fresh snapshot, starts the badge
// transition, updates the trigger title and re-renders an open panel.
func (c *Controller) UpdateCounter(ctx context.Context) (types.HiddenData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Controller) refreshLocked(ctx context.Context) (types.HiddenData, error) {
	messages, err := c.source.Messages(ctx)
	if err != nil {
		c.log.Warn("failed to read transcript", zap.Error(err))
		return c.data, fmt.Errorf("read transcript: %w", err)
	}
	data := core.ComputeHiddenData(messages)
	c.messages = messages
	c.data = data

	c.startBadge(core.BadgeValue(data))
	c.sink.RenderTitle(core.TriggerTitle(data.TotalCount))
	if c.open {
		c.sink.RenderPanel(BuildView(messages, data, c.now()))
	}
	return data, nil
}

func (c *Controller) startBadge(value string) {
	if c.ctx.Err() != nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		transition, err := c.badge.Update(c.ctx, value)
		if err != nil {
			c.log.Debug("badge transition interrupted", zap.String("value", value), zap.Error(err))
			return
		}
		if transition != badge.TransitionNone {
			c.log.Debug("badge transition", zap.String("value", value), zap.Stringer("transition", transition))
		}
	}()
}

// Toggle shows or hides the panel; showing renders it from a fresh snapshot.
func (c *Controller) Toggle(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = !c.open
	if !c.open {
		return false, nil
	}
	_, err := c.refreshLocked(ctx)
	return true, err
}

// Show opens the panel if it is hidden.
func (c *Controller) Show(ctx context.Context) error {
	if c.IsOpen() {
		return nil
	}
	_, err := c.Toggle(ctx)
	return err
}

// Hide closes the panel.
func (c *Controller) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
}

// HandleClick hides the panel when a click lands outside both the panel
// and its trigger.
func (c *Controller) HandleClick(insidePanel, insideTrigger bool) {
	if insidePanel || insideTrigger {
		return
	}
	c.Hide()
}

// Navigate brings message id into view. Messages the host has not rendered
// yet send the user to the top of the transcript to load more.
func (c *Controller) Navigate(vp Viewport, id int) {
	if vp.Reveal(id) {
		vp.Highlight(id, c.timings.Highlight)
		c.sink.Notify(Notification{
			Level: LevelSuccess,
			Title: core.AppName,
			Text:  fmt.Sprintf("Navigated to message #%d", id),
		})
		return
	}
	vp.ScrollToTop()
	c.sink.Notify(Notification{
		Level: LevelInfo,
		Title: core.AppName,
		Text:  fmt.Sprintf("Message #%d not loaded. Scroll to top and press PgUp to load earlier messages.", id),
	})
}

// Attach recomputes on every host refresh event. app_ready additionally
// runs the OnReady hook. The returned function detaches all handlers.
func (c *Controller) Attach(ctx context.Context, bus *eventbus.Bus) func() {
	unsubscribers := make([]func(), 0, len(types.RefreshEvents))
	for _, event := range types.RefreshEvents {
		unsubscribers = append(unsubscribers, bus.Subscribe(event, func(e types.EventType) {
			c.log.Debug("host event", zap.String("event", string(e)))
			_, _ = c.UpdateCounter(ctx)
			if e == types.EventAppReady && c.onReady != nil {
				c.onReady()
			}
		}))
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

// Wait blocks until in-flight badge transitions finish.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close tears the panel down, interrupting badge animations.
func (c *Controller) Close() {
	c.cancel()
	c.wg.Wait()
}
