package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adamavenir/ghostpanel/internal/badge"
	"github.com/adamavenir/ghostpanel/internal/core"
	"github.com/adamavenir/ghostpanel/internal/eventbus"
	"github.com/adamavenir/ghostpanel/internal/panel"
	"github.com/adamavenir/ghostpanel/internal/types"
	"github.com/adamavenir/ghostpanel/internal/watcher"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"
)

// Options configure the transcript view.
type Options struct {
	Source   types.MessageSource
	ChatName string
	Bus      *eventbus.Bus
	Config   core.Config
	Logger   *zap.Logger
	// WatchDir is the directory holding the transcript file. Empty disables
	// the file watcher.
	WatchDir string
	Last     int
	Desktop  bool
}

// Run starts the transcript UI and blocks until it exits.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	fmt.Printf("\033]0;%s\007", windowTitle(opts.ChatName))

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.send = program.Send
	detach := model.subscribe()

	_, err = program.Run()

	detach()
	model.Close()
	return err
}

func windowTitle(chatName string) string {
	if chatName == "" {
		return core.AppName
	}
	return core.AppName + " · " + chatName
}

// Model is the bubbletea model for a transcript with the hidden-messages
// overview attached.
type Model struct {
	ctx      context.Context
	cancel   context.CancelFunc
	source   types.MessageSource
	bus      *eventbus.Bus
	log      *zap.Logger
	panel    *panel.Controller
	watcher  *watcher.Watcher
	send     func(tea.Msg)
	chatName string
	watchDir string
	pattern  string
	debounce time.Duration
	desktop  bool

	viewport     viewport.Model
	zoneManager  *zone.Manager
	messages     []types.Message
	renderFrom   int // index of the first rendered message
	lastLimit    int
	lineOffsets  map[int]int
	width        int
	height       int
	status       string
	initialReady bool

	// Trigger and badge
	title      string
	badgeCount string
	badgeAnims map[badge.Animation]bool

	// Overview panel
	view          panel.View
	panelIndex    int
	panelOffset   int
	highlightID   int
	highlightSeq  int
	toast         *panel.Notification
	toastSeq      int
	pendingCmds   []tea.Cmd
	panelDisabled bool
}

// NewModel creates a model and loads the initial transcript snapshot.
func NewModel(opts Options) (*Model, error) {
	if opts.Source == nil {
		return nil, errors.New("transcript source required")
	}
	if opts.Last <= 0 {
		opts.Last = opts.Config.Transcript.Last
	}
	if opts.Last <= 0 {
		opts.Last = core.DefaultLast
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	bus := opts.Bus
	if bus == nil {
		bus = eventbus.New()
	}
	timings := opts.Config.Timings()

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:         ctx,
		cancel:      cancel,
		source:      opts.Source,
		bus:         bus,
		log:         log,
		send:        func(tea.Msg) {},
		chatName:    opts.ChatName,
		watchDir:    opts.WatchDir,
		pattern:     opts.Config.Watch.Pattern,
		debounce:    timings.Debounce,
		desktop:     opts.Desktop || opts.Config.Notify.Desktop,
		viewport:    viewport.New(0, 0),
		zoneManager: zone.New(),
		lastLimit:   opts.Last,
		lineOffsets: make(map[int]int),
		badgeAnims:  make(map[badge.Animation]bool),
		title:       core.TriggerTitle(0),
		highlightID: -1,
	}

	if err := m.reload(); err != nil {
		cancel()
		return nil, err
	}

	snapshot := types.MessageSourceFunc(func(context.Context) ([]types.Message, error) {
		return m.messages, nil
	})
	controller, err := panel.New(panel.Options{
		Source:  snapshot,
		Sink:    m,
		Timings: timings,
		Logger:  log,
	})
	if err != nil {
		if errors.Is(err, panel.ErrMissingMountPoint) {
			log.Error("hidden messages panel disabled", zap.Error(err))
			m.panelDisabled = true
		} else {
			cancel()
			return nil, err
		}
	}
	m.panel = controller
	return m, nil
}

// reload replaces the snapshot with a fresh read, keeping the rendered
// window anchored to the end of the transcript.
func (m *Model) reload() error {
	messages, err := m.source.Messages(m.ctx)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}
	rendered := len(m.messages) - m.renderFrom
	if !m.initialReady || rendered < m.lastLimit {
		rendered = m.lastLimit
	}
	m.messages = messages
	m.renderFrom = len(messages) - rendered
	if m.renderFrom < 0 {
		m.renderFrom = 0
	}
	m.initialReady = true
	return nil
}

// subscribe forwards host events into the program loop.
func (m *Model) subscribe() func() {
	unsubscribers := make([]func(), 0, len(types.RefreshEvents))
	for _, event := range types.RefreshEvents {
		unsubscribers = append(unsubscribers, m.bus.Subscribe(event, func(e types.EventType) {
			m.send(hostEventMsg{event: e})
		}))
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}
