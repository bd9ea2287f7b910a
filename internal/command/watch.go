package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/adamavenir/ghostpanel/internal/badge"
	"github.com/adamavenir/ghostpanel/internal/eventbus"
	"github.com/adamavenir/ghostpanel/internal/panel"
	"github.com/adamavenir/ghostpanel/internal/types"
	"github.com/adamavenir/ghostpanel/internal/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <chat>",
		Short: "Print the hidden messages overview whenever the transcript changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd, args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := runWatch(runCtx, cmd, ctx); err != nil {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().String("nats-url", "", "NATS server publishing host events")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, cc *CommandContext) error {
	bus := eventbus.New()
	defer bus.Close()

	sink := newTextSink(cmd.OutOrStdout())
	controller, err := panel.New(panel.Options{
		Source:  cc.Source,
		Sink:    sink,
		Timings: cc.Config.Timings(),
		Logger:  cc.Logger,
		OnReady: func() {
			sink.printf("--- watching %s (Ctrl+C to stop) ---\n", cc.ChatName)
		},
	})
	if err != nil {
		return err
	}
	defer controller.Close()
	if err := controller.Show(ctx); err != nil {
		return err
	}
	detach := controller.Attach(ctx, bus)
	defer detach()

	var (
		bridge *eventbus.Bridge
		fw     *watcher.Watcher
	)
	var g errgroup.Group
	if url := natsURL(cmd, cc.Config); url != "" {
		g.Go(func() error {
			b, err := eventbus.BridgeNATS(ctx, url, cc.Config.Bus.Subject, bus, cc.Logger)
			if err != nil {
				return fmt.Errorf("host events: %w", err)
			}
			bridge = b
			return nil
		})
	}
	if dir := cc.WatchDir(); dir != "" {
		g.Go(func() error {
			w, err := watcher.New(watcher.Options{
				Dir:      dir,
				Pattern:  cc.Config.Watch.Pattern,
				Debounce: cc.Config.Timings().Debounce,
				Logger:   cc.Logger,
				OnChange: func() { _ = bus.Emit(types.EventChatChanged) },
			})
			if err != nil {
				if errors.Is(err, watcher.ErrContainerMissing) {
					cc.Logger.Warn("transcript container not found, watching host events only", zap.String("dir", dir))
					return nil
				}
				return err
			}
			fw = w
			return nil
		})
	}
	err = g.Wait()
	if bridge != nil {
		defer bridge.Close()
	}
	if fw != nil {
		fw.Start(ctx)
		defer fw.Close()
	}
	if err != nil {
		return err
	}

	if err := bus.Emit(types.EventAppReady); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// textSink prints panel output as plain lines, skipping repeats.
type textSink struct {
	mu        sync.Mutex
	out       io.Writer
	lastTitle string
	lastView  string
}

func newTextSink(out io.Writer) *textSink {
	return &textSink{out: out}
}

func (s *textSink) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *textSink) SetCount(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "badge: %s\n", value)
}

func (s *textSink) AddAnimation(anim badge.Animation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "badge: %s\n", anim)
}

func (s *textSink) RemoveAnimation(badge.Animation) {}

func (s *textSink) RenderPanel(view panel.View) {
	text := FormatView(view)
	s.mu.Lock()
	defer s.mu.Unlock()
	if text == s.lastView {
		return
	}
	s.lastView = text
	fmt.Fprint(s.out, text)
}

func (s *textSink) RenderTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if title == s.lastTitle {
		return
	}
	s.lastTitle = title
	fmt.Fprintln(s.out, title)
}

func (s *textSink) Notify(n panel.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "[%s] %s\n", n.Level, n.Text)
}
