package command

import (
	"fmt"

	"github.com/adamavenir/ghostpanel/internal/chat"
	"github.com/adamavenir/ghostpanel/internal/eventbus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewOpenCmd creates the open command.
func NewOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <chat>",
		Short: "Browse a transcript with the hidden messages overview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd, args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			last, _ := cmd.Flags().GetInt("last")
			desktop, _ := cmd.Flags().GetBool("desktop")
			desktop = desktop || ctx.Config.Notify.Desktop

			bus := eventbus.New()
			defer bus.Close()

			if url := natsURL(cmd, ctx.Config); url != "" {
				bridge, err := eventbus.BridgeNATS(cmd.Context(), url, ctx.Config.Bus.Subject, bus, ctx.Logger)
				if err != nil {
					return writeCommandError(cmd, fmt.Errorf("host events: %w", err))
				}
				defer bridge.Close()
				ctx.Logger.Info("bridging host events", zap.String("url", url), zap.String("subject", ctx.Config.Bus.Subject))
			}

			return chat.Run(chat.Options{
				Source:   ctx.Source,
				ChatName: ctx.ChatName,
				Bus:      bus,
				Config:   ctx.Config,
				Logger:   ctx.Logger,
				WatchDir: ctx.WatchDir(),
				Last:     last,
				Desktop:  desktop,
			})
		},
	}

	cmd.Flags().Int("last", 0, "render the last N messages (default from config, 20)")
	cmd.Flags().String("nats-url", "", "NATS server publishing host events")
	cmd.Flags().Bool("desktop", false, "mirror toasts as desktop notifications")

	return cmd
}
