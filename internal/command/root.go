package command

import (
	"os"

	"github.com/adamavenir/ghostpanel/internal/core"
	"github.com/spf13/cobra"
)

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           core.AppName,
		Short:         "ghostpanel - overview of hidden chat messages",
		Long:          "ghostpanel tracks hidden messages in a chat transcript and lets you jump to them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(core.AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("config", "", "config file (default ~/.config/ghostpanel/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "log at debug level")
	cmd.PersistentFlags().String("chat", "", "conversation id when reading a SQLite database")

	cmd.AddCommand(
		NewOpenCmd(),
		NewCountCmd(),
		NewWatchCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
