package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adamavenir/ghostpanel/internal/core"
	"github.com/adamavenir/ghostpanel/internal/db"
	"github.com/adamavenir/ghostpanel/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CommandContext holds what every subcommand needs: the resolved config, a
// logger and the transcript source named on the command line.
type CommandContext struct {
	Config   core.Config
	Logger   *zap.Logger
	Source   db.Source
	Path     string
	ChatName string
}

// GetContext loads config, builds the logger and opens the transcript at path.
func GetContext(cmd *cobra.Command, path string) (*CommandContext, error) {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	chatID, _ := cmd.Flags().GetString("chat")

	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level, debug)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	source, err := db.Open(abs, chatID)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	name := chatID
	if name == "" {
		name = filepath.Base(abs)
	}
	logger.Debug("opened transcript", zap.String("path", abs), zap.String("chat", name))
	return &CommandContext{
		Config:   cfg,
		Logger:   logger,
		Source:   source,
		Path:     abs,
		ChatName: name,
	}, nil
}

// WatchDir is the directory to watch for out-of-band edits, or "" when the
// transcript is not a plain file.
func (c *CommandContext) WatchDir() string {
	if db.IsDatabasePath(c.Path) {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Close releases the source and flushes the logger.
func (c *CommandContext) Close() {
	if c.Source != nil {
		if err := c.Source.Close(); err != nil {
			c.Logger.Warn("close source", zap.Error(err))
		}
	}
	_ = c.Logger.Sync()
}

func natsURL(cmd *cobra.Command, cfg core.Config) string {
	if url, _ := cmd.Flags().GetString("nats-url"); url != "" {
		return url
	}
	if url := os.Getenv("GHOSTPANEL_NATS_URL"); url != "" {
		return url
	}
	return cfg.Bus.NATSURL
}
