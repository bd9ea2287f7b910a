package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adamavenir/ghostpanel/internal/panel"
	"github.com/adamavenir/ghostpanel/internal/watcher"
	"github.com/spf13/cobra"
)

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	switch {
	case isSchemaError(err):
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: the database needs a messages(chat_id, idx, name, is_user, is_system, extra_type, mes, send_date) table")
	case errors.Is(err, watcher.ErrContainerMissing):
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: the chat directory does not exist yet")
	case errors.Is(err, panel.ErrMissingMountPoint):
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: nothing to render the panel into")
	}

	return err
}

// isSchemaError checks if an error is a SQLite schema mismatch.
func isSchemaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "has no column")
}
