package command

import (
	"encoding/json"
	"fmt"

	"github.com/adamavenir/ghostpanel/internal/core"
	"github.com/adamavenir/ghostpanel/internal/types"
	"github.com/spf13/cobra"
)

type countResult struct {
	types.HiddenData
	Ranges []types.Range `json:"ranges"`
}

// NewCountCmd creates the count command.
func NewCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <chat>",
		Short: "Print hidden message ranges and boundaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd, args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			messages, err := ctx.Source.Messages(cmd.Context())
			if err != nil {
				return writeCommandError(cmd, err)
			}
			data := core.ComputeHiddenData(messages)
			ranges := core.GroupIntoRanges(data.HiddenMessages)

			out := cmd.OutOrStdout()
			if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
				return json.NewEncoder(out).Encode(countResult{HiddenData: data, Ranges: ranges})
			}

			fmt.Fprintln(out, core.TriggerTitle(data.TotalCount))
			if expand, _ := cmd.Flags().GetBool("expand"); expand {
				fmt.Fprintf(out, "hidden: %s\n", formatIDs(core.FlattenRanges(ranges)))
			} else {
				fmt.Fprintf(out, "hidden: %s\n", formatRanges(ranges))
			}
			fmt.Fprintf(out, "boundaries: %s\n", formatIDs(data.Boundaries))
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "output in JSON format")
	cmd.Flags().Bool("expand", false, "list every hidden message instead of ranges")

	return cmd
}
