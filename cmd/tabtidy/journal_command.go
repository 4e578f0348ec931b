package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tabtidy/internal/ipc"
)

func newJournalCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "journal",
		Short: "Show the recorded action that undo would reverse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Journal()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !resp.Found {
					fmt.Fprintln(out, "Journal is empty; nothing to undo.")
					return nil
				}

				record := resp.Record
				rows := [][]string{
					{"Kind", record.Kind},
					{"Job", record.JobID},
					{"Closed tabs", strconv.Itoa(record.ClosedCount)},
					{"Groups", strconv.Itoa(record.GroupCount)},
					{"Recorded", record.CreatedAt},
				}
				if record.Rationale != "" {
					rows = append(rows, []string{"Rationale", record.Rationale})
				}
				fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))

				if len(record.ClosedURLs) > 0 {
					fmt.Fprintln(out, "Closed URLs:")
					fmt.Fprintln(out, "  "+strings.Join(record.ClosedURLs, "\n  "))
				}
				return nil
			})
		},
	}
}
