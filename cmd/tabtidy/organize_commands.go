package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tabtidy/internal/ipc"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var threshold int
	var noClose bool

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Analyze all tabs, close unimportant ones, and group the rest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			autoClose := !noClose
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Organize(threshold, autoClose)
				if err != nil {
					return err
				}
				if resp.Conflict {
					fmt.Fprintln(cmd.OutOrStdout(), "A job is already running; try again once it finishes.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Organize complete (job %s)\n", resp.JobID)
				if resp.Message != "" {
					fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 0, "Importance threshold 1-10 (0 uses the configured default)")
	cmd.Flags().BoolVar(&noClose, "no-close", false, "Group tabs without closing any")
	return cmd
}

func newCloseCommand(ctx *commandContext) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close low-importance tabs without regrouping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.CloseTabs(threshold)
				if err != nil {
					return err
				}
				if resp.Conflict {
					fmt.Fprintln(cmd.OutOrStdout(), "A job is already running; try again once it finishes.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Close complete (job %s)\n", resp.JobID)
				if resp.Message != "" {
					fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 0, "Importance threshold 1-10 (0 uses the configured default)")
	return cmd
}

func newUndoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Reverse the most recent organize or close action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Undo()
				if err != nil {
					return err
				}
				switch {
				case resp.Conflict:
					fmt.Fprintln(cmd.OutOrStdout(), "A job is already running; try again once it finishes.")
				case resp.NothingToUndo:
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to undo.")
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "Undo complete (job %s)\n", resp.JobID)
				}
				return nil
			})
		},
	}
}
