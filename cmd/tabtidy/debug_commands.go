package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tabtidy/internal/ipc"
)

func newDebugCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "debug",
		Short:  "Developer helpers for exercising the pipeline",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newDebugSyntheticCommand(ctx))
	cmd.AddCommand(newDebugCloseAllCommand(ctx))
	return cmd
}

func newDebugSyntheticCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "synthetic <count>",
		Short: "Open placeholder tabs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil || count <= 0 {
				return fmt.Errorf("count must be a positive integer, got %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SyntheticTabs(count)
				if err != nil {
					return err
				}
				if resp.Conflict {
					fmt.Fprintln(cmd.OutOrStdout(), "A job is already running; try again once it finishes.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opened %d synthetic tabs\n", count)
				return nil
			})
		},
	}
}

func newDebugCloseAllCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "close-all-but-active",
		Short: "Close every closable tab except the active ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.CloseAllButActive()
				if err != nil {
					return err
				}
				if resp.Conflict {
					fmt.Fprintln(cmd.OutOrStdout(), "A job is already running; try again once it finishes.")
					return nil
				}
				if resp.Message != "" {
					fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				}
				return nil
			})
		},
	}
}
