package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tabtidy/internal/api"
	"tabtidy/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status and environment checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderStatus(resp, colorize) {
					fmt.Fprintln(out, line)
				}
				return nil
			})
		},
	}
}

func renderStatus(resp *ipc.StatusResponse, colorize bool) []string {
	var lines []string
	lines = append(lines, renderSectionHeader("Daemon", colorize)...)
	lines = append(lines, renderDaemonLines(resp.Status, colorize)...)
	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Checks", colorize)...)
	lines = append(lines, renderCheckLines(resp.Checks, colorize)...)
	return lines
}

func renderDaemonLines(status api.StatusView, colorize bool) []string {
	runningKind := statusError
	runningMsg := "not running"
	if status.Running {
		runningKind = statusOK
		runningMsg = fmt.Sprintf("pid %d", status.PID)
	}

	lines := []string{
		renderStatusLine("Running", runningKind, runningMsg, colorize),
		renderStatusLine("Phase", statusInfo, status.Phase, colorize),
	}
	if status.JobID != "" {
		lines = append(lines, renderStatusLine("Job", statusInfo, status.JobID, colorize))
	}
	lines = append(lines,
		renderStatusLine("Lock file", statusInfo, status.LockFilePath, colorize),
		renderStatusLine("Journal DB", statusInfo, status.JournalDBPath, colorize),
	)
	return lines
}

func renderCheckLines(checks []api.CheckView, colorize bool) []string {
	if len(checks) == 0 {
		return []string{statusIndent + "no checks reported"}
	}
	lines := make([]string, 0, len(checks))
	for _, check := range checks {
		kind := statusOK
		if !check.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(checkLabel(check.Name), kind, check.Detail, colorize))
	}
	return lines
}

func checkLabel(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return "check"
	}
	return name
}
