// Command tabtidy is the CLI for the tab organizer daemon: it starts
// jobs, inspects status and the action journal, and manages
// configuration over the daemon's IPC socket.
package main
