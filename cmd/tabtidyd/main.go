// Command tabtidyd runs the tab organizer daemon: it watches browser
// tab events, serves the IPC socket, and executes organize, close, and
// undo jobs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"tabtidy/internal/browser"
	"tabtidy/internal/classify/router"
	"tabtidy/internal/config"
	"tabtidy/internal/daemon"
	"tabtidy/internal/engine"
	"tabtidy/internal/ipc"
	"tabtidy/internal/journal"
	"tabtidy/internal/logging"
	"tabtidy/internal/progress"
)

func main() {
	configPath := flag.String("config", "", "Configuration file path")
	socketPath := flag.String("socket", "", "IPC socket path (defaults to the state directory)")
	flag.Parse()

	if err := run(*configPath, *socketPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, socketOverride string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		OutputPaths: []string{
			"stdout",
			filepath.Join(cfg.Paths.LogDir, "tabtidyd.log"),
		},
	})
	if err != nil {
		return err
	}

	store, err := journal.Open(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	bridge := browser.NewClient(cfg)
	classifier := router.New(cfg, logger)
	bus := progress.NewBus()
	eng := engine.New(cfg, bridge, classifier, store, bus, logger)

	d, err := daemon.New(cfg, eng, logger)
	if err != nil {
		return err
	}

	socket := socketOverride
	if socket == "" {
		socket = filepath.Join(cfg.Paths.StateDir, ipc.SocketName)
	}
	server, err := ipc.NewServer(ctx, socket, d, logger)
	if err != nil {
		return fmt.Errorf("start ipc server: %w", err)
	}
	server.Serve()

	if err := d.Start(ctx); err != nil {
		server.Close()
		return err
	}
	logger.Info("daemon started",
		logging.String("socket", socket),
		logging.String("journal", store.Path()))

	<-ctx.Done()

	logger.Info("daemon shutting down")
	server.Close()
	d.Stop()
	return nil
}
