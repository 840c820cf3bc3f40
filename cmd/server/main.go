package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akeren/seam-landing/config"
	"github.com/akeren/seam-landing/domain"
	"github.com/akeren/seam-landing/internal/log"
)

const shutdownTimeout = 30 * time.Second

type serverOptions struct {
	autoMigrate bool
}

func parseServerFlags(args []string, output io.Writer) (serverOptions, error) {
	var opts serverOptions

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&opts.autoMigrate, "auto-migrate", false, "create the waitlist and visit tables on boot (development only)")
	fs.BoolVar(&opts.autoMigrate, "m", false, "shorthand for --auto-migrate")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

func main() {
	logger := log.NewLoggerWithJSONOutput()

	opts, err := parseServerFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Error("Invalid server flags", "error", err.Error())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("Seam landing server stopped", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts serverOptions) error {
	logger.Info("Seam landing server starting", "auto_migrate", opts.autoMigrate)

	appConfig, err := config.LoadApplicationConfiguration(logger, opts.autoMigrate)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	defer appConfig.Cleanup()

	domain.SetupCoreDomain(appConfig)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- appConfig.RouterService.RunHTTPServer()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received; draining landing requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("Graceful shutdown completed")
	return nil
}
