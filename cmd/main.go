package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"psguard/internal/cli"
	"psguard/internal/config"
	"psguard/internal/log"
	"psguard/internal/runner"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	// ошибки разбора сообщит App.Run
	args, _ := cli.Parse(os.Args[1:])
	logger := log.New(args != nil && args.Verbose, os.Stderr)
	defer log.Sync(logger)

	settings, err := config.LoadSettings(logger)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "\n  ✖ invalid environment: %v\n\n", err)
		return cli.ExitFatal
	}

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitFatal
	}

	app := &cli.App{
		Launcher: &runner.ChromeLauncher{
			ExecPath: settings.ChromePath,
			Headless: settings.Headless,
			Logger:   logger,
		},
		Auditor: &runner.LighthouseAuditor{
			Bin:     settings.LighthouseBin,
			Timeout: settings.AuditTimeout,
			Logger:  logger,
		},
		Settings: *settings,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Dir:      dir,
		Logger:   logger,
	}
	return app.Run(ctx, os.Args[1:])
}
