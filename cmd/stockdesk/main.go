// cmd/stockdesk/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ammerola/stockdesk/internal/pkg/config"
	"github.com/ammerola/stockdesk/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const usage = `Usage: stockdesk [flags] [command] [args]

Commands:
  shell                         interactive console (default)
  login [email] | register | logout | whoami
  dashboard
  products [--page N] [--search Q]
  categories [--page N]
  show|history <id>             product on the selected page
  sell|restock <id> [qty] [reason]
  new | edit <id> | delete <id>
  export <file.xlsx|file.json>
  import <file.xlsx>

Flags:
`

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("stockdesk", pflag.ContinueOnError)
	flags.String("api-url", "", "base URL of the inventory API")
	flags.Int("page-size", 0, "items per page")
	flags.Duration("timeout", 0, "per-request timeout")
	flags.String("session", "", "session store (file, redis, memory)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.Bool("debug", false, "enable debug mode")
	assumeYes := flags.BoolP("yes", "y", false, "answer yes to every confirmation")
	page := flags.Int("page", 1, "products page to select before the command runs")
	search := flags.String("search", "", "products search term applied before the command runs")
	showVersion := flags.Bool("version", false, "print version and exit")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitBadUsage
	}

	if *showVersion {
		fmt.Printf("stockdesk %s (built %s)\n", Version, BuildTime)
		return exitOK
	}

	slogger := logger.SetupLogger("warn", "text", 1).Logger

	cfg, err := config.Load(slogger, flags)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		return exitFailure
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat, cfg.App.LogSampleRate).Logger
	slogger.Debug("starting stockdesk",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := initializeDependencies(ctx, cfg, os.Stdin, os.Stdout, *assumeYes, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		return exitFailure
	}
	defer deps.cleanup()

	r := &runner{
		cfg:    cfg,
		deps:   deps,
		list:   listOptions{page: *page, search: *search},
		logger: slogger,
	}
	return r.run(ctx, flags.Args())
}
