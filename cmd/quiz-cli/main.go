package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"wiki-quiz/internal/cli"
	"wiki-quiz/internal/client"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/retrieval"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	name := filepath.Base(os.Args[0])
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("server", "", "quiz API base URL (default from client.server_url)")
	flags.Duration("timeout", 0, "HTTP timeout per request (default from client.timeout)")
	flags.String("log-level", "warn", "log level written to stderr")
	flags.Usage = func() {
		cli.Usage(os.Stderr, name)
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	bindFlag(flags, "client.server_url", "server")
	bindFlag(flags, "client.timeout", "timeout")
	bindFlag(flags, "logger.level", "log-level")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout is reserved for quiz output
	if err := logger.InitializeTo(cfg.Logger, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Get().Debug("Using quiz API", zap.String("server_url", cfg.Client.ServerURL))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.NewClient(cfg.Client.ServerURL, &http.Client{Timeout: cfg.Client.Timeout})
	orch := retrieval.NewOrchestrator(api)

	err = cli.Run(ctx, orch, flags.Args(), cli.Options{
		Progress: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
		Out:      os.Stdout,
		Err:      os.Stderr,
	})
	if err != nil {
		if errors.Is(err, cli.ErrUsage) {
			flags.Usage()
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// bindFlag lets an explicitly set flag override config.yaml and the env.
func bindFlag(flags *pflag.FlagSet, key, name string) {
	if flags.Changed(name) {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}
