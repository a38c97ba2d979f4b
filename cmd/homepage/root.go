package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/khanhhoang/homepage"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "homepage",
	Short: "Build and serve the personal website",
	Long: `homepage hydrates the site's HTML shells with its writing, projects and
experience. "build" writes a static copy of the site; "serve" runs a preview
server that also honours visitor preferences and client hints.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "homepage.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadApp reads the config and creates the app. The returned context
// carries the command's logger.
func loadApp(ctx context.Context, mutate func(*homepage.SiteConfig)) (context.Context, *homepage.App, error) {
	cfg, err := homepage.LoadConfig(cfgFile)
	if err != nil {
		return ctx, nil, err
	}
	if mutate != nil {
		mutate(&cfg)
	}
	app, err := homepage.New(cfg)
	if err != nil {
		return ctx, nil, err
	}
	log := newLogger()
	slog.SetDefault(log)
	return homepage.LoggingContext(ctx, log), app, nil
}
