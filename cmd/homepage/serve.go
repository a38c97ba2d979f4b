package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khanhhoang/homepage"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the preview server",
	Long: `Serves the site from the shells, hydrating each request with the visitor's
stored preferences and client hints. With --watch, edits to the shells or
static files drop the shell cache and reload open pages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctx, app, err := loadApp(ctx, func(cfg *homepage.SiteConfig) {
			if serveAddr != "" {
				cfg.Addr = serveAddr
			}
			if serveWatch {
				cfg.Watch = true
			}
			if cfg.SessionSecret == "" && cfg.Watch {
				cfg.SessionSecret = "homepage-dev-secret"
			}
		})
		if err != nil {
			return err
		}
		defer app.Close()

		app.Echo.HideBanner = true
		fmt.Println(titleStyle.Render("Serving " + app.Config.Name))
		fmt.Println(row("address", app.Config.Addr))
		if app.Config.Watch {
			fmt.Println(row("watch", okStyle.Render("on")))
		}
		return app.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload pages when shells or static files change")
	rootCmd.AddCommand(serveCmd)
}
