package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/khanhhoang/homepage"
)

var (
	buildOut   string
	buildForce bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write a static copy of the site",
	Long: `Hydrates every page with default preferences and writes it, the writing
fragments, the feed, the sitemap and the static assets into the output
directory. Files whose content did not change since the last build are
left in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, app, err := loadApp(cmd.Context(), func(cfg *homepage.SiteConfig) {
			if buildOut != "" {
				cfg.OutDir = buildOut
			}
		})
		if err != nil {
			return err
		}
		defer app.Close()

		res, err := app.Build(ctx, homepage.BuildOptions{
			Reporter: homepage.NewReporter(),
			Force:    buildForce,
		})
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}

		fmt.Println(titleStyle.Render("Built " + app.Config.Name))
		fmt.Println(row("output", app.Config.OutDir))
		fmt.Println(row("build", res.ID))
		fmt.Println(row("written", okStyle.Render(strconv.Itoa(res.Written))))
		fmt.Println(row("skipped", strconv.Itoa(res.Skipped)))
		fmt.Println(row("removed", strconv.Itoa(res.Removed)))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output directory (overrides out_dir)")
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "rewrite unchanged files")
	rootCmd.AddCommand(buildCmd)
}
