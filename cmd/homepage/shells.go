package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanhhoang/homepage"
)

var shellsOverwrite bool

var shellsCmd = &cobra.Command{
	Use:   "shells <dir>",
	Short: "Copy the embedded page shells into a directory",
	Long: `Writes the built-in pages, articles and assets to <dir>. Point shells_dir
at it to serve or build from the edited copy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := homepage.EjectShells(args[0], shellsOverwrite)
		if err != nil {
			return err
		}
		for _, name := range written {
			fmt.Println(okStyle.Render("  + ") + name)
		}
		fmt.Printf("\n%d files written to %s\n", len(written), args[0])
		fmt.Println(row("next", "set shells_dir: "+args[0]))
		return nil
	},
}

func init() {
	shellsCmd.Flags().BoolVar(&shellsOverwrite, "overwrite", false, "replace files that already exist")
	rootCmd.AddCommand(shellsCmd)
}
