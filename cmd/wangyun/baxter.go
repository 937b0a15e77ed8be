// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wangyun/internal/extract"
	"github.com/pdiddy/wangyun/internal/render"
)

var baxterCmd = &cobra.Command{
	Use:   "baxter CHARS...",
	Short: "Print the Baxter transcriptions of characters on one line",
	Long: `Baxter prints, for each character, every distinct Baxter transcription
of its Middle Chinese readings joined by '|', or [] when there is none.
Characters are separated by a space, so a phrase maps to a line.`,
	Example: `  wangyun baxter 東行`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chars := splitChars(args)
		if len(chars) == 0 {
			return fmt.Errorf("no characters given")
		}

		src, cleanup, err := newPageSource(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		keepGoing, _ := cmd.Flags().GetBool("keep-going")
		x := extract.New(extract.NewPatterns(), logger)
		results, lookupErr := lookupAll(ctx, src, x, chars, extract.Options{Middle: true}, keepGoing, logger)
		if lookupErr != nil && len(results) == 0 {
			return lookupErr
		}

		if err := render.Baxter(os.Stdout, results); err != nil {
			return err
		}
		return lookupErr
	},
}

func init() {
	baxterCmd.Flags().String("page", "", "extract from a local HTML file instead of fetching")
	baxterCmd.Flags().Bool("keep-going", false, "skip characters that fail instead of stopping")

	rootCmd.AddCommand(baxterCmd)
}
