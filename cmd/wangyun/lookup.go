// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wangyun/internal/extract"
	"github.com/pdiddy/wangyun/internal/render"
	"github.com/pdiddy/wangyun/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup CHARS...",
	Short: "Show the readings of one or more characters",
	Long: `Lookup fetches the Wiktionary entry of each character and prints, for
every pronunciation listed under the Chinese heading, the requested readings.

Select what to show with --middle, --old and --modern. Without any of them,
Middle and Old Chinese are shown. --modern takes variant codes or groups:

  groups: all, man, can, hak, min, mins, wu, xiang
  leaves: ms mc mx mn md cg cd ct cy gan hs hh hm hc jin
          minn mine minp minh mint minl sp wn wj xc xl xh`,
	Example: `  wangyun lookup 東 --middle
  wangyun lookup 東西 --modern man,can --format json
  wangyun lookup 行 --page testdata/hang.html --old`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	chars := splitChars(args)
	if len(chars) == 0 {
		return fmt.Errorf("no characters given")
	}

	opts, err := extractOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		f, _ := cmd.Flags().GetString("format")
		format = types.OutputFormat(f)
	}
	color := cfg.Output.Color
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color = false
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
	results, lookupErr := lookupAll(ctx, src, x, chars, opts, keepGoing, logger)
	if lookupErr != nil && len(results) == 0 {
		return lookupErr
	}

	if err := render.Write(os.Stdout, format, succeeded(results), render.Options{
		Color:  color,
		Middle: opts.Middle,
		Old:    opts.Old,
		Modern: opts.Modern,
	}); err != nil {
		return err
	}
	return lookupErr
}

func extractOptionsFromFlags(cmd *cobra.Command) (extract.Options, error) {
	middle, _ := cmd.Flags().GetBool("middle")
	old, _ := cmd.Flags().GetBool("old")
	codes, _ := cmd.Flags().GetStringSlice("modern")

	modern, err := types.ParseVariants(codes)
	if err != nil {
		return extract.Options{}, err
	}
	if !middle && !old && len(modern) == 0 {
		middle, old = true, true
	}
	return extract.Options{Middle: middle, Old: old, Modern: modern}, nil
}

func init() {
	lookupCmd.Flags().BoolP("middle", "m", false, "show Middle Chinese readings")
	lookupCmd.Flags().BoolP("old", "o", false, "show Old Chinese reconstructions")
	lookupCmd.Flags().StringSlice("modern", nil, "modern variants to show (codes or groups, comma-separated)")
	lookupCmd.Flags().StringP("format", "f", "text", "output format: "+strings.Join([]string{
		string(types.OutputText), string(types.OutputJSON), string(types.OutputYAML)}, ", "))
	lookupCmd.Flags().Bool("no-color", false, "disable ANSI colors in text output")
	lookupCmd.Flags().String("page", "", "extract from a local HTML file instead of fetching")
	lookupCmd.Flags().Bool("keep-going", false, "skip characters that fail instead of stopping")

	rootCmd.AddCommand(lookupCmd)
}
