// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wangyun/internal/extract"
	"github.com/pdiddy/wangyun/internal/fetch"
	"github.com/pdiddy/wangyun/internal/pagecache"
	"github.com/pdiddy/wangyun/pkg/types"
)

// pageSource supplies the raw page for a character. *fetch.Client
// satisfies it.
type pageSource interface {
	Fetch(ctx context.Context, char string) (string, error)
}

// filePage serves the same local file for every character.
type filePage string

func (f filePage) Fetch(_ context.Context, _ string) (string, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return "", fmt.Errorf("reading page file: %w", err)
	}
	return string(data), nil
}

// newPageSource returns the page source selected by flags and config, and a
// function releasing whatever it opened.
func newPageSource(cmd *cobra.Command) (pageSource, func(), error) {
	if path, _ := cmd.Flags().GetString("page"); path != "" {
		return filePage(path), func() {}, nil
	}

	opts := []fetch.Option{fetch.WithLogger(logger)}
	cleanup := func() {}
	if cfg.Cache.Enabled {
		cache, err := pagecache.Open(cfg.Cache.Dir, cfg.Cache.MaxAge)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, fetch.WithCache(cache))
		cleanup = func() { cache.Close() }
	}
	return fetch.New(cfg.Fetch, opts...), cleanup, nil
}

// splitChars turns the command arguments into single characters, dropping
// whitespace.
func splitChars(args []string) []string {
	var chars []string
	for _, arg := range args {
		for _, r := range arg {
			if unicode.IsSpace(r) {
				continue
			}
			chars = append(chars, string(r))
		}
	}
	return chars
}

// lookupAll retrieves every page first, in order, then extracts each
// character. The result is aligned with chars. The first failure aborts the
// run unless keepGoing is set, in which case failing characters are logged
// and left nil and the returned error counts them.
func lookupAll(ctx context.Context, src pageSource, x *extract.Extractor, chars []string, opts extract.Options, keepGoing bool, log *slog.Logger) ([]*types.Character, error) {
	pages := make([]string, len(chars))
	ok := make([]bool, len(chars))
	failed := 0

	for i, c := range chars {
		page, err := src.Fetch(ctx, c)
		if err != nil {
			if !keepGoing || ctx.Err() != nil {
				return nil, err
			}
			log.Error("fetch failed", "char", c, "error", err)
			failed++
			continue
		}
		pages[i], ok[i] = page, true
	}

	results := make([]*types.Character, len(chars))
	for i, c := range chars {
		if !ok[i] {
			continue
		}
		ch, err := x.Character(c, pages[i], opts)
		if err != nil {
			err = fmt.Errorf("extracting %s: %w", c, err)
			if !keepGoing {
				return nil, err
			}
			log.Error("extraction failed", "char", c, "error", err)
			failed++
			continue
		}
		results[i] = &ch
	}

	if failed > 0 {
		err := fmt.Errorf("%d of %d characters failed", failed, len(chars))
		if failed == len(chars) {
			return nil, err
		}
		return results, err
	}
	return results, nil
}

// succeeded drops the entries of failed characters.
func succeeded(results []*types.Character) []types.Character {
	out := make([]types.Character, 0, len(results))
	for _, c := range results {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}
