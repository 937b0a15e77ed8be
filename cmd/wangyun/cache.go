// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wangyun/internal/pagecache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local page cache",
	Long: `Cache manages the SQLite database of fetched Wiktionary pages kept under
the cache directory (default .wangyun/). Only raw pages are stored.`,
}

// --- clear subcommand ---

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached page",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := pagecache.Open(cfg.Cache.Dir, cfg.Cache.MaxAge)
		if err != nil {
			return err
		}
		defer cache.Close()

		n, err := cache.Clear(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d cached page(s) from %s\n", n, cfg.Cache.Dir)
		return nil
	},
}

// --- stats subcommand ---

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many pages are cached and their size",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := pagecache.Open(cfg.Cache.Dir, cfg.Cache.MaxAge)
		if err != nil {
			return err
		}
		defer cache.Close()

		s, err := cache.Stats(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %s\n", "Directory:", cfg.Cache.Dir)
		fmt.Printf("%-12s %d\n", "Pages:", s.Entries)
		fmt.Printf("%-12s %d bytes\n", "Raw:", s.RawBytes)
		fmt.Printf("%-12s %d bytes\n", "Stored:", s.StoredBytes)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)

	rootCmd.AddCommand(cacheCmd)
}
