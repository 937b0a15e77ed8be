// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the wangyun CLI. wangyun looks up
// Chinese characters on Wiktionary and prints their Middle Chinese,
// Old Chinese and modern dialect readings.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wangyun/internal/secrets"
	"github.com/pdiddy/wangyun/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the effective configuration after defaults, file, env and flags.
	cfg types.Config

	// logger is built from --log-format, --verbose and --quiet.
	logger *slog.Logger

	// loadedSecrets holds operator details loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets
)

// rootCmd is the base command for the wangyun CLI.
var rootCmd = &cobra.Command{
	Use:   "wangyun",
	Short: "Look up historical and modern readings of Chinese characters",
	Long: `wangyun fetches Wiktionary entries for Chinese characters and extracts
their phonology: Middle Chinese readings (initial, final, tone, openness,
division, fanqie, Baxter transcription), Old Chinese reconstructions in the
Baxter-Sagart and Zhengzhang systems, and modern pronunciations across
Mandarin, Cantonese, Hakka, Min, Wu, Xiang and other varieties.

Fetched pages are cached locally; extracted readings are recomputed on
every run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logger, err = loggerFromFlags(cmd, os.Stderr); err != nil {
			return err
		}
		slog.SetDefault(logger)

		if loadedSecrets, err = secrets.Load(".secrets/", logger); err != nil {
			return err
		}
		if cfg, err = loadConfig(cmd); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./wangyun.yaml or ~/.config/wangyun/config.yaml)")
	pf.String("log-format", "text", "log format on stderr: text or json")
	pf.BoolP("verbose", "v", false, "log debug details")
	pf.BoolP("quiet", "q", false, "log errors only")
	pf.String("contact", "", "contact address for the User-Agent (default: .secrets/contact-email)")
	pf.Bool("no-cache", false, "bypass the local page cache")
	pf.String("cache-dir", "", "page cache directory")

	viper.BindPFlag("cache.dir", pf.Lookup("cache-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wangyun")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wangyun"))
		}
	}

	viper.SetEnvPrefix("WANGYUN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper(), types.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so that environment variables
// such as WANGYUN_FETCH_MIN_GAP are picked up by Unmarshal.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	v.SetDefault("fetch.base_url", d.Fetch.BaseURL)
	v.SetDefault("fetch.min_gap", d.Fetch.MinGap)
	v.SetDefault("fetch.requests_per_second", d.Fetch.RequestsPerSecond)
	v.SetDefault("fetch.max_retries", d.Fetch.MaxRetries)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.max_age", d.Cache.MaxAge)
	v.SetDefault("output.format", string(d.Output.Format))
	v.SetDefault("output.color", d.Output.Color)
}

// loadConfig overlays viper settings on the defaults, applies the global
// flags of cmd and fills in the derived User-Agent.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	c := types.DefaultConfig()
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("reading configuration: %w", err)
	}

	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		c.Cache.Enabled = false
	}
	if c.Fetch.UserAgent == "" {
		contact, _ := cmd.Flags().GetString("contact")
		c.Fetch.UserAgent = userAgent(loadedSecrets.Get(secrets.ContactEmail, contact))
	}
	return c, nil
}

// loggerFromFlags builds the process logger writing to w.
func loggerFromFlags(cmd *cobra.Command, w io.Writer) (*slog.Logger, error) {
	format, _ := cmd.Flags().GetString("log-format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := slog.LevelInfo
	switch {
	case verbose && quiet:
		return nil, fmt.Errorf("--verbose and --quiet are mutually exclusive")
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unsupported log format %q: use text or json", format)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
