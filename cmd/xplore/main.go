// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the xplore CLI: IEEE Xplore search,
// open-access retrieval, saved paper files and the local paper library.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/xplore/internal/logger"
	"github.com/pdiddy/xplore/internal/secrets"
	"github.com/pdiddy/xplore/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from the secrets directory at startup.
	loadedSecrets secrets.Secrets

	log = zap.NewNop()
)

// rootCmd is the base command for the xplore CLI.
var rootCmd = &cobra.Command{
	Use:   "xplore",
	Short: "Search IEEE Xplore and keep a local library of papers",
	Long: `xplore queries the IEEE Xplore metadata search and open-access full-text
APIs. Results can be printed, saved as JSON or YAML paper files, exported
as a CSL bibliography, or added to a local SQLite library.

The API key is read from --api-key, XPLORE_API_KEY, the config file
(xplore.api_key), or .secrets/ieee-api-key, in that order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		log = l

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			log.Debug("loaded secrets", zap.Strings("names", s.Names()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./xplore.yaml or ~/.config/xplore/xplore.yaml)")
	rootCmd.PersistentFlags().String("api-key", "", "IEEE Xplore API key")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of secret files")

	viper.BindPFlag("xplore.api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("xplore.timeout", 30*time.Second)
	viper.SetDefault("xplore.user_agent", "xplore/"+version)
	viper.SetDefault("xplore.search_endpoint", types.DefaultSearchEndpoint)
	viper.SetDefault("xplore.open_access_endpoint", types.DefaultOpenAccessEndpoint)
	viper.SetDefault("xplore.page_delay", time.Second)
	viper.SetDefault("library.dir", "library")
	viper.SetDefault("library.max_results", 20)
	viper.SetDefault("log_level", "warn")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("xplore")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "xplore"))
		}
	}

	viper.SetEnvPrefix("XPLORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("xplore.api_key", "XPLORE_API_KEY")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, environment and file settings and
// fills the API key from the secrets directory when none was given.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.Xplore.APIKey = loadedSecrets.Default(secrets.IEEEAPIKey, cfg.Xplore.APIKey)
	cfg.Xplore.ApplyDefaults()
	return cfg, nil
}

// commandContext returns a context cancelled on interrupt.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
