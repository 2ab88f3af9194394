// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nllegalcit CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mastaal/nllegalcit/internal/logging"
	"github.com/mastaal/nllegalcit/pkg/engine"
	"github.com/mastaal/nllegalcit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the configuration read by initConfig and decoded before
	// each command runs.
	cfg types.Config

	logger = zap.NewNop()
)

// rootCmd is the base command for the nllegalcit CLI.
var rootCmd = &cobra.Command{
	Use:   "nllegalcit",
	Short: "Extract Dutch legal citations from text",
	Long: `nllegalcit finds citations of Dutch parliamentary documents
(Kamerstukken) and case law (ECLI) in running text and returns them as
normalized records.

Text comes from files, stdin, PDFs, or URLs. Extracted citations can be
printed, turned into test cases, compared against LiDO, or kept in a local
SQLite store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("decoding configuration: %w", err)
		}
		mode, err := types.ParseExtractionMode(string(cfg.Engine.Mode))
		if err != nil {
			return err
		}
		cfg.Engine.Mode = mode

		log, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = log
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./nllegalcit.yaml or ~/.config/nllegalcit/config.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, or error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("mode", "all", "citation families to report: all or kamerstuk")
	pf.String("grammar", "", "grammar file replacing the built-in grammar")
	pf.String("backend", "pdftotext", "PDF backend: pdftotext or markitdown")

	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))
	viper.BindPFlag("engine.mode", pf.Lookup("mode"))
	viper.BindPFlag("engine.grammar_file", pf.Lookup("grammar"))
	viper.BindPFlag("conversion.backend", pf.Lookup("backend"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("engine.mode", string(types.ModeAll))
	viper.SetDefault("http.timeout", 30*time.Second)
	viper.SetDefault("http.user_agent", "nllegalcit/"+version)
	viper.SetDefault("http.max_retries", 5)
	viper.SetDefault("http.requests_per_second", 2.0)
	viper.SetDefault("http.burst", 1)
	viper.SetDefault("http.cache_ttl", 15*time.Minute)
	viper.SetDefault("http.respect_robots", true)
	viper.SetDefault("http.rechtspraak_url", "https://uitspraken.rechtspraak.nl/api/document/")
	viper.SetDefault("http.lido_url", "https://linkeddata.overheid.nl/terms/jurisprudentie/id/")
	viper.SetDefault("conversion.backend", string(types.BackendPdftotext))
	viper.SetDefault("store.dir", ".nllegalcit")
	viper.SetDefault("store.max_results", 50)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nllegalcit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nllegalcit"))
		}
	}

	viper.SetEnvPrefix("NLLEGALCIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

// newEngine builds the citation engine from the loaded configuration.
func newEngine() (*engine.Engine, error) {
	opts := []engine.Option{engine.WithLogger(logger)}
	if cfg.Engine.GrammarFile != "" {
		opts = append(opts, engine.WithGrammarFile(cfg.Engine.GrammarFile))
	}
	return engine.New(opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
