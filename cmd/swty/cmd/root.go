// Package cmd contains all CLI commands for swty.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/swty/internal/config"
	"github.com/f3rmion/swty/internal/history"
	"github.com/f3rmion/swty/internal/source"
	"github.com/f3rmion/swty/internal/tui"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const logFileName = "swty.log"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swty",
	Short: "Typing practice in the terminal",
	Long: `swty fetches a list of sentences and has you type them one by one,
highlighting every character as correct or incorrect while a timer runs.

Sentences come from an HTTP endpoint returning {"answer": "..."}, a local
file, or the built-in list. Settings live in config.yaml inside the config
directory and can be overridden with flags or SWTY_* environment variables.

Running 'swty' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/swty)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("url", "", "sentence endpoint returning {\"answer\": \"...\"}")
	rootCmd.PersistentFlags().String("file", "", "local sentence file (comma or newline separated)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
}

// initConfig reads in .env and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("SWTY")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig reads config.yaml and applies flag and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadDir(getConfigDir())
	if err != nil {
		return nil, err
	}

	if url := viper.GetString("url"); url != "" {
		cfg.Source.URL = url
		cfg.Source.File = ""
	}
	if file := viper.GetString("file"); file != "" {
		cfg.Source.File = file
		cfg.Source.URL = ""
	}

	return cfg, nil
}

// newLogger builds a logger writing to w. Console output is used for
// terminals, JSON lines otherwise.
func newLogger(w io.Writer, console bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(viper.GetString("log_level")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// cliLogger logs to stderr for the non-interactive commands.
func cliLogger() zerolog.Logger {
	return newLogger(os.Stderr, true)
}

func newSource(cfg *config.Config, logger zerolog.Logger) source.Source {
	return source.New(source.Options{
		URL:     cfg.Source.URL,
		File:    cfg.Source.File,
		Timeout: cfg.Source.Timeout,
		Logger:  logger,
	})
}

// openHistory opens the round database, or returns nil when history is off.
func openHistory(cfg *config.Config, logger zerolog.Logger) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	return history.Open(cfg.HistoryPath(getConfigDir()), logger)
}

// runTUI launches the TUI application.
func runTUI(cmd *cobra.Command, args []string) error {
	configDir := getConfigDir()
	if err := config.EnsureDir(configDir); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(filepath.Join(configDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, false)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg, logger)
	if err != nil {
		// History is optional; play without it
		logger.Warn().Err(err).Msg("history unavailable")
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	src := newSource(cfg, logger)
	logger.Info().Str("source", src.Describe()).Str("config_dir", configDir).Msg("starting")

	return tui.Run(tui.Options{
		Source:    src,
		Config:    cfg,
		ConfigDir: configDir,
		Store:     store,
		Logger:    logger,
	})
}
