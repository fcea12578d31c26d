package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/swty/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize swty configuration",
	Long: `Initialize swty configuration in your config directory.

This creates config.yaml with the default settings:
  - source   (sentence endpoint, local file, request timeout)
  - game     (shuffle, sentences per round, advance delay)
  - history  (whether rounds are recorded and where)

Edit the file to point swty at your own sentences.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// Validate what was written
	if _, err := config.Load(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing swty configuration in %s\n\n", configDir)
	fmt.Fprintf(out, "  Created %s\n\n", config.FileName)
	fmt.Fprintln(out, "Configuration initialized!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Set source.url or source.file in config.yaml")
	fmt.Fprintln(out, "  2. Run 'swty fetch' to check the sentences")
	fmt.Fprintln(out, "  3. Run 'swty' to start typing")

	return nil
}

const configTemplate = `# swty configuration

source:
  # Endpoint answering GET with {"answer": "sentence one, sentence two"}
  url: ""
  # Local file with comma or newline separated sentences.
  # Used when url is empty. With neither set, built-in sentences are used.
  file: ""
  timeout: 10s

game:
  shuffle: true
  # Sentences per round, 0 for all
  limit: 0
  # Pause after a completed sentence
  advance_delay: 150ms

history:
  enabled: true
  # Relative paths resolve against the config directory
  path: history.db
`
