package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/swty/internal/text"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [text...]",
	Short: "Normalize text into practice sentences",
	Long: `Split text on commas and newlines and normalize every piece the way
fetched sentences are: lowercase letters and single spaces only.

Reads the arguments, or stdin when none are given.`,
	Example: `  swty clean "Hello, World!"
  cat quotes.txt | swty clean`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	var input string
	if len(args) > 0 {
		input = strings.Join(args, "\n")
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
	}

	out := cmd.OutOrStdout()
	for _, s := range text.ParseCSV(input) {
		fmt.Fprintln(out, s)
	}
	return nil
}
