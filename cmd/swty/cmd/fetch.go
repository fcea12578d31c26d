package cmd

import (
	"fmt"

	"github.com/f3rmion/swty/internal/source"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch sentences from the configured source",
	Long: `Fetch sentences from the configured source and print them, one per line.

With --raw and an HTTP source, the unparsed answer field is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().Bool("raw", false, "print the raw answer from the endpoint")
}

func runFetch(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := cliLogger()
	src := newSource(cfg, logger)

	ctx := cmd.Context()

	out := cmd.OutOrStdout()

	if raw {
		client, ok := src.(*source.Client)
		if !ok {
			return fmt.Errorf("--raw needs an HTTP source, have %s", src.Describe())
		}
		answer, err := client.FetchRaw(ctx)
		if err != nil {
			return fmt.Errorf("fetching from %s: %w", src.Describe(), err)
		}
		fmt.Fprintln(out, answer)
		return nil
	}

	sentences, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching from %s: %w", src.Describe(), err)
	}

	logger.Debug().Str("source", src.Describe()).Int("sentences", len(sentences)).Msg("fetched")
	if len(sentences) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No sentences found.")
		return nil
	}
	for _, s := range sentences {
		fmt.Fprintln(out, s)
	}

	return nil
}
