package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded rounds",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntP("limit", "n", 10, "number of recent rounds to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled in %s", getConfigDir())
	}

	store, err := openHistory(cfg, cliLogger())
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	summary, err := store.Summary(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summary.Rounds == 0 {
		fmt.Fprintln(out, "No rounds recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "Rounds:    %d\n", summary.Rounds)
	fmt.Fprintf(out, "Best WPM:  %.0f\n", summary.BestWPM)
	fmt.Fprintf(out, "Avg WPM:   %.0f\n", summary.AverageWPM)
	fmt.Fprintf(out, "Accuracy:  %.1f%%\n", summary.AvgAccuracy)
	fmt.Fprintf(out, "Time:      %s\n\n", summary.TotalTime.Round(time.Second))

	rounds, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSENTENCES\tTIME\tWPM\tACCURACY\tSOURCE")
	for _, r := range rounds {
		fmt.Fprintf(w, "%s\t%d\t%.1fs\t%.0f\t%.1f%%\t%s\n",
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
			r.Sentences, r.Duration.Seconds(), r.WPM, r.Accuracy, r.Source)
	}
	return w.Flush()
}
