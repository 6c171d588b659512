package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"a3mm/internal/domain"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent launches",
	Long: `Show the most recent game launches, newest first.

Examples:
  a3mm history
  a3mm history --limit 50`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of launches to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyLimit < 1 {
		return fmt.Errorf("--limit must be positive, got %d", historyLimit)
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	launches, err := sess.db.RecentLaunches(historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(launches) == 0 {
		fmt.Fprintln(out, "No launches recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tPRESET\tMODS\tARGS")
	fmt.Fprintln(w, "----\t------\t----\t----")
	for _, l := range launches {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			l.LaunchedAt.Local().Format("2006-01-02 15:04"),
			truncate(l.Preset, 30),
			len(l.ModIDs),
			truncate(strings.Join(l.Args, " "), 50),
		)
		if verbose && len(l.ModIDs) > 0 {
			fmt.Fprintf(w, "\t\t\t%s\n", strings.Join(l.ModIDs, domain.ModArgSeparator))
		}
	}
	return w.Flush()
}
