package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"a3mm/internal/domain"

	"github.com/spf13/cobra"
)

var depsRefresh bool

var depsCmd = &cobra.Command{
	Use:   "deps <workshop-id>",
	Short: "Show the dependencies of a Workshop mod",
	Long: `Look up the required items of a Steam Workshop mod and show whether each
one is missing, installed but disabled, or enabled in the active preset.

Results are cached in the local database for A3MM_DEPS_CACHE_TTL.

Examples:
  a3mm deps 463939057
  a3mm deps 463939057 --refresh`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().BoolVar(&depsRefresh, "refresh", false, "skip the cache and query the Workshop")

	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	id := args[0]

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.requireValid(); err != nil {
		return err
	}

	mod, ok := sess.manager.ModByID(id)
	if !ok {
		// Uninstalled items can still be looked up
		mod = domain.NewMod(id, id, false, false)
	}

	ttl := sess.settings.DepsCacheTTL
	if depsRefresh {
		ttl = 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), sess.settings.HTTPTimeout)
	defer cancel()

	statuses, err := sess.manager.CheckDependencies(ctx, sess.lookup(ttl), mod)
	if err != nil {
		return fmt.Errorf("looking up dependencies: %w", err)
	}

	out := cmd.OutOrStdout()
	if verbose {
		fmt.Fprintf(out, "Dependencies of %s (%s)\n\n", mod.Name, mod.Identifier)
	}

	if len(statuses) == 0 {
		fmt.Fprintln(out, "No dependencies.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS")
	fmt.Fprintln(w, "--\t----\t------")
	for _, s := range statuses {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, truncate(s.Name, 40), stateColor(s.State))
	}
	return w.Flush()
}
