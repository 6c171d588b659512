package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the dependency cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all cached dependency lookups",
	Long: `Remove every cached Workshop dependency lookup from the local database.

Examples:
  a3mm cache clear`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.db.ClearDependencies(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared dependency cache\n", colorGreen("✓"))
	return nil
}
