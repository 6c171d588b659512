package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	launchPreset string
	launchDryRun bool
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch Arma 3 with the active preset",
	Long: `Link the mods of the active preset into the game directory and start Arma 3.

Examples:
  a3mm launch
  a3mm launch --preset Liberation
  a3mm launch --dry-run`,
	Args: cobra.NoArgs,
	RunE: runLaunch,
}

func init() {
	launchCmd.Flags().StringVarP(&launchPreset, "preset", "p", "", "switch to this preset first")
	launchCmd.Flags().BoolVar(&launchDryRun, "dry-run", false, "link mods and print the command without starting the game")

	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.requireValid(); err != nil {
		return err
	}

	if launchPreset != "" {
		if err := sess.manager.SwitchPreset(launchPreset); err != nil {
			return fmt.Errorf("switching preset: %w", err)
		}
	}

	plan, err := sess.manager.PrepareLaunch()
	if err != nil {
		return fmt.Errorf("preparing launch: %w", err)
	}

	out := cmd.OutOrStdout()
	if launchDryRun || verbose {
		fmt.Fprintf(out, "Directory: %s\n", plan.Dir)
		fmt.Fprintf(out, "Command:   %s %s\n", plan.Executable, strings.Join(plan.Args, " "))
		if len(plan.Env) > 0 {
			fmt.Fprintf(out, "Env:       %s\n", strings.Join(plan.Env, " "))
		}
	}
	if launchDryRun {
		fmt.Fprintf(out, "%s Linked %d mods (dry run, game not started)\n", colorYellow("!"), len(plan.Sources))
		return nil
	}

	process := plan.Command(context.Background())
	if err := process.Start(); err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	sess.manager.RecordLaunch(plan)
	if err := process.Process.Release(); err != nil {
		return fmt.Errorf("detaching game: %w", err)
	}

	fmt.Fprintf(out, "%s Launched Arma 3 with preset %s (%d mods)\n", colorGreen("✓"), sess.cfg.ActivePreset, len(plan.ModIDs))
	return nil
}
