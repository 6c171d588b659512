package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"a3mm/internal/logging"
	"a3mm/internal/source/steam"
	"a3mm/internal/tui"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	configPath string
	verbose    bool
	noColor    bool

	listMods bool

	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "a3mm",
	Short: "Arma 3 Mod Manager - terminal mod manager for Arma 3",
	Long: `a3mm finds your Steam Workshop, custom and Creator DLC mods, keeps named
presets of enabled mods, links them into the game directory and launches Arma 3.

Run without arguments for the interactive session. Use subcommands for scripting.`,
	Version:            version,
	SilenceUsage:       true, // Runtime errors should not print usage
	SilenceErrors:      true, // We handle error output in Execute()
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLogging,
	RunE:               runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/arma3-mod-manager-console/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.Flags().BoolVar(&listMods, "list", false, "print the discovered mods and exit")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if !colorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if err := closeLogging(cmd, args); err != nil {
		return err
	}
	closer, err := logging.Setup(verbose)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	logCloser = closer
	return nil
}

func closeLogging(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
// NO_COLOR: if set (any value), color is disabled per https://no-color.org
func colorEnabled() bool {
	if noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

// colorGreen returns s with green ANSI when color is enabled, otherwise s.
func colorGreen(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiGreen + s + ansiReset
}

// colorRed returns s with red ANSI when color is enabled, otherwise s.
func colorRed(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiRed + s + ansiReset
}

// colorYellow returns s with yellow ANSI when color is enabled, otherwise s.
func colorYellow(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiYellow + s + ansiReset
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error.
func Execute() {
	err := rootCmd.Execute()
	if cerr := closeLogging(rootCmd, nil); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if listMods {
		if err := sess.requireValid(); err != nil {
			return err
		}
		printModList(cmd.OutOrStdout(), sess.manager.Mods().AllItems())
		return nil
	}

	home := sess.home
	err = tui.Run(sess.manager, tui.Options{
		Lookup:        sess.lookup(sess.settings.DepsCacheTTL),
		LookupTimeout: sess.settings.HTTPTimeout,
		Keymap:        sess.settings.Keymap,
		Home:          home,
		Detect: func() (steam.Paths, error) {
			return steam.DetectArma3Paths(runtime.GOOS, home)
		},
	})
	if err != nil {
		return fmt.Errorf("running session: %w", err)
	}
	return nil
}
