package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"a3mm/internal/storage/config"

	"github.com/spf13/cobra"
)

var (
	presetEmpty      bool
	presetOutput     string
	presetImportName string
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage mod presets",
	Long: `Manage named presets of enabled mods.

Exactly one preset is active. The interactive session and 'a3mm launch' use it.`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all presets",
	Long: `List all presets with their mod counts. The active preset is marked with *.

Examples:
  a3mm preset list`,
	Args: cobra.NoArgs,
	RunE: runPresetList,
}

var presetCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new preset",
	Long: `Create a new preset holding the mods of the active preset.

Examples:
  a3mm preset create Liberation
  a3mm preset create Vanilla --empty`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetCreate,
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a preset",
	Long: `Delete a preset. The last remaining preset cannot be deleted.

Examples:
  a3mm preset delete Liberation`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetDelete,
}

var presetRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a preset",
	Long: `Rename a preset. A preset already using the new name is replaced.

Examples:
  a3mm preset rename Liberation "Liberation RX"`,
	Args: cobra.ExactArgs(2),
	RunE: runPresetRename,
}

var presetSwitchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch the active preset",
	Long: `Make a preset the active one.

Examples:
  a3mm preset switch Liberation`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetSwitch,
}

var presetExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a preset",
	Long: `Export a preset to a portable YAML file.

Examples:
  a3mm preset export Liberation > liberation.yaml
  a3mm preset export Liberation -o liberation.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetExport,
}

var presetImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a preset",
	Long: `Import a preset from a YAML file. A preset with the same name is replaced.

Examples:
  a3mm preset import liberation.yaml
  a3mm preset import liberation.yaml --name "Liberation copy"`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetImport,
}

func init() {
	presetCreateCmd.Flags().BoolVar(&presetEmpty, "empty", false, "create the preset without mods")
	presetExportCmd.Flags().StringVarP(&presetOutput, "output", "o", "", "write to file instead of stdout")
	presetImportCmd.Flags().StringVar(&presetImportName, "name", "", "import under a different name")

	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetCreateCmd)
	presetCmd.AddCommand(presetDeleteCmd)
	presetCmd.AddCommand(presetRenameCmd)
	presetCmd.AddCommand(presetSwitchCmd)
	presetCmd.AddCommand(presetExportCmd)
	presetCmd.AddCommand(presetImportCmd)

	rootCmd.AddCommand(presetCmd)
}

func runPresetList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODS\tACTIVE")
	fmt.Fprintln(w, "----\t----\t------")

	for _, name := range sess.cfg.PresetNames() {
		active := ""
		if name == sess.cfg.ActivePreset {
			active = "*"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", truncate(name, 40), sess.cfg.PresetModCount(name), active)
	}
	return w.Flush()
}

func runPresetCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if sess.cfg.HasPreset(name) {
		return fmt.Errorf("preset %q already exists", name)
	}

	mods := []string{}
	if !presetEmpty {
		mods = sess.cfg.EnabledMods()
	}
	if err := sess.manager.ImportPreset(name, mods); err != nil {
		return fmt.Errorf("creating preset: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Created preset: %s (%d mods)\n", colorGreen("✓"), name, len(mods))
	return nil
}

func runPresetDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.manager.DeletePreset(name); err != nil {
		return fmt.Errorf("deleting preset: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted preset: %s\n", colorGreen("✓"), name)
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Active preset: %s\n", sess.cfg.ActivePreset)
	}
	return nil
}

func runPresetRename(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.manager.RenamePreset(oldName, newName); err != nil {
		return fmt.Errorf("renaming preset: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Renamed preset: %s -> %s\n", colorGreen("✓"), oldName, newName)
	return nil
}

func runPresetSwitch(cmd *cobra.Command, args []string) error {
	name := args[0]

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.manager.SwitchPreset(name); err != nil {
		return fmt.Errorf("switching preset: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Switched to preset: %s\n", colorGreen("✓"), name)
	return nil
}

func runPresetExport(cmd *cobra.Command, args []string) error {
	name := args[0]

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	data, err := sess.cfg.ExportPreset(name)
	if err != nil {
		return fmt.Errorf("exporting preset: %w", err)
	}

	if presetOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(presetOutput, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", presetOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Exported preset %s to %s\n", colorGreen("✓"), name, presetOutput)
	return nil
}

func runPresetImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	preset, err := config.ImportPreset(data)
	if err != nil {
		return fmt.Errorf("importing preset: %w", err)
	}
	if presetImportName != "" {
		preset.Name = presetImportName
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	replaced := sess.cfg.HasPreset(preset.Name)
	if err := sess.manager.ImportPreset(preset.Name, preset.Mods); err != nil {
		return fmt.Errorf("importing preset: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Imported preset: %s (%d mods)\n", colorGreen("✓"), preset.Name, len(preset.Mods))
	if replaced {
		fmt.Fprintln(cmd.OutOrStdout(), colorYellow("Replaced the existing preset with the same name."))
	}
	return nil
}
