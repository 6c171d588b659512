package main

import (
	"fmt"
	"io"

	"a3mm/internal/domain"
)

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// printModList writes the --list output
func printModList(w io.Writer, mods []domain.Mod) {
	fmt.Fprintf(w, "Found %d mods:\n", len(mods))
	for _, mod := range mods {
		fmt.Fprintf(w, "- %s\n", mod.Name)
	}
}

func stateColor(state domain.DependencyState) string {
	switch state {
	case domain.DependencyMissing:
		return colorRed(state.String())
	case domain.DependencyDisabled:
		return colorYellow(state.String())
	default:
		return colorGreen(state.String())
	}
}
