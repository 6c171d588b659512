package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"a3mm/internal/domain"
)

// SymlinkLinker deploys mods using symbolic links
type SymlinkLinker struct{}

// NewSymlink creates a new symlink linker
func NewSymlink() *SymlinkLinker {
	return &SymlinkLinker{}
}

// Deploy creates a symlink from src to dst
func (l *SymlinkLinker) Deploy(src, dst string) error {
	// Ensure destination directory exists
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating destination dir: %w", err)
	}

	// Replace a stale link, but never clobber real files
	if deployed, err := l.IsDeployed(dst); err != nil {
		return err
	} else if deployed {
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf("removing existing link: %w", err)
		}
	}

	if err := os.Symlink(src, dst); err != nil {
		return fmt.Errorf("%w: %s -> %s: %w", domain.ErrLinkFailed, dst, src, err)
	}

	return nil
}

// Undeploy removes the symlink at dst
func (l *SymlinkLinker) Undeploy(dst string) error {
	info, err := os.Lstat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Already removed
		}
		return fmt.Errorf("checking file: %w", err)
	}

	// Only remove if it's a symlink
	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("not a symlink: %s", dst)
	}

	if err := os.Remove(dst); err != nil {
		return fmt.Errorf("removing symlink: %w", err)
	}

	return nil
}

// IsDeployed checks if dst is a symlink
func (l *SymlinkLinker) IsDeployed(dst string) (bool, error) {
	info, err := os.Lstat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// Sweep removes every symlink directly inside root and returns how many were
// removed. Regular files and directories are left alone.
func (l *SymlinkLinker) Sweep(root string) (int, error) {
	names, err := l.Linked(root)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, name := range names {
		if err := os.Remove(filepath.Join(root, name)); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("removing symlink %s: %w", name, err)
		}
		removed++
	}
	return removed, nil
}

// Sync makes root contain exactly one symlink per source, named after the
// source's base name. Running it twice with the same sources is a no-op.
func (l *SymlinkLinker) Sync(root string, sources []string) error {
	if _, err := l.Sweep(root); err != nil {
		return fmt.Errorf("sweeping %s: %w", root, err)
	}

	for _, src := range sources {
		if err := l.Deploy(src, filepath.Join(root, filepath.Base(src))); err != nil {
			return err
		}
	}
	return nil
}

// Linked returns the sorted names of symlinks directly inside root
func (l *SymlinkLinker) Linked(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink != 0 {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
