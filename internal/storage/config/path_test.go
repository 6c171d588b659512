package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"a3mm/internal/domain"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		home    string
		want    string
		wantErr error
	}{
		{
			name: "linux",
			goos: "linux",
			home: "/home/u",
			want: filepath.Join("/home/u", ".config", "arma3-mod-manager-console", "config.json"),
		},
		{
			name: "macos",
			goos: "darwin",
			home: "/Users/u",
			want: filepath.Join("/Users/u", ".config", "arma3-mod-manager-console", "config.json"),
		},
		{
			name: "windows",
			goos: "windows",
			home: "/c/Users/u",
			want: filepath.Join("/c/Users/u", "arma3-mod-manager-console-config.json"),
		},
		{
			name:    "unsupported platform",
			goos:    "plan9",
			home:    "/usr/u",
			wantErr: domain.ErrUnsupportedPlatform,
		},
		{
			name:    "empty home",
			goos:    "linux",
			home:    "",
			wantErr: domain.ErrInvalidHomePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Path(tt.goos, tt.home)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Path(%q, %q) error = %v, want %v", tt.goos, tt.home, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Path(%q, %q) unexpected error: %v", tt.goos, tt.home, err)
			}
			if got != tt.want {
				t.Errorf("Path(%q, %q) = %q, want %q", tt.goos, tt.home, got, tt.want)
			}
		})
	}
}

func TestParseConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		setup   func(t *testing.T) string // returns path to use
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid absolute path to existing file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				path := filepath.Join(dir, "config.json")
				if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
					t.Fatalf("failed to create test file: %v", err)
				}
				return path
			},
			wantErr: false,
		},
		{
			name: "path to file that does not exist yet",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "new.json")
			},
			wantErr: false,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
			errMsg:  "config path cannot be empty",
		},
		{
			name:    "relative path",
			path:    "config.json",
			wantErr: true,
			errMsg:  "config path must be absolute",
		},
		{
			name:    "path with parent directory traversal",
			path:    "/etc/../etc/config.json",
			wantErr: true,
			errMsg:  "config path contains invalid traversal",
		},
		{
			name: "path to directory instead of file",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr: true,
			errMsg:  "config path is a directory, not a file",
		},
		{
			name: "path with unsupported extension",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				path := filepath.Join(dir, "config.yaml")
				if err := os.WriteFile(path, []byte("test: value"), 0644); err != nil {
					t.Fatalf("failed to create test file: %v", err)
				}
				return path
			},
			wantErr: true,
			errMsg:  "config file must have .json extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if tt.setup != nil {
				path = tt.setup(t)
			}

			got, err := ParseConfigPath(path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseConfigPath(%q) expected error, got nil", path)
					return
				}
				if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("ParseConfigPath(%q) error = %q, want %q", path, err.Error(), tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseConfigPath(%q) unexpected error: %v", path, err)
				return
			}

			if got != path {
				t.Errorf("ParseConfigPath(%q) = %q, want %q", path, got, path)
			}
		})
	}
}
