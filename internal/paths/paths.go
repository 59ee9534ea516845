// Package paths resolves dbug's on-disk locations.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DBFileName is the database file created inside a data directory.
	DBFileName = "payloads.db"

	appDir    = ".dbug"
	legacyDir = ".dbug_desktop"
)

// ExpandHome replaces a leading "~" with the user's home directory.
// Paths without one, or when the home directory is unknown, are returned
// unchanged.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// DataDir returns ~/.dbug, or .dbug in the working directory when the
// home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return appDir
	}
	return filepath.Join(home, appDir)
}

// ConfigDir returns ~/.config/dbug or "" when the home directory is unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dbug")
}

// LegacyDataFile is where the previous desktop app kept its payloads.
func LegacyDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(legacyDir, "data.json")
	}
	return filepath.Join(home, legacyDir, "data.json")
}

// ResolveDBPath turns user input into a database file path.
//
//   - ""                      -> ~/.dbug/payloads.db
//   - "~/somewhere"           -> home-expanded
//   - an existing directory   -> <dir>/payloads.db
//   - anything else           -> used as the file path
func ResolveDBPath(input string) string {
	if strings.TrimSpace(input) == "" {
		return filepath.Join(DataDir(), DBFileName)
	}
	p := filepath.Clean(ExpandHome(input))
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return filepath.Join(p, DBFileName)
	}
	return p
}
