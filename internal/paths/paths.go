package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// ProfileDirName is the directory under ConfigHome holding aider profiles.
// The layout matches what aider users already have on disk:
// ~/.config/aider-profiles/*.yml plus one aliases file.
const ProfileDirName = "aider-profiles"

// AliasFileName is the alias mapping file inside the profile directory.
const AliasFileName = "aliases"

// ProfileExt is the file extension for profile files.
const ProfileExt = ".yml"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: It returns an empty string on error. Use ResolveHome for proper
// error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// ProfileDir returns the default profile directory:
// <ConfigHome>/aider-profiles
func ProfileDir() string {
	return filepath.Join(ConfigHome(), ProfileDirName)
}

// AliasFile returns the alias mapping file path inside dir.
func AliasFile(dir string) string {
	return filepath.Join(dir, AliasFileName)
}

// ProfilePath returns the path of the profile file for name inside dir.
// The name must not contain path separators; use ValidName to check first.
func ProfilePath(dir, name string) string {
	return filepath.Join(dir, name+ProfileExt)
}

// ValidName reports whether name is usable as a profile or alias name.
// Names must be non-empty and free of path separators so they cannot
// escape the profile directory.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
