// Package paths resolves on-disk locations for aidp.
//
// The profile directory defaults to <XDG_CONFIG_HOME>/aider-profiles and
// contains arbitrary-named *.yml profile files plus one "aliases" mapping
// file. The package wraps github.com/adrg/xdg for cross-platform XDG Base
// Directory compliance.
//
// Profile and alias names are plain filename stems; [ValidName] rejects
// anything containing a path separator so names cannot escape the profile
// directory.
package paths
