// Package config provides configuration management for the aidp CLI.
//
// This package handles aidp's own settings, not the aider profiles it
// manages. Profiles are opaque YAML blobs owned by aider.
//
// # Configuration File
//
// The default configuration file location is ~/.config/aidp/config.yaml:
//
//	version: 1
//	aider_bin: aider          # executable name or absolute path
//	profiles_dir: ~/.config/aider-profiles
//	backup:
//	  retention: 5
//
// Every key can also be set through the environment with the AIDP prefix,
// e.g. AIDP_AIDER_BIN or AIDP_PROFILES_DIR.
package config
