// Package profile manages the directory of aider configuration files.
//
// A profile is a <name>.yml file whose content aidp treats as an opaque
// blob; only aider itself interprets it. The package scans the profile
// directory, resolves names to file paths, and seeds the directory with
// embedded example profiles on first use.
package profile
