// Package backup snapshots the profile directory.
//
// Each snapshot is a timestamped directory under ~/.config/aidp/backups
// containing a flat copy of the profiles and alias file plus a
// manifest.json with SHA256 hashes. Restore verifies every hash before
// touching the profile directory. Prune keeps the newest N snapshots.
package backup
