package backup

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aidp/internal/config"
	"github.com/thoreinstein/aidp/internal/paths"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ManifestVersion is the manifest format version for forward compatibility.
const ManifestVersion = 1

// DefaultRetentionCount is the default number of snapshots to retain.
const DefaultRetentionCount = config.DefaultBackupRetention

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no snapshots exist.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates snapshot file integrity verification failed.
	// This occurs when a file's SHA256 hash doesn't match the manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest contains metadata about a profile directory snapshot.
// It is stored as manifest.json in each snapshot directory.
type Manifest struct {
	// Version is the manifest format version for forward compatibility.
	Version int `json:"version"`

	// CreatedAt is when the snapshot was created.
	CreatedAt time.Time `json:"created_at"`

	// SourceDir is the profile directory that was snapshotted.
	SourceDir string `json:"source_dir"`

	// Files contains metadata for each snapshotted file.
	Files []File `json:"files"`

	// ToolString records the aidp version that created this snapshot.
	ToolString string `json:"tool"`

	// ID is the snapshot identifier (timestamp format: 20260123T100712).
	// Populated when loading from disk but not stored in JSON.
	ID string `json:"-"`
}

// File contains metadata for a single snapshotted file.
type File struct {
	// Name is the filename inside both the source and snapshot directories.
	Name string `json:"name"`

	// SHA256Hash is the hex-encoded SHA256 hash of the file contents.
	SHA256Hash string `json:"sha256_hash"`

	// Mode is the file's permission bits.
	Mode fs.FileMode `json:"mode"`
}

// DefaultBackupDir returns the root snapshot directory:
// <ConfigHome>/aidp/backups
func DefaultBackupDir() string {
	return filepath.Join(paths.ConfigHome(), config.AppName, "backups")
}
