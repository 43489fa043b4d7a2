package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aidp/pkg/fileutil"
)

// Manager handles snapshot creation, restoration, and pruning for the
// profile directory.
type Manager struct {
	rootDir        string
	retentionCount int
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of snapshots to retain.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        DefaultBackupDir(),
		retentionCount: DefaultRetentionCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup snapshots every regular file in the profile directory srcDir.
// The profile directory is flat (profiles plus the alias file), so no
// recursion is needed. Returns the manifest describing the snapshot.
func (m *Manager) Backup(srcDir string) (*Manifest, error) {
	if srcDir == "" {
		return nil, errors.New("source directory is required")
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, errors.Wrap(err, "reading profile directory")
	}

	backupID := time.Now().Format("20060102T150405")
	backupPath := filepath.Join(m.rootDir, backupID)

	// Two snapshots in the same second would share an ID; suffix until free
	for n := 1; ; n++ {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			break
		}
		backupID = fmt.Sprintf("%s-%d", time.Now().Format("20060102T150405"), n)
		backupPath = filepath.Join(m.rootDir, backupID)
	}

	if err := os.MkdirAll(backupPath, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(backupPath, entry.Name())

		hash, mode, err := copyFile(src, dst)
		if err != nil {
			return nil, errors.Wrapf(err, "backing up %s", entry.Name())
		}

		files = append(files, File{
			Name:       entry.Name(),
			SHA256Hash: hash,
			Mode:       mode,
		})
	}

	if len(files) == 0 {
		// Nothing to snapshot; clean up the empty directory
		os.RemoveAll(backupPath)
		return nil, errors.New("no files to back up")
	}

	manifest := &Manifest{
		Version:    ManifestVersion,
		CreatedAt:  time.Now().UTC(),
		SourceDir:  srcDir,
		Files:      files,
		ToolString: "aidp " + Version,
		ID:         backupID,
	}

	manifestPath := filepath.Join(backupPath, "manifest.json")
	if err := fileutil.AtomicWriteJSON(manifestPath, manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	return manifest, nil
}

// Restore copies the files of a snapshot back into destDir, verifying each
// file's SHA256 hash against the manifest first. Existing files in destDir
// are overwritten; restoring is the one operation that may clobber user
// edits, which is why it verifies integrity up front.
func (m *Manager) Restore(backupID, destDir string) error {
	if backupID == "" {
		return errors.New("backup ID is required")
	}

	manifest, err := m.Get(backupID)
	if err != nil {
		return err
	}

	backupPath := filepath.Join(m.rootDir, backupID)

	for _, bf := range manifest.Files {
		src := filepath.Join(backupPath, bf.Name)

		hash, err := hashFile(src)
		if err != nil {
			return errors.Wrapf(err, "reading backup file %s", bf.Name)
		}
		if hash != bf.SHA256Hash {
			return errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", bf.Name)
		}

		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return errors.Wrap(err, "creating destination directory")
		}

		dst := filepath.Join(destDir, bf.Name)
		if _, _, err := copyFile(src, dst); err != nil {
			return errors.Wrapf(err, "restoring %s", bf.Name)
		}
		if err := os.Chmod(dst, bf.Mode); err != nil {
			return errors.Wrapf(err, "setting permissions for %s", bf.Name)
		}
	}

	return nil
}

// List returns all available snapshots, sorted by date (newest first).
func (m *Manager) List() ([]Manifest, error) {
	entries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(entry.Name())
		if err != nil {
			// Skip invalid backup directories
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return manifests, nil
}

// Prune removes old snapshots beyond the retention count.
func (m *Manager) Prune() error {
	manifests, err := m.List()
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil // Nothing to prune
		}
		return err
	}

	// Sorted newest first; delete everything beyond the retention count
	for i := m.retentionCount; i < len(manifests); i++ {
		backupPath := filepath.Join(m.rootDir, manifests[i].ID)
		if err := os.RemoveAll(backupPath); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}

	return nil
}

// Get returns the manifest for a specific snapshot.
func (m *Manager) Get(backupID string) (*Manifest, error) {
	manifestPath := filepath.Join(m.rootDir, backupID, "manifest.json")

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "%s", backupID)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = backupID

	return &manifest, nil
}

// copyFile copies src to dst and returns the SHA256 hash and mode of the
// copied content.
func copyFile(src, dst string) (string, os.FileMode, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source")
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination")
	}
	defer out.Close()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		return "", 0, errors.Wrap(err, "copying file")
	}

	return hex.EncodeToString(h.Sum(nil)), info.Mode(), nil
}

// hashFile returns the hex-encoded SHA256 hash of a file's contents.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
