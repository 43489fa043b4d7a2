package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
)

func seedProfileDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"claude-3-sonnet.yml":     "model: claude-3-sonnet\n",
		"gemini-experimental.yml": "model: gemini/gemini-exp-1206\n",
		"aliases":                 "c3=claude-3-sonnet\ng=gemini-experimental\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBackup(t *testing.T) {
	srcDir := seedProfileDir(t)
	m := NewManager(WithBackupDir(t.TempDir()))

	manifest, err := m.Backup(srcDir)
	if err != nil {
		t.Fatalf("Backup() error: %v", err)
	}

	if manifest.ID == "" {
		t.Error("manifest has no ID")
	}
	if len(manifest.Files) != 3 {
		t.Errorf("backed up %d files, want 3", len(manifest.Files))
	}
	for _, f := range manifest.Files {
		if f.SHA256Hash == "" {
			t.Errorf("file %s has no hash", f.Name)
		}
	}
}

func TestBackup_EmptyDir(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))

	_, err := m.Backup(t.TempDir())
	if err == nil {
		t.Error("expected error for empty source directory")
	}
}

func TestBackup_Collision(t *testing.T) {
	srcDir := seedProfileDir(t)
	m := NewManager(WithBackupDir(t.TempDir()))

	// Two snapshots in the same second must get distinct IDs
	m1, err := m.Backup(srcDir)
	if err != nil {
		t.Fatalf("first Backup() error: %v", err)
	}
	m2, err := m.Backup(srcDir)
	if err != nil {
		t.Fatalf("second Backup() error: %v", err)
	}

	if m1.ID == m2.ID {
		t.Errorf("backup IDs collided: %s", m1.ID)
	}
}

func TestRestore(t *testing.T) {
	srcDir := seedProfileDir(t)
	m := NewManager(WithBackupDir(t.TempDir()))

	manifest, err := m.Backup(srcDir)
	if err != nil {
		t.Fatal(err)
	}

	// Clobber a profile, then restore
	target := filepath.Join(srcDir, "claude-3-sonnet.yml")
	if err := os.WriteFile(target, []byte("model: broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := m.Restore(manifest.ID, srcDir); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "model: claude-3-sonnet\n" {
		t.Errorf("restored content = %q", data)
	}
}

func TestRestore_CorruptedBackup(t *testing.T) {
	srcDir := seedProfileDir(t)
	backupDir := t.TempDir()
	m := NewManager(WithBackupDir(backupDir))

	manifest, err := m.Backup(srcDir)
	if err != nil {
		t.Fatal(err)
	}

	// Tamper with a backed-up file; restore must refuse
	tampered := filepath.Join(backupDir, manifest.ID, "aliases")
	if err := os.WriteFile(tampered, []byte("evil=payload\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err = m.Restore(manifest.ID, t.TempDir())
	if !errors.Is(err, ErrBackupCorrupted) {
		t.Errorf("Restore() error = %v, want ErrBackupCorrupted", err)
	}
}

func TestRestore_UnknownID(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))

	err := m.Restore("20000101T000000", t.TempDir())
	if !errors.Is(err, ErrNoBackupsFound) {
		t.Errorf("Restore() error = %v, want ErrNoBackupsFound", err)
	}
}

func TestList_Empty(t *testing.T) {
	m := NewManager(WithBackupDir(filepath.Join(t.TempDir(), "none")))

	_, err := m.List()
	if !errors.Is(err, ErrNoBackupsFound) {
		t.Errorf("List() error = %v, want ErrNoBackupsFound", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	srcDir := seedProfileDir(t)
	m := NewManager(WithBackupDir(t.TempDir()))

	for i := 0; i < 3; i++ {
		if _, err := m.Backup(srcDir); err != nil {
			t.Fatal(err)
		}
	}

	manifests, err := m.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(manifests) != 3 {
		t.Fatalf("List() returned %d manifests, want 3", len(manifests))
	}
	for i := 1; i < len(manifests); i++ {
		if manifests[i].CreatedAt.After(manifests[i-1].CreatedAt) {
			t.Error("List() not sorted newest first")
		}
	}
}

func TestPrune(t *testing.T) {
	srcDir := seedProfileDir(t)
	backupDir := t.TempDir()
	m := NewManager(WithBackupDir(backupDir), WithRetentionCount(2))

	for i := 0; i < 4; i++ {
		if _, err := m.Backup(srcDir); err != nil {
			t.Fatal(err)
		}
	}

	if err := m.Prune(); err != nil {
		t.Fatalf("Prune() error: %v", err)
	}

	manifests, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(manifests) != 2 {
		t.Errorf("after Prune() %d backups remain, want 2", len(manifests))
	}
}

func TestPrune_NothingToDo(t *testing.T) {
	m := NewManager(WithBackupDir(filepath.Join(t.TempDir(), "none")))

	if err := m.Prune(); err != nil {
		t.Errorf("Prune() with no backups should not error: %v", err)
	}
}
