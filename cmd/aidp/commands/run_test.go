package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	aidperrors "github.com/thoreinstein/aidp/internal/errors"
	"github.com/thoreinstein/aidp/internal/paths"
	"github.com/thoreinstein/aidp/internal/profile"
)

// installFakeAider writes a shell script, configures it as the aider
// binary, and returns a marker file path the script touches when run.
func installFakeAider(t *testing.T, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}

	dir := t.TempDir()
	marker := filepath.Join(dir, "spawned")
	bin := filepath.Join(dir, "fake-aider")
	script := "#!/bin/sh\ntouch " + marker + "\nexit " + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	viper.Set("aider_bin", bin)
	return marker
}

func TestRunRun_Success(t *testing.T) {
	dir := setupProfileDir(t)
	writeProfile(t, dir, "claude-3-sonnet")
	marker := installFakeAider(t, 0)

	if err := runRun(nil, []string{"claude-3-sonnet"}); err != nil {
		t.Fatalf("runRun() error: %v", err)
	}

	if _, err := os.Stat(marker); err != nil {
		t.Error("aider was not spawned")
	}
}

func TestRunRun_ResolvesAlias(t *testing.T) {
	dir := setupProfileDir(t)
	writeProfile(t, dir, "claude-3-sonnet")
	if err := os.WriteFile(paths.AliasFile(dir), []byte("c3=claude-3-sonnet\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	marker := installFakeAider(t, 0)

	if err := runRun(nil, []string{"c3"}); err != nil {
		t.Fatalf("runRun() error: %v", err)
	}

	if _, err := os.Stat(marker); err != nil {
		t.Error("aider was not spawned for aliased profile")
	}
}

func TestRunRun_PropagatesExitCode(t *testing.T) {
	dir := setupProfileDir(t)
	writeProfile(t, dir, "claude-3-sonnet")
	installFakeAider(t, 42)

	err := runRun(nil, []string{"claude-3-sonnet"})
	if err == nil {
		t.Fatal("expected error carrying the child exit code")
	}

	var exitErr *aidperrors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exitErr.Code != 42 {
		t.Errorf("Code = %d, want 42", exitErr.Code)
	}
	if exitErr.Err != nil {
		t.Errorf("child exit should carry no error message, got %v", exitErr.Err)
	}
}

func TestRunRun_UnknownName(t *testing.T) {
	setupProfileDir(t)
	marker := installFakeAider(t, 0)

	err := runRun(nil, []string{"no-such-profile"})
	if !errors.Is(err, aidperrors.ErrProfileNotFound) {
		t.Fatalf("runRun() error = %v, want ErrProfileNotFound", err)
	}

	// The launcher must never start for an unresolvable name
	if _, statErr := os.Stat(marker); statErr == nil {
		t.Error("aider was spawned despite unknown profile")
	}

	var exitErr *aidperrors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("expected *ExitError")
	}
	if exitErr.Code == 0 {
		t.Error("unknown profile must exit non-zero")
	}
}

func TestRunRun_MissingBinary(t *testing.T) {
	dir := setupProfileDir(t)
	writeProfile(t, dir, "claude-3-sonnet")
	viper.Set("aider_bin", "definitely-not-a-real-binary-aidp-test")

	err := runRun(nil, []string{"claude-3-sonnet"})
	if !errors.Is(err, aidperrors.ErrAiderNotFound) {
		t.Errorf("runRun() error = %v, want ErrAiderNotFound", err)
	}
}

func TestResolveProfile_DanglingAlias(t *testing.T) {
	dir := setupProfileDir(t)
	if err := os.WriteFile(paths.AliasFile(dir), []byte("ghost=deleted-profile\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := resolveProfile(dir, profile.NewStore(dir), "ghost")
	if !errors.Is(err, aidperrors.ErrProfileNotFound) {
		t.Errorf("resolveProfile() error = %v, want ErrProfileNotFound", err)
	}
}
