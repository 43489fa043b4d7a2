package launcher

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	aidperrors "github.com/thoreinstein/aidp/internal/errors"
)

// writeScript creates an executable shell script standing in for aider.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "fake-aider")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_ExitCodeZero(t *testing.T) {
	bin := writeScript(t, "exit 0")

	code, err := New(bin).Run("/tmp/profile.yml", nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if code != 0 {
		t.Errorf("Run() code = %d, want 0", code)
	}
}

func TestRun_PropagatesExitCode(t *testing.T) {
	tests := []int{1, 2, 42, 130}

	for _, want := range tests {
		t.Run(fmt.Sprintf("code_%d", want), func(t *testing.T) {
			bin := writeScript(t, fmt.Sprintf("exit %d", want))

			code, err := New(bin).Run("/tmp/profile.yml", nil)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if code != want {
				t.Errorf("Run() code = %d, want %d", code, want)
			}
		})
	}
}

func TestRun_ArgumentOrder(t *testing.T) {
	// The child echoes its argv; the config flag pair must come first and
	// extra args must follow verbatim, in order.
	bin := writeScript(t, `printf '%s\n' "$@"`)

	var out bytes.Buffer
	l := New(bin)
	l.Stdout = &out

	code, err := l.Run("/cfg/claude-3-sonnet.yml", []string{"main.py", "--no-auto-commits", "utils.py"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if code != 0 {
		t.Fatalf("Run() code = %d", code)
	}

	want := strings.Join([]string{
		"--config",
		"/cfg/claude-3-sonnet.yml",
		"main.py",
		"--no-auto-commits",
		"utils.py",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("child argv =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	l := New("definitely-not-a-real-binary-aidp-test")

	_, err := l.Run("/tmp/profile.yml", nil)
	if !errors.Is(err, aidperrors.ErrAiderNotFound) {
		t.Errorf("Run() error = %v, want ErrAiderNotFound", err)
	}
}

func TestRun_StderrPassthrough(t *testing.T) {
	bin := writeScript(t, `echo "boom" >&2; exit 3`)

	var errOut bytes.Buffer
	l := New(bin)
	l.Stderr = &errOut

	code, err := l.Run("/tmp/profile.yml", nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if code != 3 {
		t.Errorf("Run() code = %d, want 3", code)
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("child stderr not inherited: %q", errOut.String())
	}
}
