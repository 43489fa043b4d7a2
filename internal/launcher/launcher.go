package launcher

import (
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"

	aidperrors "github.com/thoreinstein/aidp/internal/errors"
)

// ConfigFlag is aider's native configuration-file flag.
const ConfigFlag = "--config"

// Launcher spawns the aider process with a resolved profile.
type Launcher struct {
	// Bin is the aider executable name or path.
	Bin string

	// Stdin, Stdout, and Stderr are inherited by the child process.
	// They default to the os streams when nil.
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// New creates a Launcher for the given executable.
func New(bin string) *Launcher {
	return &Launcher{Bin: bin}
}

// Run spawns the aider binary with the profile's config flag followed by
// extraArgs verbatim and in order, waits for it to exit, and returns the
// child's exit code.
//
// SIGINT and SIGTERM received while the child runs are forwarded to it;
// the parent then exits with whatever code the child chose. A missing
// executable returns ErrAiderNotFound before any process is spawned.
func (l *Launcher) Run(configPath string, extraArgs []string) (int, error) {
	bin, err := exec.LookPath(l.Bin)
	if err != nil {
		return 0, errors.Wrapf(aidperrors.ErrAiderNotFound, "%q", l.Bin)
	}

	args := append([]string{ConfigFlag, configPath}, extraArgs...)
	cmd := exec.Command(bin, args...)
	cmd.Stdin = l.stdin()
	cmd.Stdout = l.stdout()
	cmd.Stderr = l.stderr()

	slog.Debug("launching", "bin", bin, "config", configPath, "extra_args", len(extraArgs))

	if err := cmd.Start(); err != nil {
		return 0, errors.Wrap(err, "starting aider")
	}

	// Forward interrupt signals to the child so ctrl-c interrupts aider,
	// not just aidp. The child decides its own exit code.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigc:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	waitErr := cmd.Wait()
	close(done)
	signal.Stop(sigc)

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, errors.Wrap(waitErr, "waiting for aider")
	}

	return 0, nil
}

func (l *Launcher) stdin() io.Reader {
	if l.Stdin != nil {
		return l.Stdin
	}
	return os.Stdin
}

func (l *Launcher) stdout() io.Writer {
	if l.Stdout != nil {
		return l.Stdout
	}
	return os.Stdout
}

func (l *Launcher) stderr() io.Writer {
	if l.Stderr != nil {
		return l.Stderr
	}
	return os.Stderr
}
