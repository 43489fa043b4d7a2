package commands

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aidp/internal/alias"
	"github.com/thoreinstein/aidp/internal/config"
	aidperrors "github.com/thoreinstein/aidp/internal/errors"
	"github.com/thoreinstein/aidp/internal/launcher"
	"github.com/thoreinstein/aidp/internal/paths"
	"github.com/thoreinstein/aidp/internal/profile"
	"github.com/thoreinstein/aidp/pkg/fileutil"
)

func init() {
	// Stop flag parsing at the first positional so everything after the
	// profile name reaches aider untouched, flags included.
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [profile-or-alias] [extra args...]",
	Short: "Launch aider with a profile",
	Long: `Resolve an alias or profile name and launch aider with the matching
configuration file (via aider's --config flag).

Everything after the profile name is passed to aider verbatim and in
order. aidp waits for aider to exit and exits with the same code.

With no argument, a fuzzy finder opens to pick a profile interactively.`,
	Example: `  # Launch by alias
  aidp run c3

  # Extra arguments go straight to aider
  aidp run c3 main.py utils.py

  # The 'run' keyword is optional for bare names
  aidp c3 main.py

  # Pick a profile interactively
  aidp run

  See Also: aidp list, aidp alias add`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func runRun(_ *cobra.Command, args []string) error {
	dir := config.ProfilesDir()
	profiles := profile.NewStore(dir)

	var name string
	var extraArgs []string
	if len(args) == 0 {
		picked, err := pickProfile(profiles)
		if err != nil {
			return err
		}
		if picked == "" {
			return nil // aborted, nothing to do
		}
		name = picked
	} else {
		name = args[0]
		extraArgs = args[1:]
	}

	p, err := resolveProfile(dir, profiles, name)
	if err != nil {
		return err
	}

	code, err := launcher.New(config.AiderBin()).Run(p.Path, extraArgs)
	if err != nil {
		if errors.Is(err, aidperrors.ErrAiderNotFound) {
			return aidperrors.NewUserError(err,
				"Install aider (https://aider.chat) or set aider_bin in ~/.config/aidp/config.yaml")
		}
		return errors.Wrap(err, "launching aider")
	}

	if code != 0 {
		// Hand aider's exit code through unchanged.
		return aidperrors.NewChildExitError(code)
	}
	return nil
}

// resolveProfile maps an alias or raw profile name to a profile.
func resolveProfile(dir string, profiles *profile.Store, name string) (*profile.Profile, error) {
	target, wasAlias, err := alias.NewStore(paths.AliasFile(dir)).Resolve(name)
	if err != nil {
		return nil, errors.Wrap(err, "loading aliases")
	}
	if wasAlias {
		slog.Debug("resolved alias", "alias", name, "profile", target)
	}

	p, err := profiles.Get(target)
	if err != nil {
		err = errors.Wrapf(aidperrors.ErrProfileNotFound, "no profile for %q (looked for %s)",
			name, profiles.Path(target))
		return nil, aidperrors.NewUserError(err, "Run 'aidp list' to see available profiles")
	}
	return p, nil
}

// pickProfile opens a fuzzy finder over the available profiles.
// Returns an empty name if the user aborts.
func pickProfile(profiles *profile.Store) (string, error) {
	available, err := profiles.List()
	if err != nil {
		return "", errors.Wrap(err, "listing profiles")
	}
	if len(available) == 0 {
		return "", aidperrors.NewUserError(
			errors.New("no profiles available"),
			"Run 'aidp init' to seed example profiles")
	}

	idx, err := fuzzyfinder.Find(
		available,
		func(i int) string {
			return available[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			data, err := fileutil.ReadFileWithLimit(available[i].Path)
			if err != nil {
				return fmt.Sprintf("(unreadable: %v)", err)
			}
			return string(data)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "selecting profile")
	}

	return available[idx].Name, nil
}
