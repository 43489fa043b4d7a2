package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aidp/internal/config"
	aidperrors "github.com/thoreinstein/aidp/internal/errors"
	"github.com/thoreinstein/aidp/internal/profile"
	"github.com/thoreinstein/aidp/internal/translate"
	"github.com/thoreinstein/aidp/pkg/fileutil"
)

var showFormat string

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "yaml",
		"output format: yaml, toml, or json")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <profile-or-alias>",
	Short: "Print a profile's contents",
	Long: `Print the contents of a profile's configuration file.

The argument may be an alias or a raw profile name. By default the file
is printed as stored (YAML); --format converts it for display.`,
	Example: `  # Show the profile behind an alias
  aidp show c3

  # Convert to TOML or JSON for inspection
  aidp show c3 --format toml
  aidp show claude-3-sonnet --format json

  See Also: aidp list, aidp edit`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(_ *cobra.Command, args []string) error {
	return runShowWithWriter(os.Stdout, args[0])
}

// runShowWithWriter allows injecting a writer for testing.
func runShowWithWriter(w io.Writer, name string) error {
	dir := config.ProfilesDir()
	profiles := profile.NewStore(dir)

	p, err := resolveProfile(dir, profiles, name)
	if err != nil {
		return err
	}

	data, err := fileutil.ReadFileWithLimit(p.Path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", p.Path)
	}

	switch showFormat {
	case "yaml", "":
		// As stored on disk
	case "toml":
		if data, err = translate.YAMLToTOML(data); err != nil {
			return errors.Wrapf(err, "converting %s", p.Name)
		}
	case "json":
		if data, err = translate.YAMLToJSON(data); err != nil {
			return errors.Wrapf(err, "converting %s", p.Name)
		}
	default:
		return aidperrors.NewUserError(
			errors.Newf("unknown format %q", showFormat),
			"Valid formats: yaml, toml, json")
	}

	_, err = fmt.Fprint(w, string(data))
	return err
}
