package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aidp/internal/config"
	"github.com/thoreinstein/aidp/internal/editor"
	"github.com/thoreinstein/aidp/internal/profile"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <profile-or-alias>",
	Short: "Open a profile in $EDITOR",
	Long: `Open a profile's configuration file in your preferred editor.

The argument may be an alias or a raw profile name. Uses $EDITOR,
falling back to $VISUAL, then nano, then vi.`,
	Example: `  # Edit the profile behind an alias
  aidp edit c3

  # Use a specific editor
  EDITOR=hx aidp edit claude-3-sonnet

  See Also: aidp show, aidp list`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(_ *cobra.Command, args []string) error {
	dir := config.ProfilesDir()
	profiles := profile.NewStore(dir)

	p, err := resolveProfile(dir, profiles, args[0])
	if err != nil {
		return err
	}

	if err := editor.Open(p.Path); err != nil {
		return errors.Wrapf(err, "editing %s", p.Name)
	}
	return nil
}
