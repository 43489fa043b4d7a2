package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aidp/internal/config"
	"github.com/thoreinstein/aidp/internal/profile"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the profile directory with example profiles",
	Long: `Create the profile directory and populate it with bundled example
profiles and a default alias file.

Existing files are never overwritten, so init is safe to run again after
you have edited the seeded profiles. Already-populated directories are
left exactly as they are.`,
	Example: `  # Create ~/.config/aider-profiles with examples
  aidp init

  See Also: aidp list, aidp doctor`,
	RunE: runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	store := profile.NewStore(config.ProfilesDir())

	seeded, err := store.Init()
	if err != nil {
		return errors.Wrap(err, "initializing profile directory")
	}

	if len(seeded) == 0 {
		fmt.Printf("Profile directory %s already populated, nothing to do\n", store.Dir())
		return nil
	}

	fmt.Printf("Created example profiles in %s:\n", store.Dir())
	for _, name := range seeded {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
