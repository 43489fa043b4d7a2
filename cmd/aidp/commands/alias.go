package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aidp/internal/alias"
	"github.com/thoreinstein/aidp/internal/config"
	aidperrors "github.com/thoreinstein/aidp/internal/errors"
	"github.com/thoreinstein/aidp/internal/paths"
	"github.com/thoreinstein/aidp/internal/profile"
)

func init() {
	aliasCmd.AddCommand(aliasAddCmd)
	aliasCmd.AddCommand(aliasRemoveCmd)
	aliasCmd.AddCommand(aliasListCmd)
	rootCmd.AddCommand(aliasCmd)
}

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage profile aliases",
	Long: `Manage short aliases for profile names.

Aliases are stored as alias=name lines in the profile directory's
aliases file. Each alias maps to exactly one profile; registering an
existing alias again replaces its target.`,
	Example: `  # Register an alias
  aidp alias add c3 claude-3-sonnet

  # Remove it
  aidp alias remove c3

  # Show all aliases
  aidp alias list`,
	RunE: runAliasList,
}

var aliasAddCmd = &cobra.Command{
	Use:   "add <alias> <profile>",
	Short: "Register or update an alias",
	Long: `Register an alias for a profile name.

The target profile must exist; aliases pointing at nothing are refused
and the alias file is left untouched.`,
	Example: `  # Alias 'c3' to claude-3-sonnet.yml
  aidp alias add c3 claude-3-sonnet

  See Also: aidp alias remove, aidp list`,
	Args: cobra.ExactArgs(2),
	RunE: runAliasAdd,
}

var aliasRemoveCmd = &cobra.Command{
	Use:     "remove <alias>",
	Aliases: []string{"rm"},
	Short:   "Remove an alias",
	Example: `  aidp alias remove c3`,
	Args:    cobra.ExactArgs(1),
	RunE:    runAliasRemove,
}

var aliasListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List registered aliases",
	Example: `  aidp alias list`,
	RunE:    runAliasList,
}

func runAliasAdd(_ *cobra.Command, args []string) error {
	return addAlias(args[0], args[1])
}

// addAlias registers name as an alias for target after validating that the
// target profile exists. Shared with the root --alias shorthand.
func addAlias(name, target string) error {
	dir := config.ProfilesDir()

	if !paths.ValidName(name) {
		return errors.Wrapf(aidperrors.ErrInvalidName, "alias %q", name)
	}

	profiles := profile.NewStore(dir)
	if !profiles.Exists(target) {
		err := errors.Wrapf(aidperrors.ErrProfileNotFound, "%q", target)
		return aidperrors.NewUserError(err, "Run 'aidp list' to see available profiles")
	}

	store := alias.NewStore(paths.AliasFile(dir))
	if err := store.Set(name, target); err != nil {
		return errors.Wrap(err, "saving alias")
	}

	fmt.Printf("Added alias: %s -> %s\n", name, target)
	return nil
}

func runAliasRemove(_ *cobra.Command, args []string) error {
	store := alias.NewStore(paths.AliasFile(config.ProfilesDir()))

	if err := store.Remove(args[0]); err != nil {
		if errors.Is(err, aidperrors.ErrAliasNotFound) {
			return aidperrors.NewUserError(err, "Run 'aidp alias list' to see registered aliases")
		}
		return errors.Wrap(err, "removing alias")
	}

	fmt.Printf("Removed alias: %s\n", args[0])
	return nil
}

func runAliasList(_ *cobra.Command, _ []string) error {
	aliases, err := alias.NewStore(paths.AliasFile(config.ProfilesDir())).Load()
	if err != nil {
		return errors.Wrap(err, "loading aliases")
	}

	if len(aliases) == 0 {
		fmt.Println("No aliases registered")
		return nil
	}

	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t-> %s\n", k, aliases[k])
	}
	return tw.Flush()
}
