package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aidp/internal/alias"
	"github.com/thoreinstein/aidp/internal/config"
	"github.com/thoreinstein/aidp/internal/paths"
	"github.com/thoreinstein/aidp/internal/profile"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles and their aliases",
	Long: `List all profiles in the profile directory together with any
aliases registered for them.`,
	Example: `  # List profiles
  aidp list

  # Output as JSON
  aidp list --json

  See Also:
    aidp alias list  - Aliases only
    aidp show        - Show one profile's contents`,
	RunE: runList,
}

// profileJSON represents a profile in JSON output format.
type profileJSON struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Aliases []string `json:"aliases,omitempty"`
}

func runList(_ *cobra.Command, _ []string) error {
	return runListWithWriter(os.Stdout)
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(w io.Writer) error {
	dir := config.ProfilesDir()

	profiles, err := profile.NewStore(dir).List()
	if err != nil {
		return errors.Wrap(err, "listing profiles")
	}

	aliases, err := alias.NewStore(paths.AliasFile(dir)).Load()
	if err != nil {
		return errors.Wrap(err, "loading aliases")
	}
	byTarget := alias.ByTarget(aliases)

	if listJSON {
		return outputListJSON(w, profiles, byTarget)
	}
	return outputListTabular(w, dir, profiles, byTarget)
}

// outputListJSON outputs profiles in JSON format.
func outputListJSON(w io.Writer, profiles []profile.Profile, byTarget map[string][]string) error {
	out := make([]profileJSON, len(profiles))
	for i, p := range profiles {
		out[i] = profileJSON{
			Name:    p.Name,
			Path:    p.Path,
			Aliases: byTarget[p.Name],
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// outputListTabular outputs profiles in tabular format.
func outputListTabular(w io.Writer, dir string, profiles []profile.Profile, byTarget map[string][]string) error {
	fmt.Fprintf(w, "%sProfiles in %s%s\n", colorCyan+colorBold, dir, colorReset)

	if len(profiles) == 0 {
		fmt.Fprintf(w, "  %s(no profiles, run 'aidp init' to seed examples)%s\n", colorGray, colorReset)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %sNAME%s\t%sALIASES%s\n", colorBold, colorReset, colorBold, colorReset)

	for _, p := range profiles {
		aliasStr := strings.Join(byTarget[p.Name], ", ")
		if aliasStr == "" {
			aliasStr = "-"
		}
		fmt.Fprintf(tw, "  %s%s%s\t%s\n", colorGreen, p.Name, colorReset, aliasStr)
	}
	return tw.Flush()
}
