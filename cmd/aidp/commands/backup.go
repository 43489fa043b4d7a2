package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aidp/internal/backup"
	"github.com/thoreinstein/aidp/internal/config"
	aidperrors "github.com/thoreinstein/aidp/internal/errors"
)

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupPruneCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot and restore the profile directory",
	Long: `Manage snapshots of the profile directory.

Snapshots capture every profile and the alias file, with SHA256 hashes
recorded in a manifest so restores can verify integrity first.`,
	Example: `  # Take a snapshot before experimenting
  aidp backup create

  # See what's available
  aidp backup list

  # Roll back
  aidp backup restore 20260830T120000

See Also: aidp init, aidp doctor`,
	RunE: runBackupList,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the profile directory",
	Example: `  aidp backup create

  See Also: aidp backup list`,
	RunE: runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List available snapshots",
	Example: `  aidp backup list`,
	RunE:    runBackupList,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup-id>",
	Short: "Restore a snapshot into the profile directory",
	Long: `Restore a snapshot into the profile directory.

Every file in the snapshot is verified against its recorded SHA256 hash
before anything is written. Existing profiles with the same names are
overwritten.`,
	Example: `  aidp backup restore 20260830T120000

  See Also: aidp backup list`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupRestore,
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete snapshots beyond the retention count",
	Example: `  # Keep only the newest snapshots (backup.retention, default 5)
  aidp backup prune`,
	RunE: runBackupPrune,
}

func newBackupManager() *backup.Manager {
	return backup.NewManager(
		backup.WithRetentionCount(config.BackupRetention()),
	)
}

func runBackupCreate(_ *cobra.Command, _ []string) error {
	manifest, err := newBackupManager().Backup(config.ProfilesDir())
	if err != nil {
		return errors.Wrap(err, "creating backup")
	}

	fmt.Printf("Created backup %s (%d file(s))\n", manifest.ID, len(manifest.Files))
	return nil
}

func runBackupList(_ *cobra.Command, _ []string) error {
	manifests, err := newBackupManager().List()
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			fmt.Println("No backups found")
			return nil
		}
		return errors.Wrap(err, "listing backups")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sID%s\t%sCREATED%s\t%sFILES%s\n",
		colorBold, colorReset, colorBold, colorReset, colorBold, colorReset)
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%d\n",
			m.ID, m.CreatedAt.Local().Format("2006-01-02 15:04:05"), len(m.Files))
	}
	return tw.Flush()
}

func runBackupRestore(_ *cobra.Command, args []string) error {
	mgr := newBackupManager()

	if err := mgr.Restore(args[0], config.ProfilesDir()); err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			return aidperrors.NewUserError(err, "Run 'aidp backup list' to see available snapshots")
		}
		return errors.Wrapf(err, "restoring %s", args[0])
	}

	fmt.Printf("Restored backup %s into %s\n", args[0], config.ProfilesDir())
	return nil
}

func runBackupPrune(_ *cobra.Command, _ []string) error {
	if err := newBackupManager().Prune(); err != nil {
		return errors.Wrap(err, "pruning backups")
	}

	fmt.Printf("Pruned backups beyond the newest %d\n", config.BackupRetention())
	return nil
}
