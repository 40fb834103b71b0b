package app

import (
	"fmt"

	"github.com/blackwell-systems/libman/internal/catalog"
	"github.com/blackwell-systems/libman/internal/util"
	"github.com/spf13/cobra"
)

func newBackupCmd() *cobra.Command {
	var toPath string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the backup snapshot to another path",
		Long: `Validate the current backup file and copy it elsewhere. Subcommands persist
after every mutation, so the backup file is already current; this command
exists to duplicate it (to another disk, a synced directory, and so on).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := backupPath()

			books, err := catalog.Load(src)
			if err != nil {
				return err
			}

			if toPath == "" {
				ok("Backup %s is valid: %d books", src, len(books))
				return nil
			}

			dst := util.ExpandHome(toPath)
			if err := util.CopyFile(src, dst); err != nil {
				return fmt.Errorf("copying backup: %w", err)
			}
			ok("Copied %d books to %s", len(books), dst)
			return nil
		},
	}

	cmd.Flags().StringVar(&toPath, "to", "", "Destination path for the copy")

	return cmd
}

func newRestoreCmd() *cobra.Command {
	var fromPath string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the catalog from a snapshot",
		Long: `Load a snapshot, validate every catalog invariant against it, and make it
the current backup file. Without --from, the default backup file is simply
validated in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := backupPath()
			if fromPath != "" {
				src = util.ExpandHome(fromPath)
			}

			books, err := catalog.Load(src)
			if err != nil {
				return err
			}

			// Reject snapshots that parse but violate an invariant before
			// they can become the current backup.
			c := catalog.New()
			if err := c.ReplaceAll(books); err != nil {
				return err
			}

			if src != backupPath() {
				if err := saveCatalog(backupPath(), c); err != nil {
					return err
				}
			}
			ok("Restored %d books from %s", c.Len(), src)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromPath, "from", "", "Snapshot to restore from (default: the backup file)")

	return cmd
}
