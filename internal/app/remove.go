package app

import (
	"errors"
	"strconv"

	"github.com/blackwell-systems/libman/internal/catalog"
	"github.com/blackwell-systems/libman/internal/tui"
	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove [number]",
		Aliases: []string{"rm"},
		Short:   "Remove a book from the catalog",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(backupPath())
			if err != nil {
				return err
			}

			n, err := resolveBookNumber(cmd, args, c, "Remove a Book")
			if err != nil {
				if errors.Is(err, tui.ErrCanceled) {
					warn("Canceled.")
					return nil
				}
				return err
			}

			if err := c.Remove(n); err != nil {
				return err
			}
			if err := saveCatalog(backupPath(), c); err != nil {
				return err
			}
			ok("Removed book #%d", n)
			return nil
		},
	}
	return cmd
}

// resolveBookNumber takes the number from the argument list, from the
// interactive picker, or from a stdin prompt, in that order of preference.
func resolveBookNumber(cmd *cobra.Command, args []string, c *catalog.Catalog, pickerTitle string) (int, error) {
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, errors.New("book number must be an integer")
		}
		return n, nil
	}

	if tui.ShouldUseTUI(cmd) {
		return tui.RunBookPicker(pickerTitle, c.List(catalog.SortByNumber))
	}

	return promptNumber(stdinReader(), "Book Number")
}
