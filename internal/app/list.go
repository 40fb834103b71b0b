package app

import (
	"fmt"

	"github.com/blackwell-systems/libman/internal/catalog"
	"github.com/blackwell-systems/libman/internal/tui"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		sortName string
		byGenre  bool
		count    bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the catalog (interactive TUI or text output)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(backupPath())
			if err != nil {
				return err
			}

			if count {
				fmt.Printf("Total number of books: %d\n", c.Len())
				return nil
			}

			if c.Len() == 0 {
				warn("The library is currently empty.")
				return nil
			}

			// The flag wins; otherwise the config default applies.
			if !cmd.Flags().Changed("by-genre") {
				byGenre = cfg.GroupByGenre()
			}
			if byGenre {
				printGroups(c.GroupByGenre())
				return nil
			}

			key := cfg.EffectiveSortKey()
			if sortName != "" {
				key, err = catalog.ParseSortKey(sortName)
				if err != nil {
					return err
				}
			}

			if tui.ShouldUseTUI(cmd) {
				title := fmt.Sprintf("My Library (%d books)", c.Len())
				return tui.RunBookBrowser(title, c.List(key))
			}

			printBooks(c.List(key))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortName, "sort", "", "Sort key: number, title, author, genre, pubdate")
	cmd.Flags().BoolVar(&byGenre, "by-genre", false, "Group the listing by genre")
	cmd.Flags().BoolVar(&count, "count", false, "Print only the number of books")

	return cmd
}
