package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/libman/internal/tui"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Find books by title, author, or genre",
		Long: `Case-insensitive substring search over title, author, and genre.
An empty query matches every book.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(backupPath())
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			matches := c.Search(query)

			if tui.ShouldUseTUI(cmd) {
				title := fmt.Sprintf("Search %q (%d matches)", query, len(matches))
				return tui.RunBookBrowser(title, matches)
			}

			if len(matches) == 0 {
				warn("No books match %q.", query)
				return nil
			}
			printBooks(matches)
			return nil
		},
	}
	return cmd
}
