package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/libman/internal/tui"
	"github.com/spf13/cobra"
)

type addParams struct {
	title       string
	author      string
	genre       string
	date        string
	description string
}

func (p *addParams) complete() bool {
	return p.title != "" && p.author != "" && p.genre != "" && p.date != "" && p.description != ""
}

func newAddCmd() *cobra.Command {
	params := &addParams{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Long: `Add a book. With all flags supplied the book is added directly; otherwise
an interactive form (or plain prompts when piped) collects the fields.

Examples:
  libman add                      # Interactive form
  libman add --title "Dune" --author "Herbert" --genre SF --date 1965-08-01 --desc "Arrakis"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.title, "title", "", "Book title")
	cmd.Flags().StringVar(&params.author, "author", "", "Author")
	cmd.Flags().StringVar(&params.genre, "genre", "", "Genre")
	cmd.Flags().StringVar(&params.date, "date", "", "Publication date (yyyy-mm-dd)")
	cmd.Flags().StringVar(&params.description, "desc", "", "Short description")

	return cmd
}

func runAdd(cmd *cobra.Command, params *addParams) error {
	c, err := loadCatalog(backupPath())
	if err != nil {
		return err
	}

	if !params.complete() {
		if tui.ShouldUseTUI(cmd) {
			data, err := tui.RunAddForm(tui.AddFormData{
				Title:       params.title,
				Author:      params.author,
				Genre:       params.genre,
				PubDate:     params.date,
				Description: params.description,
			}, "")
			if err != nil {
				if errors.Is(err, tui.ErrCanceled) {
					warn("Canceled.")
					return nil
				}
				return err
			}
			params.title = data.Title
			params.author = data.Author
			params.genre = data.Genre
			params.date = data.PubDate
			params.description = data.Description
		} else {
			if err := promptMissing(params); err != nil {
				return err
			}
		}
	}

	n, err := c.Add(params.title, params.author, params.genre, params.date, params.description)
	if err != nil {
		return err
	}

	if err := saveCatalog(backupPath(), c); err != nil {
		return err
	}

	book, _ := c.Find(n)
	ok("Added book #%d: %s by %s", n, book.Title, book.Author)
	return nil
}

// promptMissing fills empty fields from stdin, re-asking on blank input.
func promptMissing(params *addParams) error {
	fmt.Println("Please supply the information requested below.")
	r := stdinReader()

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Title", &params.title},
		{"Author", &params.author},
		{"Genre", &params.genre},
		{"Publication Date (yyyy-mm-dd)", &params.date},
		{"Description", &params.description},
	}
	for _, p := range prompts {
		if *p.dst != "" {
			continue
		}
		value, err := promptLine(r, p.label)
		if err != nil {
			return err
		}
		*p.dst = value
	}
	return nil
}
