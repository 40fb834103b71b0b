package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/blackwell-systems/libman/internal/catalog"
	"github.com/fatih/color"
)

// loadCatalog builds a catalog from the backup file. A missing file yields an
// empty catalog so first runs work without setup; corrupt or invalid
// snapshots are hard errors.
func loadCatalog(path string) (*catalog.Catalog, error) {
	c := catalog.New()
	books, err := catalog.Load(path)
	if err != nil {
		if errors.Is(err, catalog.ErrNoBackup) {
			return c, nil
		}
		return nil, err
	}
	if err := c.ReplaceAll(books); err != nil {
		return nil, err
	}
	return c, nil
}

// saveCatalog snapshots the catalog back to the backup file.
func saveCatalog(path string, c *catalog.Catalog) error {
	return catalog.Save(path, c.List(catalog.SortByNumber))
}

// printBooks writes a text listing, one block per record.
func printBooks(books []catalog.Book) {
	for _, b := range books {
		printBook(b)
	}
}

func printBook(b catalog.Book) {
	status := color.GreenString("available")
	if !b.Available {
		status = color.RedString("checked out")
	}
	fmt.Printf("%s %s by %s\n", color.CyanString("#%d", b.Number), color.New(color.Bold).Sprint(b.Title), b.Author)
	fmt.Printf("   %s · %s · %s\n", b.Genre, b.PubDate.Format(catalog.DateLayout), status)
	if b.Description != "" {
		fmt.Printf("   %s\n", b.Description)
	}
}

// printGroups writes the genre-grouped listing.
func printGroups(groups []catalog.GenreGroup) {
	for _, g := range groups {
		header("Genre: %s", g.Genre)
		printBooks(g.Books)
		fmt.Println()
	}
}

// promptLine re-asks until the operator supplies a non-empty value.
func promptLine(r *bufio.Reader, label string) (string, error) {
	for {
		fmt.Printf("   %s: ", label)
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		fmt.Printf("%s cannot be empty. Please try again.\n", label)
	}
}

// promptNumber re-asks until the operator supplies an integer.
func promptNumber(r *bufio.Reader, label string) (int, error) {
	for {
		line, err := promptLine(r, label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Println("Invalid input. Please enter a number.")
	}
}

func stdinReader() *bufio.Reader {
	return bufio.NewReader(os.Stdin)
}
