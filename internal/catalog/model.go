package catalog

import (
	"fmt"
	"time"
)

// DateLayout is the canonical form for publication dates, on input and in
// backup files alike. Any other form is rejected.
const DateLayout = "2006-01-02"

// Book is one record in the catalog.
type Book struct {
	Number      int // unique within the catalog, allocated max-of-present + 1
	Title       string
	Author      string
	Genre       string
	PubDate     time.Time // calendar date, no time-of-day component
	Description string
	Available   bool      // true = on the shelf
	LastAction  time.Time // session-local, not persisted
}

// Equal reports value equality by book number.
func (b Book) Equal(other Book) bool {
	return b.Number == other.Number
}

// Year returns the publication year, for compact display.
func (b Book) Year() int {
	return b.PubDate.Year()
}

func (b Book) String() string {
	status := "available"
	if !b.Available {
		status = "checked out"
	}
	return fmt.Sprintf("%d: %s by %s (%s, %d) [%s]",
		b.Number, b.Title, b.Author, b.Genre, b.Year(), status)
}

// SortKey selects the ordering for List. The domain is closed so the catalog
// can guarantee deterministic tie-breaks by book number.
type SortKey int

const (
	SortByNumber SortKey = iota
	SortByTitle
	SortByAuthor
	SortByGenre
	SortByPubDate
)

var sortKeyNames = map[string]SortKey{
	"number":  SortByNumber,
	"title":   SortByTitle,
	"author":  SortByAuthor,
	"genre":   SortByGenre,
	"pubdate": SortByPubDate,
}

// ParseSortKey maps a user-supplied name to a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	if k, ok := sortKeyNames[s]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown sort key %q (number, title, author, genre, pubdate)", s)
}

func (k SortKey) String() string {
	for name, key := range sortKeyNames {
		if key == k {
			return name
		}
	}
	return "number"
}

// GenreGroup is one genre bucket from GroupByGenre, titles sorted ascending.
type GenreGroup struct {
	Genre string
	Books []Book
}
