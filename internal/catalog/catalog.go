package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Delimiter separates fields in the backup format. It is reserved: no text
// field may contain it, enforced on Add and ReplaceAll.
const Delimiter = "|"

// Catalog owns an ordered collection of book records and enforces its
// invariants: distinct positive book numbers, non-empty text fields, and a
// max-of-present allocator. Numbers below the current maximum are never
// handed out again; removing the maximum itself lowers the ceiling.
//
// The catalog is not safe for concurrent use; the application runs a single
// interactive loop and mutates it from one goroutine only.
type Catalog struct {
	books []Book
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.books)
}

// NextNumber returns the number the next Add will allocate: one more than the
// highest number present, or 1 for an empty catalog.
func (c *Catalog) NextNumber() int {
	max := 0
	for _, b := range c.books {
		if b.Number > max {
			max = b.Number
		}
	}
	return max + 1
}

// Find returns a copy of the record with the given number.
func (c *Catalog) Find(number int) (Book, bool) {
	if i := c.indexOf(number); i >= 0 {
		return c.books[i], true
	}
	return Book{}, false
}

// Add validates the supplied fields, allocates the next book number, and
// appends a new available record. Text fields are trimmed of surrounding
// whitespace before validation; the publication date must be in DateLayout
// form. Returns the allocated number.
func (c *Catalog) Add(title, author, genre, pubDate, description string) (int, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	genre = strings.TrimSpace(genre)
	description = strings.TrimSpace(description)

	for _, f := range []struct{ name, value string }{
		{"title", title},
		{"author", author},
		{"genre", genre},
		{"description", description},
	} {
		if f.value == "" {
			return 0, &InvalidFieldError{Field: f.name, Reason: "must not be empty"}
		}
		if strings.Contains(f.value, Delimiter) {
			return 0, &InvalidFieldError{Field: f.name, Reason: "must not contain " + Delimiter}
		}
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(pubDate))
	if err != nil {
		return 0, &InvalidFieldError{Field: "publication date", Reason: "must be yyyy-mm-dd"}
	}

	b := Book{
		Number:      c.NextNumber(),
		Title:       title,
		Author:      author,
		Genre:       genre,
		PubDate:     date,
		Description: description,
		Available:   true,
		LastAction:  time.Now(),
	}
	c.books = append(c.books, b)
	return b.Number, nil
}

// Remove deletes the record with the given number. A removed interior number
// is not reused; removing the current maximum makes it available again, since
// the allocator works from the numbers still present.
func (c *Catalog) Remove(number int) error {
	i := c.indexOf(number)
	if i < 0 {
		return ErrNotFound
	}
	c.books = append(c.books[:i], c.books[i+1:]...)
	return nil
}

// CheckOut transitions an available record to checked out.
func (c *Catalog) CheckOut(number int) error {
	i := c.indexOf(number)
	if i < 0 {
		return ErrNotFound
	}
	if !c.books[i].Available {
		return ErrAlreadyCheckedOut
	}
	c.books[i].Available = false
	c.books[i].LastAction = time.Now()
	return nil
}

// CheckIn transitions a checked-out record back to available.
func (c *Catalog) CheckIn(number int) error {
	i := c.indexOf(number)
	if i < 0 {
		return ErrNotFound
	}
	if c.books[i].Available {
		return ErrAlreadyAvailable
	}
	c.books[i].Available = true
	c.books[i].LastAction = time.Now()
	return nil
}

// ReportDamage marks a record unavailable regardless of its prior state.
// Reporting an already-unavailable book is not an error.
func (c *Catalog) ReportDamage(number int) error {
	i := c.indexOf(number)
	if i < 0 {
		return ErrNotFound
	}
	c.books[i].Available = false
	c.books[i].LastAction = time.Now()
	return nil
}

// List returns a copy of all records ordered by the given sort key, ties
// broken by book number ascending.
func (c *Catalog) List(key SortKey) []Book {
	out := c.snapshot()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch key {
		case SortByTitle:
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		case SortByAuthor:
			if a.Author != b.Author {
				return a.Author < b.Author
			}
		case SortByGenre:
			if a.Genre != b.Genre {
				return a.Genre < b.Genre
			}
		case SortByPubDate:
			if !a.PubDate.Equal(b.PubDate) {
				return a.PubDate.Before(b.PubDate)
			}
		}
		return a.Number < b.Number
	})
	return out
}

// GroupByGenre buckets all records by genre. Groups are ordered by genre name
// ascending; within a group records are ordered by title, ties by number.
func (c *Catalog) GroupByGenre() []GenreGroup {
	byGenre := make(map[string][]Book)
	for _, b := range c.books {
		byGenre[b.Genre] = append(byGenre[b.Genre], b)
	}

	genres := make([]string, 0, len(byGenre))
	for g := range byGenre {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	groups := make([]GenreGroup, 0, len(genres))
	for _, g := range genres {
		books := byGenre[g]
		sort.SliceStable(books, func(i, j int) bool {
			if books[i].Title != books[j].Title {
				return books[i].Title < books[j].Title
			}
			return books[i].Number < books[j].Number
		})
		groups = append(groups, GenreGroup{Genre: g, Books: books})
	}
	return groups
}

// Search returns all records whose title, author, or genre contains the query
// as a case-insensitive substring, ordered by book number. An empty query
// matches everything.
func (c *Catalog) Search(query string) []Book {
	q := strings.ToLower(query)
	var out []Book
	for _, b := range c.books {
		if q == "" ||
			strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(strings.ToLower(b.Genre), q) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// ReplaceAll swaps the entire contents for the supplied records after
// validating every catalog invariant against them. On failure the catalog is
// left unchanged. Each record's LastAction is stamped with the replacement
// time; the field is session-local and never comes from a snapshot.
func (c *Catalog) ReplaceAll(records []Book) error {
	seen := make(map[int]bool, len(records))
	for _, b := range records {
		if b.Number < 1 {
			return &InvalidSnapshotError{Reason: fmt.Sprintf("book number %d is not positive", b.Number)}
		}
		if seen[b.Number] {
			return &InvalidSnapshotError{Reason: fmt.Sprintf("duplicate book number %d", b.Number)}
		}
		seen[b.Number] = true

		for _, f := range []struct{ name, value string }{
			{"title", b.Title},
			{"author", b.Author},
			{"genre", b.Genre},
		} {
			if strings.TrimSpace(f.value) == "" {
				return &InvalidSnapshotError{Reason: fmt.Sprintf("book %d has an empty %s", b.Number, f.name)}
			}
		}
		for _, f := range []struct{ name, value string }{
			{"title", b.Title},
			{"author", b.Author},
			{"genre", b.Genre},
			{"description", b.Description},
		} {
			if strings.Contains(f.value, Delimiter) {
				return &InvalidSnapshotError{Reason: fmt.Sprintf("book %d contains %s in its %s", b.Number, Delimiter, f.name)}
			}
		}
		if b.PubDate.IsZero() {
			return &InvalidSnapshotError{Reason: fmt.Sprintf("book %d has no publication date", b.Number)}
		}
	}

	now := time.Now()
	books := make([]Book, len(records))
	copy(books, records)
	for i := range books {
		books[i].LastAction = now
	}
	c.books = books
	return nil
}

// snapshot returns a defensive copy of the underlying records.
func (c *Catalog) snapshot() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

func (c *Catalog) indexOf(number int) int {
	for i := range c.books {
		if c.books[i].Number == number {
			return i
		}
	}
	return -1
}
