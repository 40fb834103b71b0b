package catalog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/blackwell-systems/libman/internal/catalog"
)

func mustAdd(t *testing.T, c *catalog.Catalog, title, author, genre, date string) int {
	t.Helper()
	n, err := c.Add(title, author, genre, date, "desc")
	if err != nil {
		t.Fatalf("Add(%q): %v", title, err)
	}
	return n
}

func numbers(books []catalog.Book) []int {
	out := make([]int, len(books))
	for i, b := range books {
		out[i] = b.Number
	}
	return out
}

// --- Add ---

func TestAdd_FirstBookGetsNumberOne(t *testing.T) {
	c := catalog.New()
	n, err := c.Add("Dune", "Herbert", "SF", "1965-08-01", "Arrakis")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if n != 1 {
		t.Errorf("first number = %d, want 1", n)
	}

	books := c.List(catalog.SortByNumber)
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Number != 1 || !books[0].Available {
		t.Errorf("got %+v, want number 1 and available", books[0])
	}
	if books[0].LastAction.IsZero() {
		t.Error("LastAction not set on add")
	}
}

func TestAdd_TrimsSurroundingWhitespace(t *testing.T) {
	c := catalog.New()
	n, err := c.Add("  Dune  ", " Herbert ", " SF ", "1965-08-01", "  Arrakis ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	b, ok := c.Find(n)
	if !ok {
		t.Fatal("Find after Add returned false")
	}
	if b.Title != "Dune" || b.Author != "Herbert" || b.Genre != "SF" || b.Description != "Arrakis" {
		t.Errorf("fields not trimmed: %+v", b)
	}
}

func TestAdd_RejectsEmptyFields(t *testing.T) {
	cases := []struct {
		name                 string
		title, author, genre string
	}{
		{"empty title", "", "Herbert", "SF"},
		{"blank title", "   ", "Herbert", "SF"},
		{"empty author", "Dune", "", "SF"},
		{"empty genre", "Dune", "Herbert", ""},
	}
	for _, tc := range cases {
		c := catalog.New()
		_, err := c.Add(tc.title, tc.author, tc.genre, "1965-08-01", "x")
		var fieldErr *catalog.InvalidFieldError
		if !errors.As(err, &fieldErr) {
			t.Errorf("%s: err = %v, want InvalidFieldError", tc.name, err)
		}
		if c.Len() != 0 {
			t.Errorf("%s: catalog mutated on failed add", tc.name)
		}
	}

	c := catalog.New()
	var fieldErr *catalog.InvalidFieldError
	if _, err := c.Add("Dune", "Herbert", "SF", "1965-08-01", ""); !errors.As(err, &fieldErr) {
		t.Errorf("empty description: err = %v, want InvalidFieldError", err)
	}
}

func TestAdd_RejectsBadDate(t *testing.T) {
	for _, date := range []string{"", "1965", "08/01/1965", "1965-13-01", "yesterday"} {
		c := catalog.New()
		_, err := c.Add("Dune", "Herbert", "SF", date, "x")
		var fieldErr *catalog.InvalidFieldError
		if !errors.As(err, &fieldErr) {
			t.Errorf("date %q: err = %v, want InvalidFieldError", date, err)
		}
	}
}

func TestAdd_RejectsReservedDelimiter(t *testing.T) {
	c := catalog.New()
	_, err := c.Add("Dune", "Herbert", "SF", "1965-08-01", "spice|melange")
	var fieldErr *catalog.InvalidFieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("err = %v, want InvalidFieldError", err)
	}
	if _, err := c.Add("Du|ne", "Herbert", "SF", "1965-08-01", "x"); err == nil {
		t.Error("expected error for | in title")
	}
}

func TestAdd_NumbersAreMonotone(t *testing.T) {
	c := catalog.New()
	for want := 1; want <= 3; want++ {
		if n := mustAdd(t, c, "Book", "Author", "Genre", "2000-01-01"); n != want {
			t.Errorf("add %d allocated %d", want, n)
		}
	}
}

// The allocator is max-of-present plus one, so removing a non-max number
// leaves a permanent gap.
func TestAdd_AfterRemoveDoesNotReuseNumber(t *testing.T) {
	c := catalog.New()
	mustAdd(t, c, "A", "a", "g", "2000-01-01")
	mustAdd(t, c, "B", "b", "g", "2000-01-01")
	mustAdd(t, c, "C", "c", "g", "2000-01-01")

	if err := c.Remove(2); err != nil {
		t.Fatalf("Remove(2): %v", err)
	}
	if n := mustAdd(t, c, "D", "d", "g", "2000-01-01"); n != 4 {
		t.Errorf("add after remove allocated %d, want 4", n)
	}
}

// Removing the current maximum lowers the ceiling, so the next add takes the
// same number again. Max-of-present allocation, not a high-water mark.
func TestAdd_ReallocatesNumberAfterRemovingMax(t *testing.T) {
	c := catalog.New()
	mustAdd(t, c, "A", "a", "g", "2000-01-01")
	mustAdd(t, c, "B", "b", "g", "2000-01-01")
	mustAdd(t, c, "C", "c", "g", "2000-01-01")

	if err := c.Remove(3); err != nil {
		t.Fatalf("Remove(3): %v", err)
	}
	if n := mustAdd(t, c, "D", "d", "g", "2000-01-01"); n != 3 {
		t.Errorf("add after removing the max allocated %d, want 3", n)
	}
}

// --- Remove ---

func TestRemove_Missing(t *testing.T) {
	c := catalog.New()
	if err := c.Remove(7); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRemove_Existing(t *testing.T) {
	c := catalog.New()
	n := mustAdd(t, c, "A", "a", "g", "2000-01-01")
	if err := c.Remove(n); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after remove, want 0", c.Len())
	}
	if _, ok := c.Find(n); ok {
		t.Error("Find returned true for removed book")
	}
}

// --- CheckOut / CheckIn / ReportDamage ---

func TestCirculation_CheckOutCheckInCycle(t *testing.T) {
	c := catalog.New()
	n := mustAdd(t, c, "Dune", "Herbert", "SF", "1965-08-01")

	if err := c.CheckOut(n); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if err := c.CheckOut(n); !errors.Is(err, catalog.ErrAlreadyCheckedOut) {
		t.Errorf("second CheckOut err = %v, want ErrAlreadyCheckedOut", err)
	}

	if err := c.CheckIn(n); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if err := c.CheckIn(n); !errors.Is(err, catalog.ErrAlreadyAvailable) {
		t.Errorf("second CheckIn err = %v, want ErrAlreadyAvailable", err)
	}

	b, _ := c.Find(n)
	if !b.Available {
		t.Error("book not available after checkout/checkin cycle")
	}
}

func TestCirculation_MissingBook(t *testing.T) {
	c := catalog.New()
	if err := c.CheckOut(9); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("CheckOut err = %v, want ErrNotFound", err)
	}
	if err := c.CheckIn(9); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("CheckIn err = %v, want ErrNotFound", err)
	}
	if err := c.ReportDamage(9); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("ReportDamage err = %v, want ErrNotFound", err)
	}
}

func TestReportDamage_Idempotent(t *testing.T) {
	c := catalog.New()
	n := mustAdd(t, c, "Dune", "Herbert", "SF", "1965-08-01")

	if err := c.ReportDamage(n); err != nil {
		t.Fatalf("first ReportDamage: %v", err)
	}
	if err := c.ReportDamage(n); err != nil {
		t.Errorf("second ReportDamage: %v, want nil", err)
	}
	b, _ := c.Find(n)
	if b.Available {
		t.Error("damaged book still available")
	}
}

func TestMutation_BumpsLastAction(t *testing.T) {
	c := catalog.New()
	n := mustAdd(t, c, "Dune", "Herbert", "SF", "1965-08-01")
	before, _ := c.Find(n)

	if err := c.CheckOut(n); err != nil {
		t.Fatal(err)
	}
	after, _ := c.Find(n)
	if after.LastAction.Before(before.LastAction) {
		t.Errorf("LastAction went backwards: %v -> %v", before.LastAction, after.LastAction)
	}
}

// --- List ---

func TestList_EmptyCatalog(t *testing.T) {
	c := catalog.New()
	if got := c.List(catalog.SortByTitle); len(got) != 0 {
		t.Errorf("List on empty catalog returned %d books", len(got))
	}
}

func TestList_SortKeys(t *testing.T) {
	c := catalog.New()
	mustAdd(t, c, "Zebra", "Young", "Nature", "2010-01-01") // 1
	mustAdd(t, c, "Apple", "Old", "Cooking", "1990-01-01")  // 2
	mustAdd(t, c, "Mango", "Young", "Cooking", "2000-01-01") // 3

	cases := []struct {
		key  catalog.SortKey
		want []int
	}{
		{catalog.SortByNumber, []int{1, 2, 3}},
		{catalog.SortByTitle, []int{2, 3, 1}},
		{catalog.SortByGenre, []int{2, 3, 1}},
		{catalog.SortByPubDate, []int{2, 3, 1}},
		// Young wrote 1 and 3; tie broken by number.
		{catalog.SortByAuthor, []int{2, 1, 3}},
	}
	for _, tc := range cases {
		got := numbers(c.List(tc.key))
		if len(got) != len(tc.want) {
			t.Fatalf("%v: got %v, want %v", tc.key, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%v: got %v, want %v", tc.key, got, tc.want)
				break
			}
		}
	}
}

func TestList_ReturnsCopies(t *testing.T) {
	c := catalog.New()
	n := mustAdd(t, c, "Dune", "Herbert", "SF", "1965-08-01")

	books := c.List(catalog.SortByNumber)
	books[0].Title = "mutated"

	b, _ := c.Find(n)
	if b.Title != "Dune" {
		t.Error("List returned an alias into catalog storage")
	}
}

// --- GroupByGenre ---

func TestGroupByGenre_OrderedGroupsAndTitles(t *testing.T) {
	c := catalog.New()
	mustAdd(t, c, "Solaris", "Lem", "SF", "1961-01-01")
	mustAdd(t, c, "Dune", "Herbert", "SF", "1965-08-01")
	mustAdd(t, c, "Leaves of Grass", "Whitman", "Poetry", "1855-07-04")

	groups := c.GroupByGenre()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Genre != "Poetry" || groups[1].Genre != "SF" {
		t.Errorf("group order = %q, %q, want Poetry, SF", groups[0].Genre, groups[1].Genre)
	}
	sf := groups[1].Books
	if len(sf) != 2 || sf[0].Title != "Dune" || sf[1].Title != "Solaris" {
		t.Errorf("SF group not title-sorted: %v", sf)
	}
}

func TestGroupByGenre_Empty(t *testing.T) {
	c := catalog.New()
	if got := c.GroupByGenre(); len(got) != 0 {
		t.Errorf("expected no groups, got %d", len(got))
	}
}

// --- Search ---

func TestSearch_MatchesTitleAuthorGenre(t *testing.T) {
	c := catalog.New()
	mustAdd(t, c, "Dune", "Herbert", "SF", "1965-08-01")
	mustAdd(t, c, "Hamlet", "Shakespeare", "Drama", "1603-01-01")

	cases := []struct {
		query string
		want  []int
	}{
		{"dune", []int{1}},
		{"HERBERT", []int{1}},
		{"drama", []int{2}},
		{"e", []int{1, 2}},
		{"zzz", nil},
		{"", []int{1, 2}},
	}
	for _, tc := range cases {
		got := numbers(c.Search(tc.query))
		if len(got) != len(tc.want) {
			t.Errorf("Search(%q) = %v, want %v", tc.query, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("Search(%q) = %v, want %v", tc.query, got, tc.want)
				break
			}
		}
	}
}

// --- ReplaceAll ---

func validBooks() []catalog.Book {
	date := time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)
	return []catalog.Book{
		{Number: 1, Title: "Dune", Author: "Herbert", Genre: "SF", PubDate: date, Available: true},
		{Number: 2, Title: "Solaris", Author: "Lem", Genre: "SF", PubDate: date, Available: false},
	}
}

func TestReplaceAll_SwapsContents(t *testing.T) {
	c := catalog.New()
	mustAdd(t, c, "Old", "Old", "Old", "1900-01-01")

	if err := c.ReplaceAll(validBooks()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	b, ok := c.Find(2)
	if !ok || b.Title != "Solaris" || b.Available {
		t.Errorf("Find(2) = %+v, %v", b, ok)
	}
	if b.LastAction.IsZero() {
		t.Error("LastAction not stamped on restore")
	}
}

func TestReplaceAll_RejectsInvalidAndLeavesCatalogUntouched(t *testing.T) {
	date := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		records []catalog.Book
	}{
		{"duplicate number", []catalog.Book{
			{Number: 1, Title: "A", Author: "a", Genre: "g", PubDate: date},
			{Number: 1, Title: "B", Author: "b", Genre: "g", PubDate: date},
		}},
		{"zero number", []catalog.Book{
			{Number: 0, Title: "A", Author: "a", Genre: "g", PubDate: date},
		}},
		{"empty title", []catalog.Book{
			{Number: 1, Title: "", Author: "a", Genre: "g", PubDate: date},
		}},
		{"zero date", []catalog.Book{
			{Number: 1, Title: "A", Author: "a", Genre: "g"},
		}},
		{"delimiter in field", []catalog.Book{
			{Number: 1, Title: "A|B", Author: "a", Genre: "g", PubDate: date},
		}},
	}
	for _, tc := range cases {
		c := catalog.New()
		mustAdd(t, c, "Keep", "Me", "Here", "1999-01-01")

		err := c.ReplaceAll(tc.records)
		var snapErr *catalog.InvalidSnapshotError
		if !errors.As(err, &snapErr) {
			t.Errorf("%s: err = %v, want InvalidSnapshotError", tc.name, err)
		}
		if c.Len() != 1 {
			t.Errorf("%s: catalog mutated on failed ReplaceAll", tc.name)
			continue
		}
		if b, _ := c.Find(1); b.Title != "Keep" {
			t.Errorf("%s: surviving book = %+v", tc.name, b)
		}
	}
}

// --- allocator / invariants ---

func TestNextNumber(t *testing.T) {
	c := catalog.New()
	if c.NextNumber() != 1 {
		t.Errorf("NextNumber on empty = %d, want 1", c.NextNumber())
	}
	if err := c.ReplaceAll(validBooks()); err != nil {
		t.Fatal(err)
	}
	if c.NextNumber() != 3 {
		t.Errorf("NextNumber = %d, want 3", c.NextNumber())
	}
}

func TestParseSortKey(t *testing.T) {
	for name, want := range map[string]catalog.SortKey{
		"number":  catalog.SortByNumber,
		"title":   catalog.SortByTitle,
		"author":  catalog.SortByAuthor,
		"genre":   catalog.SortByGenre,
		"pubdate": catalog.SortByPubDate,
	} {
		got, err := catalog.ParseSortKey(name)
		if err != nil || got != want {
			t.Errorf("ParseSortKey(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := catalog.ParseSortKey("isbn"); err == nil {
		t.Error("expected error for unknown sort key")
	}
}
