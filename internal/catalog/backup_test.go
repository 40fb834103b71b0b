package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/libman/internal/catalog"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := catalog.New()
	mustAdd(t, c, "Dune", "Herbert", "SF", "1965-08-01")
	mustAdd(t, c, "Hamlet", "Shakespeare", "Drama", "1603-01-01")
	if err := c.CheckOut(2); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "library_backup.txt")
	saved := c.List(catalog.SortByNumber)
	if err := catalog.Save(path, saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != len(saved) {
		t.Fatalf("round-trip length: got %d, want %d", len(loaded), len(saved))
	}
	for i := range saved {
		want, got := saved[i], loaded[i]
		if got.Number != want.Number || got.Title != want.Title ||
			got.Author != want.Author || got.Genre != want.Genre ||
			got.Description != want.Description || got.Available != want.Available ||
			!got.PubDate.Equal(want.PubDate) {
			t.Errorf("[%d] round-trip mismatch:\n got %+v\nwant %+v", i, got, want)
		}
	}
}

func TestSave_EmptyCatalogWritesZeroBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := catalog.Save(path, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if fi.Size() != 0 {
		t.Errorf("file size = %d, want 0", fi.Size())
	}
}

func TestSave_UnwritablePath(t *testing.T) {
	err := catalog.Save(filepath.Join(t.TempDir(), "no", "such", "dir", "b.txt"), nil)
	if err == nil {
		t.Error("expected error for unwritable path")
	}
	if errors.Is(err, catalog.ErrNoBackup) {
		t.Error("write failure must not be ErrNoBackup")
	}
}

func TestLoad_MissingFileIsNoBackup(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "nothing.txt"))
	if !errors.Is(err, catalog.ErrNoBackup) {
		t.Errorf("err = %v, want ErrNoBackup", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	books, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected 0 books, got %d", len(books))
	}
}

func TestParse_PreservesFieldWhitespace(t *testing.T) {
	books, err := catalog.Parse([]byte("1| Dune |Herbert|True|SF|1965-08-01|Arrakis\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if books[0].Title != " Dune " {
		t.Errorf("Title = %q, whitespace not preserved", books[0].Title)
	}
}

func TestParse_CorruptLines(t *testing.T) {
	cases := []struct {
		name     string
		data     string
		wantLine int
	}{
		{"too few fields on line 3",
			"1|A|a|True|g|2000-01-01|d\n2|B|b|False|g|2000-01-01|d\n7|Foo|Bar\n", 3},
		{"blank line", "1|A|a|True|g|2000-01-01|d\n\n2|B|b|True|g|2000-01-01|d\n", 2},
		{"bad number", "x|A|a|True|g|2000-01-01|d\n", 1},
		{"bad availability", "1|A|a|yes|g|2000-01-01|d\n", 1},
		{"lowercase availability", "1|A|a|true|g|2000-01-01|d\n", 1},
		{"bad date", "1|A|a|True|g|01/02/2000|d\n", 1},
		{"too many fields", "1|A|a|True|g|2000-01-01|d|extra\n", 1},
	}
	for _, tc := range cases {
		_, err := catalog.Parse([]byte(tc.data))
		var corrupt *catalog.CorruptSnapshotError
		if !errors.As(err, &corrupt) {
			t.Errorf("%s: err = %v, want CorruptSnapshotError", tc.name, err)
			continue
		}
		if corrupt.Line != tc.wantLine {
			t.Errorf("%s: line = %d, want %d", tc.name, corrupt.Line, tc.wantLine)
		}
	}
}

// A corrupt load must leave the caller's in-memory catalog untouched: Load
// returns no partial result, so there is nothing to apply.
func TestLoad_CorruptFileReturnsNoPartialResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	data := "1|A|a|True|g|2000-01-01|d\n2|B|b|False|g|2000-01-01|d\n7|Foo|Bar\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	books, err := catalog.Load(path)
	if err == nil {
		t.Fatal("expected CorruptSnapshotError")
	}
	if books != nil {
		t.Errorf("Load returned partial result of %d books", len(books))
	}
}

func TestMarshal_Format(t *testing.T) {
	c := catalog.New()
	mustAdd(t, c, "Dune", "Herbert", "SF", "1965-08-01")

	got := string(catalog.Marshal(c.List(catalog.SortByNumber)))
	want := "1|Dune|Herbert|True|SF|1965-08-01|desc\n"
	if got != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}
