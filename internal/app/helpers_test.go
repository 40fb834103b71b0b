package app

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/libman/internal/catalog"
)

func TestPromptLine_ReAsksOnBlankInput(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\n   \nDune\n"))
	got, err := promptLine(r, "Title")
	if err != nil {
		t.Fatalf("promptLine: %v", err)
	}
	if got != "Dune" {
		t.Errorf("promptLine = %q, want %q", got, "Dune")
	}
}

func TestPromptNumber_ReAsksOnNonInteger(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("abc\n42\n"))
	got, err := promptNumber(r, "Book Number")
	if err != nil {
		t.Fatalf("promptNumber: %v", err)
	}
	if got != 42 {
		t.Errorf("promptNumber = %d, want 42", got)
	}
}

func TestLoadCatalog_MissingFileIsEmpty(t *testing.T) {
	c, err := loadCatalog(filepath.Join(t.TempDir(), "nothing.txt"))
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestLoadSaveCatalog_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library_backup.txt")

	c := catalog.New()
	if _, err := c.Add("Dune", "Herbert", "SF", "1965-08-01", "Arrakis"); err != nil {
		t.Fatal(err)
	}
	if err := saveCatalog(path, c); err != nil {
		t.Fatalf("saveCatalog: %v", err)
	}

	c2, err := loadCatalog(path)
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if c2.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c2.Len())
	}
	b, ok := c2.Find(1)
	if !ok || b.Title != "Dune" || !b.Available {
		t.Errorf("Find(1) = %+v, %v", b, ok)
	}
}

func TestLoadCatalog_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("7|Foo|Bar\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := loadCatalog(path)
	if err == nil {
		t.Fatal("expected error for corrupt backup")
	}
}
