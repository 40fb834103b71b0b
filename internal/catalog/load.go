package catalog

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Load reads a backup file and reconstructs its records. A missing file is
// ErrNoBackup, distinct from an I/O failure. A line that does not conform to
// the backup format aborts the load with a CorruptSnapshotError naming the
// line; no partial result is returned.
func Load(path string) ([]Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackup
		}
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	return Parse(data)
}

// Parse decodes backup bytes into a book list. Whitespace around fields is
// preserved; field values are taken exactly as written.
func Parse(data []byte) ([]Book, error) {
	if len(data) == 0 {
		return []Book{}, nil
	}

	lines := strings.Split(string(data), "\n")
	// A trailing newline leaves one empty element; that is the terminator of
	// the last record, not a blank line.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	books := make([]Book, 0, len(lines))
	for i, line := range lines {
		b, err := parseLine(i+1, line)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

func parseLine(lineNo int, line string) (Book, error) {
	if line == "" {
		return Book{}, &CorruptSnapshotError{Line: lineNo, Reason: "blank line"}
	}

	parts := strings.Split(line, Delimiter)
	if len(parts) != 7 {
		return Book{}, &CorruptSnapshotError{
			Line:   lineNo,
			Reason: fmt.Sprintf("expected 7 fields, got %d", len(parts)),
		}
	}

	number, err := strconv.Atoi(parts[0])
	if err != nil {
		return Book{}, &CorruptSnapshotError{
			Line:   lineNo,
			Reason: fmt.Sprintf("bad book number %q", parts[0]),
		}
	}

	var available bool
	switch parts[3] {
	case "True":
		available = true
	case "False":
		available = false
	default:
		return Book{}, &CorruptSnapshotError{
			Line:   lineNo,
			Reason: fmt.Sprintf("bad availability %q (want True or False)", parts[3]),
		}
	}

	date, err := time.Parse(DateLayout, parts[5])
	if err != nil {
		return Book{}, &CorruptSnapshotError{
			Line:   lineNo,
			Reason: fmt.Sprintf("bad publication date %q (want yyyy-mm-dd)", parts[5]),
		}
	}

	return Book{
		Number:      number,
		Title:       parts[1],
		Author:      parts[2],
		Available:   available,
		Genre:       parts[4],
		PubDate:     date,
		Description: parts[6],
	}, nil
}
