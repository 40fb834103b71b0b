package catalog

import (
	"bytes"
	"fmt"
	"os"
)

// Marshal encodes records in the backup format: one record per LF-terminated
// line, seven fields separated by the reserved delimiter. LastAction is
// session-local and never written.
func Marshal(books []Book) []byte {
	var buf bytes.Buffer
	for _, b := range books {
		available := "False"
		if b.Available {
			available = "True"
		}
		fmt.Fprintf(&buf, "%d|%s|%s|%s|%s|%s|%s\n",
			b.Number, b.Title, b.Author, available,
			b.Genre, b.PubDate.Format(DateLayout), b.Description)
	}
	return buf.Bytes()
}

// Save writes the records to path, creating or truncating the file. An empty
// catalog produces a zero-byte file. The snapshot is best-effort: no atomic
// rename, no journaling.
func Save(path string, books []Book) error {
	if err := os.WriteFile(path, Marshal(books), 0644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}
