package lendbook

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// DefaultBookFile is the snapshot file name used when none is given.
const DefaultBookFile = "lendbook.json"

// LoadBook reads the book snapshot at path. A missing file is not an error:
// a fresh empty book in the given currency is returned so the very first
// command works against a blank ledger.
func LoadBook(path, currency string) (*Book, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Printf("no book at %q, starting an empty one", path)
		return NewBook(currency), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open book file %q: %w", path, err)
	}
	defer f.Close()

	b, err := DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", path, err)
	}
	return b, nil
}

// SaveBook persists the book snapshot to path, creating parent directories as
// needed. Saving is a trailing whole-state step, never an intra-operation one.
func SaveBook(path string, b *Book) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory for book %q: %w", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening book file %q for writing: %w", path, err)
	}
	defer f.Close()
	return EncodeBook(f, b)
}
