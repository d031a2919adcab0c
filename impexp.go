package lendbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// This file contains functions to handle the import/export format: the full
// snapshot as a single human readable JSON document.

// ExportName returns the suggested file name for an export taken today.
func ExportName() string {
	return fmt.Sprintf("lendbook-%s.json", Today())
}

// Export writes the full book snapshot to 'w' in the import/export format.
func Export(w io.Writer, b *Book) error {
	return EncodeBook(w, b)
}

// Import reads a snapshot from 'r' and returns the book it describes.
//
// Before decoding, the document structure is validated: the top-level object
// must carry the 'people', 'investments' and 'loans' collections. A document
// missing any of them is rejected with ErrStructuralValidation, so a stray
// file cannot silently wipe the ledger. The caller is responsible for
// confirming the replacement of current state.
func Import(r io.Reader) (*Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("snapshot is not valid JSON: %w", ErrStructuralValidation)
	}
	for _, path := range []string{"$.people", "$.investments", "$.loans"} {
		if _, err := jsonpath.Get(path, doc); err != nil {
			return nil, fmt.Errorf("snapshot has no %s collection: %w", path, ErrStructuralValidation)
		}
	}

	return DecodeBook(bytes.NewReader(data))
}
