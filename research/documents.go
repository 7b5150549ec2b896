// Document ingestion for uploaded files.
//
// Each file is read and decoded independently; a file that cannot be read
// or is not valid text is skipped with a recorded reason, never aborting
// the rest of the upload. Skip reasons are part of the returned bundle so
// callers can surface them, not just a log side-channel.

package research

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// FileHandle identifies one uploaded file: where it lives on disk and the
// name it was uploaded under.
type FileHandle struct {
	Path string
	Name string
}

// Document is one successfully ingested file.
type Document struct {
	Name string
	Text string
}

// SkipWarning records why a file was left out of the bundle.
type SkipWarning struct {
	Name   string
	Reason string
}

// DocumentBundle is the ordered result of ingesting an upload set.
// Document order equals upload order. May be empty.
type DocumentBundle struct {
	Documents []Document
	Skipped   []SkipWarning
}

// Empty reports whether the bundle contains no documents.
func (b DocumentBundle) Empty() bool {
	return len(b.Documents) == 0
}

// IngestDocuments reads each uploaded file as text, in input order.
// An empty input produces an empty bundle, not an error.
func IngestDocuments(files []FileHandle) DocumentBundle {
	var bundle DocumentBundle

	for _, fh := range files {
		text, err := readTextFile(fh.Path)
		if err != nil {
			bundle.Skipped = append(bundle.Skipped, SkipWarning{
				Name:   fh.Name,
				Reason: err.Error(),
			})
			continue
		}
		bundle.Documents = append(bundle.Documents, Document{
			Name: fh.Name,
			Text: text,
		})
	}

	return bundle
}

// readTextFile opens, reads and validates one file. The handle is closed on
// every path, including decode failure.
func readTextFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("could not read file: %w", err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}

	return string(data), nil
}
