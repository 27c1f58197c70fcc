package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/phanxgames/emojiart"
)

// loadDocument reads a document from path. A missing file yields an empty
// document; a file that fails to decode is an error.
func loadDocument(path string) (*emojiart.Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return emojiart.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	doc, err := emojiart.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// saveDocument writes doc to path through a temporary file so a failed
// write never truncates the previous version.
func saveDocument(path string, doc *emojiart.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create document dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".emojiart-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
