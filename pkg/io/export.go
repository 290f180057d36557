package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/classgraph/pkg/model"
)

// FormatVersion is the version written by [WriteJSON].
const FormatVersion = 1

type document struct {
	Version int            `json:"version"`
	Classes []*model.Class `json:"classes"`
}

// WriteJSON encodes u as indented JSON and writes it to w.
func WriteJSON(u *model.Universe, w io.Writer) error {
	doc := document{Version: FormatVersion, Classes: u.Classes()}
	if doc.Classes == nil {
		doc.Classes = []*model.Class{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes u to a JSON file at path.
func ExportJSON(u *model.Universe, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(u, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
