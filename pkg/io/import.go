package io

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
)

// ReadJSON decodes a model from r.
//
// ReadJSON returns an INVALID_INPUT error if the JSON is malformed, the
// version is not [FormatVersion], or a class is unnamed or declared twice.
// It does not close r.
func ReadJSON(r io.Reader) (*model.Universe, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode model")
	}
	if doc.Version != FormatVersion {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported model version %d (want %d)", doc.Version, FormatVersion)
	}
	u := model.NewUniverse()
	for i, c := range doc.Classes {
		if c == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "class %d: null entry", i)
		}
		if err := u.Add(c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "class %d (%s)", i, c.Name)
		}
	}
	return u, nil
}

// ImportJSON reads a model from the JSON file at path.
func ImportJSON(path string) (*model.Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "model file not found: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Provider returns a model provider reading the JSON file at path.
func Provider(path string) model.Provider {
	return model.ProviderFunc(func(context.Context) (*model.Universe, error) {
		return ImportJSON(path)
	})
}
