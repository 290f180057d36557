package io

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
)

func sample() *model.Universe {
	return model.NewUniverse(
		&model.Class{
			Name:      "com.acme.Widget",
			Package:   "com.acme",
			Kind:      model.KindClass,
			Modifiers: model.Modifiers{Visibility: model.Public, Abstract: true},
			Super:     &model.TypeRef{Name: "com.acme.Base"},
			Fields: []model.Field{{
				Name:      "parts",
				Type:      model.TypeRef{Name: "java.util.List", Args: []model.TypeRef{{Name: "com.acme.Part"}}},
				Modifiers: model.Modifiers{Visibility: model.Private},
			}},
			Doc: model.Doc{Body: "A widget.", Tags: []model.Tag{{Name: "opt", Text: "-attributes"}}},
		},
		&model.Class{Name: "com.acme.Shape", Package: "com.acme", Kind: model.KindInterface},
		&model.Class{Name: "java.util.List", Package: "java.util", Kind: model.KindInterface, External: true},
	)
}

func TestRoundTrip(t *testing.T) {
	u := sample()
	var buf bytes.Buffer
	if err := WriteJSON(u, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "interface"`) {
		t.Errorf("kinds should be written by name:\n%s", buf.String())
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(got.Classes(), u.Classes()) {
		t.Errorf("round trip changed the model")
	}
	if got.Lookup("com.acme.Widget") == nil {
		t.Error("imported universe is not indexed")
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"version": 1, "classes": [`},
		{"version", `{"version": 7, "classes": []}`},
		{"unnamed", `{"version": 1, "classes": [{"kind": "class"}]}`},
		{"duplicate", `{"version": 1, "classes": [{"name": "a.B"}, {"name": "a.B"}]}`},
		{"null", `{"version": 1, "classes": [null]}`},
		{"bad kind", `{"version": 1, "classes": [{"name": "a.B", "kind": "struct"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ReadJSON(%s) = %v, want INVALID_INPUT", tt.in, err)
			}
		})
	}
}

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := ExportJSON(sample(), path); err != nil {
		t.Fatal(err)
	}
	u, err := Provider(path).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if u.Len() != 3 {
		t.Errorf("Len = %d, want 3", u.Len())
	}
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "none.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
}
