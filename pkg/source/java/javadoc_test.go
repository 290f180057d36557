package java

import (
	"reflect"
	"testing"

	"github.com/matzehuels/classgraph/pkg/model"
)

func TestParseDoc(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    model.Doc
	}{
		{
			name:    "one line",
			comment: "/** Short. */",
			want:    model.Doc{Body: "Short."},
		},
		{
			name:    "empty",
			comment: "/** */",
			want:    model.Doc{},
		},
		{
			name: "body and tags",
			comment: "/**\n" +
				" * First line.\n" +
				" *   indented\n" +
				" *\n" +
				" * @opt -attributes\n" +
				" * @hidden\n" +
				" */",
			want: model.Doc{
				Body: "First line.\n  indented",
				Tags: []model.Tag{{Name: "opt", Text: "-attributes"}, {Name: "hidden"}},
			},
		},
		{
			name: "multi-line tag",
			comment: "/**\n" +
				" * @note first\n" +
				" *       second\n" +
				" * @assoc 1 uses * Other\n" +
				" */",
			want: model.Doc{Tags: []model.Tag{
				{Name: "note", Text: "first\nsecond"},
				{Name: "assoc", Text: "1 uses * Other"},
			}},
		},
		{
			name:    "tab after tag name",
			comment: "/** \n * @stereotype\tentity\n */",
			want:    model.Doc{Tags: []model.Tag{{Name: "stereotype", Text: "entity"}}},
		},
		{
			name:    "no leading asterisks",
			comment: "/**\n   Body text\n   @depend Other\n*/",
			want:    model.Doc{Body: "Body text", Tags: []model.Tag{{Name: "depend", Text: "Other"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDoc(tt.comment)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDoc() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
