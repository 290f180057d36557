package model

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestTypeRefString(t *testing.T) {
	tests := []struct {
		name string
		ref  TypeRef
		want string
	}{
		{"simple", TypeRef{Name: "com.example.Foo"}, "com.example.Foo"},
		{"array", TypeRef{Name: "int", Primitive: true, Dims: 2}, "int[][]"},
		{
			"generic",
			TypeRef{Name: "java.util.Map", Args: []TypeRef{
				{Name: "java.lang.String"},
				{Name: "java.util.List", Args: []TypeRef{{Name: "T", TypeVar: true}}},
			}},
			"java.util.Map<java.lang.String, java.util.List<T>>",
		},
		{
			"wildcard",
			TypeRef{Name: "java.util.List", Args: []TypeRef{
				{Name: "?", Wildcard: true, Bounds: []TypeRef{{Name: "Number"}}},
			}},
			"java.util.List<? extends Number>",
		},
		{"super wildcard", TypeRef{Name: "?", Wildcard: true, Super: true, Bounds: []TypeRef{{Name: "T"}}}, "? super T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	arr := TypeRef{Name: "Foo", Dims: 1}
	if got := arr.ElementString(); got != "Foo" {
		t.Errorf("ElementString() = %q, want Foo", got)
	}
	if !arr.IsArray() || arr.Element().IsArray() {
		t.Error("Element() should drop array dimensions")
	}
}

func TestVisibility(t *testing.T) {
	if !(Private < Package && Package < Protected && Protected < Public) {
		t.Fatal("visibility levels are not ordered")
	}
	symbols := map[Visibility]string{Private: "-", Package: "~", Protected: "#", Public: "+"}
	for v, s := range symbols {
		if v.Symbol() != s {
			t.Errorf("%v.Symbol() = %q, want %q", v, v.Symbol(), s)
		}
	}
	v, err := ParseVisibility("PROTECTED")
	if err != nil || v != Protected {
		t.Errorf("ParseVisibility(PROTECTED) = %v, %v", v, err)
	}
	if _, err := ParseVisibility("friend"); err == nil {
		t.Error("ParseVisibility(friend) error = nil, want error")
	}
}

func TestDocFind(t *testing.T) {
	d := Doc{Tags: []Tag{
		{Name: "opt", Text: "-attributes"},
		{Name: "has", Text: "1 - * Bar"},
		{Name: "opt", Text: "-operations"},
	}}
	opts := d.Find("opt")
	if len(opts) != 2 || opts[1].Text != "-operations" {
		t.Errorf("Find(opt) = %v", opts)
	}
	if !d.Has("has") || d.Has("view") {
		t.Error("Has() mismatch")
	}
	if got := d.Find("has")[0].Fields(); !slices.Equal(got, []string{"1", "-", "*", "Bar"}) {
		t.Errorf("Fields() = %q", got)
	}
}

func TestUniverse(t *testing.T) {
	foo := &Class{Name: "a.Foo", Package: "a"}
	bar := &Class{Name: "b.Bar", Package: "b", Imports: []string{"a.Foo"}}
	inner := &Class{Name: "b.Bar.Inner", Package: "b", Outer: "b.Bar"}
	ext := &Class{Name: "java.lang.Object", Package: "java.lang", External: true}

	u := NewUniverse(foo, bar, inner, ext)
	if u.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", u.Len())
	}
	if err := u.Add(&Class{Name: "a.Foo"}); !errors.Is(err, ErrDuplicateClass) {
		t.Errorf("Add(duplicate) error = %v, want ErrDuplicateClass", err)
	}
	if err := u.Add(&Class{}); !errors.Is(err, ErrEmptyClassName) {
		t.Errorf("Add(empty) error = %v, want ErrEmptyClassName", err)
	}

	if u.Lookup("a.Foo<T>") != foo {
		t.Error("Lookup should ignore generic arguments")
	}
	if got := u.Packages(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Packages() = %v", got)
	}
	if got := u.ClassesIn("b"); len(got) != 2 {
		t.Errorf("ClassesIn(b) = %d classes, want 2", len(got))
	}
	if u.IsIncluded("java.lang.Object") {
		t.Error("external class reported as included")
	}

	tests := []struct {
		name   string
		from   *Class
		target string
		want   string
		ok     bool
	}{
		{"qualified", bar, "a.Foo", "a.Foo", true},
		{"import", bar, "Foo", "a.Foo", true},
		{"nested", bar, "Inner", "b.Bar.Inner", true},
		{"same package", inner, "Bar", "b.Bar", true},
		{"unknown", bar, "Baz", "Baz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := u.Resolve(tt.from, tt.target)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Resolve(%q) = %q, %v, want %q, %v", tt.target, got, ok, tt.want, tt.ok)
			}
		})
	}

	loaded, err := Static(u).Load(context.Background())
	if err != nil || loaded != u {
		t.Errorf("Static().Load() = %v, %v", loaded, err)
	}
}
