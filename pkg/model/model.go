package model

import (
	"fmt"
	"strings"
)

// Kind distinguishes classes, interfaces and enums.
type Kind int

const (
	KindClass Kind = iota
	KindInterface
	KindEnum
)

var kindNames = [...]string{"class", "interface", "enum"}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses a kind name. The empty string is a class.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "class":
		return KindClass, nil
	case "interface":
		return KindInterface, nil
	case "enum":
		return KindEnum, nil
	}
	return KindClass, fmt.Errorf("unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Visibility is a member or class access level. Levels are ordered from the
// most restrictive to the least restrictive so they can be compared.
type Visibility int

const (
	Private Visibility = iota
	Package
	Protected
	Public
)

var visibilityNames = [...]string{"private", "package", "protected", "public"}

// String returns the lower-case visibility name.
func (v Visibility) String() string {
	if v < 0 || int(v) >= len(visibilityNames) {
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
	return visibilityNames[v]
}

// Symbol returns the UML visibility marker: "-", "~", "#" or "+".
func (v Visibility) Symbol() string {
	switch v {
	case Private:
		return "-"
	case Package:
		return "~"
	case Protected:
		return "#"
	}
	return "+"
}

// ParseVisibility parses a visibility name case-insensitively.
func ParseVisibility(s string) (Visibility, error) {
	for i, n := range visibilityNames {
		if strings.EqualFold(s, n) {
			return Visibility(i), nil
		}
	}
	return Private, fmt.Errorf("unknown visibility %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Visibility) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Visibility) UnmarshalText(b []byte) error {
	p, err := ParseVisibility(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// Modifiers holds the declaration modifiers the engine cares about.
type Modifiers struct {
	Visibility Visibility `json:"visibility"`
	Static     bool       `json:"static,omitempty"`
	Abstract   bool       `json:"abstract,omitempty"`
	Final      bool       `json:"final,omitempty"`
}

// TypeRef is a reference to a type as written in a declaration.
//
// Name is the qualified name when the provider could resolve it and the
// name as written otherwise (Unresolved is then set). Primitive types and
// type variables carry their bare name. A wildcard has Name "?" and keeps
// its bound in Bounds.
type TypeRef struct {
	Name       string    `json:"name"`
	Args       []TypeRef `json:"args,omitempty"`
	Dims       int       `json:"dims,omitempty"`
	Primitive  bool      `json:"primitive,omitempty"`
	TypeVar    bool      `json:"typeVar,omitempty"`
	Wildcard   bool      `json:"wildcard,omitempty"`
	Unresolved bool      `json:"unresolved,omitempty"`
	Bounds     []TypeRef `json:"bounds,omitempty"`
	// Super marks a lower-bounded wildcard ("? super T").
	Super bool `json:"super,omitempty"`
}

// String renders the reference as "a.b.C<x.Y>[]".
func (t TypeRef) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

// ElementString renders the reference without array dimensions.
func (t TypeRef) ElementString() string {
	e := t
	e.Dims = 0
	return e.String()
}

func (t TypeRef) write(b *strings.Builder) {
	if t.Wildcard {
		b.WriteString("?")
		if len(t.Bounds) > 0 {
			if t.Super {
				b.WriteString(" super ")
			} else {
				b.WriteString(" extends ")
			}
			t.Bounds[0].write(b)
		}
		return
	}
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.write(b)
		}
		b.WriteByte('>')
	}
	for i := 0; i < t.Dims; i++ {
		b.WriteString("[]")
	}
}

// IsArray reports whether the reference has array dimensions.
func (t TypeRef) IsArray() bool { return t.Dims > 0 }

// Element returns the array element type, or t itself.
func (t TypeRef) Element() TypeRef {
	t.Dims = 0
	return t
}

// Tag is one documentation block tag, stored without the leading '@'.
type Tag struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Fields splits the tag text with [Tokenize].
func (t Tag) Fields() []string { return Tokenize(t.Text) }

// Doc is a parsed documentation comment.
type Doc struct {
	Body string `json:"body,omitempty"`
	Tags []Tag  `json:"tags,omitempty"`
}

// Find returns the tags with the given name in source order.
func (d Doc) Find(name string) []Tag {
	var out []Tag
	for _, t := range d.Tags {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// Has reports whether a tag with the given name exists.
func (d Doc) Has(name string) bool {
	for _, t := range d.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Field is a class attribute.
type Field struct {
	Name      string    `json:"name"`
	Type      TypeRef   `json:"type"`
	Modifiers Modifiers `json:"modifiers"`
	Doc       Doc       `json:"doc,omitzero"`
}

// Param is a method or constructor parameter.
type Param struct {
	Name string  `json:"name"`
	Type TypeRef `json:"type"`
}

// TypeParam is a generic type parameter with its upper bounds.
type TypeParam struct {
	Name   string    `json:"name"`
	Bounds []TypeRef `json:"bounds,omitempty"`
}

// Method is a method or a constructor. Constructors have no return type.
type Method struct {
	Name       string      `json:"name"`
	Return     TypeRef     `json:"return,omitzero"`
	Params     []Param     `json:"params,omitempty"`
	TypeParams []TypeParam `json:"typeParams,omitempty"`
	Modifiers  Modifiers   `json:"modifiers"`
	Doc        Doc         `json:"doc,omitzero"`
}

// EnumConstant is one constant of an enum.
type EnumConstant struct {
	Name string `json:"name"`
	Doc  Doc    `json:"doc,omitzero"`
}

// Class is a class, interface or enum declaration.
type Class struct {
	// Name is the qualified name without generic arguments.
	Name         string         `json:"name"`
	Package      string         `json:"package,omitempty"`
	Kind         Kind           `json:"kind"`
	Modifiers    Modifiers      `json:"modifiers"`
	Super        *TypeRef       `json:"super,omitempty"`
	Interfaces   []TypeRef      `json:"interfaces,omitempty"`
	TypeParams   []TypeParam    `json:"typeParams,omitempty"`
	Fields       []Field        `json:"fields,omitempty"`
	Methods      []Method       `json:"methods,omitempty"`
	Constructors []Method       `json:"constructors,omitempty"`
	Constants    []EnumConstant `json:"constants,omitempty"`
	// Imports lists single-type imports by qualified name and on-demand
	// imports as "pkg.*".
	Imports []string `json:"imports,omitempty"`
	// Outer is the qualified name of the enclosing class of a nested class.
	Outer string `json:"outer,omitempty"`
	Doc   Doc    `json:"doc,omitzero"`
	// External marks classes known to the model but not part of the
	// documented set, e.g. library classes.
	External bool `json:"external,omitempty"`
}

// SimpleName returns the class name without its package. Nested classes
// keep their outer prefix ("Outer.Inner").
func (c *Class) SimpleName() string {
	if c.Package != "" && strings.HasPrefix(c.Name, c.Package+".") {
		return c.Name[len(c.Package)+1:]
	}
	return SimpleName(c.Name)
}

// IsInterface reports whether c is an interface.
func (c *Class) IsInterface() bool { return c.Kind == KindInterface }

// IsEnum reports whether c is an enum.
func (c *Class) IsEnum() bool { return c.Kind == KindEnum }

// IsAbstract reports whether c is abstract. Interfaces are abstract.
func (c *Class) IsAbstract() bool { return c.Modifiers.Abstract || c.Kind == KindInterface }

// IsNested reports whether c is declared inside another class.
func (c *Class) IsNested() bool { return c.Outer != "" }
