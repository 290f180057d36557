package model

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrDuplicateClass is returned by [Universe.Add] when a class with the same
// qualified name is already present.
var ErrDuplicateClass = errors.New("duplicate class")

// ErrEmptyClassName is returned by [Universe.Add] for a class without a name.
var ErrEmptyClassName = errors.New("class name must not be empty")

// Provider produces the universe of classes to diagram.
type Provider interface {
	Load(ctx context.Context) (*Universe, error)
}

// ProviderFunc adapts a function to the [Provider] interface.
type ProviderFunc func(ctx context.Context) (*Universe, error)

// Load calls f(ctx).
func (f ProviderFunc) Load(ctx context.Context) (*Universe, error) { return f(ctx) }

// Universe is an ordered, name-indexed set of classes. The order is the
// order classes were added and drives the output order of the diagram.
//
// A Universe is safe for concurrent reads once fully built.
type Universe struct {
	classes []*Class
	byName  map[string]*Class
}

// NewUniverse returns a universe containing the given classes. Duplicates
// keep the first occurrence.
func NewUniverse(classes ...*Class) *Universe {
	u := &Universe{byName: make(map[string]*Class, len(classes))}
	for _, c := range classes {
		_ = u.Add(c)
	}
	return u
}

// Add appends c to the universe.
func (u *Universe) Add(c *Class) error {
	if c == nil || c.Name == "" {
		return ErrEmptyClassName
	}
	if u.byName == nil {
		u.byName = make(map[string]*Class)
	}
	if _, ok := u.byName[c.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, c.Name)
	}
	u.byName[c.Name] = c
	u.classes = append(u.classes, c)
	return nil
}

// Lookup returns the class with the given qualified name. Generic arguments
// in name are ignored. It returns nil when the class is unknown.
func (u *Universe) Lookup(name string) *Class {
	if u == nil {
		return nil
	}
	if c, ok := u.byName[name]; ok {
		return c
	}
	if strings.IndexByte(name, '<') >= 0 {
		return u.byName[RemoveTemplate(name)]
	}
	return nil
}

// Contains reports whether name is a known class.
func (u *Universe) Contains(name string) bool { return u.Lookup(name) != nil }

// Len returns the number of classes.
func (u *Universe) Len() int {
	if u == nil {
		return 0
	}
	return len(u.classes)
}

// Classes returns all classes in insertion order.
func (u *Universe) Classes() []*Class {
	if u == nil {
		return nil
	}
	return slices.Clone(u.classes)
}

// Included returns the classes that are part of the documented set, in
// insertion order.
func (u *Universe) Included() []*Class {
	if u == nil {
		return nil
	}
	out := make([]*Class, 0, len(u.classes))
	for _, c := range u.classes {
		if !c.External {
			out = append(out, c)
		}
	}
	return out
}

// IsIncluded reports whether name is a documented class.
func (u *Universe) IsIncluded(name string) bool {
	c := u.Lookup(name)
	return c != nil && !c.External
}

// Packages returns the sorted, distinct packages of the documented classes.
func (u *Universe) Packages() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range u.Included() {
		if !seen[c.Package] {
			seen[c.Package] = true
			out = append(out, c.Package)
		}
	}
	slices.Sort(out)
	return out
}

// ClassesIn returns the documented classes of pkg in insertion order.
func (u *Universe) ClassesIn(pkg string) []*Class {
	var out []*Class
	for _, c := range u.Included() {
		if c.Package == pkg {
			out = append(out, c)
		}
	}
	return out
}

// Resolve maps a class name as written in the documentation of from to a
// qualified name. Qualified names known to the universe are returned as is.
// Simple names are looked up among the nested classes of from, in the
// package of from, then through its single-type and on-demand imports.
// The second result is false when no class matched; name is then returned
// unchanged.
func (u *Universe) Resolve(from *Class, name string) (string, bool) {
	if c := u.Lookup(name); c != nil {
		return c.Name, true
	}
	if from == nil || name == "" {
		return name, false
	}
	base := RemoveTemplate(name)
	candidates := []string{from.Name + "." + base}
	if from.Outer != "" {
		candidates = append(candidates, from.Outer+"."+base)
	}
	if from.Package != "" {
		candidates = append(candidates, from.Package+"."+base)
	}
	first, _, _ := strings.Cut(base, ".")
	for _, imp := range from.Imports {
		if strings.HasSuffix(imp, ".*") {
			candidates = append(candidates, strings.TrimSuffix(imp, "*")+base)
			continue
		}
		if SimpleName(imp) == first {
			candidates = append(candidates, strings.TrimSuffix(imp, first)+base)
		}
	}
	for _, cand := range candidates {
		if c := u.Lookup(cand); c != nil {
			return c.Name, true
		}
	}
	return name, false
}

// Static returns a provider that always yields u.
func Static(u *Universe) Provider {
	return ProviderFunc(func(context.Context) (*Universe, error) { return u, nil })
}
