package java

import (
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/classgraph/pkg/model"
)

// javaLang lists the java.lang types that are visible without an import.
var javaLang = map[string]bool{
	"AutoCloseable": true, "Boolean": true, "Byte": true, "CharSequence": true,
	"Character": true, "Class": true, "ClassLoader": true, "Cloneable": true,
	"Comparable": true, "Deprecated": true, "Double": true, "Enum": true,
	"Error": true, "Exception": true, "Float": true, "FunctionalInterface": true,
	"IllegalArgumentException": true, "IllegalStateException": true,
	"IndexOutOfBoundsException": true, "Integer": true, "Iterable": true,
	"Long": true, "Math": true, "NullPointerException": true, "Number": true,
	"Object": true, "Override": true, "Process": true, "Record": true,
	"Runnable": true, "RuntimeException": true, "Short": true, "String": true,
	"StringBuffer": true, "StringBuilder": true, "System": true, "Thread": true,
	"Throwable": true, "UnsupportedOperationException": true, "Void": true,
}

// resolver qualifies the type references of parsed classes against the
// set of parsed class names.
type resolver struct {
	byName map[string]*model.Class
}

func newResolver(classes []*model.Class) *resolver {
	r := &resolver{byName: make(map[string]*model.Class, len(classes))}
	for _, c := range classes {
		if _, ok := r.byName[c.Name]; !ok {
			r.byName[c.Name] = c
		}
	}
	return r
}

func (r *resolver) class(c *model.Class) {
	vars := r.typeVars(c, nil)
	for i := range c.TypeParams {
		r.bounds(c, vars, c.TypeParams[i].Bounds)
	}
	if c.Super != nil {
		s := r.ref(c, vars, *c.Super)
		c.Super = &s
	}
	for i := range c.Interfaces {
		c.Interfaces[i] = r.ref(c, vars, c.Interfaces[i])
	}
	for i := range c.Fields {
		c.Fields[i].Type = r.ref(c, vars, c.Fields[i].Type)
	}
	r.methods(c, vars, c.Methods)
	r.methods(c, vars, c.Constructors)
}

func (r *resolver) methods(c *model.Class, vars map[string]bool, ms []model.Method) {
	for i := range ms {
		m := &ms[i]
		mv := vars
		if len(m.TypeParams) > 0 {
			mv = r.typeVars(nil, m.TypeParams)
			for v := range vars {
				mv[v] = true
			}
			for j := range m.TypeParams {
				r.bounds(c, mv, m.TypeParams[j].Bounds)
			}
		}
		if m.Return.Name != "" {
			m.Return = r.ref(c, mv, m.Return)
		}
		for j := range m.Params {
			m.Params[j].Type = r.ref(c, mv, m.Params[j].Type)
		}
	}
}

func (r *resolver) bounds(c *model.Class, vars map[string]bool, bs []model.TypeRef) {
	for i := range bs {
		bs[i] = r.ref(c, vars, bs[i])
	}
}

// typeVars collects the type parameters visible in c: its own and those of
// its enclosing classes, plus extra.
func (r *resolver) typeVars(c *model.Class, extra []model.TypeParam) map[string]bool {
	vars := make(map[string]bool)
	for _, tp := range extra {
		vars[tp.Name] = true
	}
	for ; c != nil; c = r.byName[c.Outer] {
		for _, tp := range c.TypeParams {
			vars[tp.Name] = true
		}
	}
	return vars
}

func (r *resolver) ref(c *model.Class, vars map[string]bool, t model.TypeRef) model.TypeRef {
	t.Args = slices.Clone(t.Args)
	t.Bounds = slices.Clone(t.Bounds)
	for i := range t.Args {
		t.Args[i] = r.ref(c, vars, t.Args[i])
	}
	for i := range t.Bounds {
		t.Bounds[i] = r.ref(c, vars, t.Bounds[i])
	}
	if t.Primitive || t.Wildcard || t.Name == "" {
		return t
	}
	if vars[t.Name] {
		t.TypeVar = true
		return t
	}
	if q, ok := r.name(c, t.Name); ok {
		t.Name = q
	} else {
		t.Unresolved = true
	}
	return t
}

// name qualifies a type name as written in c.
func (r *resolver) name(c *model.Class, name string) (string, bool) {
	first, rest, dotted := strings.Cut(name, ".")
	if !dotted {
		return r.simple(c, name)
	}
	if q, ok := r.simple(c, first); ok {
		return q + "." + rest, true
	}
	if r.byName[name] != nil || isPackageSegment(first) {
		return name, true
	}
	return name, false
}

func (r *resolver) simple(c *model.Class, name string) (string, bool) {
	for s := c; s != nil; s = r.byName[s.Outer] {
		if model.SimpleName(s.Name) == name {
			return s.Name, true
		}
		if r.byName[s.Name+"."+name] != nil {
			return s.Name + "." + name, true
		}
	}
	for _, imp := range c.Imports {
		if !strings.HasSuffix(imp, ".*") && model.SimpleName(imp) == name {
			return imp, true
		}
	}
	if q := qualify(c.Package, name); r.byName[q] != nil {
		return q, true
	}
	for _, imp := range c.Imports {
		if pkg, ok := strings.CutSuffix(imp, ".*"); ok {
			if q := pkg + "." + name; r.byName[q] != nil {
				return q, true
			}
		}
	}
	if javaLang[name] {
		return "java.lang." + name, true
	}
	return name, false
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func isPackageSegment(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
