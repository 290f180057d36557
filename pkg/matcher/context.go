package matcher

import (
	"regexp"
	"slices"

	"github.com/matzehuels/classgraph/pkg/catalog"
	"github.com/matzehuels/classgraph/pkg/infer"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/options"
)

// Context matches the classes directly related to a center: the classes
// whose names match the center regex, and every class connected to one of
// them by a relation whose kind and direction the context pattern admits.
//
// Relations are discovered with a private catalog built the same way a
// diagram pass builds its own, with hiding, attributes and operations
// turned off. Classes are added to that catalog lazily as they are
// queried. [Context.SetCenter] starts over with an empty catalog.
//
// A Context is not safe for concurrent use.
type Context struct {
	universe   *model.Universe
	opt        *options.Options
	parentHide *options.Options
	pattern    *catalog.Pattern

	center  *regexp.Regexp
	matched []*model.Class
	catalog *catalog.Catalog
	builder *infer.Builder
	visited map[string]bool
}

// NewContext returns a context matcher over u centered on the classes
// matching center. With keepParentHide, classes hidden by the hide
// patterns of opt never match.
func NewContext(u *model.Universe, opt *options.Options, center *regexp.Regexp, keepParentHide bool) *Context {
	m := &Context{universe: u, pattern: opt.ContextPattern.Clone()}
	if keepParentHide {
		m.parentHide = opt.Clone()
	}
	m.opt = opt.Clone()
	_ = m.opt.Set([]string{"-!hide"})
	_ = m.opt.Set([]string{"-!attributes"})
	_ = m.opt.Set([]string{"-!operations"})
	m.SetCenter(center)
	return m
}

// SetCenter moves the context to the classes matching center. Nothing
// learned about the previous center is kept.
func (m *Context) SetCenter(center *regexp.Regexp) {
	m.center = center
	m.matched = nil
	m.visited = make(map[string]bool)
	p := options.Static(m.opt)
	m.catalog = catalog.New(infer.HideFunc(m.universe, p))
	m.builder = infer.NewBuilder(m.universe, m.catalog, p, nil)
	for _, c := range m.universe.Classes() {
		if center.MatchString(c.Name) {
			m.matched = append(m.matched, c)
			m.add(c)
		}
	}
}

// Center returns the classes the context is centered on.
func (m *Context) Center() []*model.Class { return slices.Clone(m.matched) }

func (m *Context) Matches(c *model.Class) bool {
	if m.parentHide != nil && m.parentHide.MatchesHide(c.Name) {
		return false
	}
	if slices.Contains(m.matched, c) {
		return true
	}
	m.add(c)
	for _, center := range m.matched {
		n := m.catalog.Lookup(center.Name)
		if n == nil {
			continue
		}
		if rp := n.Relation(c.Name); !rp.Empty() && m.pattern.MatchesOne(rp) {
			return true
		}
	}
	return false
}

func (m *Context) MatchesName(name string) bool {
	c := m.universe.Lookup(name)
	return c != nil && m.Matches(c)
}

// add records the relations of c once per center.
func (m *Context) add(c *model.Class) {
	if m.visited[c.Name] {
		return
	}
	m.visited[c.Name] = true
	if _, err := m.catalog.Node(c.Name); err != nil {
		return
	}
	m.builder.Explicit(c)
	if m.opt.InferRelationships {
		m.builder.Relations(c)
	}
	if m.opt.InferDependencies {
		m.builder.Dependencies(c)
	}
}
