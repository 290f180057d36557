package matcher

import (
	"regexp"

	"github.com/matzehuels/classgraph/pkg/model"
)

// Matcher is a predicate over the classes of a universe.
type Matcher interface {
	// Matches reports whether the declared class c matches.
	Matches(c *model.Class) bool
	// MatchesName reports whether the class called name matches. Names
	// unknown to the universe are judged by the name alone where possible.
	MatchesName(name string) bool
}

// Compile compiles expr anchored at both ends, the way class-name patterns
// are matched against qualified names.
func Compile(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + expr + `)$`)
}

// Package matches the classes declared in one package.
type Package struct {
	universe *model.Universe
	pkg      string
}

// NewPackage returns a matcher for the classes of pkg.
func NewPackage(u *model.Universe, pkg string) *Package {
	return &Package{universe: u, pkg: pkg}
}

func (m *Package) Matches(c *model.Class) bool { return c.Package == m.pkg }

func (m *Package) MatchesName(name string) bool {
	c := m.universe.Lookup(name)
	return c != nil && m.Matches(c)
}

// Pattern matches classes whose qualified name fully matches a regex.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern returns a name matcher for re.
func NewPattern(re *regexp.Regexp) *Pattern { return &Pattern{re: re} }

func (m *Pattern) Matches(c *model.Class) bool { return m.MatchesName(c.Name) }

func (m *Pattern) MatchesName(name string) bool { return m.re.MatchString(name) }

// Subclass matches classes whose name, or the name of one of their
// ancestors, matches a regex. The walk ends at the first supertype the
// universe does not declare.
type Subclass struct {
	universe *model.Universe
	re       *regexp.Regexp
}

// NewSubclass returns a subclass matcher for re.
func NewSubclass(u *model.Universe, re *regexp.Regexp) *Subclass {
	return &Subclass{universe: u, re: re}
}

func (m *Subclass) Matches(c *model.Class) bool {
	seen := make(map[string]bool)
	for c != nil && !seen[c.Name] {
		seen[c.Name] = true
		if m.re.MatchString(c.Name) {
			return true
		}
		if c.Super == nil {
			return false
		}
		if m.re.MatchString(c.Super.Name) {
			return true
		}
		c = m.universe.Lookup(c.Super.Name)
	}
	return false
}

func (m *Subclass) MatchesName(name string) bool {
	if c := m.universe.Lookup(name); c != nil {
		return m.Matches(c)
	}
	return m.re.MatchString(name)
}

// Interface matches classes that are, or transitively implement, an
// interface whose name matches a regex. Superclasses are followed too.
// Each type is visited at most once per query, so diamond-shaped
// hierarchies are walked in linear time.
type Interface struct {
	universe *model.Universe
	re       *regexp.Regexp
	visits   int
}

// NewInterface returns an interface matcher for re.
func NewInterface(u *model.Universe, re *regexp.Regexp) *Interface {
	return &Interface{universe: u, re: re}
}

func (m *Interface) Matches(c *model.Class) bool {
	m.visits = 0
	return m.match(c, make(map[string]bool))
}

func (m *Interface) MatchesName(name string) bool {
	if c := m.universe.Lookup(name); c != nil {
		return m.Matches(c)
	}
	m.visits = 0
	return false
}

// Visits returns the number of types examined by the last query.
func (m *Interface) Visits() int { return m.visits }

func (m *Interface) match(c *model.Class, visited map[string]bool) bool {
	if visited[c.Name] {
		return false
	}
	visited[c.Name] = true
	m.visits++

	if c.IsInterface() && m.re.MatchString(c.Name) {
		return true
	}
	for _, iface := range c.Interfaces {
		if m.matchRef(iface.Name, true, visited) {
			return true
		}
	}
	if c.Super != nil {
		return m.matchRef(c.Super.Name, false, visited)
	}
	return false
}

// matchRef follows a supertype reference. Types outside the universe are
// leaves: an undeclared interface matches by name alone.
func (m *Interface) matchRef(name string, isInterface bool, visited map[string]bool) bool {
	if sc := m.universe.Lookup(name); sc != nil {
		return m.match(sc, visited)
	}
	if visited[name] {
		return false
	}
	visited[name] = true
	m.visits++
	return isInterface && m.re.MatchString(name)
}
