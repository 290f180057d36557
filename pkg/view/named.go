package view

import (
	"strings"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/matcher"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/options"
)

// Named is a view defined in the documentation of a class carrying a
// "view" tag:
//
//	/**
//	 * @view
//	 * @opt attributes
//	 * @match class com\.acme\.web\..*
//	 * @opt nodefillcolor LightGray
//	 * @match subclass .*Exception
//	 * @opt hide
//	 */
//	public class WebView extends BaseView {}
//
// "opt" tags before the first "match" tag apply to the whole diagram. Each
// "match" tag opens a clause whose "opt" tags apply to the classes the
// clause matches. A view extending another view inherits its settings and
// clauses; its own come after them.
type Named struct {
	class   *model.Class
	parent  *Named
	base    *options.Options
	global  [][]string
	clauses []clause
}

type clause struct {
	matcher matcher.Matcher
	opts    [][]string
}

// FindNamed returns the view defined by the class called name. The name
// may be qualified or simple. It returns a RESOLUTION error when no such
// class exists, when it is not a view, or when it is abstract.
func FindNamed(u *model.Universe, base *options.Options, name string, diag *errors.Diagnostics) (*Named, error) {
	c := u.Lookup(name)
	if c == nil {
		for _, cand := range u.Classes() {
			if cand.SimpleName() == name {
				c = cand
				break
			}
		}
	}
	switch {
	case c == nil:
		return nil, errors.New(errors.ErrCodeResolution, "view %s not found", name)
	case !c.Doc.Has("view"):
		return nil, errors.New(errors.ErrCodeResolution, "%s is not a view", c.Name)
	case c.IsAbstract():
		return nil, errors.New(errors.ErrCodeResolution, "%s is an abstract view, no output will be generated", c.Name)
	}
	return buildNamed(u, base, c, diag, make(map[string]bool)), nil
}

// AllNamed returns every non-abstract view declared in u, in universe
// order.
func AllNamed(u *model.Universe, base *options.Options, diag *errors.Diagnostics) []*Named {
	var out []*Named
	for _, c := range u.Classes() {
		if c.Doc.Has("view") && !c.IsAbstract() {
			out = append(out, buildNamed(u, base, c, diag, make(map[string]bool)))
		}
	}
	return out
}

func buildNamed(u *model.Universe, base *options.Options, c *model.Class, diag *errors.Diagnostics, seen map[string]bool) *Named {
	seen[c.Name] = true
	v := &Named{class: c, base: base.Clone()}
	if c.Super != nil && !seen[c.Super.Name] {
		if sc := u.Lookup(c.Super.Name); sc != nil && sc.Doc.Has("view") {
			v.parent = buildNamed(u, base, sc, diag, seen)
		}
	}

	type pending struct {
		tag  model.Tag
		opts [][]string
	}
	var clauses []*pending
	for _, tag := range c.Doc.Tags {
		switch tag.Name {
		case "match":
			clauses = append(clauses, &pending{tag: tag})
		case "opt":
			tokens := tag.Fields()
			if len(tokens) == 0 {
				continue
			}
			if err := options.New().Set(tokens); err != nil && diag != nil {
				diag.Add(c.Name, err)
			}
			if len(clauses) == 0 {
				v.global = append(v.global, tokens)
			} else {
				last := clauses[len(clauses)-1]
				last.opts = append(last.opts, tokens)
			}
		}
	}
	for _, p := range clauses {
		m, err := v.buildMatcher(u, p.tag.Text)
		if err != nil {
			if diag != nil {
				diag.Add(c.Name, err)
			}
			continue
		}
		v.clauses = append(v.clauses, clause{matcher: m, opts: p.opts})
	}
	return v
}

func (v *Named) buildMatcher(u *model.Universe, text string) (matcher.Matcher, error) {
	fields := model.Tokenize(text)
	if len(fields) < 2 {
		return nil, errors.New(errors.ErrCodeConfiguration, "skipping incomplete @match tag %q: type or pattern missing", text)
	}
	kind, expr := strings.ToLower(fields[0]), fields[1]
	if kind == "package" {
		return matcher.NewPackage(u, expr), nil
	}
	re, err := matcher.Compile(expr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "skipping @match tag with invalid pattern %q", expr)
	}
	switch kind {
	case "class":
		return matcher.NewPattern(re), nil
	case "subclass":
		return matcher.NewSubclass(u, re), nil
	case "interface":
		return matcher.NewInterface(u, re), nil
	case "context":
		return matcher.NewContext(u, v.GlobalOptions(), re, false), nil
	}
	return nil, errors.New(errors.ErrCodeConfiguration, "skipping @match tag with unknown type %q", fields[0])
}

// Class returns the class defining the view.
func (v *Named) Class() *model.Class { return v.class }

// GlobalOptions returns the base options with the global settings of the
// view chain applied. Without an explicit -output the diagram is written to
// "<SimpleName>.dot".
func (v *Named) GlobalOptions() *options.Options {
	var o *options.Options
	if v.parent != nil {
		o = v.parent.GlobalOptions()
	} else {
		o = v.base.Clone()
	}
	outputSet := false
	for _, tokens := range v.global {
		if strings.EqualFold(strings.TrimLeft(tokens[0], "-"), "output") {
			outputSet = true
		}
		_ = o.Set(tokens)
	}
	if !outputSet {
		o.OutputFileName = v.class.SimpleName() + ".dot"
	}
	return o
}

func (v *Named) OptionsFor(c *model.Class) *options.Options {
	o := v.GlobalOptions()
	v.override(o, func(m matcher.Matcher) bool { return m.Matches(c) })
	o.ApplyTags(c.Doc)
	return o
}

func (v *Named) OptionsForName(name string) *options.Options {
	o := v.GlobalOptions()
	v.override(o, func(m matcher.Matcher) bool { return m.MatchesName(name) })
	return o
}

func (v *Named) override(o *options.Options, matches func(matcher.Matcher) bool) {
	if v.parent != nil {
		v.parent.override(o, matches)
	}
	for _, cl := range v.clauses {
		if matches(cl.matcher) {
			for _, tokens := range cl.opts {
				_ = o.Set(tokens)
			}
		}
	}
}

func (v *Named) DisplayName() string { return "view " + v.class.Name }
