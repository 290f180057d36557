package view

import (
	"regexp"

	"github.com/matzehuels/classgraph/pkg/matcher"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/options"
)

// HighlightColor is the fill color of the center of a context diagram.
const HighlightColor = "lemonChiffon"

var hideAll = []string{"-hide"}

// Identity returns the view that applies no scoping: every class gets the
// base options with its own "opt" tags applied.
func Identity(base *options.Options) options.Provider { return options.Static(base) }

// PackageOutput returns the diagram file of package pkg, relative to the
// documentation root: "com/acme/com.acme.dot".
func PackageOutput(pkg string) string {
	name := pkg
	if name == "" {
		name = "package"
	}
	return model.PackagePath(pkg) + name + ".dot"
}

// ContextOutput returns the diagram file of the context of c, relative to
// the documentation root: "com/acme/Widget.dot".
func ContextOutput(c *model.Class) string {
	return model.PackagePath(c.Package) + c.SimpleName() + ".dot"
}

// Package scopes a diagram to the classes of one package. Classes of the
// package are shown unqualified; other classes are hidden unless an
// include pattern names them.
type Package struct {
	parent  options.Provider
	global  *options.Options
	pkg     string
	matcher *matcher.Package
}

// NewPackage returns the view of package pkg over parent.
func NewPackage(u *model.Universe, parent options.Provider, pkg string) *Package {
	return &Package{
		parent:  parent,
		global:  parent.GlobalOptions(),
		pkg:     pkg,
		matcher: matcher.NewPackage(u, pkg),
	}
}

func (v *Package) GlobalOptions() *options.Options {
	o := v.parent.GlobalOptions()
	o.OutputFileName = PackageOutput(v.pkg)
	return o
}

func (v *Package) OptionsFor(c *model.Class) *options.Options {
	o := v.parent.GlobalOptions()
	v.override(o, c.Name, v.matcher.Matches(c))
	o.ApplyTags(c.Doc)
	return o
}

func (v *Package) OptionsForName(name string) *options.Options {
	o := v.parent.GlobalOptions()
	v.override(o, name, v.matcher.MatchesName(name))
	return o
}

func (v *Package) override(o *options.Options, name string, inPackage bool) {
	if inPackage {
		o.Qualify = false
	}
	included := inPackage || v.global.MatchesInclude(name)
	if !included || v.global.MatchesHide(name) {
		_ = o.Set(hideAll)
	}
}

func (v *Package) DisplayName() string { return "package view for package " + v.pkg }

// Context scopes a diagram to one class and the classes directly related
// to it. The center is highlighted; classes sharing its package are shown
// unqualified.
//
// One Context is reused for every class of a documentation run:
// [Context.SetCenter] moves it and discards everything learned about the
// previous center.
type Context struct {
	parent  options.Provider
	global  *options.Options
	center  *model.Class
	matcher *matcher.Context
}

// NewContext returns the context view of center over parent.
func NewContext(u *model.Universe, parent options.Provider, center *model.Class) *Context {
	global := parent.GlobalOptions()
	return &Context{
		parent:  parent,
		global:  global,
		center:  center,
		matcher: matcher.NewContext(u, global, centerPattern(center), true),
	}
}

func centerPattern(c *model.Class) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(c.Name) + `$`)
}

// SetCenter moves the view to c.
func (v *Context) SetCenter(c *model.Class) {
	v.center = c
	v.matcher.SetCenter(centerPattern(c))
}

// Center returns the current center.
func (v *Context) Center() *model.Class { return v.center }

func (v *Context) GlobalOptions() *options.Options {
	o := v.parent.GlobalOptions()
	o.OutputFileName = ContextOutput(v.center)
	return o
}

func (v *Context) OptionsFor(c *model.Class) *options.Options {
	o := v.parent.GlobalOptions()
	switch {
	case v.global.MatchesHide(c.Name) || !(v.matcher.Matches(c) || v.global.MatchesInclude(c.Name)):
		_ = o.Set(hideAll)
	case c.Name == v.center.Name:
		o.NodeFillColor = HighlightColor
		o.Qualify = false
	case c.Package == v.center.Package:
		o.Qualify = false
	}
	o.ApplyTags(c.Doc)
	return o
}

func (v *Context) OptionsForName(name string) *options.Options {
	o := v.parent.GlobalOptions()
	switch {
	case !(v.matcher.MatchesName(name) || v.global.MatchesInclude(name)):
		_ = o.Set(hideAll)
	case name == v.center.Name:
		o.NodeFillColor = HighlightColor
		o.Qualify = false
	}
	return o
}

func (v *Context) DisplayName() string { return "context view for class " + v.center.Name }
