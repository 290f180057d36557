package infer

import (
	"slices"
	"strings"

	"github.com/matzehuels/classgraph/pkg/catalog"
	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/options"
)

const javaLangObject = "java.lang.Object"

// Builder records the relations of classes into one catalog. Every method
// returns the relations it added, in the order they were recorded, so the
// caller can emit them right away.
type Builder struct {
	universe *model.Universe
	catalog  *catalog.Catalog
	options  options.Provider
	diag     *errors.Diagnostics
}

// NewBuilder returns a builder over u recording into cat. Malformed
// relation tags are reported to diag, which may be nil.
func NewBuilder(u *model.Universe, cat *catalog.Catalog, p options.Provider, diag *errors.Diagnostics) *Builder {
	if diag == nil {
		diag = &errors.Diagnostics{}
	}
	return &Builder{universe: u, catalog: cat, options: p, diag: diag}
}

// HideFunc returns the catalog hide function for a pass under p. Declared
// classes are judged by their own effective options, other names by the
// options for that name.
func HideFunc(u *model.Universe, p options.Provider) catalog.HideFunc {
	return func(name string) bool {
		if c := u.Lookup(name); c != nil {
			return p.OptionsFor(c).HidesClass(c)
		}
		return p.OptionsForName(name).MatchesHide(name)
	}
}

// Explicit records the declared relations of c: its superclass and
// interfaces, "extends" tags, and the relation tags in type order.
func (b *Builder) Explicit(c *model.Class) []catalog.Relation {
	if b.catalog.Hidden(c.Name) {
		return nil
	}
	var out []catalog.Relation
	if c.Super != nil && !c.IsEnum() && c.Super.Name != javaLangObject && !b.catalog.Hidden(c.Super.Name) {
		out = b.relate(out, catalog.Relation{From: c.Name, To: c.Super.Name, Type: catalog.Extends})
	}
	for _, tag := range c.Doc.Find("extends") {
		target := b.resolve(c, strings.TrimSpace(tag.Text))
		if target == "" || b.catalog.Hidden(target) {
			continue
		}
		out = b.relate(out, catalog.Relation{From: c.Name, To: target, Type: catalog.Extends})
	}
	for _, iface := range c.Interfaces {
		if b.catalog.Hidden(iface.Name) {
			continue
		}
		out = b.relate(out, catalog.Relation{From: c.Name, To: iface.Name, Type: catalog.Implements})
	}
	for _, t := range catalog.TagRelationTypes {
		for _, tag := range c.Doc.Find(t.String()) {
			fields := tag.Fields()
			if len(fields) == 1 {
				fields = []string{"-", "-", "-", fields[0]}
			}
			if len(fields) != 4 {
				b.diag.Warn(errors.ErrCodeRelationTag, c.Name,
					"@%s expects four fields (srcLabel label dstLabel target): %q", t, tag.Text)
				continue
			}
			target := b.resolve(c, fields[3])
			if b.catalog.Hidden(target) {
				continue
			}
			out = b.relate(out, catalog.Relation{
				From:      c.Name,
				To:        target,
				Type:      t,
				TailLabel: label(fields[0]),
				Label:     label(fields[1]),
				HeadLabel: label(fields[2]),
			})
		}
	}
	return out
}

// Relations infers associations from the fields of c. Every target gets
// at most one relation of the configured type, and only when the pair is
// not related yet. Targets reached through arrays or collection types carry
// a "*" head label.
func (b *Builder) Relations(c *model.Class) []catalog.Relation {
	if b.catalog.Hidden(c.Name) {
		return nil
	}
	opt := b.options.OptionsFor(c)

	many := make(map[string]bool)
	for _, f := range c.Fields {
		if opt.HidesMember(c, f.Name, f.Doc) {
			continue
		}
		target, multiple, ok := b.fieldTarget(f.Type)
		if !ok || b.catalog.Hidden(target) {
			continue
		}
		many[target] = many[target] || multiple
	}

	from, err := b.catalog.Node(c.Name)
	if err != nil {
		b.diag.Add(c.Name, err)
		return nil
	}
	var out []catalog.Relation
	for _, target := range sortedKeys(many) {
		if from.Related(target) {
			continue
		}
		r := catalog.Relation{From: c.Name, To: target, Type: opt.InferRelationshipType, Stage: catalog.StageInferred}
		if many[target] {
			r.HeadLabel = "*"
		}
		out = b.relate(out, r)
	}
	return out
}

// Dependencies infers dependencies of c on the types its members refer to.
// A dependency is added only when c has no outgoing relation towards the
// target yet.
func (b *Builder) Dependencies(c *model.Class) []catalog.Relation {
	if b.catalog.Hidden(c.Name) {
		return nil
	}
	opt := b.options.OptionsFor(c)
	visible := func(m model.Modifiers) bool {
		return opt.InferDependencyVisibility == model.Private || m.Visibility > opt.InferDependencyVisibility
	}

	var refs []model.TypeRef
	for _, m := range slices.Concat(c.Methods, c.Constructors) {
		if !visible(m.Modifiers) {
			continue
		}
		refs = append(refs, m.Return)
		for _, p := range m.Params {
			refs = append(refs, p.Type)
		}
	}
	if !opt.InferRelationships {
		for _, f := range c.Fields {
			if visible(f.Modifiers) {
				refs = append(refs, f.Type)
			}
		}
	}
	for _, tp := range c.TypeParams {
		refs = append(refs, tp.Bounds...)
	}
	if opt.UseImports {
		for _, imp := range c.Imports {
			if !strings.HasSuffix(imp, ".*") {
				refs = append(refs, model.TypeRef{Name: imp})
			}
		}
	}

	targets := make(map[string]bool)
	for _, ref := range refs {
		ref = ref.Element()
		if !isClassType(ref) || ref.Unresolved || ref.Name == c.Name {
			continue
		}
		if b.catalog.Hidden(ref.Name) {
			continue
		}
		if !opt.InferDepInPackage && b.packageOf(ref.Name) == c.Package {
			continue
		}
		targets[ref.Name] = true
	}

	from, err := b.catalog.Node(c.Name)
	if err != nil {
		b.diag.Add(c.Name, err)
		return nil
	}
	var out []catalog.Relation
	for _, target := range sortedKeys(targets) {
		if from.Relation(target).HasOutgoing() {
			continue
		}
		out = b.relate(out, catalog.Relation{From: c.Name, To: target, Type: catalog.Depend, Stage: catalog.StageDependency})
	}
	return out
}

// fieldTarget returns the class a field of type t refers to and whether the
// field holds many of them.
func (b *Builder) fieldTarget(t model.TypeRef) (string, bool, bool) {
	if t.IsArray() {
		e := t.Element()
		if !isClassType(e) {
			return "", false, false
		}
		return e.Name, true, true
	}
	if !isClassType(t) {
		return "", false, false
	}
	if n := len(t.Args); (n == 1 || n == 2) && b.optionsFor(t.Name).MatchesCollPackage(t.Name) {
		arg := unwrapWildcard(t.Args[n-1])
		if !isClassType(arg) || arg.IsArray() {
			return "", false, false
		}
		return arg.Name, true, true
	}
	return t.Name, false, true
}

func (b *Builder) optionsFor(name string) *options.Options {
	if c := b.universe.Lookup(name); c != nil {
		return b.options.OptionsFor(c)
	}
	return b.options.OptionsForName(name)
}

func (b *Builder) packageOf(name string) string {
	if c := b.universe.Lookup(name); c != nil {
		return c.Package
	}
	return model.PackageOf(name)
}

// resolve maps a tag target to a qualified name. Names the universe cannot
// resolve are kept verbatim and end up as phantom nodes.
func (b *Builder) resolve(from *model.Class, name string) string {
	resolved, _ := b.universe.Resolve(from, name)
	return resolved
}

func (b *Builder) relate(out []catalog.Relation, r catalog.Relation) []catalog.Relation {
	rel, err := b.catalog.Relate(r)
	if err != nil {
		b.diag.Warn(errors.ErrCodeRelationTag, r.From, "cannot record %s: %v", r, err)
		return out
	}
	return append(out, rel)
}

func isClassType(t model.TypeRef) bool {
	return t.Name != "" && !t.Primitive && !t.TypeVar && !t.Wildcard
}

// unwrapWildcard turns "? extends T" into T.
func unwrapWildcard(t model.TypeRef) model.TypeRef {
	if t.Wildcard && !t.Super && len(t.Bounds) == 1 {
		return t.Bounds[0]
	}
	return t
}

func label(s string) string {
	if s == "-" {
		return ""
	}
	return s
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
