package infer

import (
	"slices"
	"testing"

	"github.com/matzehuels/classgraph/pkg/catalog"
	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/options"
)

func ref(name string) model.TypeRef { return model.TypeRef{Name: name} }

func field(name string, t model.TypeRef) model.Field {
	return model.Field{Name: name, Type: t, Modifiers: model.Modifiers{Visibility: model.Private}}
}

func newBuilder(u *model.Universe, opt *options.Options) (*Builder, *catalog.Catalog, *errors.Diagnostics) {
	p := options.Static(opt)
	cat := catalog.New(HideFunc(u, p))
	diag := &errors.Diagnostics{}
	return NewBuilder(u, cat, p, diag), cat, diag
}

func edges(rels []catalog.Relation) []string {
	out := make([]string, len(rels))
	for i, r := range rels {
		out[i] = r.String()
		if r.HeadLabel != "" {
			out[i] += " [" + r.HeadLabel + "]"
		}
	}
	return out
}

func TestExplicit(t *testing.T) {
	base := &model.Class{Name: "p.Base", Package: "p"}
	wheel := &model.Class{Name: "p.Wheel", Package: "p"}
	car := &model.Class{
		Name:       "p.Car",
		Package:    "p",
		Super:      &model.TypeRef{Name: "p.Base"},
		Interfaces: []model.TypeRef{ref("p.Vehicle")},
		Doc: model.Doc{Tags: []model.Tag{
			{Name: "depend", Text: "Engine"},
			{Name: "composed", Text: "1 has 4 Wheel"},
			{Name: "has", Text: "too few"},
			{Name: "navassoc", Text: `- "drives on" * q.Road`},
		}},
	}
	u := model.NewUniverse(base, wheel, car)
	b, _, diag := newBuilder(u, options.New())

	rels := b.Explicit(car)
	want := []string{
		"p.Car extends p.Base",
		"p.Car implements p.Vehicle",
		"p.Car composed p.Wheel [4]",
		"p.Car navassoc q.Road [*]",
		"p.Car depend Engine",
	}
	if got := edges(rels); !slices.Equal(got, want) {
		t.Errorf("Explicit() = %q, want %q", got, want)
	}
	if rels[2].TailLabel != "1" || rels[2].Label != "has" || rels[2].HeadLabel != "4" {
		t.Errorf("composed labels = %+v", rels[2])
	}
	if rels[3].TailLabel != "" || rels[3].Label != "drives on" {
		t.Errorf("dash label not cleared: %+v", rels[3])
	}
	if diag.Count(errors.ErrCodeRelationTag) != 1 {
		t.Errorf("diagnostics = %s, want one RELATION_TAG", diag)
	}
}

func TestExplicitSkips(t *testing.T) {
	e := &model.Class{Name: "p.E", Package: "p", Kind: model.KindEnum, Super: &model.TypeRef{Name: "java.lang.Enum"}}
	o := &model.Class{Name: "p.O", Package: "p", Super: &model.TypeRef{Name: "java.lang.Object"},
		Interfaces: []model.TypeRef{ref("java.io.Serializable")}}
	u := model.NewUniverse(e, o)

	opt := options.New()
	_ = opt.Set([]string{"-hide", `java\.io\..*`})
	b, _, _ := newBuilder(u, opt)

	if rels := b.Explicit(e); len(rels) != 0 {
		t.Errorf("enum relations = %v", edges(rels))
	}
	if rels := b.Explicit(o); len(rels) != 0 {
		t.Errorf("Object superclass or hidden interface recorded: %v", edges(rels))
	}

	hidden := &model.Class{Name: "p.H", Package: "p", Super: &model.TypeRef{Name: "p.O"},
		Doc: model.Doc{Tags: []model.Tag{{Name: "hidden"}}}}
	u2 := model.NewUniverse(hidden)
	b2, _, _ := newBuilder(u2, options.New())
	if rels := b2.Explicit(hidden); rels != nil {
		t.Errorf("hidden class relations = %v", edges(rels))
	}
}

func TestRelations(t *testing.T) {
	opt := options.New()
	_ = opt.Set([]string{"-collpackages", `java\.util\.`})
	list := model.TypeRef{Name: "java.util.List", Args: []model.TypeRef{ref("p.Item")}}
	mapped := model.TypeRef{Name: "java.util.Map", Args: []model.TypeRef{ref("java.lang.String"), ref("p.Value")}}

	c := &model.Class{Name: "p.Order", Package: "p", Fields: []model.Field{
		field("items", list),
		field("owner", ref("p.Customer")),
		field("values", mapped),
		field("tags", model.TypeRef{Name: "p.Tag", Dims: 1}),
		field("count", model.TypeRef{Name: "int", Primitive: true}),
		field("backup", ref("p.Customer")),
		field("extra", ref("p.Item")),
		{Name: "INSTANCES", Type: ref("p.Registry"), Modifiers: model.Modifiers{Static: true}},
		{Name: "secret", Type: ref("p.Secret"), Doc: model.Doc{Tags: []model.Tag{{Name: "hidden"}}}},
		field("generic", model.TypeRef{Name: "java.util.List", Args: []model.TypeRef{{Name: "T", TypeVar: true}}}),
		field("anything", model.TypeRef{Name: "java.util.Set", Args: []model.TypeRef{{Name: "?", Wildcard: true}}}),
		field("lookup", model.TypeRef{Name: "java.util.Map", Args: []model.TypeRef{ref("p.Key"), {Name: "V", TypeVar: true}}}),
	}}
	u := model.NewUniverse(c)
	b, _, _ := newBuilder(u, opt)

	got := edges(b.Relations(c))
	want := []string{
		"p.Order navassoc p.Customer",
		"p.Order navassoc p.Item [*]",
		"p.Order navassoc p.Registry",
		"p.Order navassoc p.Tag [*]",
		"p.Order navassoc p.Value [*]",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Relations() = %q, want %q", got, want)
	}
}

func TestRelationsOrderIndependent(t *testing.T) {
	fields := []model.Field{
		field("a", ref("p.A")),
		field("b", model.TypeRef{Name: "p.B", Dims: 2}),
		field("c", ref("p.C")),
		field("b2", ref("p.B")),
	}
	run := func(fs []model.Field) []string {
		c := &model.Class{Name: "p.X", Package: "p", Fields: fs}
		b, _, _ := newBuilder(model.NewUniverse(c), options.New())
		return edges(b.Relations(c))
	}
	first := run(fields)
	reversed := slices.Clone(fields)
	slices.Reverse(reversed)
	if second := run(reversed); !slices.Equal(first, second) {
		t.Errorf("order dependent: %q vs %q", first, second)
	}
	if len(first) != 3 {
		t.Errorf("Relations() = %q, want one edge per target", first)
	}
}

func TestRelationsRespectExplicit(t *testing.T) {
	c := &model.Class{Name: "p.Car", Package: "p",
		Doc:    model.Doc{Tags: []model.Tag{{Name: "composed", Text: "q.Engine"}}},
		Fields: []model.Field{field("engine", ref("q.Engine"))},
	}
	u := model.NewUniverse(c)
	opt := options.New()
	opt.InferRelationshipType = catalog.Has
	b, _, _ := newBuilder(u, opt)

	b.Explicit(c)
	if rels := b.Relations(c); len(rels) != 0 {
		t.Errorf("inference duplicated an explicit relation: %q", edges(rels))
	}
	if rels := b.Dependencies(c); len(rels) != 0 {
		t.Errorf("dependency added next to an outgoing relation: %q", edges(rels))
	}
}

func TestDependencies(t *testing.T) {
	svc := &model.Class{
		Name:    "app.Service",
		Package: "app",
		Imports: []string{"lib.Clock", "lib.*"},
		TypeParams: []model.TypeParam{
			{Name: "T", Bounds: []model.TypeRef{ref("lib.Entity")}},
		},
		Fields: []model.Field{field("repo", ref("lib.Repo"))},
		Methods: []model.Method{
			{Name: "find", Return: ref("lib.Result"), Modifiers: model.Modifiers{Visibility: model.Public},
				Params: []model.Param{
					{Name: "q", Type: ref("lib.Query")},
					{Name: "n", Type: model.TypeRef{Name: "int", Primitive: true}},
					{Name: "t", Type: model.TypeRef{Name: "T", TypeVar: true}},
					{Name: "self", Type: ref("app.Service")},
					{Name: "peer", Type: ref("app.Peer")},
					{Name: "x", Type: model.TypeRef{Name: "Missing", Unresolved: true}},
				}},
			{Name: "helper", Return: ref("lib.Internal"), Modifiers: model.Modifiers{Visibility: model.Private}},
		},
	}
	peer := &model.Class{Name: "app.Peer", Package: "app"}

	tests := []struct {
		name string
		set  [][]string
		want []string
	}{
		{"defaults", nil, []string{
			"app.Service depend lib.Entity", "app.Service depend lib.Internal", "app.Service depend lib.Query",
			"app.Service depend lib.Repo", "app.Service depend lib.Result",
		}},
		{"public only with inferred fields", [][]string{{"-inferdepvis", "protected"}, {"-inferrel"}}, []string{
			"app.Service depend lib.Entity", "app.Service depend lib.Query", "app.Service depend lib.Result",
		}},
		{"same package and imports", [][]string{{"-inferdepinpackage"}, {"-useimports"}, {"-inferdepvis", "package"}}, []string{
			"app.Service depend app.Peer", "app.Service depend lib.Clock", "app.Service depend lib.Entity",
			"app.Service depend lib.Query", "app.Service depend lib.Result",
		}},
		{"hidden target", [][]string{{"-hide", `lib\.R.*`}}, []string{
			"app.Service depend lib.Entity", "app.Service depend lib.Internal", "app.Service depend lib.Query",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := options.New()
			if errs := opt.SetAll(tt.set); len(errs) != 0 {
				t.Fatal(errs)
			}
			b, _, _ := newBuilder(model.NewUniverse(svc, peer), opt)
			if got := edges(b.Dependencies(svc)); !slices.Equal(got, tt.want) {
				t.Errorf("Dependencies() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDependenciesKeepIncomingPairs(t *testing.T) {
	a := &model.Class{Name: "a.A", Package: "a",
		Methods: []model.Method{{Name: "use", Return: ref("b.B")}}}
	bc := &model.Class{Name: "b.B", Package: "b",
		Doc: model.Doc{Tags: []model.Tag{{Name: "navassoc", Text: "a.A"}}}}
	u := model.NewUniverse(a, bc)
	b, cat, _ := newBuilder(u, options.New())

	b.Explicit(bc)
	if got := edges(b.Dependencies(a)); !slices.Equal(got, []string{"a.A depend b.B"}) {
		t.Errorf("Dependencies() = %q", got)
	}
	if got := len(cat.Relations()); got != 2 {
		t.Errorf("catalog relations = %d, want 2", got)
	}
}

func TestHideFunc(t *testing.T) {
	inner := &model.Class{Name: "p.Outer.Inner", Package: "p", Outer: "p.Outer",
		Modifiers: model.Modifiers{Visibility: model.Private}}
	view := &model.Class{Name: "p.MyView", Package: "p", Doc: model.Doc{Tags: []model.Tag{{Name: "view"}}}}
	u := model.NewUniverse(inner, view)

	opt := options.New()
	_ = opt.Set([]string{"-hideprivateinner"})
	_ = opt.Set([]string{"-hide", `^ext\.`})
	hide := HideFunc(u, options.Static(opt))

	tests := map[string]bool{
		"p.Outer.Inner": true,
		"p.MyView":      true,
		"ext.Thing":     true,
		"p.Other":       false,
	}
	for name, want := range tests {
		if got := hide(name); got != want {
			t.Errorf("hide(%q) = %v, want %v", name, got, want)
		}
	}
}
