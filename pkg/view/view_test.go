package view

import (
	"testing"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/options"
)

func hidden(o *options.Options, c *model.Class) bool { return o.HidesClass(c) }

func TestPackageView(t *testing.T) {
	a := &model.Class{Name: "P.A", Package: "P"}
	b := &model.Class{Name: "P.B", Package: "P"}
	c := &model.Class{Name: "Q.C", Package: "Q"}
	u := model.NewUniverse(a, b, c)

	base := options.New()
	base.Qualify = true
	v := NewPackage(u, options.Static(base), "P")

	for _, cls := range []*model.Class{a, b} {
		o := v.OptionsFor(cls)
		if hidden(o, cls) || o.Qualify {
			t.Errorf("%s: hidden=%v qualify=%v, want visible and unqualified", cls.Name, hidden(o, cls), o.Qualify)
		}
	}
	if o := v.OptionsFor(c); !hidden(o, c) {
		t.Error("Q.C should be hidden")
	}
	if got := v.GlobalOptions().OutputFileName; got != "P/P.dot" {
		t.Errorf("output = %q", got)
	}

	_ = base.Set([]string{"-include", `Q\.C`})
	v = NewPackage(u, options.Static(base), "P")
	if o := v.OptionsFor(c); hidden(o, c) || !o.Qualify {
		t.Error("included Q.C should be visible and keep qualification")
	}
	if base.MatchesHide("P.A") {
		t.Error("base options modified")
	}
}

func TestPackageViewClassTagsWin(t *testing.T) {
	a := &model.Class{Name: "P.A", Package: "P", Doc: model.Doc{Tags: []model.Tag{{Name: "opt", Text: "-qualify"}}}}
	u := model.NewUniverse(a)
	v := NewPackage(u, options.Static(options.New()), "P")
	if !v.OptionsFor(a).Qualify {
		t.Error("class opt tag should override the view")
	}
}

func contextUniverse() (*model.Universe, *model.Class, *model.Class, *model.Class) {
	x := &model.Class{Name: "p.X", Package: "p", Fields: []model.Field{{Name: "y", Type: model.TypeRef{Name: "q.Y"}}}}
	y := &model.Class{Name: "q.Y", Package: "q"}
	z := &model.Class{Name: "p.Z", Package: "p"}
	return model.NewUniverse(x, y, z), x, y, z
}

func TestContextView(t *testing.T) {
	u, x, y, z := contextUniverse()
	base := options.New()
	base.InferRelationships = true
	base.Qualify = true

	v := NewContext(u, options.Static(base), x)
	ox := v.OptionsFor(x)
	if hidden(ox, x) || ox.NodeFillColor != HighlightColor || ox.Qualify {
		t.Errorf("center options = hidden %v fill %q qualify %v", hidden(ox, x), ox.NodeFillColor, ox.Qualify)
	}
	oy := v.OptionsFor(y)
	if hidden(oy, y) || oy.NodeFillColor != "" || !oy.Qualify {
		t.Error("related class in another package should be visible and qualified")
	}
	if oz := v.OptionsFor(z); !hidden(oz, z) {
		t.Error("unrelated Z should be hidden")
	}
	if got := v.GlobalOptions().OutputFileName; got != "p/X.dot" {
		t.Errorf("output = %q", got)
	}

	v.SetCenter(y)
	if o := v.OptionsFor(y); o.NodeFillColor != HighlightColor {
		t.Error("new center not highlighted")
	}
	if o := v.OptionsFor(x); hidden(o, x) || o.NodeFillColor != "" {
		t.Error("X refers to Y and should be visible, not highlighted")
	}
	if o := v.OptionsFor(z); !hidden(o, z) {
		t.Error("Z is unrelated to Y")
	}
	if got := v.GlobalOptions().OutputFileName; got != "q/Y.dot" {
		t.Errorf("output after SetCenter = %q", got)
	}
}

func TestContextViewSamePackageUnqualified(t *testing.T) {
	x := &model.Class{Name: "p.X", Package: "p", Fields: []model.Field{{Name: "z", Type: model.TypeRef{Name: "p.Z"}}}}
	z := &model.Class{Name: "p.Z", Package: "p"}
	u := model.NewUniverse(x, z)
	base := options.New()
	base.InferRelationships = true
	base.Qualify = true

	v := NewContext(u, options.Static(base), x)
	if o := v.OptionsFor(z); hidden(o, z) || o.Qualify {
		t.Error("same-package neighbour should be visible and unqualified")
	}
}

func TestContextViewNames(t *testing.T) {
	u, x, _, _ := contextUniverse()
	base := options.New()
	base.InferRelationships = true
	_ = base.Set([]string{"-include", `ext\..*`})
	v := NewContext(u, options.Static(base), x)

	if o := v.OptionsForName("ext.Lib"); o.MatchesHide("ext.Lib") {
		t.Error("included external name should be visible")
	}
	if o := v.OptionsForName("other.Lib"); !o.MatchesHide("other.Lib") {
		t.Error("unknown name should be hidden")
	}
}

func viewUniverse() *model.Universe {
	base := &model.Class{Name: "v.Base", Package: "v", Doc: model.Doc{Tags: []model.Tag{
		{Name: "view"},
		{Name: "opt", Text: "attributes"},
		{Name: "match", Text: `class p\..*`},
		{Name: "opt", Text: "nodefillcolor gray"},
	}}}
	child := &model.Class{Name: "v.Detail", Package: "v", Super: &model.TypeRef{Name: "v.Base"}, Doc: model.Doc{Tags: []model.Tag{
		{Name: "view"},
		{Name: "opt", Text: "operations"},
		{Name: "match", Text: `subclass p\.Base`},
		{Name: "opt", Text: "hide"},
		{Name: "match", Text: "bogus"},
		{Name: "match", Text: "interface (broken"},
	}}}
	abstract := &model.Class{Name: "v.Abstract", Package: "v", Modifiers: model.Modifiers{Abstract: true},
		Doc: model.Doc{Tags: []model.Tag{{Name: "view"}}}}
	plain := &model.Class{Name: "v.Plain", Package: "v"}
	pb := &model.Class{Name: "p.Base", Package: "p"}
	pc := &model.Class{Name: "p.Sub", Package: "p", Super: &model.TypeRef{Name: "p.Base"}}
	pd := &model.Class{Name: "p.Other", Package: "p"}
	return model.NewUniverse(base, child, abstract, plain, pb, pc, pd)
}

func TestNamedView(t *testing.T) {
	u := viewUniverse()
	diag := &errors.Diagnostics{}
	v, err := FindNamed(u, options.New(), "Detail", diag)
	if err != nil {
		t.Fatal(err)
	}
	if diag.Count(errors.ErrCodeConfiguration) != 2 {
		t.Errorf("diagnostics = %s, want two bad match tags", diag)
	}

	g := v.GlobalOptions()
	if !g.ShowAttributes || !g.ShowOperations {
		t.Error("global options of the chain not applied")
	}
	if g.OutputFileName != "Detail.dot" {
		t.Errorf("output = %q", g.OutputFileName)
	}

	other := u.Lookup("p.Other")
	if o := v.OptionsFor(other); o.NodeFillColor != "gray" || o.HidesClass(other) {
		t.Error("inherited clause not applied to p.Other")
	}
	sub := u.Lookup("p.Sub")
	if o := v.OptionsFor(sub); !o.HidesClass(sub) || o.NodeFillColor != "gray" {
		t.Error("own subclass clause not applied to p.Sub")
	}
	if o := v.OptionsForName("p.Sub"); !o.MatchesHide("p.Sub") {
		t.Error("name query should use the same clauses")
	}
}

func TestFindNamedErrors(t *testing.T) {
	u := viewUniverse()
	for _, name := range []string{"v.Missing", "v.Plain", "v.Abstract"} {
		if _, err := FindNamed(u, options.New(), name, nil); !errors.Is(err, errors.ErrCodeResolution) {
			t.Errorf("FindNamed(%q) error = %v, want RESOLUTION", name, err)
		}
	}
}

func TestAllNamed(t *testing.T) {
	views := AllNamed(viewUniverse(), options.New(), nil)
	if len(views) != 2 || views[0].Class().Name != "v.Base" || views[1].Class().Name != "v.Detail" {
		t.Errorf("AllNamed() returned %d views", len(views))
	}
}

func TestIdentity(t *testing.T) {
	base := options.New()
	p := Identity(base)
	c := &model.Class{Name: "a.B", Doc: model.Doc{Tags: []model.Tag{{Name: "opt", Text: "-types"}}}}
	if !p.OptionsFor(c).ShowType || p.GlobalOptions().ShowType {
		t.Error("identity view should only apply class tags")
	}
}
