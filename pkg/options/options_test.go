package options

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/classgraph/pkg/catalog"
	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
)

func TestDefaults(t *testing.T) {
	o := New()
	if o.NodeFontName != "Helvetica" || o.NodeFontSize != 10 || o.EdgeColor != "black" {
		t.Errorf("font defaults = %q %v %q", o.NodeFontName, o.NodeFontSize, o.EdgeColor)
	}
	if o.NodeSep != 0.25 || o.RankSep != 0.5 {
		t.Errorf("sep defaults = %v %v", o.NodeSep, o.RankSep)
	}
	if o.OutputFileName != "graph.dot" || o.Shape != ShapeClass || !o.AutoSize {
		t.Error("output defaults mismatch")
	}
	if o.InferRelationshipType != catalog.NavAssoc || o.InferDependencyVisibility != model.Private {
		t.Error("inference defaults mismatch")
	}
	if o.ContextPattern.Get(catalog.Depend) != catalog.Both {
		t.Error("context pattern should default to both for every type")
	}
}

func TestSetBooleans(t *testing.T) {
	o := New()
	for _, tok := range []string{"-attributes", "operations", "-QUALIFY"} {
		if err := o.Set([]string{tok}); err != nil {
			t.Fatalf("Set(%q) error: %v", tok, err)
		}
	}
	if !o.ShowAttributes || !o.ShowOperations || !o.Qualify {
		t.Error("positive flags not applied")
	}
	if err := o.Set([]string{"-!attributes"}); err != nil {
		t.Fatal(err)
	}
	if err := o.Set([]string{"!operations"}); err != nil {
		t.Fatal(err)
	}
	if o.ShowAttributes || o.ShowOperations {
		t.Error("negated flags not applied")
	}
}

func TestSetAllOption(t *testing.T) {
	o := New()
	if err := o.Set([]string{"-all"}); err != nil {
		t.Fatal(err)
	}
	if !(o.ShowAttributes && o.ShowEnumerations && o.ShowEnumConstants && o.ShowOperations &&
		o.ShowConstructors && o.ShowVisibility && o.ShowType) {
		t.Error("-all did not enable every compartment")
	}
	if err := o.Set([]string{"-!all"}); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("Set(-!all) error = %v, want CONFIGURATION", err)
	}
}

func TestSetValues(t *testing.T) {
	o := New()
	lists := [][]string{
		{"-nodefontcolor", "red"},
		{"-nodefontsize", "12.5"},
		{"-shape", "Component"},
		{"-inferreltype", "composed"},
		{"-inferdepvis", "protected"},
		{"-output", "out.dot"},
		{"-bgcolor", "white"},
	}
	if errs := o.SetAll(lists); len(errs) != 0 {
		t.Fatalf("SetAll() errors: %v", errs)
	}
	if o.NodeFontColor != "red" || o.NodeFontSize != 12.5 || o.Shape != ShapeComponent {
		t.Errorf("values = %q %v %v", o.NodeFontColor, o.NodeFontSize, o.Shape)
	}
	if o.InferRelationshipType != catalog.Composed || o.InferDependencyVisibility != model.Protected {
		t.Error("enumeration values not applied")
	}

	// negated valued options restore defaults and take no argument
	for _, tok := range []string{"-!nodefontcolor", "-!nodefontsize", "-!shape", "-!output", "-!bgcolor"} {
		if err := o.Set([]string{tok}); err != nil {
			t.Fatalf("Set(%q) error: %v", tok, err)
		}
	}
	if o.NodeFontColor != "black" || o.NodeFontSize != 10 || o.Shape != ShapeClass ||
		o.OutputFileName != "graph.dot" || o.BgColor != "" {
		t.Error("negation did not restore defaults")
	}
}

func TestSetInvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		tokens []string
		check  func(*Options) bool
	}{
		{[]string{"-nodesep", "wide"}, func(o *Options) bool { return o.NodeSep == DefaultNodeSep }},
		{[]string{"-nodefontsize", "big"}, func(o *Options) bool { return o.NodeFontSize == DefaultFontSize }},
		{[]string{"-shape", "hexagon"}, func(o *Options) bool { return o.Shape == ShapeClass }},
		{[]string{"-inferreltype", "owns"}, func(o *Options) bool { return o.InferRelationshipType == catalog.NavAssoc }},
		{[]string{"-inferdepvis", "friend"}, func(o *Options) bool { return o.InferDependencyVisibility == model.Private }},
		{[]string{"-outputencoding", "no-such-charset"}, func(o *Options) bool { return o.OutputEncoding == DefaultEncoding }},
	}
	for _, tt := range tests {
		t.Run(tt.tokens[0], func(t *testing.T) {
			o := New()
			o.NodeSep = 1
			o.NodeFontSize = 20
			o.Shape = ShapeNote
			o.InferRelationshipType = catalog.Has
			o.InferDependencyVisibility = model.Public
			o.OutputEncoding = "ISO-8859-1"

			err := o.Set(tt.tokens)
			if !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("error = %v, want CONFIGURATION", err)
			}
			if !tt.check(o) {
				t.Error("option did not revert to its default")
			}
		})
	}
}

func TestSetErrors(t *testing.T) {
	o := New()
	if err := o.Set([]string{"-nosuchoption"}); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("unknown option error = %v", err)
	}
	if err := o.Set([]string{"-nodefontcolor"}); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("missing argument error = %v", err)
	}
	if o.NodeFontColor != DefaultColor {
		t.Error("option changed despite missing argument")
	}
	if err := o.Set(nil); err != nil {
		t.Errorf("Set(nil) error = %v", err)
	}
}

func TestHidePatterns(t *testing.T) {
	o := New()
	_ = o.Set([]string{"-hide", `java\.util\..*`})
	if err := o.Set([]string{"-hide", "(unclosed"}); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("bad regex error = %v", err)
	}
	if got := o.HidePatterns(); len(got) != 1 {
		t.Errorf("HidePatterns() = %v, bad pattern should be skipped", got)
	}
	if !o.MatchesHide("java.util.List") || o.MatchesHide("com.Foo") {
		t.Error("hide pattern mismatch")
	}

	// substring by default, full match when strict
	_ = o.Set([]string{"-hide", "Internal"})
	if !o.MatchesHide("com.InternalFoo") {
		t.Error("substring match failed")
	}
	o.StrictMatching = true
	if o.MatchesHide("com.InternalFoo") {
		t.Error("strict matching should require a full match")
	}

	_ = o.Set([]string{"-!hide"})
	if o.MatchesHide("java.util.List") {
		t.Error("-!hide did not clear the patterns")
	}
}

func TestHideEverythingDominates(t *testing.T) {
	o := New()
	_ = o.Set([]string{"-include", ".*"})
	if err := o.Set([]string{"-hide"}); err != nil {
		t.Fatalf("bare -hide error: %v", err)
	}
	for _, name := range []string{"a.B", "", "java.lang.Object"} {
		if !o.MatchesHide(name) {
			t.Errorf("MatchesHide(%q) = false with sentinel", name)
		}
	}
	if !o.HideAll() {
		t.Error("HideAll() = false")
	}
	_ = o.Set([]string{"-hide", "x"})
	if !o.MatchesHide("anything") {
		t.Error("later patterns must not weaken the sentinel")
	}
}

func TestCloneIsDeep(t *testing.T) {
	base := New()
	_ = base.Set([]string{"-hide", "a"})
	_ = base.AddAPIDocRoot("com\\..*", "http://x")

	c := base.Clone()
	_ = c.Set([]string{"-hide", "b"})
	_ = c.Set([]string{"-attributes"})
	c.ContextPattern.Set(catalog.Depend, catalog.None)
	_ = c.AddAPIDocRoot(".*", "http://y")

	if len(base.HidePatterns()) != 1 || base.ShowAttributes {
		t.Error("clone modification leaked into base")
	}
	if base.ContextPattern.Get(catalog.Depend) != catalog.Both {
		t.Error("context pattern shared between clones")
	}
	if got := base.ExternalDocRoot("org.Foo"); got != "" {
		t.Errorf("base ExternalDocRoot(org.Foo) = %q, want no match", got)
	}
}

func TestExternalDocRoot(t *testing.T) {
	o := New()
	if got := o.ExternalDocRoot("java.util.List"); got != DefaultExternalAPIDoc {
		t.Errorf("default root = %q", got)
	}
	o.AddPackageList("https://example.com/api", []string{"com.example", "", "module:foo"})
	if got := o.ExternalDocRoot("com.example.Foo"); got != "https://example.com/api/" {
		t.Errorf("ExternalDocRoot(com.example.Foo) = %q", got)
	}
	if got := o.ExternalDocRoot("com.example.sub.Foo"); got != "" {
		t.Errorf("subpackage should not match, got %q", got)
	}

	if err := o.LoadAPIDocMap(strings.NewReader("# comment\norg\\\\..*=http://org/docs\nbad(=http://x\nnourl=\n")); err == nil {
		t.Error("LoadAPIDocMap() error = nil, want first problem")
	}
	if got := o.ExternalDocRoot("org.Foo"); got != "http://org/docs/" {
		t.Errorf("ExternalDocRoot(org.Foo) = %q", got)
	}
}

func TestContextPattern(t *testing.T) {
	o := New()
	if err := o.Set([]string{"-contextPattern", "all", "none"}); err != nil {
		t.Fatal(err)
	}
	if !o.ContextPattern.Empty() {
		t.Error("all none should clear the pattern")
	}
	if err := o.Set([]string{"-contextPattern", "depend", "out"}); err != nil {
		t.Fatal(err)
	}
	if o.ContextPattern.Get(catalog.Depend) != catalog.Out {
		t.Error("depend direction not set")
	}
	if err := o.Set([]string{"-contextPattern", "depend", "up"}); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("bad direction error = %v", err)
	}
}

func TestLinks(t *testing.T) {
	o := New()
	_ = o.Set([]string{"-link", "https://docs.example.com/api"})
	_ = o.Set([]string{"-linkoffline", "https://docs.example.com/v2", "/tmp/lists"})
	want := []Link{
		{DocRoot: "https://docs.example.com/api/", ListURL: "https://docs.example.com/api/"},
		{DocRoot: "https://docs.example.com/v2/", ListURL: "/tmp/lists/"},
	}
	if got := o.Links(); !slices.Equal(got, want) {
		t.Errorf("Links() = %v, want %v", got, want)
	}
	o.ClearLinks()
	if len(o.Links()) != 0 {
		t.Error("ClearLinks() kept links")
	}
}

func TestApplyTags(t *testing.T) {
	o := New()
	doc := model.Doc{Tags: []model.Tag{
		{Name: "opt", Text: "-attributes"},
		{Name: "opt", Text: `-nodefillcolor "light blue"`},
		{Name: "has", Text: "1 - * Foo"},
		{Name: "opt", Text: "-bogus"},
	}}
	errs := o.ApplyTags(doc)
	if len(errs) != 1 {
		t.Errorf("ApplyTags() errors = %v, want 1", errs)
	}
	if !o.ShowAttributes || o.NodeFillColor != "light blue" {
		t.Error("tags not applied")
	}
}

func TestParseArgs(t *testing.T) {
	got := ParseArgs([]string{"-hide", "-attributes", "-hide", "java.*", "-linkoffline", "a", "b", "-!bgcolor", "-x"})
	want := [][]string{{"-hide"}, {"-attributes"}, {"-hide", "java.*"}, {"-linkoffline", "a", "b"}, {"-!bgcolor"}, {"-x"}}
	if len(got) != len(want) {
		t.Fatalf("ParseArgs() = %q, want %q", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("ParseArgs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStaticProvider(t *testing.T) {
	base := New()
	p := Static(base)
	c := &model.Class{Name: "a.Foo", Doc: model.Doc{Tags: []model.Tag{{Name: "opt", Text: "-operations"}}}}

	if !p.OptionsFor(c).ShowOperations {
		t.Error("class opt tags not applied")
	}
	if p.GlobalOptions().ShowOperations || p.OptionsForName("a.Foo").ShowOperations {
		t.Error("class override leaked")
	}
	g := p.GlobalOptions()
	g.ShowAttributes = true
	if p.GlobalOptions().ShowAttributes {
		t.Error("GlobalOptions() returned the shared options")
	}
}
