package options

import (
	"regexp"
	"slices"

	"github.com/matzehuels/classgraph/pkg/catalog"
	"github.com/matzehuels/classgraph/pkg/model"
)

// Defaults shared by [New] and the negated forms of valued options.
const (
	DefaultFont           = "Helvetica"
	DefaultColor          = "black"
	DefaultFontSize       = 10.0
	DefaultOutput         = "graph.dot"
	DefaultEncoding       = "UTF-8"
	DefaultNodeSep        = 0.25
	DefaultRankSep        = 0.5
	DefaultDotExecutable  = "dot"
	DefaultExternalAPIDoc = "https://docs.oracle.com/javase/8/docs/api/"

	// unsetSize marks a font size that is not overridden.
	unsetSize = -1.0
)

// Guillemet markup used around stereotypes and relation labels.
const (
	GuilOpen       = "&#171;"
	GuilClose      = "&#187;"
	AsciiGuilOpen  = "&lt;&lt;"
	AsciiGuilClose = "&gt;&gt;"
)

// Options is the rendering and filtering configuration of a diagram. Values
// handed out by a [Provider] are always fresh clones; callers may modify
// them freely without affecting anyone else.
type Options struct {
	// Name display
	Qualify         bool
	QualifyGenerics bool
	HideGenerics    bool
	PostfixPackage  bool
	ShowComment     bool

	// Compartments
	ShowAttributes    bool
	ShowEnumerations  bool
	ShowEnumConstants bool
	ShowOperations    bool
	ShowConstructors  bool
	ShowVisibility    bool
	ShowType          bool

	// Graph layout hints
	Horizontal bool
	NodeSep    float64
	RankSep    float64
	BgColor    string
	Compact    bool

	// Edge fonts and colors
	EdgeFontName  string
	EdgeFontColor string
	EdgeColor     string
	EdgeFontSize  float64

	// Node fonts and colors
	NodeFontName           string
	NodeFontColor          string
	NodeFontSize           float64
	NodeFontAbstractItalic bool
	NodeFillColor          string
	NodeFontClassName      string
	NodeFontClassSize      float64
	NodeFontTagName        string
	NodeFontTagSize        float64
	NodeFontPackageName    string
	NodeFontPackageSize    float64
	Shape                  Shape

	GuilOpen  string
	GuilClose string

	// Output
	OutputFileName  string
	OutputDirectory string
	OutputEncoding  string
	DotExecutable   string
	AutoSize        bool
	Collapsible     bool

	// Documentation links
	APIDocRoot    string
	RelativeLinks bool

	// Views
	ViewName  string
	FindViews bool

	// Inference
	InferRelationships        bool
	InferRelationshipType     catalog.RelationType
	InferDependencies         bool
	InferDependencyVisibility model.Visibility
	InferDepInPackage         bool
	UseImports                bool
	ContextPattern            *catalog.Pattern

	HidePrivateInner bool
	StrictMatching   bool

	hideAll      bool
	hide         []pattern
	include      []pattern
	collPackages []pattern
	apiDocMap    []docRoot
	links        []Link
}

// pattern keeps both the search and the anchored form of a user regex.
type pattern struct {
	src  string
	find *regexp.Regexp
	full *regexp.Regexp
}

func compilePattern(src string) (pattern, error) {
	find, err := regexp.Compile(src)
	if err != nil {
		return pattern{}, err
	}
	full, err := regexp.Compile(`^(?:` + src + `)$`)
	if err != nil {
		return pattern{}, err
	}
	return pattern{src: src, find: find, full: full}, nil
}

func (p pattern) match(s string, strict bool) bool {
	if strict {
		return p.full.MatchString(s)
	}
	return p.find.MatchString(s)
}

// docRoot maps class names matching a pattern to an external doc root.
type docRoot struct {
	pattern pattern
	root    string
}

// Link is a pending "-link" or "-linkoffline" request: the package list at
// ListURL names the packages documented under DocRoot.
type Link struct {
	DocRoot string
	ListURL string
}

// New returns the default options.
func New() *Options {
	return &Options{
		NodeSep:                   DefaultNodeSep,
		RankSep:                   DefaultRankSep,
		EdgeFontName:              DefaultFont,
		EdgeFontColor:             DefaultColor,
		EdgeColor:                 DefaultColor,
		EdgeFontSize:              DefaultFontSize,
		NodeFontName:              DefaultFont,
		NodeFontColor:             DefaultColor,
		NodeFontSize:              DefaultFontSize,
		NodeFontAbstractItalic:    true,
		NodeFontClassSize:         unsetSize,
		NodeFontTagSize:           unsetSize,
		NodeFontPackageSize:       unsetSize,
		Shape:                     ShapeClass,
		GuilOpen:                  GuilOpen,
		GuilClose:                 GuilClose,
		OutputFileName:            DefaultOutput,
		OutputEncoding:            DefaultEncoding,
		DotExecutable:             DefaultDotExecutable,
		AutoSize:                  true,
		InferRelationshipType:     catalog.NavAssoc,
		InferDependencyVisibility: model.Private,
		ContextPattern:            catalog.NewPattern(catalog.Both),
	}
}

// Clone returns a deep copy of o. Pattern lists, the doc-root map and the
// context pattern are copied; compiled regexes are immutable and shared.
func (o *Options) Clone() *Options {
	c := *o
	c.hide = slices.Clone(o.hide)
	c.include = slices.Clone(o.include)
	c.collPackages = slices.Clone(o.collPackages)
	c.apiDocMap = slices.Clone(o.apiDocMap)
	c.links = slices.Clone(o.links)
	if o.ContextPattern != nil {
		c.ContextPattern = o.ContextPattern.Clone()
	} else {
		c.ContextPattern = catalog.NewPattern(catalog.Both)
	}
	return &c
}

// ShowAll turns on every compartment and member adornment.
func (o *Options) ShowAll() {
	o.ShowAttributes = true
	o.ShowEnumerations = true
	o.ShowEnumConstants = true
	o.ShowOperations = true
	o.ShowConstructors = true
	o.ShowVisibility = true
	o.ShowType = true
}

// HideAll reports whether the hide-everything sentinel is installed.
func (o *Options) HideAll() bool { return o.hideAll }

// HidePatterns returns the source of the hide patterns in insertion order.
func (o *Options) HidePatterns() []string { return patternSources(o.hide) }

// IncludePatterns returns the source of the include patterns.
func (o *Options) IncludePatterns() []string { return patternSources(o.include) }

// CollPackagePatterns returns the source of the collection patterns.
func (o *Options) CollPackagePatterns() []string { return patternSources(o.collPackages) }

func patternSources(ps []pattern) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.src
	}
	return out
}

// Links returns the pending package-list links.
func (o *Options) Links() []Link { return slices.Clone(o.links) }

// ClearLinks drops the pending links once they have been resolved.
func (o *Options) ClearLinks() { o.links = nil }
