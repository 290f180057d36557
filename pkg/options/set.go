package options

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/matzehuels/classgraph/pkg/catalog"
	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
)

// optionSpec describes one named option.
type optionSpec struct {
	// args is the number of arguments the positive form takes.
	args int
	// negatable options accept the "-!name" form, which takes no argument.
	negatable bool
	apply     func(o *Options, positive bool, args []string) error
}

var optionTable map[string]optionSpec

func init() {
	optionTable = map[string]optionSpec{
		"all": {apply: func(o *Options, _ bool, _ []string) error {
			o.ShowAll()
			return nil
		}},

		"qualify":                flag(func(o *Options) *bool { return &o.Qualify }),
		"qualifygenerics":        flag(func(o *Options) *bool { return &o.QualifyGenerics }),
		"hidegenerics":           flag(func(o *Options) *bool { return &o.HideGenerics }),
		"horizontal":             flag(func(o *Options) *bool { return &o.Horizontal }),
		"attributes":             flag(func(o *Options) *bool { return &o.ShowAttributes }),
		"enumconstants":          flag(func(o *Options) *bool { return &o.ShowEnumConstants }),
		"operations":             flag(func(o *Options) *bool { return &o.ShowOperations }),
		"enumerations":           flag(func(o *Options) *bool { return &o.ShowEnumerations }),
		"constructors":           flag(func(o *Options) *bool { return &o.ShowConstructors }),
		"visibility":             flag(func(o *Options) *bool { return &o.ShowVisibility }),
		"types":                  flag(func(o *Options) *bool { return &o.ShowType }),
		"autosize":               flag(func(o *Options) *bool { return &o.AutoSize }),
		"commentname":            flag(func(o *Options) *bool { return &o.ShowComment }),
		"nodefontabstractitalic": flag(func(o *Options) *bool { return &o.NodeFontAbstractItalic }),
		"postfixpackage":         flag(func(o *Options) *bool { return &o.PostfixPackage }),
		"views":                  flag(func(o *Options) *bool { return &o.FindViews }),
		"inferrel":               flag(func(o *Options) *bool { return &o.InferRelationships }),
		"useimports":             flag(func(o *Options) *bool { return &o.UseImports }),
		"collapsible":            flag(func(o *Options) *bool { return &o.Collapsible }),
		"inferdep":               flag(func(o *Options) *bool { return &o.InferDependencies }),
		"inferdepinpackage":      flag(func(o *Options) *bool { return &o.InferDepInPackage }),
		"hideprivateinner":       flag(func(o *Options) *bool { return &o.HidePrivateInner }),
		"compact":                flag(func(o *Options) *bool { return &o.Compact }),
		"strictmatching":         flag(func(o *Options) *bool { return &o.StrictMatching }),
		"noguillemot": {negatable: true, apply: func(o *Options, positive bool, _ []string) error {
			if positive {
				o.GuilOpen, o.GuilClose = AsciiGuilOpen, AsciiGuilClose
			} else {
				o.GuilOpen, o.GuilClose = GuilOpen, GuilClose
			}
			return nil
		}},

		"nodefillcolor":       text(func(o *Options) *string { return &o.NodeFillColor }, ""),
		"nodefontcolor":       text(func(o *Options) *string { return &o.NodeFontColor }, DefaultColor),
		"nodefontname":        text(func(o *Options) *string { return &o.NodeFontName }, DefaultFont),
		"nodefontclassname":   text(func(o *Options) *string { return &o.NodeFontClassName }, ""),
		"nodefonttagname":     text(func(o *Options) *string { return &o.NodeFontTagName }, ""),
		"nodefontpackagename": text(func(o *Options) *string { return &o.NodeFontPackageName }, ""),
		"edgefontcolor":       text(func(o *Options) *string { return &o.EdgeFontColor }, DefaultColor),
		"edgecolor":           text(func(o *Options) *string { return &o.EdgeColor }, DefaultColor),
		"edgefontname":        text(func(o *Options) *string { return &o.EdgeFontName }, DefaultFont),
		"bgcolor":             text(func(o *Options) *string { return &o.BgColor }, ""),
		"output":              text(func(o *Options) *string { return &o.OutputFileName }, DefaultOutput),
		"d":                   text(func(o *Options) *string { return &o.OutputDirectory }, ""),
		"view":                text(func(o *Options) *string { return &o.ViewName }, ""),

		"nodefontsize":        number(func(o *Options) *float64 { return &o.NodeFontSize }, DefaultFontSize),
		"nodefontclasssize":   number(func(o *Options) *float64 { return &o.NodeFontClassSize }, unsetSize),
		"nodefonttagsize":     number(func(o *Options) *float64 { return &o.NodeFontTagSize }, unsetSize),
		"nodefontpackagesize": number(func(o *Options) *float64 { return &o.NodeFontPackageSize }, unsetSize),
		"edgefontsize":        number(func(o *Options) *float64 { return &o.EdgeFontSize }, DefaultFontSize),
		"nodesep":             number(func(o *Options) *float64 { return &o.NodeSep }, DefaultNodeSep),
		"ranksep":             number(func(o *Options) *float64 { return &o.RankSep }, DefaultRankSep),

		"shape": {args: 1, negatable: true, apply: func(o *Options, positive bool, args []string) error {
			if !positive {
				o.Shape = ShapeClass
				return nil
			}
			s, err := ParseShape(args[0])
			o.Shape = s
			return configErr(err, "shape")
		}},
		"outputencoding": {args: 1, negatable: true, apply: func(o *Options, positive bool, args []string) error {
			if !positive {
				o.OutputEncoding = DefaultEncoding
				return nil
			}
			if _, err := htmlindex.Get(args[0]); err != nil {
				o.OutputEncoding = DefaultEncoding
				return errors.Wrap(errors.ErrCodeConfiguration, err, "unsupported output encoding %q", args[0])
			}
			o.OutputEncoding = args[0]
			return nil
		}},
		"inferreltype": {args: 1, negatable: true, apply: func(o *Options, positive bool, args []string) error {
			if !positive {
				o.InferRelationshipType = catalog.NavAssoc
				return nil
			}
			t, err := catalog.ParseRelationType(args[0])
			o.InferRelationshipType = t
			return configErr(err, "inferreltype")
		}},
		"inferdepvis": {args: 1, negatable: true, apply: func(o *Options, positive bool, args []string) error {
			if !positive {
				o.InferDependencyVisibility = model.Private
				return nil
			}
			v, err := model.ParseVisibility(args[0])
			o.InferDependencyVisibility = v
			return configErr(err, "inferdepvis")
		}},

		"hide": {args: 1, negatable: true, apply: func(o *Options, positive bool, args []string) error {
			switch {
			case !positive:
				o.hide, o.hideAll = nil, false
			case len(args) == 0:
				o.hide, o.hideAll = nil, true
			default:
				return o.addPattern(&o.hide, args[0])
			}
			return nil
		}},
		"include":      patternList(func(o *Options) *[]pattern { return &o.include }),
		"collpackages": patternList(func(o *Options) *[]pattern { return &o.collPackages }),

		"apidocroot": {args: 1, negatable: true, apply: func(o *Options, positive bool, args []string) error {
			if positive {
				o.APIDocRoot = FixAPIDocRoot(args[0])
			} else {
				o.APIDocRoot = ""
			}
			return nil
		}},
		"apidocmap": {args: 1, negatable: true, apply: func(o *Options, positive bool, args []string) error {
			if !positive {
				o.apiDocMap = nil
				return nil
			}
			return o.LoadAPIDocMapFile(args[0])
		}},
		"link": {args: 1, apply: func(o *Options, _ bool, args []string) error {
			root := FixAPIDocRoot(args[0])
			o.links = append(o.links, Link{DocRoot: root, ListURL: root})
			return nil
		}},
		"linkoffline": {args: 2, apply: func(o *Options, _ bool, args []string) error {
			o.links = append(o.links, Link{DocRoot: FixAPIDocRoot(args[0]), ListURL: FixAPIDocRoot(args[1])})
			return nil
		}},
		"contextpattern": {args: 2, apply: func(o *Options, _ bool, args []string) error {
			d, err := catalog.ParseDirection(args[1])
			if err != nil {
				return configErr(err, "contextPattern")
			}
			if strings.EqualFold(args[0], "all") {
				o.ContextPattern = catalog.NewPattern(d)
				return nil
			}
			t, err := catalog.ParseRelationType(args[0])
			if err != nil {
				return configErr(err, "contextPattern")
			}
			if o.ContextPattern == nil {
				o.ContextPattern = catalog.NewPattern(catalog.Both)
			}
			o.ContextPattern.Set(t, d)
			return nil
		}},
		"dotexecutable": {args: 1, apply: func(o *Options, _ bool, args []string) error {
			o.DotExecutable = args[0]
			return nil
		}},
	}
}

func flag(field func(*Options) *bool) optionSpec {
	return optionSpec{negatable: true, apply: func(o *Options, positive bool, _ []string) error {
		*field(o) = positive
		return nil
	}}
}

func text(field func(*Options) *string, def string) optionSpec {
	return optionSpec{args: 1, negatable: true, apply: func(o *Options, positive bool, args []string) error {
		if positive {
			*field(o) = args[0]
		} else {
			*field(o) = def
		}
		return nil
	}}
}

func number(field func(*Options) *float64, def float64) optionSpec {
	return optionSpec{args: 1, negatable: true, apply: func(o *Options, positive bool, args []string) error {
		if !positive {
			*field(o) = def
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil {
			*field(o) = def
			return errors.Wrap(errors.ErrCodeConfiguration, err, "invalid number %q", args[0])
		}
		*field(o) = v
		return nil
	}}
}

func patternList(field func(*Options) *[]pattern) optionSpec {
	return optionSpec{args: 1, negatable: true, apply: func(o *Options, positive bool, args []string) error {
		if !positive {
			*field(o) = nil
			return nil
		}
		return o.addPattern(field(o), args[0])
	}}
}

func (o *Options) addPattern(list *[]pattern, src string) error {
	p, err := compilePattern(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "skipping invalid pattern %q", src)
	}
	*list = append(*list, p)
	return nil
}

func configErr(err error, option string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrCodeConfiguration, err, "invalid value for %s, using default", option)
}

// splitOptionName strips the leading "-" and "!" from an option token and
// reports whether the option is negated.
func splitOptionName(tok string) (name string, negated bool) {
	name = tok
	if len(name) > 1 && name[0] == '-' {
		name = name[1:]
	}
	if len(name) > 1 && name[0] == '!' {
		name = name[1:]
		negated = true
	}
	return name, negated
}

// Known reports whether tok names an option.
func Known(tok string) bool {
	name, _ := splitOptionName(tok)
	_, ok := optionTable[strings.ToLower(name)]
	return ok
}

// Set applies one option given as a token list: the option name followed
// by its arguments, e.g. ["-hide", "java.*"] or ["-!attributes"]. A
// negated valued option takes no argument and restores its default.
//
// Invalid values never leave the options in a broken state: a malformed
// pattern is skipped, a malformed number or enumeration literal reverts the
// option to its default. In both cases a CONFIGURATION error is returned.
func (o *Options) Set(tokens []string) error {
	if len(tokens) == 0 || tokens[0] == "" {
		return nil
	}
	name, negated := splitOptionName(tokens[0])
	def, ok := optionTable[strings.ToLower(name)]
	if !ok {
		return errors.New(errors.ErrCodeConfiguration, "unknown option %q", tokens[0])
	}
	if negated && !def.negatable {
		return errors.New(errors.ErrCodeConfiguration, "option %q cannot be negated", name)
	}
	args := tokens[1:]
	if !negated && len(args) < def.args && !strings.EqualFold(name, "hide") {
		return errors.New(errors.ErrCodeConfiguration, "skipping option %q, missing argument", tokens[0])
	}
	return def.apply(o, !negated, args)
}

// SetAll applies each token list in order and returns the errors of the
// options that could not be applied as given.
func (o *Options) SetAll(lists [][]string) []error {
	var errs []error
	for _, tokens := range lists {
		if err := o.Set(tokens); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ApplyTags applies the "opt" tags of doc in source order.
func (o *Options) ApplyTags(doc model.Doc) []error {
	var errs []error
	for _, tag := range doc.Find("opt") {
		if err := o.Set(tag.Fields()); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ParseArgs groups a flat argument list into option token lists, using the
// argument count of each known option. Unknown tokens become single-token
// lists so that [Options.Set] reports them.
func ParseArgs(args []string) [][]string {
	var out [][]string
	for i := 0; i < len(args); {
		name, negated := splitOptionName(args[i])
		n := 0
		if def, ok := optionTable[strings.ToLower(name)]; ok && !negated {
			n = def.args
			if strings.EqualFold(name, "hide") && (i+1 >= len(args) || strings.HasPrefix(args[i+1], "-")) {
				n = 0
			}
		}
		end := min(i+1+n, len(args))
		out = append(out, args[i:end])
		i = end
	}
	return out
}
