package dot

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/classgraph/pkg/buildinfo"
	"github.com/matzehuels/classgraph/pkg/catalog"
	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/options"
)

// Config holds the collaborators of an [Emitter].
type Config struct {
	// Universe is the analyzed source model.
	Universe *model.Universe
	// Catalog assigns node ids. It must be the catalog the relations of the
	// pass are recorded in.
	Catalog *catalog.Catalog
	// Options hands out the effective options of each class.
	Options options.Provider
	// Notes are the options of note nodes. When nil the global options
	// with the note shape are used.
	Notes *options.Options
	// ContextPackage makes links to documented classes relative to the
	// documentation directory of this package. Package and context
	// diagrams set it; it is ignored when Relative is false.
	ContextPackage string
	Relative       bool
	// Diagnostics receives malformed stereotype and tagvalue tags. May be
	// nil.
	Diagnostics *errors.Diagnostics
}

// Emitter writes the DOT text of one diagram pass.
//
// An Emitter is not safe for concurrent use.
type Emitter struct {
	w        io.Writer
	err      error
	universe *model.Universe
	catalog  *catalog.Catalog
	options  options.Provider
	global   *options.Options
	notes    *options.Options
	context  string
	relative bool
	diag     *errors.Diagnostics

	prefix  string
	postfix string
}

// New returns an emitter writing to w.
func New(w io.Writer, cfg Config) *Emitter {
	global := cfg.Options.GlobalOptions()
	notes := cfg.Notes
	if notes == nil {
		notes = global.Clone()
		notes.Shape = options.ShapeNote
	}
	e := &Emitter{
		w:        w,
		universe: cfg.Universe,
		catalog:  cfg.Catalog,
		options:  cfg.Options,
		global:   global,
		notes:    notes,
		context:  cfg.ContextPackage,
		relative: cfg.Relative,
		diag:     cfg.Diagnostics,
		prefix:   "\t",
		postfix:  "\n",
	}
	if global.Compact {
		e.prefix, e.postfix = "", ""
	}
	return e
}

// Err returns the first write error, if any.
func (e *Emitter) Err() error { return e.err }

func (e *Emitter) print(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *Emitter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// Prologue writes the file header, the opening of the graph and the
// default graph, edge and node attributes.
func (e *Emitter) Prologue() {
	o := e.global
	e.print("#!/usr/local/bin/dot\n" +
		"#\n" +
		"# Class diagram \n" +
		"# Generated by " + buildinfo.Generator() + "\n" +
		"#\n\n" +
		"digraph G {\n")
	e.print(e.prefix + "graph [fontnames=\"svg\"]\n")
	e.printf("%sedge [fontname=%q,fontsize=%s,labelfontname=%q,labelfontsize=%s,color=%q];\n",
		e.prefix, o.EdgeFontName, num(o.EdgeFontSize), o.EdgeFontName, num(o.EdgeFontSize), o.EdgeColor)
	e.printf("%snode [fontname=%q,fontcolor=%q,fontsize=%s,shape=plaintext,margin=0,width=0,height=0];\n",
		e.prefix, o.NodeFontName, o.NodeFontColor, num(o.NodeFontSize))
	e.print(e.prefix + "nodesep=" + num(o.NodeSep) + ";\n")
	e.print(e.prefix + "ranksep=" + num(o.RankSep) + ";\n")
	if o.Horizontal {
		e.print(e.prefix + "rankdir=LR;\n")
	}
	if o.BgColor != "" {
		e.print(e.prefix + "bgcolor=\"" + o.BgColor + "\";\n\n")
	}
}

// Epilogue closes the graph.
func (e *Emitter) Epilogue() {
	e.print("}\n")
}

// Relation writes the edge of r. Both endpoints must already have nodes in
// the catalog, which [catalog.Catalog.Relate] guarantees.
func (e *Emitter) Relation(r catalog.Relation) {
	from, to := e.catalog.Lookup(r.From), e.catalog.Lookup(r.To)
	if from == nil || to == nil {
		return
	}
	opt := e.optionsFor(r.From)
	def := e.global

	tail := labelAttr("taillabel", r.TailLabel)
	label := labelAttr("label", opt.Guillemize(r.Label))
	head := labelAttr("headlabel", r.HeadLabel)
	unlabeled := tail == "" && label == "" && head == ""

	n1, n2 := from.ID, to.ID
	if r.Type.BackOrder() {
		n1, n2 = n2, n1
		tail, head = head, tail
	}

	e.print(e.prefix + "// " + r.From + " " + r.Type.String() + " " + r.To + "\n")
	e.print(e.prefix + n1 + " -> " + n2 + " [" + r.Type.Style())
	if opt.EdgeColor != def.EdgeColor {
		e.print(",color=\"" + opt.EdgeColor + "\"")
	}
	if !unlabeled {
		if opt.EdgeFontName != def.EdgeFontName {
			e.print(",fontname=\"" + opt.EdgeFontName + "\"")
		}
		if opt.EdgeFontColor != def.EdgeFontColor {
			e.print(",fontcolor=\"" + opt.EdgeFontColor + "\"")
		}
		if opt.EdgeFontSize != def.EdgeFontSize {
			e.print(",fontsize=" + num(opt.EdgeFontSize))
		}
	}
	e.print(tail + label + head + "];\n")
}

func labelAttr(name, text string) string {
	if text == "" {
		return ""
	}
	return "," + name + "=\"" + quoteEscaper.Replace(text) + "\""
}

// quoteEscaper escapes text for a DOT double-quoted string.
var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func (e *Emitter) optionsFor(name string) *options.Options {
	if c := e.universe.Lookup(name); c != nil {
		return e.options.OptionsFor(c)
	}
	return e.options.OptionsForName(name)
}

func (e *Emitter) warn(subject, msg string) {
	if e.diag != nil {
		e.diag.Warn(errors.ErrCodeRelationTag, subject, "%s", msg)
	}
}

func num(v float64) string { return options.FormatNumber(v) }
