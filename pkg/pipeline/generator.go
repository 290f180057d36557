package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime/debug"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classgraph/pkg/apidoc"
	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/htmldoc"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/options"
	"github.com/matzehuels/classgraph/pkg/render"
	"github.com/matzehuels/classgraph/pkg/view"
)

// Generator runs diagram requests over one model.
//
// The base options are resolved once: command options first, then the
// "opt" tags of the [OptionsClass] class. Note options are the base
// options with the tags of [NoteOptionsClass] and the note shape. Both are
// only read afterwards, so a Generator may run several requests in a row.
type Generator struct {
	Universe *model.Universe
	Options  *options.Options
	Notes    *options.Options

	// Renderer draws each diagram after it is written; nil skips
	// rendering.
	Renderer render.Renderer
	// Formats are the image formats to render; empty means SVG.
	Formats []string
	// Links resolves "link" and "linkoffline" doc roots; nil uses a
	// client without cache.
	Links *apidoc.Client
	// Stdout receives diagrams written to "-".
	Stdout io.Writer
	Logger *log.Logger

	prepared bool
	prepDiag errors.Diagnostics
}

// NewGenerator returns a generator over u with base options opt. opt is
// cloned; the caller keeps ownership.
func NewGenerator(u *model.Universe, opt *options.Options, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	if opt == nil {
		opt = options.New()
	}
	return &Generator{
		Universe: u,
		Options:  opt.Clone(),
		Stdout:   os.Stdout,
		Logger:   logger,
	}
}

// prepare applies the run-wide option classes and resolves external doc
// roots. It runs once per generator.
func (g *Generator) prepare(ctx context.Context) {
	if g.prepared {
		return
	}
	g.prepared = true
	if c := g.findClass(OptionsClass); c != nil {
		for _, err := range g.Options.ApplyTags(c.Doc) {
			g.prepDiag.Add(c.Name, err)
		}
	}
	if g.Notes == nil {
		g.Notes = g.Options.Clone()
		if c := g.findClass(NoteOptionsClass); c != nil {
			for _, err := range g.Notes.ApplyTags(c.Doc) {
				g.prepDiag.Add(c.Name, err)
			}
		}
		g.Notes.Shape = options.ShapeNote
	}
	if len(g.Options.Links()) > 0 {
		links := g.Links
		if links == nil {
			links = apidoc.NewClient(nil, g.Logger)
		}
		links.Resolve(ctx, g.Options, &g.prepDiag)
		links.Resolve(ctx, g.Notes, nil)
	}
}

// findClass looks name up as a qualified name, then as a simple name.
func (g *Generator) findClass(name string) *model.Class {
	if c := g.Universe.Lookup(name); c != nil {
		return c
	}
	for _, c := range g.Universe.Classes() {
		if c.SimpleName() == name {
			return c
		}
	}
	return nil
}

func (g *Generator) start(ctx context.Context) *Result {
	res := newResult()
	g.prepare(ctx)
	res.Diagnostics.Merge(&g.prepDiag)
	g.logDiagnostics(&g.prepDiag)
	g.prepDiag = errors.Diagnostics{}
	return res
}

// Run generates the diagram the options ask for: one diagram per view
// when "view" or "views" is set, otherwise one diagram of every class.
func (g *Generator) Run(ctx context.Context) *Result {
	if g.Options.ViewName != "" || g.Options.FindViews {
		return g.Views(ctx)
	}
	res := g.start(ctx)
	g.diagram(ctx, res, view.Identity(g.Options), PassConfig{})
	return res.finish()
}

// Diagram generates one diagram with the options of p.
func (g *Generator) Diagram(ctx context.Context, p options.Provider) *Result {
	res := g.start(ctx)
	g.diagram(ctx, res, p, PassConfig{})
	return res.finish()
}

// Views generates the view selected by "view", or every view when
// "views" is set. A view that cannot be resolved fails only its own
// diagram.
func (g *Generator) Views(ctx context.Context) *Result {
	res := g.start(ctx)
	var named []*view.Named
	if g.Options.ViewName != "" {
		v, err := view.FindNamed(g.Universe, g.Options, g.Options.ViewName, res.Diagnostics)
		if err != nil {
			g.Logger.Error("cannot build view", "view", g.Options.ViewName, "err", err)
			res.Diagnostics.AddError(g.Options.ViewName, err)
			res.Diagrams = append(res.Diagrams, Diagram{Name: "view " + g.Options.ViewName, Err: err})
		} else {
			named = append(named, v)
		}
	}
	if g.Options.FindViews {
		for _, v := range view.AllNamed(g.Universe, g.Options, res.Diagnostics) {
			if !slices.ContainsFunc(named, func(n *view.Named) bool { return n.Class() == v.Class() }) {
				named = append(named, v)
			}
		}
	}
	if len(named) == 0 && g.Options.ViewName == "" {
		g.Logger.Warn("no views found")
		res.Diagnostics.Warn(errors.ErrCodeResolution, "", "no views found")
	}
	for _, v := range named {
		if ctx.Err() != nil {
			break
		}
		g.diagram(ctx, res, v, PassConfig{})
	}
	return res.finish()
}

// Docs generates a package diagram for every documented package and a
// context diagram for every documented class under outDir, renders them
// and inserts them into the HTML pages found there. An empty outDir means
// the "d" option.
func (g *Generator) Docs(ctx context.Context, outDir string) *Result {
	res := g.start(ctx)
	if outDir == "" {
		outDir = g.Options.OutputDirectory
	}
	base := g.Options.Clone()
	base.OutputDirectory = outDir
	root := view.Identity(base)
	patcher := &htmldoc.Patcher{
		AutoSize:    base.AutoSize,
		Collapsible: base.Collapsible,
		Encoding:    base.OutputEncoding,
		Logger:      g.Logger,
	}

	for _, pkg := range g.Universe.Packages() {
		if ctx.Err() != nil {
			return res.finish()
		}
		v := view.NewPackage(g.Universe, root, pkg)
		d := g.diagram(ctx, res, v, PassConfig{ContextPackage: pkg, Relative: true})
		g.patch(res, patcher, d, outDir, model.PackagePath(pkg)+htmldoc.PackageSummary,
			htmldoc.PackagePattern(), "Package class diagram package "+pkg)
	}

	var ctxView *view.Context
	for _, c := range g.Universe.Included() {
		if ctx.Err() != nil {
			break
		}
		if ctxView == nil {
			ctxView = view.NewContext(g.Universe, root, c)
		} else {
			ctxView.SetCenter(c)
		}
		d := g.diagram(ctx, res, ctxView, PassConfig{ContextPackage: c.Package, Relative: true})
		g.patch(res, patcher, d, outDir, model.PackagePath(c.Package)+c.SimpleName()+".html",
			htmldoc.ClassPattern(c.SimpleName()), "Class diagram "+c.Name)
	}
	return res.finish()
}

// diagram runs one pass and renders its output. Panics are recovered and
// recorded as INTERNAL errors of that diagram.
func (g *Generator) diagram(ctx context.Context, res *Result, p options.Provider, cfg PassConfig) (d Diagram) {
	if cfg.Notes == nil {
		cfg.Notes = g.Notes
	}
	if cfg.Stdout == nil {
		cfg.Stdout = g.Stdout
	}
	cfg.Logger = g.Logger
	d.Name = p.DisplayName()

	var pass *Pass
	defer func() {
		if r := recover(); r != nil {
			err := errors.New(errors.ErrCodeInternal, "panic while building %s: %v", d.Name, r)
			g.Logger.Error("internal error", "diagram", d.Name, "panic", r, "stack", string(debug.Stack()))
			res.Diagnostics.Fail(errors.ErrCodeInternal, d.Name, "%s", errors.UserMessage(err))
			d.Err = err
		}
		if pass != nil {
			g.logDiagnostics(pass.Diagnostics())
			res.Diagnostics.Merge(pass.Diagnostics())
		}
		res.Diagrams = append(res.Diagrams, d)
	}()

	start := time.Now()
	pass = NewPass(g.Universe, p, cfg)
	d.PassID = pass.ID
	d.Output = pass.Output()
	err := pass.Run(ctx)
	d.Nodes = pass.Catalog().Len()
	d.Relations = len(pass.Catalog().Relations())
	d.Duration = time.Since(start)
	if err != nil {
		g.Logger.Warn("diagram not written", "diagram", d.Name, "err", err)
		d.Err = err
		g.record(res, d.Name, err)
		return d
	}
	if d.Output != StdoutName {
		d.Images = g.render(ctx, res, d.Output)
	}
	return d
}

// record files a pass failure. Output problems are warnings; anything
// else fails the run.
func (g *Generator) record(res *Result, subject string, err error) {
	switch errors.GetCode(err) {
	case errors.ErrCodeSink, errors.ErrCodeInvalidPath:
		res.Diagnostics.Add(subject, err)
	default:
		res.Diagnostics.AddError(subject, err)
	}
}

// patch links the first image of d into page, relative to outDir. Pages
// that are missing or lack an insertion point are warnings.
func (g *Generator) patch(res *Result, p *htmldoc.Patcher, d Diagram, outDir, page string, at *regexp.Regexp, alt string) {
	if d.Err != nil || len(d.Images) == 0 {
		return
	}
	path := filepath.Join(outDir, filepath.FromSlash(page))
	ok, err := p.Patch(path, at, htmldoc.Diagram{Data: filepath.Base(d.Images[0]), Alt: alt})
	switch {
	case err != nil:
		res.Diagnostics.Add(page, err)
	case !ok:
		res.Diagnostics.Warn(errors.ErrCodeSink, page,
			"could not find a line that matches the pattern '%s'; class diagram reference not inserted", at)
	}
}

func (g *Generator) logDiagnostics(diag *errors.Diagnostics) {
	for _, d := range diag.Items() {
		if d.Severity == errors.SeverityError {
			g.Logger.Error(d.Message, "code", d.Code, "subject", d.Subject)
		} else {
			g.Logger.Warn(d.Message, "code", d.Code, "subject", d.Subject)
		}
	}
}
