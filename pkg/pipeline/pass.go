package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/classgraph/pkg/catalog"
	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/infer"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/observability"
	"github.com/matzehuels/classgraph/pkg/options"
	"github.com/matzehuels/classgraph/pkg/render/dot"
)

// State is a step of a diagram pass.
type State int

// Pass states, in execution order.
const (
	StateNew State = iota
	StatePrologue
	StateEmitDeclared
	StateEmitExplicitRelations
	StateEmitInferredRelations
	StateEmitInferredDependencies
	StateEmitPhantomNodes
	StateEpilogue
	StateDone
	StateFailed
)

var stateNames = [...]string{
	"new", "prologue", "emit-declared", "emit-explicit-relations",
	"emit-inferred-relations", "emit-inferred-dependencies",
	"emit-phantom-nodes", "epilogue", "done", "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// PassConfig configures one [Pass].
type PassConfig struct {
	// Notes are the options of note nodes; nil derives them from the
	// diagram's global options.
	Notes *options.Options
	// ContextPackage and Relative make links of root classes relative to
	// a package directory; documentation diagrams set them.
	ContextPackage string
	Relative       bool
	// Output overrides the output file of the provider's global options.
	Output string
	// Stdout receives diagrams written to [StdoutName]. Defaults to
	// os.Stdout.
	Stdout io.Writer
	Logger *log.Logger
}

// Pass generates one diagram from scratch. It owns its catalog and
// diagnostics; nothing is shared with other passes except the read-only
// universe and options.
//
// A Pass runs once.
type Pass struct {
	ID       string
	universe *model.Universe
	provider options.Provider
	global   *options.Options
	cfg      PassConfig
	logger   *log.Logger

	state   State
	catalog *catalog.Catalog
	builder *infer.Builder
	emitter *dot.Emitter
	sink    *sink
	diag    errors.Diagnostics
	output  string
}

// NewPass prepares a pass over u with the options of p.
func NewPass(u *model.Universe, p options.Provider, cfg PassConfig) *Pass {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	id := uuid.NewString()
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	global := p.GlobalOptions()
	pass := &Pass{
		ID:       id,
		universe: u,
		provider: p,
		global:   global,
		cfg:      cfg,
		logger:   logger.With("pass", id[:8]),
		catalog:  catalog.New(infer.HideFunc(u, p)),
	}
	pass.output = outputPath(global, cfg.Output)
	return pass
}

// outputPath joins the output name with the output directory. Absolute
// names and standard output ignore the directory.
func outputPath(o *options.Options, override string) string {
	name := o.OutputFileName
	if override != "" {
		name = override
	}
	if name == StdoutName || filepath.IsAbs(name) || o.OutputDirectory == "" {
		return name
	}
	return filepath.Join(o.OutputDirectory, name)
}

// State returns the step the pass is in, or the last one it finished.
func (p *Pass) State() State { return p.state }

// Output returns the file the diagram is written to, or [StdoutName].
func (p *Pass) Output() string { return p.output }

// Diagnostics returns the problems found by the pass.
func (p *Pass) Diagnostics() *errors.Diagnostics { return &p.diag }

// Catalog returns the catalog of the pass, for inspection after Run.
func (p *Pass) Catalog() *catalog.Catalog { return p.catalog }

type step struct {
	state   State
	enabled func(*options.Options) bool
	run     func(*Pass) error
}

var steps = []step{
	{StatePrologue, nil, (*Pass).prologue},
	{StateEmitDeclared, nil, (*Pass).emitDeclared},
	{StateEmitExplicitRelations, nil, (*Pass).emitExplicit},
	{StateEmitInferredRelations, func(o *options.Options) bool { return o.InferRelationships }, (*Pass).emitInferred},
	{StateEmitInferredDependencies, func(o *options.Options) bool { return o.InferDependencies }, (*Pass).emitDependencies},
	{StateEmitPhantomNodes, nil, (*Pass).emitPhantoms},
	{StateEpilogue, nil, (*Pass).epilogue},
}

// Run executes every state in order. The output is released on every
// path; when the pass fails before the epilogue, the previous content of
// the output file is kept.
func (p *Pass) Run(ctx context.Context) (err error) {
	if p.state != StateNew {
		return errors.New(errors.ErrCodeInternal, "pass %s already ran", p.ID)
	}
	display := p.provider.DisplayName()
	hooks := observability.Pipeline()
	hooks.OnPassStart(ctx, p.ID, display)
	start := time.Now()
	p.logger.Info("building "+display, "output", p.output)

	defer func() {
		if p.sink != nil {
			p.sink.abort()
		}
		if err != nil {
			p.logger.Debug("pass failed", "state", p.state, "err", err)
			p.state = StateFailed
		}
		hooks.OnPassComplete(ctx, p.ID, display, p.catalog.Len(), len(p.catalog.Relations()), time.Since(start), err)
	}()

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.enabled != nil && !s.enabled(p.global) {
			continue
		}
		p.state = s.state
		if err := s.run(p); err != nil {
			return err
		}
		if p.emitter != nil {
			if err := p.emitter.Err(); err != nil {
				return errors.Wrap(errors.ErrCodeSink, err, "write %s", p.output)
			}
		}
	}
	p.state = StateDone
	p.logger.Debug("pass complete", "nodes", p.catalog.Len(), "relations", len(p.catalog.Relations()),
		"duration", time.Since(start))
	return nil
}

func (p *Pass) prologue() error {
	if p.output != StdoutName {
		if err := errors.ValidateOutputName(p.output, true); err != nil {
			return err
		}
	}
	s, err := openSink(p.output, p.global.OutputEncoding, p.cfg.Stdout)
	if err != nil {
		return err
	}
	p.sink = s
	p.builder = infer.NewBuilder(p.universe, p.catalog, p.provider, &p.diag)
	p.emitter = dot.New(s, dot.Config{
		Universe:       p.universe,
		Catalog:        p.catalog,
		Options:        p.provider,
		Notes:          p.cfg.Notes,
		ContextPackage: p.cfg.ContextPackage,
		Relative:       p.cfg.Relative,
		Diagnostics:    &p.diag,
	})
	p.emitter.Prologue()
	return nil
}

func (p *Pass) emitDeclared() error {
	for _, c := range p.universe.Included() {
		p.emitter.Class(c, true)
	}
	return nil
}

func (p *Pass) emitRelations(record func(*infer.Builder, *model.Class) []catalog.Relation) {
	for _, c := range p.universe.Included() {
		for _, r := range record(p.builder, c) {
			p.emitter.Relation(r)
		}
	}
}

func (p *Pass) emitExplicit() error {
	p.emitRelations((*infer.Builder).Explicit)
	return nil
}

func (p *Pass) emitInferred() error {
	p.emitRelations((*infer.Builder).Relations)
	return nil
}

func (p *Pass) emitDependencies() error {
	p.emitRelations((*infer.Builder).Dependencies)
	return nil
}

// emitPhantoms writes the nodes reached only as relation endpoints. All
// relations are recorded by now, so the unprinted visible nodes of the
// catalog are exactly those.
func (p *Pass) emitPhantoms() error {
	for _, n := range p.catalog.Phantoms() {
		p.emitter.Phantom(n)
	}
	return nil
}

func (p *Pass) epilogue() error {
	p.emitter.Epilogue()
	if err := p.emitter.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "write %s", p.output)
	}
	return p.sink.commit()
}
