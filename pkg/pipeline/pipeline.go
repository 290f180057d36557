// Package pipeline generates class diagrams.
//
// This package drives the engine end to end: it loads a model, runs one
// [Pass] per requested diagram, renders the DOT output with Graphviz and,
// for documentation runs, links the images into the generated HTML pages.
//
// # Passes
//
// A [Pass] produces one DOT file in a fixed order of states:
//
//  1. Prologue: open the output and write the graph header
//  2. EmitDeclared: write the node of every documented class
//  3. EmitExplicitRelations: superclasses, interfaces and relation tags
//  4. EmitInferredRelations: fields (only with "inferrel")
//  5. EmitInferredDependencies: signatures and imports (only with "inferdep")
//  6. EmitPhantomNodes: classes reached only as relation endpoints
//  7. Epilogue: close the graph and move the output into place
//
// Every pass has its own catalog, so node ids restart at c0 and identical
// input produces identical output.
//
// # Usage
//
// Create a Generator and run the kind of request you need:
//
//	gen := pipeline.NewGenerator(universe, opts, logger)
//	result := gen.Run(ctx)            // one diagram, or one per view
//	result = gen.Docs(ctx, "apidocs") // package and context diagrams
//	if !result.OK {
//	    for _, d := range result.Diagnostics.Items() {
//	        fmt.Println(d)
//	    }
//	}
//
// Generator methods never panic and never stop at the first broken
// diagram; problems are collected in [Result.Diagnostics].
package pipeline

import (
	"time"

	"github.com/matzehuels/classgraph/pkg/errors"
)

// Well-known classes whose "opt" tags configure a whole run.
const (
	// OptionsClass carries options for every diagram.
	OptionsClass = "UMLOptions"
	// NoteOptionsClass carries options for note nodes.
	NoteOptionsClass = "UMLNoteOptions"
)

// Diagram describes one generated diagram.
type Diagram struct {
	// Name is the display name of the diagram's view.
	Name string
	// PassID identifies the pass in logs and hooks.
	PassID string
	// Output is the DOT file, or [StdoutName].
	Output string
	// Images are the rendered artifacts, if any.
	Images []string
	// Nodes and Relations count the catalog entries of the pass.
	Nodes     int
	Relations int
	Duration  time.Duration
	// Err is set when the DOT file was not produced.
	Err error
}

// Result is the outcome of a generator request.
type Result struct {
	// OK is false when an error-severity diagnostic was recorded.
	OK          bool
	Diagrams    []Diagram
	Diagnostics *errors.Diagnostics
}

// Failed returns the diagrams whose DOT file was not produced.
func (r *Result) Failed() []Diagram {
	var out []Diagram
	for _, d := range r.Diagrams {
		if d.Err != nil {
			out = append(out, d)
		}
	}
	return out
}

func newResult() *Result {
	return &Result{OK: true, Diagnostics: &errors.Diagnostics{}}
}

func (r *Result) finish() *Result {
	r.OK = !r.Diagnostics.HasErrors()
	return r
}
