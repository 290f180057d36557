// Package pkg provides the core libraries of classgraph, a UML class diagram
// generator.
//
// # Overview
//
// classgraph reads class declarations, infers how the classes relate and
// writes the result as a Graphviz DOT graph of UML class boxes and edges.
// The pkg directory is organized into four main areas:
//
//  1. Source model - [model], [source/java] and [io] describe and load the
//     classes a diagram is drawn from
//  2. Diagram engine - [options], [matcher], [view], [catalog], [infer] and
//     [render/dot] decide what is drawn and how
//  3. Orchestration - [pipeline] runs diagram passes and [render] turns
//     their DOT output into images
//  4. Infrastructure - [cache], [httputil], [apidoc], [htmldoc],
//     [observability], [errors] and [buildinfo]
//
// # Architecture
//
// The typical data flow through classgraph:
//
//	Java sources / JSON model
//	         ↓
//	    [source/java] or [io] (build a model.Universe)
//	         ↓
//	    [view] + [options] (scope and configure each diagram)
//	         ↓
//	    [infer] + [catalog] (relations, node identities)
//	         ↓
//	    [render/dot] (DOT text)
//	         ↓
//	    [render] (SVG/PNG/JPG), [htmldoc] (javadoc pages)
//
// # Quick Start
//
// Load a source tree and draw one diagram of every class:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/classgraph/pkg/options"
//	    "github.com/matzehuels/classgraph/pkg/pipeline"
//	    "github.com/matzehuels/classgraph/pkg/source/java"
//	)
//
//	ctx := context.Background()
//	u, _ := pipeline.Load(ctx, java.New([]string{"src/main/java"}, nil), "src/main/java", nil)
//
//	opt := options.New()
//	opt.Set([]string{"-attributes"})
//
//	res := pipeline.NewGenerator(u, opt, nil).Run(ctx)
//	for _, d := range res.Diagrams {
//	    fmt.Println(d.Output, d.Nodes, d.Relations)
//	}
//
// # Main Packages
//
// ## Source Model
//
// [model] - Classes, members, type references and documentation tags, plus
// the [model.Universe] that resolves names across them.
//
// [source/java] - Java source reader built on tree-sitter.
//
// [io] - JSON import and export of a universe.
//
// ## Diagram Engine
//
// [options] - The UMLGraph option set, parsed from tokens and documentation
// tags, with per-class overrides.
//
// [matcher] - Class predicates (patterns, packages, subclasses, context).
//
// [view] - Diagram scopes: the identity view, named views, package and
// context diagrams.
//
// [catalog] - Per-pass node registry that assigns DOT node ids.
//
// [infer] - Explicit, inferred and dependency relations.
//
// [render/dot] - DOT emitter for class nodes and relation edges.
//
// ## Orchestration
//
// [pipeline] - Diagram passes, result collection and documentation output.
//
// [render] - Image rendering with go-graphviz or an external dot executable.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/pipeline/...           # Specific package
//
// [model]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/model
// [source/java]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/source/java
// [io]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/io
// [options]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/options
// [matcher]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/matcher
// [view]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/view
// [catalog]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/catalog
// [infer]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/infer
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/httputil
// [apidoc]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/apidoc
// [htmldoc]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/htmldoc
// [observability]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/classgraph/pkg/buildinfo
package pkg
