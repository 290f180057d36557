// Package render turns DOT files into images.
//
// # Overview
//
// Layout is delegated to Graphviz. Two [Renderer] implementations are
// provided:
//
//   - [Graphviz] runs Graphviz in-process through go-graphviz and can keep
//     rendered artifacts in a [cache.Cache], keyed by the DOT text;
//   - [Command] runs an external executable, "dot" by default, as
//     "dot -T<format> -o <out> <in>".
//
// Both write the artifact next to the DOT file unless told otherwise:
//
//	r := render.NewGraphviz(c, nil, logger)
//	err := r.Render(ctx, render.Request{Input: "com/acme/Widget.dot", Format: render.FormatSVG})
//
// # Diagnostics
//
// The external command's standard error is recorded line by line as
// warnings in the request's diagnostics; a failed run is a SINK error.
//
// [cache.Cache]: github.com/matzehuels/classgraph/pkg/cache.Cache
package render
