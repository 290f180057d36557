// Package dot writes class diagrams in the Graphviz DOT language.
//
// # Output
//
// An [Emitter] serializes one diagram pass. Every class becomes a node whose
// label is an HTML-like table with nested compartments:
//
//	«stereotype»            name compartment
//	ClassName
//	{tag = value}
//	----------------------
//	- field : Type          attributes
//	----------------------
//	+ op(x : int) : Type    constructors and operations
//
// A compartment whose "show" flag is on is always present, with an empty
// row when the class has nothing to put in it, so diagrams keep a uniform
// shape. Relations become edges styled by their [catalog.RelationType].
// Extends and implements edges are written from the supertype to the
// subtype so that dot ranks supertypes above their subtypes.
//
// Nodes are named by the synthetic ids of the pass's [catalog.Catalog]:
// qualified names may contain characters DOT does not accept.
//
// # Usage
//
//	e := dot.New(w, dot.Config{Universe: u, Catalog: cat, Options: provider})
//	e.Prologue()
//	for _, c := range u.Included() {
//		e.Class(c, true)
//	}
//	...
//	e.Epilogue()
//	if err := e.Err(); err != nil { ... }
//
// The emitter remembers the first write error and turns every later call
// into a no-op; check [Emitter.Err] once at the end. Text is written as
// UTF-8; wrap the sink with [EncodeWriter] for other encodings.
package dot
