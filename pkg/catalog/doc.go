// Package catalog holds the per-pass node registry of the diagram engine.
//
// # Overview
//
// A [Catalog] maps each qualified class name to exactly one [Node]. Nodes
// are created lazily, either when a declared class is emitted or when a
// relation names a class as an endpoint, and receive a short synthetic id
// ("c0", "c1", ...) because qualified names may contain characters that are
// not valid DOT identifiers.
//
// The catalog has pass-scoped lifetime: every diagram pass builds a new
// one, so ids are stable for the pass and never shared between passes.
//
// # Relations
//
// [Catalog.Relate] records a [Relation] and updates the per-pair
// [Pattern] of both endpoints: the source gets the direction of the
// relation type ([RelationType.Direction]) and the target its inverse.
// Inference consults these patterns to avoid adding a relation between a
// pair that is already related.
//
// # Hiding
//
// Whether a node is hidden is decided once, by the [HideFunc] given to
// [New], when the node is created. A hidden node stays hidden for the rest
// of the pass.
//
// # Phantom Nodes
//
// After all relations of a pass are recorded, [Catalog.Phantoms] returns
// the nodes that were neither printed as declared classes nor hidden: the
// classes reachable only as relation endpoints.
package catalog
