// Package infer derives the relations of a class diagram.
//
// # Explicit Relations
//
// [Builder.Explicit] records what a class declares: its superclass
// (EXTENDS, skipped for enums and java.lang.Object), "extends" tags, its
// interfaces (IMPLEMENTS), and relation tags such as
//
//	@composed 1 has * Wheel
//	@navassoc Engine
//
// A relation tag has four fields (tail label, label, head label, target) or
// just the target; "-" stands for an empty label. Other field counts are
// reported as RELATION_TAG diagnostics and the tag is skipped.
//
// # Inference
//
// [Builder.Relations] turns fields into associations of the configured
// type. Arrays and collection types (matched by -collpackages) point at
// their element type with a "*" head label. [Builder.Dependencies] adds
// DEPEND edges for the types used by methods, type parameter bounds and,
// optionally, imports.
//
// Inference never adds an edge for a pair that is already related, and
// candidates are collected into sets and emitted in name order, so the
// result does not depend on member declaration order.
package infer
