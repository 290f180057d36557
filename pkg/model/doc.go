// Package model defines the source model the diagram engine consumes.
//
// # Overview
//
// A [Universe] is an ordered, name-indexed set of [Class] values: classes,
// interfaces and enums with their members, supertypes and structured
// documentation. The engine never parses source code itself; a [Provider]
// produces the universe. This repository ships two providers: the
// tree-sitter based Java reader in source/java and the JSON reader in io.
//
// # Names
//
// Class names are fully qualified and never carry generic arguments
// ("com.example.Outer.Inner"). Type references ([TypeRef]) keep their
// arguments as a tree so the engine can decide how much of a generic type
// to display and which element types to infer relations towards.
//
// # Documentation Tags
//
// Each class and member carries a [Doc] with the free-text body and the
// block tags in source order. Tag names are stored without the leading '@'.
// The engine interprets the tags "opt", "hidden", "extends", "view",
// "match", "note", "stereotype", "tagvalue" and the relation tags
// ("composed", "navcomposed", "has", "navhas", "assoc", "navassoc",
// "depend"). Tag text is split into fields with [Tokenize].
//
// # String Utilities
//
// The name helpers ([RemoveTemplate], [SplitPackageClass], [SimpleName],
// [PackageOf], [RelativePath]) and the escaping helpers ([Escape],
// [HTMLNewline]) are shared by the option resolver and the emitter.
package model
