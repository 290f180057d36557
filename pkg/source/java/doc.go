// Package java reads Java source trees into a [model.Universe].
//
// # Overview
//
// The [Provider] walks the given files and directories for .java files,
// parses each with tree-sitter and turns the declarations into model
// classes:
//
//	p := java.New([]string{"src/main/java"}, logger)
//	u, err := p.Load(ctx)
//
// Top-level and nested classes, interfaces, enums and records are read
// with their modifiers, type parameters, supertypes, fields, constructors,
// methods and enum constants. Nested classes are named "pkg.Outer.Inner".
// Annotation type declarations and anonymous classes are skipped.
//
// Files are parsed concurrently, up to [Provider.Workers] at a time, each
// worker with its own parser. The result does not depend on the worker
// count: classes are added in file path order.
//
// # Documentation Comments
//
// The doc comment (/** ... */) directly preceding a declaration is split
// into its body and block tags with [ParseDoc]. Tag text keeps its line
// breaks so multi-line notes survive.
//
// # Type Resolution
//
// Type names are resolved after all files are parsed, in this order:
// type variables in scope, the declaring class and its nested classes,
// single-type imports, classes of the same package, on-demand imports of
// parsed packages, and java.lang. Names already qualified by a package are
// kept. Anything else is left as written and marked unresolved, which keeps
// it out of dependency inference.
//
// Classes without a declared constructor get the implicit default
// constructor with the visibility of the class.
//
// # Errors
//
// Missing paths fail the load with FILE_NOT_FOUND. Syntax errors do not:
// tree-sitter recovers, the file is read as far as possible and a warning
// is logged. A class declared twice keeps its first declaration.
package java
