// Package view scopes a class diagram to a subset of the universe.
//
// A view is an [options.Provider]: it hands out the effective options of
// each class, and hides a class by installing the hide-everything sentinel
// in that class's options. Every query is a pure function of the base
// options, the view and the class:
//
//	clone base -> apply the view override -> apply the class's "opt" tags
//
// so the base is never modified and one class's override never leaks into
// another.
//
// # Views
//
//   - [Identity]: no scoping.
//   - [Package]: the classes of one package, unqualified, plus whatever the
//     include patterns name.
//   - [Context]: one class and its direct neighbours. The center is filled
//     with [HighlightColor]; classes of the center's package are unqualified.
//   - [Named]: a view written as Javadoc tags on a class, see [FindNamed]
//     and [AllNamed].
package view
