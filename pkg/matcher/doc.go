// Package matcher provides the class predicates used to scope diagrams.
//
// A [Matcher] answers whether a class belongs to a diagram. The strategies
// are [Package] (declared in one package), [Pattern] (qualified name
// matches a regex), [Subclass] (the class or an ancestor matches),
// [Interface] (the class transitively implements a matching interface) and
// [Context] (the class is directly related to a center class).
//
// Regexes are matched against the whole qualified name; use [Compile] to
// build them from user input.
//
// Hierarchy walks keep a visited set per query. Bad input such as a class
// extending itself terminates, and an interface reachable through several
// paths is examined once.
package matcher
