// Package htmldoc inserts class diagrams into generated API documentation.
//
// A [Patcher] reads an HTML page line by line and, after the first line
// matching an insertion pattern, writes a comment and an <object> tag that
// references the rendered diagram. [PackagePattern] finds the heading of a
// package summary page; [ClassPattern] the title line of a class page.
//
// The page is rewritten into a sibling file which replaces the original
// only when the pattern matched, so a page without an insertion point is
// left untouched.
package htmldoc
