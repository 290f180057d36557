// Package options implements the option resolver of the diagram engine.
//
// # Overview
//
// [Options] is a flat bag of rendering and filtering settings: booleans
// (which compartments to show, whether to infer relations), enumerations
// ([Shape], relation type, visibility), numeric sizes, colors, regular
// expression lists (hide, include, collection packages) and an ordered map
// from class-name patterns to external documentation roots.
//
// Options are values. A [Provider] returns a fresh clone for every query,
// so an override for one class can never leak into another.
//
// # Option Tokens
//
// Options are set with command-style tokens, from the command line, the
// configuration file or a class's "opt" documentation tags:
//
//	opt.Set([]string{"-attributes"})          // enable
//	opt.Set([]string{"-!attributes"})         // disable
//	opt.Set([]string{"-hide", "java\\..*"})   // add a hide pattern
//	opt.Set([]string{"-hide"})                // hide everything
//	opt.Set([]string{"-nodefontsize", "9"})   // numeric value
//
// Negated valued options take no argument and restore the default.
// Malformed input returns a CONFIGURATION error from pkg/errors: regexes
// are skipped, numbers and enumeration literals revert to their default.
//
// # Matching
//
// [Options.MatchesHide] and [Options.MatchesInclude] try patterns in
// insertion order and stop at the first match. The hide-everything sentinel
// installed by a bare "-hide" is checked before any pattern. Patterns match
// anywhere in the name unless StrictMatching asks for a full match.
//
// # Precedence
//
// Options from several sources are applied in this order, later sources
// winning: configuration file, command line, "opt" tags of the UMLOptions
// class, view overrides, and finally the "opt" tags of the class itself.
package options
