// Package apidoc resolves external documentation roots.
//
// A "link" or "linkoffline" option names the root of an external API
// documentation tree and the location of its package list. The package
// list is a plain text file with one package name per line, called
// "package-list" in older javadoc trees and "element-list" in newer ones
// (where module lines start with "module:").
//
// # Usage
//
//	client := apidoc.NewClient(cache, logger)
//	client.Resolve(ctx, opts, diag)
//
// After Resolve every listed package maps to its documentation root, so
// class nodes from those packages link into the external documentation.
//
// # Caching
//
// Package lists fetched over HTTP are stored in an [httputil.Cache] under
// the "package-list:" namespace. Local directories and file:// URLs are
// always read from disk.
package apidoc
