package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits s into whitespace-separated fields. A field starting with
// a double quote extends to the next double quote and may contain spaces;
// the quotes are removed. An unterminated quote ends tokenization.
func Tokenize(s string) []string {
	var out []string
	rest := strings.TrimSpace(s)
	for rest != "" {
		var tok string
		if rest[0] == '"' {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				break
			}
			tok = rest[1 : end+1]
			rest = rest[end+2:]
		} else {
			end := strings.IndexFunc(rest, unicode.IsSpace)
			if end < 0 {
				end = len(rest)
			}
			tok = rest[:end]
			rest = rest[end:]
		}
		out = append(out, tok)
		rest = strings.TrimSpace(rest)
	}
	return out
}

// RemoveTemplate strips generic arguments, including nested ones:
// "java.util.Map<K, java.util.List<V>>" becomes "java.util.Map".
func RemoveTemplate(name string) string {
	if strings.IndexByte(name, '<') < 0 {
		return name
	}
	var b strings.Builder
	depth := 0
	for _, r := range name {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SplitPackageClass returns the index of the dot separating the package
// from the class in a qualified name, or -1 when there is no package. The
// package is assumed to end before the first segment starting with an
// upper-case letter; without such a segment the last dot is used. Generic
// arguments are not searched.
func SplitPackageClass(name string) int {
	limit := len(name)
	if i := strings.IndexByte(name, '<'); i >= 0 {
		limit = i
	}
	head := name[:limit]
	start := 0
	for {
		dot := strings.IndexByte(head[start:], '.')
		if dot < 0 {
			break
		}
		if r, _ := utf8.DecodeRuneInString(head[start:]); unicode.IsUpper(r) {
			return start - 1
		}
		start += dot + 1
	}
	if r, _ := utf8.DecodeRuneInString(head[start:]); unicode.IsUpper(r) {
		return start - 1
	}
	return strings.LastIndexByte(head, '.')
}

// PackageOf returns the package part of a qualified class name.
func PackageOf(name string) string {
	if i := SplitPackageClass(name); i >= 0 {
		return name[:i]
	}
	return ""
}

// SimpleName returns the part of a qualified name after its last dot,
// ignoring dots inside generic arguments.
func SimpleName(name string) string {
	limit := len(name)
	if i := strings.IndexByte(name, '<'); i >= 0 {
		limit = i
	}
	if i := strings.LastIndexByte(name[:limit], '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Escape escapes the characters that are special inside HTML-like labels.
func Escape(s string) string { return htmlEscaper.Replace(s) }

// HTMLNewline replaces newlines with "<br/>".
func HTMLNewline(s string) string { return strings.ReplaceAll(s, "\n", "<br/>") }

// RelativePath returns the relative directory path, ending in '/', that
// leads from the documentation directory of package from to that of
// package to. Both are dotted package names; the empty name is the
// default package at the documentation root.
func RelativePath(from, to string) string {
	fromParts, toParts := packageParts(from), packageParts(to)
	i := 0
	for i < len(fromParts) && i < len(toParts) && fromParts[i] == toParts[i] {
		i++
	}
	var b strings.Builder
	if i == len(fromParts) {
		if from != "" || to == "" {
			b.WriteString("./")
		}
	} else {
		for j := i; j < len(fromParts); j++ {
			b.WriteString("../")
		}
	}
	for j := i; j < len(toParts); j++ {
		b.WriteString(toParts[j])
		b.WriteByte('/')
	}
	return b.String()
}

func packageParts(pkg string) []string {
	if pkg == "" {
		return nil
	}
	return strings.Split(pkg, ".")
}

// PackagePath converts a dotted package name into a slash-separated path
// ending in '/'. The empty package yields the empty string.
func PackagePath(pkg string) string {
	if pkg == "" {
		return ""
	}
	return strings.ReplaceAll(pkg, ".", "/") + "/"
}
