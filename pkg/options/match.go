package options

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/classgraph/pkg/errors"
)

// MatchesHide reports whether name matches a hide pattern. The
// hide-everything sentinel is checked first and matches every name.
func (o *Options) MatchesHide(name string) bool {
	if o.hideAll {
		return true
	}
	return o.matchAny(o.hide, name)
}

// MatchesInclude reports whether name matches an include pattern.
func (o *Options) MatchesInclude(name string) bool { return o.matchAny(o.include, name) }

// MatchesCollPackage reports whether name matches a collection pattern.
func (o *Options) MatchesCollPackage(name string) bool { return o.matchAny(o.collPackages, name) }

// matchAny tries the patterns in insertion order. Patterns search for a
// match anywhere in name unless strict matching asks for a full match.
func (o *Options) matchAny(ps []pattern, name string) bool {
	for _, p := range ps {
		if p.match(name, o.StrictMatching) {
			return true
		}
	}
	return false
}

// ExternalDocRoot returns the external documentation root for className. Roots
// are tried in the order they were added and must match the whole name.
// Without any configured root the Java SE documentation is used. The empty
// string means no root matched.
func (o *Options) ExternalDocRoot(className string) string {
	if len(o.apiDocMap) == 0 {
		return DefaultExternalAPIDoc
	}
	for _, e := range o.apiDocMap {
		if e.pattern.full.MatchString(className) {
			return e.root
		}
	}
	return ""
}

// AddAPIDocRoot maps class names fully matching expr to root.
func (o *Options) AddAPIDocRoot(expr, root string) error {
	p, err := compilePattern(expr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "skipping bad pattern %q", expr)
	}
	o.apiDocMap = append(o.apiDocMap, docRoot{pattern: p, root: FixAPIDocRoot(root)})
	return nil
}

// AddPackageList maps the classes of each listed package to root. Each
// package p matches the class names "p.X" where X contains no dot.
func (o *Options) AddPackageList(root string, packages []string) {
	for _, pkg := range packages {
		pkg = strings.TrimSpace(pkg)
		if pkg == "" || strings.HasPrefix(pkg, "module:") {
			continue
		}
		_ = o.AddAPIDocRoot(regexp.QuoteMeta(pkg+".")+`[^\.]*`, root)
	}
}

// FixAPIDocRoot trims s, converts backslashes to slashes and makes sure a
// non-empty root ends with '/'.
func FixAPIDocRoot(s string) string {
	fixed := strings.TrimSpace(s)
	if fixed == "" {
		return ""
	}
	fixed = strings.ReplaceAll(fixed, `\`, "/")
	if !strings.HasSuffix(fixed, "/") {
		fixed += "/"
	}
	return fixed
}

// LoadAPIDocMapFile reads a properties file of "pattern=url" entries and
// adds them in file order. Bad patterns and entries without a URL are
// skipped; the first problem is returned.
func (o *Options) LoadAPIDocMapFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "cannot read api doc map %s", path)
	}
	defer f.Close()
	return o.LoadAPIDocMap(f)
}

// LoadAPIDocMap is [Options.LoadAPIDocMapFile] for an open reader.
func (o *Options) LoadAPIDocMap(r io.Reader) error {
	entries, err := readProperties(r)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "cannot parse api doc map")
	}
	var first error
	for _, e := range entries {
		var err error
		if strings.TrimSpace(e[1]) == "" {
			err = errors.New(errors.ErrCodeConfiguration, "no URL for pattern %q", e[0])
		} else {
			err = o.AddAPIDocRoot(e[0], e[1])
		}
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

// readProperties parses the subset of the Java properties format used by
// api doc maps: comment lines, "key=value", "key: value" and "key value"
// entries, trailing-backslash continuations and backslash escapes.
func readProperties(r io.Reader) ([][2]string, error) {
	var out [][2]string
	sc := bufio.NewScanner(r)
	var logical strings.Builder
	for sc.Scan() {
		line := strings.TrimLeft(sc.Text(), " \t\f")
		if logical.Len() == 0 && (line == "" || line[0] == '#' || line[0] == '!') {
			continue
		}
		if trailingBackslashes(line)%2 == 1 {
			logical.WriteString(line[:len(line)-1])
			continue
		}
		logical.WriteString(line)
		key, value := splitProperty(logical.String())
		logical.Reset()
		out = append(out, [2]string{unescapeProperty(key), unescapeProperty(value)})
	}
	if logical.Len() > 0 {
		key, value := splitProperty(logical.String())
		out = append(out, [2]string{unescapeProperty(key), unescapeProperty(value)})
	}
	return out, sc.Err()
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

func splitProperty(line string) (string, string) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '=', ':':
			return line[:i], strings.TrimLeft(line[i+1:], " \t\f")
		case ' ', '\t', '\f':
			rest := strings.TrimLeft(line[i:], " \t\f")
			if rest != "" && (rest[0] == '=' || rest[0] == ':') {
				rest = rest[1:]
			}
			return line[:i], strings.TrimLeft(rest, " \t\f")
		}
	}
	return line, ""
}

func unescapeProperty(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case 'u':
			if i+4 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
