package options

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/classgraph/pkg/model"
)

// Font selects how a piece of label text is wrapped.
type Font int

const (
	// FontNormal leaves the text unchanged.
	FontNormal Font = iota
	// FontAbstract renders abstract operations in italics.
	FontAbstract
	// FontClass uses the class-name font.
	FontClass
	// FontClassAbstract uses the class-name font, in italics when
	// NodeFontAbstractItalic is set.
	FontClassAbstract
	// FontTag uses the tagged-value font.
	FontTag
	// FontPackage uses the package-caption font.
	FontPackage
)

// Wrap wraps text in the markup of font f under o.
func (f Font) Wrap(o *Options, text string) string {
	switch f {
	case FontAbstract:
		return "<i>" + text + "</i>"
	case FontClass:
		return fontWrap(text, o.NodeFontClassName, o.NodeFontClassSize)
	case FontClassAbstract:
		if o.NodeFontAbstractItalic {
			text = "<i>" + text + "</i>"
		}
		return fontWrap(text, o.NodeFontClassName, o.NodeFontClassSize)
	case FontTag:
		return fontWrap(text, o.NodeFontTagName, o.NodeFontTagSize)
	case FontPackage:
		return fontWrap(text, o.NodeFontPackageName, o.NodeFontPackageSize)
	}
	return text
}

func fontWrap(text, face string, size float64) string {
	if face == "" && size <= 0 {
		return text
	}
	var b strings.Builder
	b.WriteString("<font")
	if face != "" {
		b.WriteString(` face="` + face + `"`)
	}
	if size > 0 {
		b.WriteString(` point-size="` + FormatNumber(size) + `"`)
	}
	b.WriteString(">" + text + "</font>")
	return b.String()
}

// FormatNumber formats v with the fewest digits that round-trip.
func FormatNumber(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Guillemize replaces "<<" and ">>" with the configured guillemets.
func (o *Options) Guillemize(s string) string {
	s = strings.ReplaceAll(s, "<<", o.GuilOpen)
	return strings.ReplaceAll(s, ">>", o.GuilClose)
}

// GuilWrap surrounds s with guillemets, as in «interface».
func (o *Options) GuilWrap(s string) string { return o.GuilOpen + s + o.GuilClose }

// QualifiedName returns a type name as it should be displayed. Generic
// arguments are dropped under HideGenerics. Without Qualify, leading
// lower-case dotted segments (the package) are stripped from the outer
// name; the same happens inside generic arguments unless QualifyGenerics
// is set.
func (o *Options) QualifiedName(name string) string {
	if o.HideGenerics {
		name = model.RemoveTemplate(name)
	}
	if o.Qualify && (o.QualifyGenerics || !strings.Contains(name, "<")) {
		return name
	}
	var b strings.Builder
	depth := 0
	for i := 0; i < len(name); {
		if isChainByte(name[i]) {
			j := i
			for j < len(name) && isChainByte(name[j]) {
				j++
			}
			strip := !o.Qualify
			if depth > 0 {
				strip = !o.QualifyGenerics
			}
			b.WriteString(stripPackage(name[i:j], strip))
			i = j
			continue
		}
		switch name[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		}
		b.WriteByte(name[i])
		i++
	}
	return b.String()
}

// isChainByte reports whether c may be part of a dotted identifier chain.
// Bytes of multi-byte runes count as identifier parts.
func isChainByte(c byte) bool {
	return c == '.' || c == '$' || c == '_' || c >= utf8.RuneSelf ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// stripPackage removes leading segments that start with a lower-case
// letter, as long as another segment follows.
func stripPackage(chain string, strip bool) string {
	if !strip {
		return chain
	}
	for {
		dot := strings.IndexAny(chain, ".$")
		if dot < 0 {
			return chain
		}
		if r, _ := utf8.DecodeRuneInString(chain); !unicode.IsLower(r) {
			return chain
		}
		chain = chain[dot+1:]
	}
}
