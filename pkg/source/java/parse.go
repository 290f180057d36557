package java

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/matzehuels/classgraph/pkg/model"
)

// unit is the parse result of one compilation unit.
type unit struct {
	path    string
	pkg     string
	imports []string
	classes []*model.Class
	// syntax is set when tree-sitter had to recover from errors.
	syntax bool
}

// parser wraps a tree-sitter parser for Java. It is not safe for
// concurrent use.
type parser struct {
	ts *sitter.Parser
}

func newParser() (*parser, error) {
	ts := sitter.NewParser()
	if err := ts.SetLanguage(sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		ts.Close()
		return nil, fmt.Errorf("load java grammar: %w", err)
	}
	return &parser{ts: ts}, nil
}

func (p *parser) Close() { p.ts.Close() }

// parse reads the declarations of one compilation unit. Type references
// are left as written; see resolver.
func (p *parser) parse(path string, src []byte) (*unit, error) {
	tree := p.ts.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: no tree", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	w := &walker{src: src, u: &unit{path: path, syntax: root.HasError()}}
	for i := uint(0); i < root.NamedChildCount(); i++ {
		n := root.NamedChild(i)
		switch n.Kind() {
		case "package_declaration":
			w.u.pkg = w.packageName(n)
		case "import_declaration":
			if imp := w.importName(n); imp != "" {
				w.u.imports = append(w.u.imports, imp)
			}
		}
	}
	for i := uint(0); i < root.NamedChildCount(); i++ {
		w.declaration(root.NamedChild(i), nil)
	}
	return w.u, nil
}

type walker struct {
	src []byte
	u   *unit
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(w.src)
}

func (w *walker) packageName(n *sitter.Node) string {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c.Kind() == "scoped_identifier" || c.Kind() == "identifier" {
			return w.text(c)
		}
	}
	return ""
}

// importName returns "a.b.C" or "a.b.*". Static imports name members, not
// types, and are dropped.
func (w *walker) importName(n *sitter.Node) string {
	var parts []string
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Kind() {
		case "static":
			return ""
		case "scoped_identifier", "identifier":
			parts = append(parts, w.text(c))
		case "asterisk":
			parts = append(parts, "*")
		}
	}
	return strings.Join(parts, ".")
}

// declaration reads a type declaration and its nested types. outer is nil
// for top-level types.
func (w *walker) declaration(n *sitter.Node, outer *model.Class) {
	var kind model.Kind
	switch n.Kind() {
	case "class_declaration", "record_declaration":
		kind = model.KindClass
	case "interface_declaration":
		kind = model.KindInterface
	case "enum_declaration":
		kind = model.KindEnum
	default:
		return
	}
	simple := w.text(n.ChildByFieldName("name"))
	if simple == "" {
		return
	}
	c := &model.Class{
		Package: w.u.pkg,
		Kind:    kind,
		Imports: w.u.imports,
		Doc:     w.doc(n),
	}
	switch {
	case outer != nil:
		c.Name = outer.Name + "." + simple
		c.Outer = outer.Name
	case w.u.pkg != "":
		c.Name = w.u.pkg + "." + simple
	default:
		c.Name = simple
	}
	c.Modifiers = w.modifiers(n, memberDefault(outer))
	if outer != nil && outer.IsInterface() {
		c.Modifiers.Static = true
	}
	if kind == model.KindClass && n.Kind() == "record_declaration" {
		c.Modifiers.Final = true
	}
	c.TypeParams = w.typeParams(n.ChildByFieldName("type_parameters"))

	if sc := n.ChildByFieldName("superclass"); sc != nil {
		for i := uint(0); i < sc.NamedChildCount(); i++ {
			if t := sc.NamedChild(i); isType(t.Kind()) {
				ref := w.typeRef(t)
				c.Super = &ref
				break
			}
		}
	}
	if in := n.ChildByFieldName("interfaces"); in != nil {
		c.Interfaces = w.typeList(in)
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if ch := n.NamedChild(i); ch.Kind() == "extends_interfaces" {
			c.Interfaces = append(c.Interfaces, w.typeList(ch)...)
		}
	}
	if n.Kind() == "record_declaration" {
		for _, p := range w.params(n.ChildByFieldName("parameters")) {
			c.Fields = append(c.Fields, model.Field{
				Name:      p.Name,
				Type:      p.Type,
				Modifiers: model.Modifiers{Visibility: model.Private, Final: true},
			})
		}
	}

	w.u.classes = append(w.u.classes, c)
	if body := n.ChildByFieldName("body"); body != nil {
		w.body(body, c)
	}
	if kind == model.KindClass && len(c.Constructors) == 0 {
		c.Constructors = []model.Method{{
			Name:      simple,
			Modifiers: model.Modifiers{Visibility: c.Modifiers.Visibility},
		}}
	}
}

func (w *walker) body(n *sitter.Node, c *model.Class) {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		m := n.NamedChild(i)
		switch m.Kind() {
		case "field_declaration", "constant_declaration":
			w.fields(m, c)
		case "method_declaration":
			c.Methods = append(c.Methods, w.method(m, c))
		case "constructor_declaration", "compact_constructor_declaration":
			ctor := w.method(m, c)
			ctor.Return = model.TypeRef{}
			if c.IsEnum() {
				ctor.Modifiers.Visibility = model.Private
			}
			c.Constructors = append(c.Constructors, ctor)
		case "enum_constant":
			c.Constants = append(c.Constants, model.EnumConstant{
				Name: w.text(m.ChildByFieldName("name")),
				Doc:  w.doc(m),
			})
		case "enum_body_declarations":
			w.body(m, c)
		default:
			w.declaration(m, c)
		}
	}
}

func (w *walker) fields(n *sitter.Node, c *model.Class) {
	mods := w.modifiers(n, memberDefault(c))
	if c.IsInterface() {
		mods.Static, mods.Final = true, true
	}
	typ := w.typeRef(n.ChildByFieldName("type"))
	doc := w.doc(n)
	for i := uint(0); i < n.NamedChildCount(); i++ {
		d := n.NamedChild(i)
		if d.Kind() != "variable_declarator" {
			continue
		}
		t := typ
		t.Dims += dims(w.text(d.ChildByFieldName("dimensions")))
		c.Fields = append(c.Fields, model.Field{
			Name:      w.text(d.ChildByFieldName("name")),
			Type:      t,
			Modifiers: mods,
			Doc:       doc,
		})
	}
}

func (w *walker) method(n *sitter.Node, c *model.Class) model.Method {
	m := model.Method{
		Name:       w.text(n.ChildByFieldName("name")),
		TypeParams: w.typeParams(n.ChildByFieldName("type_parameters")),
		Params:     w.params(n.ChildByFieldName("parameters")),
		Modifiers:  w.modifiers(n, memberDefault(c)),
		Doc:        w.doc(n),
	}
	if m.Name == "" {
		m.Name = model.SimpleName(c.Name)
	}
	if t := n.ChildByFieldName("type"); t != nil {
		m.Return = w.typeRef(t)
		m.Return.Dims += dims(w.text(n.ChildByFieldName("dimensions")))
	}
	if c.IsInterface() && n.ChildByFieldName("body") == nil && !m.Modifiers.Static {
		m.Modifiers.Abstract = true
	}
	return m
}

func (w *walker) params(n *sitter.Node) []model.Param {
	if n == nil {
		return nil
	}
	var out []model.Param
	for i := uint(0); i < n.NamedChildCount(); i++ {
		p := n.NamedChild(i)
		switch p.Kind() {
		case "formal_parameter":
			t := w.typeRef(p.ChildByFieldName("type"))
			t.Dims += dims(w.text(p.ChildByFieldName("dimensions")))
			out = append(out, model.Param{Name: w.text(p.ChildByFieldName("name")), Type: t})
		case "spread_parameter":
			var prm model.Param
			for j := uint(0); j < p.NamedChildCount(); j++ {
				ch := p.NamedChild(j)
				switch {
				case isType(ch.Kind()):
					prm.Type = w.typeRef(ch)
				case ch.Kind() == "variable_declarator":
					prm.Name = w.text(ch.ChildByFieldName("name"))
				}
			}
			prm.Type.Dims++
			out = append(out, prm)
		}
	}
	return out
}

// memberDefault is the visibility of an unmodified member of c.
func memberDefault(c *model.Class) model.Visibility {
	if c != nil && c.IsInterface() {
		return model.Public
	}
	return model.Package
}

func (w *walker) modifiers(n *sitter.Node, def model.Visibility) model.Modifiers {
	m := model.Modifiers{Visibility: def}
	for i := uint(0); i < n.ChildCount(); i++ {
		mods := n.Child(i)
		if mods.Kind() != "modifiers" {
			continue
		}
		for j := uint(0); j < mods.ChildCount(); j++ {
			switch mods.Child(j).Kind() {
			case "public":
				m.Visibility = model.Public
			case "protected":
				m.Visibility = model.Protected
			case "private":
				m.Visibility = model.Private
			case "static":
				m.Static = true
			case "abstract":
				m.Abstract = true
			case "final":
				m.Final = true
			}
		}
	}
	return m
}

func (w *walker) typeParams(n *sitter.Node) []model.TypeParam {
	if n == nil {
		return nil
	}
	var out []model.TypeParam
	for i := uint(0); i < n.NamedChildCount(); i++ {
		p := n.NamedChild(i)
		if p.Kind() != "type_parameter" {
			continue
		}
		var tp model.TypeParam
		for j := uint(0); j < p.NamedChildCount(); j++ {
			ch := p.NamedChild(j)
			switch ch.Kind() {
			case "type_identifier", "identifier":
				tp.Name = w.text(ch)
			case "type_bound":
				for k := uint(0); k < ch.NamedChildCount(); k++ {
					if b := ch.NamedChild(k); isType(b.Kind()) {
						tp.Bounds = append(tp.Bounds, w.typeRef(b))
					}
				}
			}
		}
		out = append(out, tp)
	}
	return out
}

// typeList reads the types of a super_interfaces or extends_interfaces
// node.
func (w *walker) typeList(n *sitter.Node) []model.TypeRef {
	var out []model.TypeRef
	for i := uint(0); i < n.NamedChildCount(); i++ {
		ch := n.NamedChild(i)
		if ch.Kind() == "type_list" {
			out = append(out, w.typeList(ch)...)
		} else if isType(ch.Kind()) {
			out = append(out, w.typeRef(ch))
		}
	}
	return out
}

func isType(kind string) bool {
	switch kind {
	case "void_type", "integral_type", "floating_point_type", "boolean_type",
		"type_identifier", "scoped_type_identifier", "generic_type",
		"array_type", "annotated_type", "wildcard":
		return true
	}
	return false
}

// typeRef converts a type node. Names stay as written.
func (w *walker) typeRef(n *sitter.Node) model.TypeRef {
	if n == nil {
		return model.TypeRef{}
	}
	switch n.Kind() {
	case "void_type", "integral_type", "floating_point_type", "boolean_type":
		return model.TypeRef{Name: w.text(n), Primitive: true}
	case "type_identifier":
		return model.TypeRef{Name: w.text(n)}
	case "scoped_type_identifier":
		return model.TypeRef{Name: model.RemoveTemplate(strings.Join(strings.Fields(w.text(n)), ""))}
	case "generic_type":
		var t model.TypeRef
		for i := uint(0); i < n.NamedChildCount(); i++ {
			ch := n.NamedChild(i)
			switch ch.Kind() {
			case "type_identifier", "scoped_type_identifier":
				t.Name = w.typeRef(ch).Name
			case "type_arguments":
				for j := uint(0); j < ch.NamedChildCount(); j++ {
					if a := ch.NamedChild(j); isType(a.Kind()) {
						t.Args = append(t.Args, w.typeRef(a))
					}
				}
			}
		}
		return t
	case "array_type":
		t := w.typeRef(n.ChildByFieldName("element"))
		t.Dims += dims(w.text(n.ChildByFieldName("dimensions")))
		return t
	case "annotated_type":
		for i := n.NamedChildCount(); i > 0; i-- {
			if ch := n.NamedChild(i - 1); isType(ch.Kind()) {
				return w.typeRef(ch)
			}
		}
	case "wildcard":
		t := model.TypeRef{Name: "?", Wildcard: true}
		for i := uint(0); i < n.ChildCount(); i++ {
			ch := n.Child(i)
			switch {
			case ch.Kind() == "super":
				t.Super = true
			case isType(ch.Kind()):
				t.Bounds = append(t.Bounds, w.typeRef(ch))
			}
		}
		return t
	}
	return model.TypeRef{Name: w.text(n)}
}

func dims(s string) int { return strings.Count(s, "[") }

// doc returns the doc comment directly preceding n. Other comments between
// the doc comment and the declaration are skipped.
func (w *walker) doc(n *sitter.Node) model.Doc {
	for prev := n.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		switch prev.Kind() {
		case "block_comment", "line_comment", "comment":
			if s := w.text(prev); strings.HasPrefix(s, "/**") && s != "/**/" {
				return ParseDoc(s)
			}
		default:
			return model.Doc{}
		}
	}
	return model.Doc{}
}
