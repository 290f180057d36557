package dot

import (
	"strconv"
	"strings"

	"github.com/matzehuels/classgraph/pkg/catalog"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/options"
)

type align string

const (
	alignLeft   align = "left"
	alignCenter align = "center"
	alignRight  align = "right"
)

// Class writes the node of c and returns its id. Nothing is written when
// the node is hidden or already printed, or when c is an enum and
// enumerations are not shown. root tells whether c belongs to the set the
// diagram is drawn for; only root classes get relative links.
func (e *Emitter) Class(c *model.Class, root bool) string {
	n, err := e.catalog.Node(c.Name)
	if err != nil {
		return ""
	}
	if n.Printed || n.Hidden {
		return n.ID
	}
	opt := e.options.OptionsFor(c)
	if c.IsEnum() && !opt.ShowEnumerations {
		return n.ID
	}

	e.print(e.prefix + "// " + c.Name + "\n")
	e.print(e.prefix + n.ID + " [label=")
	url := e.classURL(c, root)
	e.tableStart(opt, c.Name, url)
	e.firstInnerStart(opt)
	switch c.Kind {
	case model.KindInterface:
		e.line(alignCenter, opt.GuilWrap("interface"))
	case model.KindEnum:
		e.line(alignCenter, opt.GuilWrap("enumeration"))
	}
	e.stereotypes(opt, c.Name, c.Doc, alignCenter)
	font := options.FontClass
	if c.Modifiers.Abstract && !c.IsInterface() {
		font = options.FontClassAbstract
	}
	name := opt.QualifiedName(displayName(c))
	idx := model.SplitPackageClass(name)
	switch {
	case opt.ShowComment:
		e.line(alignLeft, options.FontClass.Wrap(opt, model.HTMLNewline(model.Escape(c.Doc.Body))))
	case opt.PostfixPackage && idx > 0 && idx < len(name)-1:
		e.line(alignCenter, font.Wrap(opt, model.Escape(name[idx+1:])))
		e.line(alignCenter, options.FontPackage.Wrap(opt, name[:idx]))
	default:
		e.line(alignCenter, font.Wrap(opt, model.Escape(name)))
	}
	e.tagValues(opt, c.Name, c.Doc)
	e.firstInnerEnd(opt)

	e.compartments(opt, c)

	e.tableEnd()
	if url != "" {
		e.print(", URL=\"" + url + "\"")
	}
	e.nodeProperties(opt)
	n.Printed = true

	for i, tag := range c.Doc.Find("note") {
		e.note(n.ID, c.Name, url, i, tag.Text)
	}
	return n.ID
}

// displayName is the qualified name of c with its type parameters.
func displayName(c *model.Class) string {
	if len(c.TypeParams) == 0 {
		return c.Name
	}
	names := make([]string, len(c.TypeParams))
	for i, tp := range c.TypeParams {
		names[i] = tp.Name
	}
	return c.Name + "<" + strings.Join(names, ", ") + ">"
}

func (e *Emitter) compartments(opt *options.Options, c *model.Class) {
	enum := c.IsEnum()
	ops := !enum && (opt.ShowConstructors || opt.ShowOperations)

	if opt.ShowAttributes {
		e.innerStart()
		printed := false
		for _, f := range c.Fields {
			if opt.HidesMember(c, f.Name, f.Doc) {
				continue
			}
			e.stereotypes(opt, c.Name, f.Doc, alignLeft)
			att := visibility(opt, f.Modifiers) + f.Name
			if opt.ShowType {
				att += typeAnnotation(opt, f.Type)
			}
			e.line(alignLeft, att)
			e.tagValues(opt, c.Name, f.Doc)
			printed = true
		}
		if !printed {
			e.line(alignLeft, "")
		}
		e.innerEnd()
	} else if ops {
		// keep the operations in the third compartment
		e.innerStart()
		e.line(alignLeft, "")
		e.innerEnd()
	}

	if enum && opt.ShowEnumConstants {
		e.innerStart()
		printed := false
		for _, k := range c.Constants {
			if opt.HidesMember(c, k.Name, k.Doc) {
				continue
			}
			e.line(alignLeft, k.Name)
			printed = true
		}
		if !printed {
			e.line(alignLeft, "")
		}
		e.innerEnd()
	}

	if ops {
		e.innerStart()
		printed := false
		if opt.ShowConstructors {
			printed = e.constructors(opt, c) || printed
		}
		if opt.ShowOperations {
			printed = e.operations(opt, c) || printed
		}
		if !printed {
			e.line(alignLeft, "")
		}
		e.innerEnd()
	}
}

func (e *Emitter) constructors(opt *options.Options, c *model.Class) bool {
	printed := false
	for _, m := range c.Constructors {
		if opt.HidesMember(c, m.Name, m.Doc) {
			continue
		}
		name := m.Name
		if name == "" {
			name = model.SimpleName(c.Name)
		}
		e.stereotypes(opt, c.Name, m.Doc, alignLeft)
		sig := visibility(opt, m.Modifiers) + name
		if opt.ShowType {
			sig += "(" + parameters(opt, m.Params) + ")"
		} else {
			sig += "()"
		}
		e.line(alignLeft, sig)
		e.tagValues(opt, c.Name, m.Doc)
		printed = true
	}
	return printed
}

func (e *Emitter) operations(opt *options.Options, c *model.Class) bool {
	printed := false
	for _, m := range c.Methods {
		if opt.HidesMember(c, m.Name, m.Doc) {
			continue
		}
		e.stereotypes(opt, c.Name, m.Doc, alignLeft)
		sig := visibility(opt, m.Modifiers) + m.Name
		if opt.ShowType {
			sig += "(" + parameters(opt, m.Params) + ")" + typeAnnotation(opt, m.Return)
		} else {
			sig += "()"
		}
		font := options.FontNormal
		if m.Modifiers.Abstract {
			font = options.FontAbstract
		}
		e.line(alignLeft, font.Wrap(opt, sig))
		e.tagValues(opt, c.Name, m.Doc)
		printed = true
	}
	return printed
}

func visibility(opt *options.Options, m model.Modifiers) string {
	if opt.ShowVisibility {
		return m.Visibility.Symbol()
	}
	return " "
}

func parameters(opt *options.Options, params []model.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + typeAnnotation(opt, p.Type)
	}
	return strings.Join(parts, ", ")
}

// typeAnnotation renders " : Type"; void and missing types render nothing.
func typeAnnotation(opt *options.Options, t model.TypeRef) string {
	if t.Name == "" || (t.Name == "void" && t.Dims == 0) {
		return ""
	}
	return " : " + model.Escape(opt.QualifiedName(t.String()))
}

func (e *Emitter) stereotypes(opt *options.Options, owner string, doc model.Doc, a align) {
	for _, tag := range doc.Find("stereotype") {
		f := tag.Fields()
		if len(f) != 1 {
			e.warn(owner, "@stereotype expects one field: "+tag.Text)
			continue
		}
		e.line(a, opt.GuilWrap(model.Escape(f[0])))
	}
}

func (e *Emitter) tagValues(opt *options.Options, owner string, doc model.Doc) {
	for _, tag := range doc.Find("tagvalue") {
		f := tag.Fields()
		if len(f) != 2 {
			e.warn(owner, "@tagvalue expects two fields: "+tag.Text)
			continue
		}
		e.line(alignRight, options.FontTag.Wrap(opt, "{"+model.Escape(f[0])+" = "+model.Escape(f[1])+"}"))
	}
}

func (e *Emitter) note(classID, className, url string, i int, text string) {
	id := "n" + strconv.Itoa(i) + "c" + classID
	e.print(e.prefix + "// Note annotation\n")
	e.print(e.prefix + id + " [label=")
	e.tableStart(e.notes, className, url)
	e.innerStart()
	e.line(alignLeft, options.FontClass.Wrap(e.notes, model.HTMLNewline(model.Escape(text))))
	e.innerEnd()
	e.tableEnd()
	e.nodeProperties(e.notes)
	e.print(e.prefix + id + " -> " + classID + "[arrowhead=none];\n")
}

// Phantom writes the node of a class reached only as a relation endpoint.
// Classes the universe knows are written in full; unknown names get a
// name-only node unless a hide pattern matches them.
func (e *Emitter) Phantom(n *catalog.Node) {
	if n.Printed || n.Hidden {
		return
	}
	if c := e.universe.Lookup(n.Name); c != nil {
		e.Class(c, false)
		return
	}
	opt := e.options.OptionsForName(n.Name)
	if opt.MatchesHide(n.Name) {
		return
	}
	e.print(e.prefix + "// " + n.Name + "\n")
	e.print(e.prefix + n.ID + "[label=")
	e.tableStart(opt, n.Name, e.nameURL(n.Name))
	e.innerStart()
	name := opt.QualifiedName(n.Name)
	idx := model.SplitPackageClass(name)
	if opt.PostfixPackage && idx > 0 && idx < len(name)-1 {
		e.line(alignCenter, options.FontClass.Wrap(opt, model.Escape(name[idx+1:])))
		e.line(alignCenter, options.FontPackage.Wrap(opt, name[:idx]))
	} else {
		e.line(alignCenter, options.FontClass.Wrap(opt, model.Escape(name)))
	}
	e.innerEnd()
	e.tableEnd()
	e.nodeProperties(opt)
	n.Printed = true
}

func (e *Emitter) nodeProperties(opt *options.Options) {
	def := e.global
	if opt.NodeFontName != def.NodeFontName {
		e.print(",fontname=\"" + opt.NodeFontName + "\"")
	}
	if opt.NodeFontColor != def.NodeFontColor {
		e.print(",fontcolor=\"" + opt.NodeFontColor + "\"")
	}
	if opt.NodeFontSize != def.NodeFontSize {
		e.print(",fontsize=" + num(opt.NodeFontSize))
	}
	e.print(opt.Shape.Style() + "];\n")
}

func (e *Emitter) tableStart(opt *options.Options, title, url string) {
	var attrs string
	if opt.NodeFillColor != "" {
		attrs += " bgcolor=\"" + opt.NodeFillColor + "\""
	}
	if url != "" {
		attrs += " href=\"" + url + "\" target=\"_parent\""
	}
	e.print("<<table title=\"" + model.Escape(title) + "\" border=\"0\" cellborder=\"" + strconv.Itoa(opt.Shape.CellBorder()) +
		"\" cellspacing=\"0\" cellpadding=\"2\"" + attrs + ">" + e.postfix)
}

func (e *Emitter) tableEnd() {
	e.print(e.prefix + e.prefix + "</table>>")
}

func (e *Emitter) innerStart() {
	e.print(e.prefix + e.prefix + "<tr><td><table border=\"0\" cellspacing=\"0\" cellpadding=\"1\">" + e.postfix)
}

func (e *Emitter) innerEnd() {
	e.print(e.prefix + e.prefix + "</table></td></tr>" + e.postfix)
}

func (e *Emitter) firstInnerStart(opt *options.Options) {
	e.print(e.prefix + e.prefix + "<tr>" + opt.Shape.ExtraColumn() +
		"<td><table border=\"0\" cellspacing=\"0\" cellpadding=\"1\">" + e.postfix)
}

func (e *Emitter) firstInnerEnd(opt *options.Options) {
	e.print(e.prefix + e.prefix + "</table></td>" + opt.Shape.ExtraColumn() + "</tr>" + e.postfix)
}

func (e *Emitter) line(a align, text string) {
	e.print(e.prefix + e.prefix + "<tr><td align=\"" + string(a) + "\" balign=\"" + string(a) + "\"> " +
		text + " </td></tr>" + e.postfix)
}
