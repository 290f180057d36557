package options

import "github.com/matzehuels/classgraph/pkg/model"

// HidesClass reports whether c is left out of the diagram under o. A class
// is hidden by a "hidden" or "hide" tag, by being a view definition, by a
// hide pattern, or as a private nested class under -hideprivateinner.
func (o *Options) HidesClass(c *model.Class) bool {
	if c.Doc.Has("hidden") || c.Doc.Has("hide") || c.Doc.Has("view") {
		return true
	}
	if o.MatchesHide(c.Name) {
		return true
	}
	return o.HidePrivateInner && c.IsNested() && c.Modifiers.Visibility == model.Private
}

// HidesMember reports whether the member name of c, documented by doc, is
// left out of the class's compartments and of inference.
func (o *Options) HidesMember(c *model.Class, name string, doc model.Doc) bool {
	return doc.Has("hidden") || o.MatchesHide(c.Name+"."+name)
}
