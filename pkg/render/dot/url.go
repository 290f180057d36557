package dot

import (
	"strings"

	"github.com/matzehuels/classgraph/pkg/model"
)

// classURL returns the documentation link of a declared class, or "".
// Root classes of a package or context diagram link relative to the
// diagram's own package.
func (e *Emitter) classURL(c *model.Class, root bool) string {
	if root && e.relative && !c.External {
		return model.RelativePath(e.context, c.Package) + c.SimpleName() + ".html"
	}
	return e.nameURL(c.Name)
}

// nameURL links documented classes under the API doc root and other
// classes under the first matching external doc root.
func (e *Emitter) nameURL(name string) string {
	if c := e.universe.Lookup(name); c != nil && !c.External {
		root := e.global.APIDocRoot
		if root == "" {
			return ""
		}
		return root + model.PackagePath(c.Package) + c.SimpleName() + ".html"
	}
	root := e.global.ExternalDocRoot(name)
	if root == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(root)
	split := model.SplitPackageClass(name)
	if split > 0 {
		b.WriteString(model.PackagePath(name[:split]))
	}
	b.WriteString(name[split+1:])
	b.WriteString(".html")
	return b.String()
}
