package options

import "github.com/matzehuels/classgraph/pkg/model"

// Provider hands out the effective options of one diagram. Every call
// returns a fresh value; implementations never let callers observe each
// other's modifications.
type Provider interface {
	// GlobalOptions returns the options of the diagram as a whole.
	GlobalOptions() *Options
	// OptionsFor returns the options for a declared class, after any view
	// override and the class's own "opt" tags.
	OptionsFor(c *model.Class) *Options
	// OptionsForName returns the options for a class known only by name.
	OptionsForName(name string) *Options
	// DisplayName describes the diagram in log messages.
	DisplayName() string
}

// Static returns a provider that applies no view: every class gets a clone
// of opt with its own "opt" tags applied.
func Static(opt *Options) Provider {
	return staticProvider{base: opt.Clone()}
}

type staticProvider struct {
	base *Options
}

func (p staticProvider) GlobalOptions() *Options { return p.base.Clone() }

func (p staticProvider) OptionsFor(c *model.Class) *Options {
	o := p.base.Clone()
	if c != nil {
		o.ApplyTags(c.Doc)
	}
	return o
}

func (p staticProvider) OptionsForName(string) *Options { return p.base.Clone() }

func (p staticProvider) DisplayName() string { return "general class diagram" }
