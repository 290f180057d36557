package catalog

import (
	"errors"
	"strconv"

	"github.com/matzehuels/classgraph/pkg/model"
)

// ErrEmptyName is returned when a node or relation endpoint has no name.
var ErrEmptyName = errors.New("class name must not be empty")

// HideFunc decides whether a class is hidden when its node is created.
type HideFunc func(name string) bool

// Node is the diagram representation of one class within a pass.
type Node struct {
	// ID is the synthetic DOT identifier ("c0", "c1", ...).
	ID string
	// Name is the qualified class name without generic arguments.
	Name string
	// Hidden is decided when the node is created and never cleared.
	Hidden bool
	// Printed is set once the node's label has been written.
	Printed bool

	relations map[string]*Pattern
}

// Relation returns the pattern recorded towards name, or nil.
func (n *Node) Relation(name string) *Pattern {
	return n.relations[model.RemoveTemplate(name)]
}

// Related reports whether any relation towards name exists.
func (n *Node) Related(name string) bool {
	return !n.Relation(name).Empty()
}

func (n *Node) addRelation(name string, t RelationType, d Direction) {
	p, ok := n.relations[name]
	if !ok {
		p = &Pattern{}
		n.relations[name] = p
	}
	p.Add(t, d)
}

// Catalog maps qualified class names to nodes for one diagram pass. Nodes
// are created on first reference and numbered in creation order, so two
// catalogs fed the same sequence of references assign the same ids.
//
// A Catalog is not safe for concurrent use.
type Catalog struct {
	hide      HideFunc
	nodes     map[string]*Node
	order     []*Node
	relations []Relation
}

// New returns an empty catalog. hide may be nil, in which case no class is
// hidden on creation.
func New(hide HideFunc) *Catalog {
	return &Catalog{hide: hide, nodes: make(map[string]*Node)}
}

// Lookup returns the node for name without creating it.
func (c *Catalog) Lookup(name string) *Node {
	return c.nodes[model.RemoveTemplate(name)]
}

// Node returns the node for name, creating it when needed. Generic
// arguments are ignored.
func (c *Catalog) Node(name string) (*Node, error) {
	name = model.RemoveTemplate(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if n, ok := c.nodes[name]; ok {
		return n, nil
	}
	n := &Node{
		ID:        "c" + strconv.Itoa(len(c.order)),
		Name:      name,
		relations: make(map[string]*Pattern),
	}
	if c.hide != nil {
		n.Hidden = c.hide(name)
	}
	c.nodes[name] = n
	c.order = append(c.order, n)
	return n, nil
}

// Hidden reports whether name is hidden. Known nodes answer from their
// record; unknown names are checked against the hide function without
// creating a node.
func (c *Catalog) Hidden(name string) bool {
	if n := c.Lookup(name); n != nil {
		return n.Hidden
	}
	return c.hide != nil && c.hide(model.RemoveTemplate(name))
}

// Hide marks the node for name hidden, creating it if needed.
func (c *Catalog) Hide(name string) error {
	n, err := c.Node(name)
	if err != nil {
		return err
	}
	n.Hidden = true
	return nil
}

// Relate records r. Both endpoints get a node if they lack one; the source
// gets the type's direction towards the target and the target the inverse.
func (c *Catalog) Relate(r Relation) (Relation, error) {
	r.From = model.RemoveTemplate(r.From)
	r.To = model.RemoveTemplate(r.To)
	from, err := c.Node(r.From)
	if err != nil {
		return r, err
	}
	to, err := c.Node(r.To)
	if err != nil {
		return r, err
	}
	d := r.Type.Direction()
	from.addRelation(to.Name, r.Type, d)
	to.addRelation(from.Name, r.Type, d.Inverse())
	c.relations = append(c.relations, r)
	return r, nil
}

// Relations returns the recorded relations in insertion order.
func (c *Catalog) Relations() []Relation {
	out := make([]Relation, len(c.relations))
	copy(out, c.relations)
	return out
}

// Nodes returns all nodes in creation order.
func (c *Catalog) Nodes() []*Node {
	out := make([]*Node, len(c.order))
	copy(out, c.order)
	return out
}

// Phantoms returns the nodes that are neither printed nor hidden, in
// creation order. After all relations of a pass are recorded these are the
// classes reached only as relation endpoints.
func (c *Catalog) Phantoms() []*Node {
	var out []*Node
	for _, n := range c.order {
		if !n.Printed && !n.Hidden {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of nodes.
func (c *Catalog) Len() int { return len(c.order) }
