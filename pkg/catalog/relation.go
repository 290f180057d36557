package catalog

import (
	"fmt"
	"strings"
)

// RelationType is the kind of a relation between two classes.
type RelationType int

const (
	Extends RelationType = iota
	Implements
	Composed
	NavComposed
	Has
	NavHas
	Assoc
	NavAssoc
	Depend

	numRelationTypes
)

// RelationTypes lists every relation type in declaration order.
var RelationTypes = []RelationType{
	Extends, Implements, Composed, NavComposed, Has, NavHas, Assoc, NavAssoc, Depend,
}

// TagRelationTypes lists the relation types that can be declared with a
// documentation tag, in the order they are emitted.
var TagRelationTypes = []RelationType{
	Composed, NavComposed, Has, NavHas, Assoc, NavAssoc, Depend,
}

var relationInfo = [numRelationTypes]struct {
	name  string
	style string
}{
	Extends:     {"extends", "arrowtail=empty, dir=back"},
	Implements:  {"implements", "arrowtail=empty, style=dashed, dir=back"},
	Composed:    {"composed", "arrowhead=none, arrowtail=diamond, dir=back"},
	NavComposed: {"navcomposed", "arrowhead=open, arrowtail=diamond, dir=both"},
	Has:         {"has", "arrowhead=none, arrowtail=ediamond, dir=back"},
	NavHas:      {"navhas", "arrowhead=open, arrowtail=ediamond, dir=both"},
	Assoc:       {"assoc", "arrowhead=none"},
	NavAssoc:    {"navassoc", "arrowhead=open"},
	Depend:      {"depend", "arrowhead=open, style=dashed"},
}

func (t RelationType) valid() bool { return t >= 0 && t < numRelationTypes }

// String returns the lower-case name, which is also the documentation tag
// name for the tag-declared types.
func (t RelationType) String() string {
	if !t.valid() {
		return fmt.Sprintf("RelationType(%d)", int(t))
	}
	return relationInfo[t].name
}

// Style returns the DOT edge attributes drawing this relation.
func (t RelationType) Style() string {
	if !t.valid() {
		return ""
	}
	return relationInfo[t].style
}

// BackOrder reports whether edges of this type are written from the target
// to the source so that supertypes rank above subtypes.
func (t RelationType) BackOrder() bool { return t == Extends || t == Implements }

// Direction returns the direction recorded on the source of a relation of
// this type. Navigable associations and dependencies point outward; every
// other relation binds both ends.
func (t RelationType) Direction() Direction {
	if t == NavAssoc || t == Depend {
		return Out
	}
	return Both
}

// ParseRelationType parses a relation type name case-insensitively.
func ParseRelationType(s string) (RelationType, error) {
	for i, info := range relationInfo {
		if strings.EqualFold(s, info.name) {
			return RelationType(i), nil
		}
	}
	return NavAssoc, fmt.Errorf("unknown relation type %q", s)
}

// Direction is the direction of a relation as seen from one endpoint. The
// zero value None means no relation.
type Direction int

const (
	None Direction = iota
	In
	Out
	Both
)

var directionNames = [...]string{"none", "in", "out", "both"}

// String returns the lower-case direction name.
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Inverse returns the direction seen from the other endpoint.
func (d Direction) Inverse() Direction {
	switch d {
	case In:
		return Out
	case Out:
		return In
	}
	return d
}

// Sum combines two directions recorded for the same pair and type.
func (d Direction) Sum(other Direction) Direction {
	switch {
	case d == None:
		return other
	case other == None, d == other:
		return d
	}
	return Both
}

// Contains reports whether d covers other. Both covers every direction
// except None; In and Out cover only themselves. Nothing covers None.
func (d Direction) Contains(other Direction) bool {
	if other == None {
		return false
	}
	if d == Both {
		return true
	}
	return d == other
}

// ParseDirection parses "none", "in", "out" or "both" case-insensitively.
func ParseDirection(s string) (Direction, error) {
	for i, n := range directionNames {
		if strings.EqualFold(s, n) {
			return Direction(i), nil
		}
	}
	return Both, fmt.Errorf("unknown relation direction %q", s)
}

// Pattern records, for one pair of classes, the direction of each relation
// type between them. Patterns are also used as filters: a context diagram
// pattern selects which relation kinds count as adjacency.
type Pattern struct {
	dirs [numRelationTypes]Direction
}

// NewPattern returns a pattern with every relation type set to d.
func NewPattern(d Direction) *Pattern {
	p := &Pattern{}
	for i := range p.dirs {
		p.dirs[i] = d
	}
	return p
}

// Clone returns a copy of p.
func (p *Pattern) Clone() *Pattern {
	c := *p
	return &c
}

// Add merges direction d into the entry for t.
func (p *Pattern) Add(t RelationType, d Direction) {
	if !t.valid() {
		return
	}
	p.dirs[t] = p.dirs[t].Sum(d)
}

// Set overwrites the entry for t.
func (p *Pattern) Set(t RelationType, d Direction) {
	if t.valid() {
		p.dirs[t] = d
	}
}

// Get returns the direction recorded for t.
func (p *Pattern) Get(t RelationType) Direction {
	if p == nil || !t.valid() {
		return None
	}
	return p.dirs[t]
}

// Empty reports whether no relation is recorded.
func (p *Pattern) Empty() bool {
	if p == nil {
		return true
	}
	for _, d := range p.dirs {
		if d != None {
			return false
		}
	}
	return true
}

// MatchesOne reports whether, for some relation type, the direction in p
// contains the direction recorded in other.
func (p *Pattern) MatchesOne(other *Pattern) bool {
	if p == nil || other == nil {
		return false
	}
	for i, d := range p.dirs {
		if d.Contains(other.dirs[i]) {
			return true
		}
	}
	return false
}

// HasOutgoing reports whether some relation type points outward.
func (p *Pattern) HasOutgoing() bool {
	if p == nil {
		return false
	}
	for _, d := range p.dirs {
		if d.Contains(Out) {
			return true
		}
	}
	return false
}

// String renders the non-empty entries as "type:dir" pairs.
func (p *Pattern) String() string {
	var parts []string
	for i, d := range p.dirs {
		if d != None {
			parts = append(parts, RelationType(i).String()+":"+d.String())
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Stage tells which pass produced a relation.
type Stage int

const (
	StageExplicit Stage = iota
	StageInferred
	StageDependency
)

// Relation is a directed, typed edge between two classes with optional
// tail, middle and head labels.
type Relation struct {
	From      string
	To        string
	Type      RelationType
	TailLabel string
	Label     string
	HeadLabel string
	Stage     Stage
}

// String returns "from type to".
func (r Relation) String() string {
	return r.From + " " + r.Type.String() + " " + r.To
}
