package options

import (
	"fmt"
	"strings"
)

// Shape is the UML shape of a node.
type Shape int

const (
	ShapeClass Shape = iota
	ShapeNote
	ShapeNode
	ShapeComponent
	ShapePackage
	ShapeCollaboration
	ShapeUseCase
	ShapeActiveClass
)

var shapeInfo = [...]struct {
	name  string
	style string
}{
	ShapeClass:         {"class", ""},
	ShapeNote:          {"note", ", shape=note"},
	ShapeNode:          {"node", ", shape=box3d"},
	ShapeComponent:     {"component", ", shape=component"},
	ShapePackage:       {"package", ", shape=tab"},
	ShapeCollaboration: {"collaboration", ", shape=ellipse, style=dashed"},
	ShapeUseCase:       {"usecase", ", shape=ellipse"},
	ShapeActiveClass:   {"activeclass", ""},
}

func (s Shape) valid() bool { return s >= 0 && int(s) < len(shapeInfo) }

// String returns the shape name.
func (s Shape) String() string {
	if !s.valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeInfo[s].name
}

// Style returns the DOT node attributes appended to the node record.
func (s Shape) Style() string {
	if !s.valid() {
		return ""
	}
	return shapeInfo[s].style
}

// CellBorder returns the cell border width of the label table. Only class
// shapes draw compartment borders.
func (s Shape) CellBorder() int {
	if s == ShapeClass || s == ShapeActiveClass {
		return 1
	}
	return 0
}

// ExtraColumn returns the markup of the side column that active classes
// draw on both sides of their name compartment.
func (s Shape) ExtraColumn() string {
	if s == ShapeActiveClass {
		return `<td rowspan="10"></td>`
	}
	return ""
}

// ParseShape parses a shape name case-insensitively. Unknown names yield
// the class shape and an error.
func ParseShape(name string) (Shape, error) {
	for i, info := range shapeInfo {
		if strings.EqualFold(name, info.name) {
			return Shape(i), nil
		}
	}
	return ShapeClass, fmt.Errorf("unknown shape %q", name)
}
