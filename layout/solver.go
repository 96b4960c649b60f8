// Package layout turns resolved layout styles into node bounds.
//
// Size constraints go through the Solver interface, so any constraint
// engine can be plugged in. UiSolver keeps the constraints of every node
// across frames and only recreates them for nodes in the frame's
// ChangeSet.
package layout

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggdom/arena"
)

// Strength orders constraints that cannot all hold at once. Stronger
// constraints win.
type Strength uint8

const (
	Weak Strength = iota
	Medium
	Strong
	Required
)

func (s Strength) String() string {
	switch s {
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case Required:
		return "required"
	default:
		return fmt.Sprintf("Strength(%d)", uint8(s))
	}
}

// Axis selects the width or height of a node.
type Axis uint8

const (
	AxisWidth Axis = iota
	AxisHeight
)

// Variable is one solved quantity: a node's size along an axis.
type Variable struct {
	Node arena.NodeID
	Axis Axis
}

func (v Variable) String() string {
	if v.Axis == AxisWidth {
		return fmt.Sprintf("%v.width", v.Node)
	}
	return fmt.Sprintf("%v.height", v.Node)
}

// Relation is the comparison a constraint imposes.
type Relation uint8

const (
	Eq Relation = iota
	Ge
	Le
)

// Constraint requires Var <Relation> Value with the given strength.
type Constraint struct {
	Var      Variable
	Relation Relation
	Value    float64
	Strength Strength
}

func (c Constraint) String() string {
	op := [...]string{Eq: "==", Ge: ">=", Le: "<="}[c.Relation]
	return fmt.Sprintf("%v %s %g (%v)", c.Var, op, c.Value, c.Strength)
}

// Solver is the boundary to a constraint engine. Layout only adds and
// removes constraints and reads solved values; it never inspects solver
// state.
type Solver interface {
	AddConstraints(cs ...Constraint) error
	RemoveConstraints(cs ...Constraint) error
	// Value returns the solved value of v and whether any constraint
	// mentions it.
	Value(v Variable) (float64, bool)
}

var (
	// ErrDuplicateConstraint is returned when adding a constraint the
	// solver already holds.
	ErrDuplicateConstraint = errors.New("layout: duplicate constraint")

	// ErrUnknownConstraint is returned when removing a constraint the
	// solver does not hold.
	ErrUnknownConstraint = errors.New("layout: unknown constraint")

	// ErrUnsatisfiable is returned when a required constraint conflicts
	// with another required constraint.
	ErrUnsatisfiable = errors.New("layout: unsatisfiable required constraint")
)
