package layout

import (
	"fmt"

	"github.com/gogpu/ggdom/arena"
	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/internal/logging"
	"github.com/gogpu/ggdom/style"
)

// Stats counts constraint work done by the last UiSolver.Update.
type Stats struct {
	Created int
	Removed int
	Nodes   int
}

// UiSolver keeps per-node constraints alive across frames. Each Update
// removes and recreates constraints only for nodes in the ChangeSet, or
// for every node when the viewport changed or a relayout was requested.
type UiSolver struct {
	solver      Solver
	tree        TreeCache
	constraints [][]Constraint
	viewport    geom.Size
	stats       Stats
	frames      int
}

// NewUiSolver wraps solver. A nil solver selects a SimplexSolver.
func NewUiSolver(solver Solver) *UiSolver {
	if solver == nil {
		solver = NewSimplexSolver()
	}
	return &UiSolver{solver: solver}
}

// Solver returns the wrapped solver.
func (u *UiSolver) Solver() Solver { return u.solver }

// Stats returns the counters of the last Update.
func (u *UiSolver) Stats() Stats { return u.stats }

// Update brings the solver in line with the current frame. hashes and
// styled must have the same topology. relayout forces every constraint to
// be recreated; pass true when the style sheet or the dynamic overrides
// changed, since style is not part of the node hash.
func (u *UiSolver) Update(hashes *arena.Arena[uint64], styled *arena.Arena[style.Styled], viewport geom.Size, relayout bool) (ChangeSet, error) {
	if hashes.Len() != styled.Len() {
		panic(fmt.Sprintf("layout: %d hashes for %d styled nodes", hashes.Len(), styled.Len()))
	}
	u.stats = Stats{Nodes: styled.Len()}
	cs := u.tree.Update(hashes)

	full := relayout || viewport != u.viewport
	u.viewport = viewport
	u.frames++

	if full {
		for i := range u.constraints {
			if err := u.remove(arena.NodeID(i)); err != nil {
				return cs, err
			}
		}
		u.constraints = make([][]Constraint, styled.Len())
		for id := range styled.Linear() {
			if err := u.create(styled, id); err != nil {
				return cs, err
			}
		}
	} else {
		for _, id := range cs.Removed {
			if err := u.remove(id); err != nil {
				return cs, err
			}
		}
		u.constraints = resize(u.constraints, styled.Len())
		for _, ids := range [][]arena.NodeID{cs.Changed, cs.Added} {
			for _, id := range ids {
				if err := u.remove(id); err != nil {
					return cs, err
				}
				if err := u.create(styled, id); err != nil {
					return cs, err
				}
			}
		}
	}

	logging.Logger().Debug("layout: constraints updated",
		"frame", u.frames,
		"full", full,
		"added", len(cs.Added),
		"changed", len(cs.Changed),
		"removed", len(cs.Removed),
		"created", u.stats.Created)
	return cs, nil
}

// Size returns the solved size of id. Axes without constraints report 0.
func (u *UiSolver) Size(id arena.NodeID) geom.Size {
	w, _ := u.solver.Value(Variable{Node: id, Axis: AxisWidth})
	h, _ := u.solver.Value(Variable{Node: id, Axis: AxisHeight})
	return geom.Sz(float32(w), float32(h))
}

// Constraints returns the constraints currently held for id.
func (u *UiSolver) Constraints(id arena.NodeID) []Constraint {
	if id.Index() >= len(u.constraints) {
		return nil
	}
	return u.constraints[id.Index()]
}

func (u *UiSolver) create(styled *arena.Arena[style.Styled], id arena.NodeID) error {
	cs := CreateConstraints(styled, id, u.viewport)
	if err := u.solver.AddConstraints(cs...); err != nil {
		return fmt.Errorf("layout: node %v: %w", id, err)
	}
	u.constraints[id.Index()] = cs
	u.stats.Created += len(cs)
	return nil
}

func (u *UiSolver) remove(id arena.NodeID) error {
	i := id.Index()
	if i >= len(u.constraints) || len(u.constraints[i]) == 0 {
		return nil
	}
	if err := u.solver.RemoveConstraints(u.constraints[i]...); err != nil {
		return fmt.Errorf("layout: node %v: %w", id, err)
	}
	u.stats.Removed += len(u.constraints[i])
	u.constraints[i] = nil
	return nil
}

func resize(s [][]Constraint, n int) [][]Constraint {
	if n <= len(s) {
		return s[:n]
	}
	return append(s, make([][]Constraint, n-len(s))...)
}

// CreateConstraints derives the size constraints of one node. Declared
// width, height and their bounds are Strong. A node without a declared
// size gets a Weak preference for its MaxExtent.
func CreateConstraints(styled *arena.Arena[style.Styled], id arena.NodeID, viewport geom.Size) []Constraint {
	l := &styled.Data(id).Layout
	var out []Constraint
	add := func(axis Axis, rel Relation, v float32, s Strength) {
		out = append(out, Constraint{
			Var:      Variable{Node: id, Axis: axis},
			Relation: rel,
			Value:    float64(v),
			Strength: s,
		})
	}

	if l.Width != nil {
		add(AxisWidth, Eq, *l.Width, Strong)
	} else {
		add(AxisWidth, Eq, MaxExtent(styled, id, AxisWidth, viewport), Weak)
	}
	if l.MinWidth != nil {
		add(AxisWidth, Ge, *l.MinWidth, Strong)
	}
	if l.MaxWidth != nil {
		add(AxisWidth, Le, *l.MaxWidth, Strong)
	}

	if l.Height != nil {
		add(AxisHeight, Eq, *l.Height, Strong)
	} else {
		add(AxisHeight, Eq, MaxExtent(styled, id, AxisHeight, viewport), Weak)
	}
	if l.MinHeight != nil {
		add(AxisHeight, Ge, *l.MinHeight, Strong)
	}
	if l.MaxHeight != nil {
		add(AxisHeight, Le, *l.MaxHeight, Strong)
	}
	return out
}

// MaxExtent returns the largest size id may take on axis: the declared
// size, or else the minimum size, of the nearest ancestor declaring one,
// or the viewport.
func MaxExtent(styled *arena.Arena[style.Styled], id arena.NodeID, axis Axis, viewport geom.Size) float32 {
	for a := range styled.Ancestors(id) {
		l := &styled.Data(a).Layout
		size, minSize := l.Width, l.MinWidth
		if axis == AxisHeight {
			size, minSize = l.Height, l.MinHeight
		}
		if size != nil {
			return *size
		}
		if minSize != nil {
			return *minSize
		}
	}
	if axis == AxisHeight {
		return viewport.Height
	}
	return viewport.Width
}
