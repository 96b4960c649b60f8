package layout

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/gogpu/ggdom/internal/logging"
)

// strengthWeight is the cost of one unit of error in a constraint of each
// strength.
var strengthWeight = [...]float64{
	Weak:     1,
	Medium:   1e3,
	Strong:   1e6,
	Required: 1.001001e9,
}

const (
	simplexTol = 1e-9
	// requiredSlack is the error a required constraint may show after a
	// solve and still count as satisfied.
	requiredSlack = 1e-6
)

// SimplexSolver is the default Solver. It states the constraints as a
// linear program and minimizes the total strength-weighted error with
// gonum's simplex method.
//
// Each constraint Var <rel> Value becomes one row
//
//	Var + under - over = Value
//
// where under and over are non-negative error columns. An equality pays
// for both, a lower bound for under only and an upper bound for over only.
// A bound pays twice the weight of an equality of the same strength, so a
// min or max size wins over a declared size. Solved values are never
// negative.
//
// Solving is deferred to the first Value call after a change. A
// SimplexSolver is not safe for concurrent use.
type SimplexSolver struct {
	cs     []Constraint
	held   map[Constraint]struct{}
	values map[Variable]float64
	dirty  bool
}

// NewSimplexSolver returns an empty solver.
func NewSimplexSolver() *SimplexSolver {
	return &SimplexSolver{
		held:   make(map[Constraint]struct{}),
		values: make(map[Variable]float64),
	}
}

// AddConstraints adds cs. On error nothing from cs is added. Adding a
// required constraint solves immediately so a conflict is reported here.
func (s *SimplexSolver) AddConstraints(cs ...Constraint) error {
	required := false
	for i, c := range cs {
		if _, ok := s.held[c]; ok || slices.Contains(cs[:i], c) {
			return fmt.Errorf("%w: %v", ErrDuplicateConstraint, c)
		}
		required = required || c.Strength == Required
	}
	n := len(s.cs)
	s.cs = append(s.cs, cs...)
	for _, c := range cs {
		s.held[c] = struct{}{}
	}
	s.dirty = true
	if !required {
		return nil
	}
	if err := s.solve(); err != nil {
		for _, c := range s.cs[n:] {
			delete(s.held, c)
		}
		s.cs = s.cs[:n]
		s.dirty = true
		return err
	}
	return nil
}

// RemoveConstraints removes cs. On error nothing is removed.
func (s *SimplexSolver) RemoveConstraints(cs ...Constraint) error {
	for i, c := range cs {
		if _, ok := s.held[c]; !ok || slices.Contains(cs[:i], c) {
			return fmt.Errorf("%w: %v", ErrUnknownConstraint, c)
		}
	}
	for _, c := range cs {
		delete(s.held, c)
	}
	s.cs = slices.DeleteFunc(s.cs, func(c Constraint) bool {
		_, ok := s.held[c]
		return !ok
	})
	s.dirty = true
	return nil
}

// Value returns the solved value of v.
func (s *SimplexSolver) Value(v Variable) (float64, bool) {
	if err := s.solve(); err != nil {
		logging.Logger().Error("layout: solve failed", "constraints", len(s.cs), "err", err)
		clear(s.values)
		s.dirty = false
	}
	val, ok := s.values[v]
	return val, ok
}

// Len returns the number of constraints held.
func (s *SimplexSolver) Len() int { return len(s.cs) }

func (s *SimplexSolver) solve() error {
	if !s.dirty {
		return nil
	}
	if len(s.cs) == 0 {
		clear(s.values)
		s.dirty = false
		return nil
	}

	col := make(map[Variable]int)
	var vars []Variable
	for _, c := range s.cs {
		if _, ok := col[c.Var]; !ok {
			col[c.Var] = len(vars)
			vars = append(vars, c.Var)
		}
	}
	rows := len(s.cs)
	cols := len(vars) + 2*rows
	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	cost := make([]float64, cols)
	// With every variable at zero the error columns alone satisfy the
	// rows, which gives the simplex a feasible starting basis.
	basic := make([]int, rows)
	for i, c := range s.cs {
		under, over := len(vars)+2*i, len(vars)+2*i+1
		a.Set(i, col[c.Var], 1)
		a.Set(i, under, 1)
		a.Set(i, over, -1)
		b[i] = c.Value
		w := strengthWeight[c.Strength]
		switch c.Relation {
		case Eq:
			cost[under], cost[over] = w, w
		case Ge:
			cost[under] = 2 * w
		case Le:
			cost[over] = 2 * w
		}
		if c.Value >= 0 {
			basic[i] = under
		} else {
			basic[i] = over
		}
	}

	_, x, err := lp.Simplex(cost, a, b, simplexTol, basic)
	if err != nil {
		return fmt.Errorf("layout: simplex over %d constraints: %w", rows, err)
	}
	for i, c := range s.cs {
		if c.Strength != Required {
			continue
		}
		under, over := x[len(vars)+2*i], x[len(vars)+2*i+1]
		var violated bool
		switch c.Relation {
		case Eq:
			violated = under+over > requiredSlack
		case Ge:
			violated = under > requiredSlack
		case Le:
			violated = over > requiredSlack
		}
		if violated {
			return fmt.Errorf("%w: %v", ErrUnsatisfiable, c)
		}
	}

	clear(s.values)
	for i, v := range vars {
		s.values[v] = snap(x[i])
	}
	s.dirty = false
	return nil
}

// snap rounds away the float noise the simplex leaves on exact values.
func snap(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
