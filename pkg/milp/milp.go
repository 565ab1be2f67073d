// Package milp solves small mixed-integer linear programs.
//
// Problems are stated in equality standard form: minimize C·x subject to
// AEq·x = BEq with per-variable bounds and optional integrality. The LP
// relaxation of each subproblem is solved with gonum's simplex implementation
// and integrality is enforced by branch-and-bound, which is entirely adequate
// for the problem sizes this module targets (tens of variables).
package milp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

var (
	// ErrInfeasible indicates no assignment satisfies all constraints.
	ErrInfeasible = errors.New("milp: problem is infeasible")

	// ErrUnbounded indicates the objective can be decreased without limit.
	ErrUnbounded = errors.New("milp: problem is unbounded")

	// ErrNodeLimit indicates the branch-and-bound search was cut off before
	// proving optimality or infeasibility.
	ErrNodeLimit = errors.New("milp: node limit exceeded")
)

// intTol is the distance from the nearest integer beyond which a relaxation
// value is considered fractional and branched on.
const intTol = 1e-6

// maxNodes caps the branch-and-bound search. The problems this package is
// built for solve in a handful of nodes; hitting the cap means the caller
// handed us something pathological.
const maxNodes = 200000

// Problem is a mixed-integer linear program.
type Problem struct {
	// C holds the objective coefficients, one per variable.
	C []float64

	// AEq and BEq form the equality constraints AEq·x = BEq. AEq is
	// row-major with one slice per constraint.
	AEq [][]float64

	BEq []float64

	// Lower and Upper bound each variable. A nil Lower means all zeros; a
	// nil Upper, or a +Inf entry, means unbounded above.
	Lower []float64
	Upper []float64

	// Integer marks which variables must take integer values. A nil slice
	// means the problem is a pure LP.
	Integer []bool
}

// Solution is an optimal assignment together with its objective value.
type Solution struct {
	X         []float64
	Objective float64
}

type node struct {
	lower []float64
	upper []float64
}

// Solve returns an optimal solution to p, ErrInfeasible when no feasible
// assignment exists, or ErrUnbounded when the objective has no finite
// minimum. When multiple assignments attain the optimal objective any one of
// them may be returned.
func Solve(p Problem) (*Solution, error) {
	n := len(p.C)
	if err := p.validate(n); err != nil {
		return nil, err
	}

	root := node{lower: make([]float64, n), upper: make([]float64, n)}
	if p.Lower != nil {
		copy(root.lower, p.Lower)
	}
	for i := range root.upper {
		root.upper[i] = math.Inf(1)
	}
	if p.Upper != nil {
		copy(root.upper, p.Upper)
	}

	var (
		bestX   []float64
		bestObj = math.Inf(1)
		found   bool
	)

	// Depth-first with the floor branch explored first, which keeps repeat
	// runs reproducible even though ties between optima are not a contract.
	stack := []node{root}
	for nodes := 0; len(stack) > 0; nodes++ {
		if nodes >= maxNodes {
			return nil, ErrNodeLimit
		}
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, obj, err := p.relax(nd)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			continue
		case errors.Is(err, lp.ErrUnbounded):
			return nil, ErrUnbounded
		case err != nil:
			return nil, fmt.Errorf("milp: relaxation failed, %w", err)
		}

		// Bound: the relaxation objective is a lower bound for every
		// integer solution in this subtree.
		if found && obj >= bestObj-1e-7*(1+math.Abs(bestObj)) {
			continue
		}

		branch := p.mostFractional(x)
		if branch < 0 {
			snapped, snappedObj := p.snap(x)
			if !found || snappedObj < bestObj {
				bestX, bestObj, found = snapped, snappedObj, true
			}
			continue
		}

		floor := math.Floor(x[branch])
		up := nd.clone()
		up.lower[branch] = floor + 1
		down := nd.clone()
		down.upper[branch] = floor
		if up.lower[branch] <= up.upper[branch] {
			stack = append(stack, up)
		}
		if down.lower[branch] <= down.upper[branch] {
			stack = append(stack, down)
		}
	}

	if !found {
		return nil, ErrInfeasible
	}
	return &Solution{X: bestX, Objective: bestObj}, nil
}

func (p Problem) validate(n int) error {
	if n == 0 {
		return errors.New("milp: problem has no variables")
	}
	if len(p.AEq) != len(p.BEq) {
		return fmt.Errorf("milp: %d constraint rows but %d targets", len(p.AEq), len(p.BEq))
	}
	for i, row := range p.AEq {
		if len(row) != n {
			return fmt.Errorf("milp: constraint row %d has %d coefficients, want %d", i, len(row), n)
		}
	}
	if p.Lower != nil && len(p.Lower) != n {
		return fmt.Errorf("milp: %d lower bounds for %d variables", len(p.Lower), n)
	}
	if p.Upper != nil && len(p.Upper) != n {
		return fmt.Errorf("milp: %d upper bounds for %d variables", len(p.Upper), n)
	}
	if p.Integer != nil && len(p.Integer) != n {
		return fmt.Errorf("milp: %d integrality flags for %d variables", len(p.Integer), n)
	}
	return nil
}

// relax solves the LP relaxation of p restricted to the node's box. The box
// is folded into simplex standard form by shifting each variable to its
// lower bound and adding one slack row per finite upper bound.
func (p Problem) relax(nd node) ([]float64, float64, error) {
	n := len(p.C)
	m := len(p.AEq)

	var finite []int
	for j, u := range nd.upper {
		if !math.IsInf(u, 1) {
			finite = append(finite, j)
		}
	}
	rows := m + len(finite)
	cols := n + len(finite)

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)
	copy(c, p.C)

	offset := 0.0
	for j, lo := range nd.lower {
		offset += p.C[j] * lo
	}

	for i, row := range p.AEq {
		b[i] = p.BEq[i]
		for j, coeff := range row {
			a.Set(i, j, coeff)
			b[i] -= coeff * nd.lower[j]
		}
	}
	for k, j := range finite {
		a.Set(m+k, j, 1)
		a.Set(m+k, n+k, 1)
		b[m+k] = nd.upper[j] - nd.lower[j]
	}

	// Simplex expects nonnegative targets.
	for i := 0; i < rows; i++ {
		if b[i] < 0 {
			b[i] = -b[i]
			for j := 0; j < cols; j++ {
				a.Set(i, j, -a.At(i, j))
			}
		}
	}

	obj, y, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		return nil, 0, err
	}

	x := make([]float64, n)
	for j := range x {
		x[j] = nd.lower[j] + y[j]
	}
	return x, obj + offset, nil
}

// mostFractional returns the index of the integer-constrained variable
// farthest from an integer value, or -1 when the assignment is integral.
func (p Problem) mostFractional(x []float64) int {
	branch, worst := -1, intTol
	for j, integer := range p.Integer {
		if !integer {
			continue
		}
		if d := math.Abs(x[j] - math.Round(x[j])); d > worst {
			branch, worst = j, d
		}
	}
	return branch
}

// snap rounds integer-constrained variables to the nearest integer and
// recomputes the objective, clearing out simplex floating-point residue.
func (p Problem) snap(x []float64) ([]float64, float64) {
	snapped := make([]float64, len(x))
	copy(snapped, x)
	for j, integer := range p.Integer {
		if integer {
			snapped[j] = math.Round(x[j])
		}
	}
	obj := 0.0
	for j, coeff := range p.C {
		obj += coeff * snapped[j]
	}
	return snapped, obj
}

func (nd node) clone() node {
	c := node{lower: make([]float64, len(nd.lower)), upper: make([]float64, len(nd.upper))}
	copy(c.lower, nd.lower)
	copy(c.upper, nd.upper)
	return c
}
