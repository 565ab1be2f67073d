package milp

import (
	"errors"
	"math"
	"testing"
)

func TestSolveEqualityKnapsack(t *testing.T) {
	// Two stocks plus a cash cent: spending 1000 cents on two units of the
	// first stock beats one unit of the second.
	p := Problem{
		C:       []float64{-600, -800, -1},
		AEq:     [][]float64{{500, 1000, 1}},
		BEq:     []float64{1000},
		Integer: []bool{true, true, true},
	}

	sol, err := Solve(p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !withinTol(sol.Objective, -1200) {
		t.Errorf("Solve() objective = %v, want -1200", sol.Objective)
	}
	want := []float64{2, 0, 0}
	for i, v := range sol.X {
		if !withinTol(v, want[i]) {
			t.Errorf("Solve() x[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestSolveBranchesOnFractionalRelaxation(t *testing.T) {
	// The LP relaxation is x = [2.75, 0]; the only integer solution of
	// 4a + 3b = 11 is (2, 1).
	p := Problem{
		C:       []float64{-10, -6},
		AEq:     [][]float64{{4, 3}},
		BEq:     []float64{11},
		Integer: []bool{true, true},
	}

	sol, err := Solve(p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !withinTol(sol.Objective, -26) {
		t.Errorf("Solve() objective = %v, want -26", sol.Objective)
	}
	if !withinTol(sol.X[0], 2) || !withinTol(sol.X[1], 1) {
		t.Errorf("Solve() x = %v, want [2 1]", sol.X)
	}
}

func TestSolveInfeasible(t *testing.T) {
	// 2x = 3 has no integer solution.
	p := Problem{
		C:       []float64{1},
		AEq:     [][]float64{{2}},
		BEq:     []float64{3},
		Integer: []bool{true},
	}

	_, err := Solve(p)
	if !errors.Is(err, ErrInfeasible) {
		t.Errorf("Solve() error = %v, want ErrInfeasible", err)
	}
}

func TestSolveInfeasibleRelaxation(t *testing.T) {
	// x = -1 contradicts the nonnegativity bound before integrality even
	// matters.
	p := Problem{
		C:   []float64{1},
		AEq: [][]float64{{1}},
		BEq: []float64{-1},
	}

	_, err := Solve(p)
	if !errors.Is(err, ErrInfeasible) {
		t.Errorf("Solve() error = %v, want ErrInfeasible", err)
	}
}

func TestSolveUnbounded(t *testing.T) {
	// x1 = x2 with objective -x1 can decrease forever.
	p := Problem{
		C:   []float64{-1, 0},
		AEq: [][]float64{{1, -1}},
		BEq: []float64{0},
	}

	_, err := Solve(p)
	if !errors.Is(err, ErrUnbounded) {
		t.Errorf("Solve() error = %v, want ErrUnbounded", err)
	}
}

func TestSolvePureLP(t *testing.T) {
	p := Problem{
		C:   []float64{-1},
		AEq: [][]float64{{2}},
		BEq: []float64{3},
	}

	sol, err := Solve(p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !withinTol(sol.X[0], 1.5) || !withinTol(sol.Objective, -1.5) {
		t.Errorf("Solve() = x %v objective %v, want x [1.5] objective -1.5", sol.X, sol.Objective)
	}
}

func TestSolveRespectsUpperBounds(t *testing.T) {
	p := Problem{
		C:       []float64{-1, 0},
		AEq:     [][]float64{{1, 1}},
		BEq:     []float64{5},
		Upper:   []float64{3, math.Inf(1)},
		Integer: []bool{true, true},
	}

	sol, err := Solve(p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !withinTol(sol.X[0], 3) || !withinTol(sol.X[1], 2) {
		t.Errorf("Solve() x = %v, want [3 2]", sol.X)
	}
}

func TestSolveZeroTarget(t *testing.T) {
	p := Problem{
		C:       []float64{-5, -1},
		AEq:     [][]float64{{3, 1}},
		BEq:     []float64{0},
		Integer: []bool{true, true},
	}

	sol, err := Solve(p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !withinTol(sol.Objective, 0) {
		t.Errorf("Solve() objective = %v, want 0", sol.Objective)
	}
	for i, v := range sol.X {
		if !withinTol(v, 0) {
			t.Errorf("Solve() x[%d] = %v, want 0", i, v)
		}
	}
}

func TestSolveMatchesBruteForce(t *testing.T) {
	// Integer programs small enough to enumerate: one equality row with
	// positive coefficients and a unit-cost slack variable, which is the
	// shape the advisor produces.
	tests := []struct {
		name   string
		values []float64 // per-unit value, last entry is the slack
		costs  []float64
		target float64
	}{
		{
			name:   "Three assets",
			values: []float64{600, 900, 1000, 1},
			costs:  []float64{500, 700, 1100, 1},
			target: 2300,
		},
		{
			name:   "Losing assets",
			values: []float64{100, 250, 1},
			costs:  []float64{300, 400, 1},
			target: 1000,
		},
		{
			name:   "Awkward coin problem",
			values: []float64{7, 5, 1},
			costs:  []float64{4, 3, 1},
			target: 17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.costs)
			c := make([]float64, n)
			integer := make([]bool, n)
			for i := range c {
				c[i] = -tt.values[i]
				integer[i] = true
			}
			sol, err := Solve(Problem{
				C:       c,
				AEq:     [][]float64{tt.costs},
				BEq:     []float64{tt.target},
				Integer: integer,
			})
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}

			want := -bruteForceBest(tt.values, tt.costs, tt.target)
			if !withinTol(sol.Objective, want) {
				t.Errorf("Solve() objective = %v, brute force found %v", sol.Objective, want)
			}

			// The returned vector must itself be feasible and integral.
			spent := 0.0
			for i, v := range sol.X {
				if v < -1e-9 {
					t.Errorf("Solve() x[%d] = %v, want nonnegative", i, v)
				}
				if math.Abs(v-math.Round(v)) > 1e-9 {
					t.Errorf("Solve() x[%d] = %v, want integral", i, v)
				}
				spent += v * tt.costs[i]
			}
			if !withinTol(spent, tt.target) {
				t.Errorf("Solve() spends %v, want %v", spent, tt.target)
			}
		})
	}
}

func TestSolveValidation(t *testing.T) {
	tests := []struct {
		name    string
		problem Problem
	}{
		{
			name:    "No variables",
			problem: Problem{},
		},
		{
			name: "Row width mismatch",
			problem: Problem{
				C:   []float64{1, 2},
				AEq: [][]float64{{1}},
				BEq: []float64{1},
			},
		},
		{
			name: "Target count mismatch",
			problem: Problem{
				C:   []float64{1},
				AEq: [][]float64{{1}},
				BEq: []float64{1, 2},
			},
		},
		{
			name: "Integrality flag count mismatch",
			problem: Problem{
				C:       []float64{1},
				AEq:     [][]float64{{1}},
				BEq:     []float64{1},
				Integer: []bool{true, false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Solve(tt.problem); err == nil {
				t.Errorf("Solve() expected error but got none")
			}
		})
	}
}

// bruteForceBest enumerates every nonnegative integer assignment satisfying
// costs·x = target and returns the best total value. The last cost must be 1
// so the slack variable can absorb any remainder.
func bruteForceBest(values, costs []float64, target float64) float64 {
	best := math.Inf(-1)
	var walk func(i int, remaining, value float64)
	walk = func(i int, remaining, value float64) {
		if i == len(costs)-1 {
			// Slack variable takes the remainder.
			if total := value + remaining*values[i]; total > best {
				best = total
			}
			return
		}
		for units := 0.0; units*costs[i] <= remaining; units++ {
			walk(i+1, remaining-units*costs[i], value+units*values[i])
		}
	}
	walk(0, target, 0)
	return best
}

func withinTol(got, want float64) bool {
	return math.Abs(got-want) <= 1e-6
}
