// Package advisor computes the stock purchases and cash holdings that
// maximize expected value for a given net worth.
//
// The allocation is found by formulating an integer linear program over
// integer cents: one integer variable per houseguest stock plus one for held
// cents, a single equality row forcing total spend to equal net worth
// exactly, and an objective of negated mean projections (the solver
// minimizes, so maximizing expected value means minimizing its negation).
package advisor

import (
	"errors"
	"fmt"

	"github.com/iwvelando/stockwatch-advisor/pkg/constants"
	"github.com/iwvelando/stockwatch-advisor/pkg/mathutil"
	"github.com/iwvelando/stockwatch-advisor/pkg/milp"
	"go.uber.org/zap"
)

// Asset is one tradable houseguest stock.
type Asset struct {
	Name        string
	Cost        float64   // dollars per unit
	Projections []float64 // projected dollar values per unit
}

// Projection returns the mean of the asset's projection samples. Callers
// must ensure the sample list is non-empty; Solve validates this.
func (a Asset) Projection() float64 {
	return mathutil.Mean(a.Projections)
}

// ExpectedChange returns the asset's expected percent change per unit, e.g.
// an asset costing $4 projected at $5 yields 25.
func (a Asset) ExpectedChange() float64 {
	return mathutil.CalculatePercentage(a.Projection()-a.Cost, a.Cost)
}

// Position is the recommended purchase of a single asset.
type Position struct {
	Name           string
	Units          int64
	CostBasis      float64 // dollars spent on this position
	ProjectedValue float64 // expected dollar value of this position
}

// Advice is the optimal allocation for one run.
type Advice struct {
	NetWorth      float64
	Positions     []Position // one per input asset, in input order
	CashHeldCents int64
	ExpectedValue float64 // dollars
}

// CashHeld returns the recommended holdings in dollars.
func (a *Advice) CashHeld() float64 {
	return mathutil.FromCents(a.CashHeldCents)
}

// ExpectedChangePercent returns the expected percent gain over net worth.
func (a *Advice) ExpectedChangePercent() float64 {
	return mathutil.CalculatePercentage(a.ExpectedValue-a.NetWorth, a.NetWorth)
}

// Solve validates the inputs, formulates the allocation ILP, and solves it.
// It returns an InvalidInputError for inputs that can never form a valid
// problem, ErrInfeasible when no exact allocation exists (wrapped with the
// cause when that is detectable up front), and ErrUnbounded defensively.
func Solve(logger *zap.Logger, assets []Asset, netWorth float64) (*Advice, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	costCents, err := validate(assets, netWorth)
	if err != nil {
		return nil, err
	}

	netWorthCents, err := mathutil.ToCents(netWorth)
	if err != nil {
		// All costs are whole cents so nothing can sum to a sub-cent total.
		return nil, fmt.Errorf("%w: %s", ErrInfeasible, err)
	}

	problem := formulate(assets, costCents, netWorthCents)
	logger.Debug("formulated allocation problem",
		zap.String("op", "advisor.Solve"),
		zap.Int("variables", len(problem.C)),
		zap.Int64("netWorthCents", netWorthCents),
	)

	solution, err := milp.Solve(problem)
	switch {
	case errors.Is(err, milp.ErrInfeasible):
		return nil, ErrInfeasible
	case errors.Is(err, milp.ErrUnbounded):
		return nil, ErrUnbounded
	case err != nil:
		return nil, fmt.Errorf("allocation solve failed, %w", err)
	}

	advice, err := interpret(assets, costCents, netWorthCents, solution)
	if err != nil {
		return nil, err
	}

	logger.Info("solved allocation",
		zap.String("op", "advisor.Solve"),
		zap.Float64("expectedValue", advice.ExpectedValue),
		zap.Int64("cashHeldCents", advice.CashHeldCents),
	)
	return advice, nil
}

// validate rejects inputs the solver must never see and converts unit costs
// to whole cents.
func validate(assets []Asset, netWorth float64) ([]int64, error) {
	if len(assets) == 0 {
		return nil, &InvalidInputError{Field: "houseguests", Reason: "must not be empty"}
	}
	if netWorth < 0 {
		return nil, &InvalidInputError{Field: "net_worth", Reason: "must not be negative"}
	}

	costCents := make([]int64, len(assets))
	for i, asset := range assets {
		field := fmt.Sprintf("houseguests[%d] (%s)", i, asset.Name)
		if asset.Cost <= 0 {
			return nil, &InvalidInputError{Field: field + " cost", Reason: "must be positive"}
		}
		if len(asset.Projections) == 0 {
			return nil, &InvalidInputError{Field: field + " projections", Reason: "must not be empty"}
		}
		cents, err := mathutil.ToCents(asset.Cost)
		if err != nil {
			return nil, &InvalidInputError{Field: field + " cost", Reason: err.Error()}
		}
		costCents[i] = cents
	}
	return costCents, nil
}

// formulate builds the ILP in cents: n stock variables plus the synthetic
// cash variable, all integer and nonnegative, with a single equality row
// exhausting the net worth.
func formulate(assets []Asset, costCents []int64, netWorthCents int64) milp.Problem {
	n := len(assets)
	objective := make([]float64, n+1)
	spendRow := make([]float64, n+1)
	integer := make([]bool, n+1)

	for i, asset := range assets {
		objective[i] = -mathutil.DollarsToCents(asset.Projection())
		spendRow[i] = float64(costCents[i])
		integer[i] = true
	}
	objective[n] = -constants.CashUnitReturnCents
	spendRow[n] = constants.CashUnitCostCents
	integer[n] = true

	return milp.Problem{
		C:       objective,
		AEq:     [][]float64{spendRow},
		BEq:     []float64{float64(netWorthCents)},
		Integer: integer,
	}
}

// interpret turns the raw solution vector into an Advice, rounding away
// solver floating-point residue, and checks the exact-spend invariant.
func interpret(assets []Asset, costCents []int64, netWorthCents int64, solution *milp.Solution) (*Advice, error) {
	n := len(assets)
	advice := &Advice{
		NetWorth:      mathutil.FromCents(netWorthCents),
		Positions:     make([]Position, n),
		CashHeldCents: roundUnits(solution.X[n]),
		ExpectedValue: -solution.Objective / constants.CentsPerDollar,
	}

	spentCents := advice.CashHeldCents * constants.CashUnitCostCents
	for i, asset := range assets {
		units := roundUnits(solution.X[i])
		advice.Positions[i] = Position{
			Name:           asset.Name,
			Units:          units,
			CostBasis:      mathutil.FromCents(units * costCents[i]),
			ProjectedValue: float64(units) * asset.Projection(),
		}
		spentCents += units * costCents[i]
	}

	if spentCents != netWorthCents {
		return nil, fmt.Errorf("allocation spends %d cents of %d; solver returned a corrupt solution", spentCents, netWorthCents)
	}
	return advice, nil
}

func roundUnits(v float64) int64 {
	return int64(v + 0.5)
}
