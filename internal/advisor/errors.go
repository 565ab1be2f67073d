package advisor

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasible indicates no combination of whole stock purchases and
	// whole cents held adds up to the net worth exactly. The usual cause is
	// a net worth with a fractional-cent remainder.
	ErrInfeasible = errors.New("no exact allocation exists for this net worth")

	// ErrUnbounded indicates the solver reported an unbounded objective.
	// The equality constraint pins total spend, so this cannot happen for a
	// validated problem; it is handled so a solver regression surfaces as a
	// classified error rather than a bogus allocation.
	ErrUnbounded = errors.New("allocation problem is unbounded")
)

// InvalidInputError reports configuration input that fails validation before
// the solver is ever invoked.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}
