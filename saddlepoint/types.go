package saddlepoint

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/saddlesum/nbmix"
)

// Sentinel errors for solver and evaluator inputs.
var (
	// ErrNonPositiveTarget indicates Solve was asked for a root at x ≤ 0 or a
	// non-finite x. The saddlepoint equation K′(s) = x has no finite root at
	// x = 0; the evaluator handles that value on its exact closed-form branch.
	ErrNonPositiveTarget = errors.New("saddlepoint: target sum must be positive and finite")

	// ErrNegativeObservation indicates LogDensity/Gradient received x < 0
	// (or NaN); the support of the sum is the non-negative reals.
	ErrNegativeObservation = errors.New("saddlepoint: observed sum must be non-negative and finite")

	// ErrBadTolerance indicates Options.Tolerance ≤ 0 or NaN.
	ErrBadTolerance = errors.New("saddlepoint: tolerance must be positive")

	// ErrBadMaxIter indicates Options.MaxIter ≤ 0.
	ErrBadMaxIter = errors.New("saddlepoint: iteration cap must be positive")

	// ErrBadWorkers indicates Options.Workers < 0.
	ErrBadWorkers = errors.New("saddlepoint: workers must be non-negative")

	// ErrComponentCountMismatch indicates a batch whose specs disagree on the
	// number of components; a joint likelihood over heterogeneous shapes is
	// almost always a caller bug.
	ErrComponentCountMismatch = errors.New("saddlepoint: observations must share one component count")
)

// ConvergenceError reports that the root solver exhausted its iteration
// budget without meeting the residual tolerance. The parameter proposal that
// produced it should be rejected, not approximated.
type ConvergenceError struct {
	// Iterations is the number of iterations consumed (the configured cap).
	Iterations int

	// Residual is the last log-space residual observed; may be non-finite if
	// the solver was still escaping the domain boundary.
	Residual float64
}

func (e ConvergenceError) Error() string {
	return fmt.Sprintf("saddlepoint: no convergence after %d iterations (residual %g)", e.Iterations, e.Residual)
}

// Observation pairs one realized sum value with the mixture spec that
// generated it. Observations are independent; log-densities add.
type Observation struct {
	// Value is the realized sum, ≥ 0.
	Value float64

	// Spec is the mixture that generated Value.
	Spec nbmix.Spec
}
