package nbmix

import "errors"

// Sentinel errors for mixture-spec construction.
var (
	// ErrEmptySpec indicates that New was called with zero components.
	ErrEmptySpec = errors.New("nbmix: spec must contain at least one component")

	// ErrNonPositiveMean indicates a component mean μ ≤ 0 or NaN.
	ErrNonPositiveMean = errors.New("nbmix: component mean must be positive and finite")

	// ErrNonPositiveDispersion indicates a component dispersion φ ≤ 0 or NaN.
	ErrNonPositiveDispersion = errors.New("nbmix: component dispersion must be positive and finite")
)

// Component holds the parameters of one negative-binomial summand.
//
// Mean is μ (expected count) and Dispersion is φ (precision-like shape);
// the component variance is μ + μ²/φ.
type Component struct {
	// Mean is μ, strictly positive.
	Mean float64

	// Dispersion is φ, strictly positive. Smaller φ ⇒ heavier overdispersion.
	Dispersion float64
}

// Spec is an immutable, ordered mixture specification.
//
// Construct with New; the zero value is invalid. All accessors are read-only
// and a Spec may be shared across goroutines without synchronization.
type Spec struct {
	comps []Component
	tMax  float64
}
