// Package nbmix defines the mixture specification shared by every other
// package in saddlesum: an immutable, ordered collection of negative-binomial
// components, each described by a mean μ > 0 and a dispersion φ > 0.
//
// A Spec is the unit passed into every cumulant and saddlepoint evaluation.
// It is validated once at construction and never mutated afterwards, so a
// single Spec may be shared freely across goroutines. Parameters under active
// inference change every step; the intended lifecycle is to build a fresh
// Spec from the current parameter vector before each likelihood call — New is
// a single O(n) validation pass plus one allocation, cheap enough to sit on
// the hot path.
//
// The component with mean μ and dispersion φ has variance μ + μ²/φ; small φ
// means heavy overdispersion. The only derived quantities owned by this
// package are the two closed forms that need no saddlepoint machinery:
//
//   - TMax — the upper endpoint min_i log(φ_i/μ_i + 1) of the open interval
//     on which the sum's cumulant-generating function exists
//   - LogZeroMass — the exact log-probability that the sum is zero, i.e. that
//     every component is zero: Σ_i φ_i·(log φ_i − log(φ_i+μ_i))
//
// Errors:
//
//	ErrEmptySpec              - no components supplied.
//	ErrNonPositiveMean        - some μ_i ≤ 0 (or NaN).
//	ErrNonPositiveDispersion  - some φ_i ≤ 0 (or NaN).
package nbmix
