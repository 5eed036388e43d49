package cumulant

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/saddlesum/nbmix"
)

// SingularityError reports that the denominator q_i = φ_i + μ_i − μ_i·e^s of
// component i reached zero or below while evaluating a cumulant derivative.
// It means s sits at or beyond the domain boundary t_max, usually from
// floating-point drift during a root solve pushed to the boundary.
type SingularityError struct {
	// S is the evaluation point that crossed the boundary.
	S float64

	// Component is the index of the first component whose denominator failed.
	Component int
}

func (e SingularityError) Error() string {
	return fmt.Sprintf("cumulant: singular denominator for component %d at s=%g (s ≥ t_max)", e.Component, e.S)
}

// denom returns q = φ + μ − μ·e^s for one component.
// Written as φ − μ·expm1(s) so that s near zero loses no precision.
func denom(c nbmix.Component, s float64) float64 {
	return c.Dispersion - c.Mean*math.Expm1(s)
}

// K evaluates the cumulant-generating function K(s) of the sum.
//
// Contracts:
//   - spec non-empty (nbmix.ErrEmptySpec otherwise).
//   - s < spec.TMax(), enforced through the q_i > 0 guard (SingularityError).
//
// Complexity: O(n) time, no allocations.
func K(spec nbmix.Spec, s float64) (float64, error) {
	if spec.Len() == 0 {
		return 0, nbmix.ErrEmptySpec
	}

	var (
		i     int
		c     nbmix.Component
		q     float64
		total float64
	)
	for i = 0; i < spec.Len(); i++ {
		c = spec.At(i)
		q = denom(c, s)
		if q <= 0 {
			return 0, SingularityError{S: s, Component: i}
		}
		total += c.Dispersion * (math.Log(c.Dispersion) - math.Log(q))
	}

	return total, nil
}

// LogKPrime evaluates log K′(s) with a log-sum-exp reduction:
//
//	log Σ_i exp( log φ_i + log μ_i + s − log q_i )
//
// Contracts: as for K.
//
// Complexity: O(n) time, one O(n) scratch allocation for the reduction.
func LogKPrime(spec nbmix.Spec, s float64) (float64, error) {
	if spec.Len() == 0 {
		return 0, nbmix.ErrEmptySpec
	}

	var (
		i     int
		c     nbmix.Component
		q     float64
		terms = make([]float64, spec.Len())
	)
	for i = 0; i < spec.Len(); i++ {
		c = spec.At(i)
		q = denom(c, s)
		if q <= 0 {
			return 0, SingularityError{S: s, Component: i}
		}
		terms[i] = math.Log(c.Dispersion) + math.Log(c.Mean) + s - math.Log(q)
	}

	return floats.LogSumExp(terms), nil
}

// LogKSecond evaluates log K″(s) with a log-sum-exp reduction:
//
//	log Σ_i exp( log φ_i + log μ_i + log(φ_i+μ_i) + s − 2·log q_i )
//
// K″(s) > 0 everywhere on the domain (strict convexity of K); the returned
// value is therefore always finite for a valid s.
//
// Complexity: O(n) time, one O(n) scratch allocation.
func LogKSecond(spec nbmix.Spec, s float64) (float64, error) {
	if spec.Len() == 0 {
		return 0, nbmix.ErrEmptySpec
	}

	var (
		i     int
		c     nbmix.Component
		q     float64
		terms = make([]float64, spec.Len())
	)
	for i = 0; i < spec.Len(); i++ {
		c = spec.At(i)
		q = denom(c, s)
		if q <= 0 {
			return 0, SingularityError{S: s, Component: i}
		}
		terms[i] = math.Log(c.Dispersion) + math.Log(c.Mean) + math.Log(c.Dispersion+c.Mean) +
			s - 2*math.Log(q)
	}

	return floats.LogSumExp(terms), nil
}

// KThird evaluates the third derivative K‴(s) on the linear scale:
//
//	Σ_i φ_i μ_i (φ_i+μ_i) e^s (q_i + 2 μ_i e^s) / q_i³
//
// Used only inside gradient propagation, where it enters as the ratio
// K‴/K″ and the linear scale is adequate.
//
// Complexity: O(n) time, no allocations.
func KThird(spec nbmix.Spec, s float64) (float64, error) {
	if spec.Len() == 0 {
		return 0, nbmix.ErrEmptySpec
	}

	var (
		i     int
		c     nbmix.Component
		q, es float64
		total float64
	)
	es = math.Exp(s)
	for i = 0; i < spec.Len(); i++ {
		c = spec.At(i)
		q = denom(c, s)
		if q <= 0 {
			return 0, SingularityError{S: s, Component: i}
		}
		total += c.Dispersion * c.Mean * (c.Dispersion + c.Mean) * es *
			(q + 2*c.Mean*es) / (q * q * q)
	}

	return total, nil
}
