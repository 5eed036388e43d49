package nbmix

import "math"

// New validates comps and returns an immutable Spec.
//
// Contracts:
//   - len(comps) ≥ 1, otherwise ErrEmptySpec.
//   - every Mean and Dispersion strictly positive and finite, otherwise
//     ErrNonPositiveMean / ErrNonPositiveDispersion.
//
// The input slice is copied; callers may reuse or mutate it afterwards.
//
// Complexity: O(n) time, one O(n) allocation.
func New(comps []Component) (Spec, error) {
	if len(comps) == 0 {
		return Spec{}, ErrEmptySpec
	}

	var (
		i    int
		c    Component
		t    float64
		tMax = math.Inf(1)
	)
	for i, c = range comps {
		if !(c.Mean > 0) || math.IsInf(c.Mean, 1) {
			return Spec{}, ErrNonPositiveMean
		}
		if !(c.Dispersion > 0) || math.IsInf(c.Dispersion, 1) {
			return Spec{}, ErrNonPositiveDispersion
		}
		// Log1p keeps t_max accurate when φ/μ is tiny (near-geometric regime).
		t = math.Log1p(comps[i].Dispersion / comps[i].Mean)
		if t < tMax {
			tMax = t
		}
	}

	own := make([]Component, len(comps))
	copy(own, comps)

	return Spec{comps: own, tMax: tMax}, nil
}

// MustNew is New that panics on error; intended for fixed literals in
// examples and tests, never for parameters coming from an inference loop.
func MustNew(comps []Component) Spec {
	s, err := New(comps)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of components.
func (s Spec) Len() int { return len(s.comps) }

// At returns the i-th component. Panics if i is out of range, matching
// slice-index semantics.
func (s Spec) At(i int) Component { return s.comps[i] }

// TMax returns the upper endpoint of the open domain of the sum's
// cumulant-generating function: min_i log(φ_i/μ_i + 1). Always > 0 for a
// valid Spec.
func (s Spec) TMax() float64 { return s.tMax }

// Mean returns the mean of the sum, Σ_i μ_i.
func (s Spec) Mean() float64 {
	var total float64
	for _, c := range s.comps {
		total += c.Mean
	}
	return total
}

// Variance returns the variance of the sum, Σ_i (μ_i + μ_i²/φ_i).
func (s Spec) Variance() float64 {
	var total float64
	for _, c := range s.comps {
		total += c.Mean + c.Mean*c.Mean/c.Dispersion
	}
	return total
}

// LogZeroMass returns the exact log-probability that the sum equals zero:
// every component realizes zero simultaneously, so the terms add:
//
//	Σ_i φ_i · ( log φ_i − log(φ_i + μ_i) )
//
// This is the closed form the density evaluator uses at x == 0, where the
// saddlepoint equation has no finite root.
func (s Spec) LogZeroMass() float64 {
	var total float64
	for _, c := range s.comps {
		total += c.Dispersion * (math.Log(c.Dispersion) - math.Log(c.Dispersion+c.Mean))
	}
	return total
}
