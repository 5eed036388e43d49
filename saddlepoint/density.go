package saddlepoint

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/saddlesum/cumulant"
	"github.com/katalvlaran/saddlesum/nbmix"
)

// logTwoPi = log(2π), the normal-kernel constant of the saddlepoint formula.
const logTwoPi = 1.8378770664093454835606594728112352797227949472755668

// LogDensity returns the natural log of the (unnormalized) saddlepoint
// density/mass approximation at x for the given mixture spec:
//
//	−½·( log 2π + log K″(s) ) + K(s) − s·x,  with K′(s) = x.
//
// The value x = 0 bypasses the solver entirely: no finite saddle exists
// there, and the exact probability that every component realizes zero is
// available in closed form (spec.LogZeroMass). This branch is exact, not an
// approximation.
//
// Errors: ErrNegativeObservation for x < 0 or NaN, nbmix.ErrEmptySpec,
// and whatever the solve itself raises (ConvergenceError,
// cumulant.SingularityError).
//
// Complexity: one root solve plus O(n) evaluation.
func LogDensity(spec nbmix.Spec, x float64, opts Options) (float64, error) {
	if spec.Len() == 0 {
		return 0, nbmix.ErrEmptySpec
	}
	if math.IsNaN(x) || x < 0 {
		return 0, ErrNegativeObservation
	}
	if x == 0 {
		return spec.LogZeroMass(), nil
	}

	s, err := Solve(spec, x, opts)
	if err != nil {
		return 0, err
	}

	k, err := cumulant.K(spec, s)
	if err != nil {
		return 0, err
	}
	logKS, err := cumulant.LogKSecond(spec, s)
	if err != nil {
		return 0, err
	}

	return -0.5*(logTwoPi+logKS) + k - s*x, nil
}

// LogLikelihood returns the joint log-likelihood contribution of independent
// observations: the sum of per-observation LogDensity values.
//
// Semantics:
//   - observations are evaluated independently, in any order; results are
//     summed in index order, so sequential and parallel runs agree.
//   - all specs must share one component count (ErrComponentCountMismatch).
//   - any per-observation failure fails the whole batch — a likelihood with
//     an undefined term is rejected as a whole. The error is wrapped with
//     the offending observation index and unwraps to the underlying cause.
//   - opts.Workers > 1 splits the batch at observation granularity across
//     that many goroutines; there is no cross-observation state to guard.
//
// An empty batch contributes zero.
//
// Complexity: O(len(obs)) root solves, parallelized across Workers.
func LogLikelihood(obs []Observation, opts Options) (float64, error) {
	if err := validateOptions(opts); err != nil {
		return 0, err
	}
	if len(obs) == 0 {
		return 0, nil
	}
	if err := validateBatchShape(obs); err != nil {
		return 0, err
	}

	var (
		terms = make([]float64, len(obs))
		err   error
	)
	if opts.Workers <= 1 || len(obs) == 1 {
		var i int
		for i = range obs {
			terms[i], err = LogDensity(obs[i].Spec, obs[i].Value, opts)
			if err != nil {
				return 0, fmt.Errorf("saddlepoint: observation %d: %w", i, err)
			}
		}

		return floats.Sum(terms), nil
	}

	var (
		workers = opts.Workers
		wg      sync.WaitGroup
		errs    = make([]error, len(obs))
	)
	if workers > len(obs) {
		workers = len(obs)
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(start int) {
			defer wg.Done()
			// Strided split: observation i belongs to worker i mod workers.
			for i := start; i < len(obs); i += workers {
				terms[i], errs[i] = LogDensity(obs[i].Spec, obs[i].Value, opts)
			}
		}(w)
	}
	wg.Wait()

	// Deterministic failure: report the lowest failing observation index.
	for i := range errs {
		if errs[i] != nil {
			return 0, fmt.Errorf("saddlepoint: observation %d: %w", i, errs[i])
		}
	}

	return floats.Sum(terms), nil
}

// validateBatchShape enforces the shared-component-count contract.
//
// Complexity: O(len(obs)).
func validateBatchShape(obs []Observation) error {
	n := obs[0].Spec.Len()
	for i := range obs {
		if obs[i].Spec.Len() != n {
			return ErrComponentCountMismatch
		}
	}
	return nil
}
