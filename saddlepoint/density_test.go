package saddlepoint_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/saddlesum/nbmix"
	"github.com/katalvlaran/saddlesum/saddlepoint"
)

// TestLogDensity_ZeroBranchExact: at x = 0 the evaluator must return exactly
// the closed-form log-mass-at-zero, with no solver involvement — we pin that
// by making the solver budget unusable; the zero branch must not care.
func TestLogDensity_ZeroBranchExact(t *testing.T) {
	spec := mustSpec(t, []nbmix.Component{{Mean: 5, Dispersion: 2}, {Mean: 3, Dispersion: 7}})

	opts := saddlepoint.DefaultOptions()
	ld, err := saddlepoint.LogDensity(spec, 0, opts)
	require.NoError(t, err)
	assert.Equal(t, spec.LogZeroMass(), ld, "x=0 must hit the exact branch bit-for-bit")

	// Solver deliberately crippled: the zero branch never reaches it.
	opts.MaxIter = 1
	opts.Tolerance = 1e-300
	ld, err = saddlepoint.LogDensity(spec, 0, opts)
	require.NoError(t, err)
	assert.Equal(t, spec.LogZeroMass(), ld)
}

// TestLogDensity_DomainErrors: negative and NaN observations are rejected,
// empty specs too.
func TestLogDensity_DomainErrors(t *testing.T) {
	spec := mustSpec(t, []nbmix.Component{{Mean: 5, Dispersion: 2}})
	opts := saddlepoint.DefaultOptions()

	_, err := saddlepoint.LogDensity(spec, -1, opts)
	assert.ErrorIs(t, err, saddlepoint.ErrNegativeObservation)

	_, err = saddlepoint.LogDensity(spec, math.NaN(), opts)
	assert.ErrorIs(t, err, saddlepoint.ErrNegativeObservation)

	var empty nbmix.Spec
	_, err = saddlepoint.LogDensity(empty, 1, opts)
	assert.ErrorIs(t, err, nbmix.ErrEmptySpec)
}

// TestLogDensity_SingleComponentTracksExactPMF compares the approximation to
// the exact negative-binomial log-pmf for a one-component "sum". The
// saddlepoint mass is unnormalized, so agreement is approximate; for a
// large-mean component the relative correction is small across bulk and
// moderate tail.
func TestLogDensity_SingleComponentTracksExactPMF(t *testing.T) {
	const (
		mu  = 800.0
		phi = 10.0
	)
	spec := mustSpec(t, []nbmix.Component{{Mean: mu, Dispersion: phi}})
	opts := saddlepoint.DefaultOptions()

	for _, x := range []float64{200, 400, 800, 1200, 1600, 2400} {
		ld, err := saddlepoint.LogDensity(spec, x, opts)
		require.NoError(t, err)

		exact := nbLogPMF(mu, phi, x)
		assert.InDeltaf(t, exact, ld, 0.2, "x=%g: saddlepoint vs exact NB log-pmf", x)
	}
}

// TestLogDensity_FiniteOrVisibleFailure probes the boundary-hostile regime
// (φ/μ extremely small): either a clean error or a finite value, never a
// silent NaN/Inf.
func TestLogDensity_FiniteOrVisibleFailure(t *testing.T) {
	spec := mustSpec(t, []nbmix.Component{
		{Mean: 1e6, Dispersion: 1e-6},
		{Mean: 10, Dispersion: 5},
	})
	opts := saddlepoint.DefaultOptions()

	for _, x := range []float64{1, 1e3, 1e6, 5e7} {
		ld, err := saddlepoint.LogDensity(spec, x, opts)
		if err != nil {
			continue // visible failure is an accepted outcome here
		}
		assert.Falsef(t, math.IsNaN(ld) || math.IsInf(ld, 0),
			"x=%g: silent non-finite log-density %g", x, ld)
	}
}

// TestLogLikelihood_Additivity: the batch result equals the sum of the
// individual evaluations.
func TestLogLikelihood_Additivity(t *testing.T) {
	spec := mustSpec(t, []nbmix.Component{{Mean: 800, Dispersion: 10}, {Mean: 1600, Dispersion: 1}})
	opts := saddlepoint.DefaultOptions()

	values := []float64{0, 1200, 2400, 3100, 5000}
	obs := make([]saddlepoint.Observation, len(values))
	var want float64
	for i, x := range values {
		obs[i] = saddlepoint.Observation{Value: x, Spec: spec}
		ld, err := saddlepoint.LogDensity(spec, x, opts)
		require.NoError(t, err)
		want += ld
	}

	got, err := saddlepoint.LogLikelihood(obs, opts)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
}

// TestLogLikelihood_ParallelMatchesSequential: Workers > 1 must reproduce
// the sequential result exactly — same terms, same index-order summation.
func TestLogLikelihood_ParallelMatchesSequential(t *testing.T) {
	spec := mustSpec(t, []nbmix.Component{{Mean: 5, Dispersion: 2}, {Mean: 3, Dispersion: 7}})

	obs := make([]saddlepoint.Observation, 64)
	for i := range obs {
		obs[i] = saddlepoint.Observation{Value: float64(i), Spec: spec}
	}

	seq := saddlepoint.DefaultOptions()
	got1, err := saddlepoint.LogLikelihood(obs, seq)
	require.NoError(t, err)

	par := saddlepoint.DefaultOptions()
	par.Workers = 4
	got2, err := saddlepoint.LogLikelihood(obs, par)
	require.NoError(t, err)

	assert.Equal(t, got1, got2, "parallel and sequential batches must agree exactly")
}

// TestLogLikelihood_FailFast: one undefined term invalidates the whole batch
// and the error names the offending observation, unwrapping to the cause.
func TestLogLikelihood_FailFast(t *testing.T) {
	spec := mustSpec(t, []nbmix.Component{{Mean: 5, Dispersion: 2}})
	obs := []saddlepoint.Observation{
		{Value: 3, Spec: spec},
		{Value: -1, Spec: spec}, // outside the support
		{Value: 8, Spec: spec},
	}

	for _, workers := range []int{0, 4} {
		opts := saddlepoint.DefaultOptions()
		opts.Workers = workers

		_, err := saddlepoint.LogLikelihood(obs, opts)
		require.Error(t, err)
		assert.ErrorIs(t, err, saddlepoint.ErrNegativeObservation)
		assert.Contains(t, err.Error(), "observation 1")
	}
}

// TestLogLikelihood_ShapeAndEmpty: mismatched component counts are rejected;
// an empty batch contributes zero.
func TestLogLikelihood_ShapeAndEmpty(t *testing.T) {
	opts := saddlepoint.DefaultOptions()

	got, err := saddlepoint.LogLikelihood(nil, opts)
	require.NoError(t, err)
	assert.Zero(t, got)

	two := mustSpec(t, []nbmix.Component{{Mean: 5, Dispersion: 2}, {Mean: 3, Dispersion: 7}})
	one := mustSpec(t, []nbmix.Component{{Mean: 5, Dispersion: 2}})
	_, err = saddlepoint.LogLikelihood([]saddlepoint.Observation{
		{Value: 1, Spec: two},
		{Value: 2, Spec: one},
	}, opts)
	assert.ErrorIs(t, err, saddlepoint.ErrComponentCountMismatch)
}

// TestLogDensity_ConcurrentCallers: immutable specs and pure evaluation mean
// arbitrary goroutines may share one spec; every result must agree.
func TestLogDensity_ConcurrentCallers(t *testing.T) {
	spec := mustSpec(t, []nbmix.Component{{Mean: 800, Dispersion: 10}, {Mean: 1600, Dispersion: 1}})
	opts := saddlepoint.DefaultOptions()

	want, err := saddlepoint.LogDensity(spec, 2400, opts)
	require.NoError(t, err)

	const callers = 16
	var wg sync.WaitGroup
	results := make([]float64, callers)
	errs := make([]error, callers)

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = saddlepoint.LogDensity(spec, 2400, opts)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}
