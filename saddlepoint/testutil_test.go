// Package saddlepoint_test shared helpers: the exact negative-binomial
// log-pmf, a Gamma–Poisson mixture sampler for sums, and the closed-form
// method-of-moments comparator. The comparator is deliberately test-only —
// it is the simple baseline the saddlepoint approximation is judged against,
// not part of the library surface.
package saddlepoint_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/saddlesum/nbmix"
)

// seedDet is the deterministic seed for every stochastic test in this
// package; no time-based randomness anywhere.
const seedDet = 0x5eed

// nbLogPMF is the exact negative-binomial log mass at integer count k for a
// single (μ, φ) component:
//
//	lnΓ(k+φ) − lnΓ(φ) − lnΓ(k+1) + φ·log(φ/(φ+μ)) + k·log(μ/(φ+μ))
func nbLogPMF(mu, phi, k float64) float64 {
	lgKPhi, _ := math.Lgamma(k + phi)
	lgPhi, _ := math.Lgamma(phi)
	lgK1, _ := math.Lgamma(k + 1)
	return lgKPhi - lgPhi - lgK1 +
		phi*(math.Log(phi)-math.Log(phi+mu)) +
		k*(math.Log(mu)-math.Log(phi+mu))
}

// sampleSum draws one realization of the mixture sum via the Gamma–Poisson
// representation: λ ~ Gamma(φ, rate φ/μ) then count ~ Poisson(λ), summed
// over components.
func sampleSum(spec nbmix.Spec, src rand.Source) float64 {
	var (
		i     int
		c     nbmix.Component
		lam   float64
		total float64
	)
	for i = 0; i < spec.Len(); i++ {
		c = spec.At(i)
		lam = distuv.Gamma{Alpha: c.Dispersion, Beta: c.Dispersion / c.Mean, Src: src}.Rand()
		total += distuv.Poisson{Lambda: lam, Src: src}.Rand()
	}
	return total
}

// momSpec collapses a mixture to the single negative binomial matching the
// sum's first two moments (μ* = M, φ* = M²/(V−M)) — the method-of-moments
// comparator.
func momSpec(t *testing.T, spec nbmix.Spec) nbmix.Component {
	t.Helper()

	m := spec.Mean()
	v := spec.Variance()
	require.Greater(t, v, m, "negative-binomial sums are overdispersed")

	return nbmix.Component{Mean: m, Dispersion: m * m / (v - m)}
}

// mustSpec wraps nbmix.New with require, for tests that construct specs from
// literals.
func mustSpec(t *testing.T, comps []nbmix.Component) nbmix.Spec {
	t.Helper()
	spec, err := nbmix.New(comps)
	require.NoError(t, err)
	return spec
}
