// Package saddlepoint evaluates the saddlepoint approximation to the
// log-density of a sum of independent negative-binomial components, and the
// root solve that powers it.
//
// 🚀 What is the saddlepoint method?
//
//	For a sum with cumulant-generating function K, the density at x is
//	approximated around the saddle s solving K′(s) = x:
//
//	  log f̂(x) = −½·( log 2π + log K″(s) ) + K(s) − s·x
//
//	The approximation tracks both bulk and tail far better than a normal
//	(CLT) approximation when components are few or heavily overdispersed.
//
// ✨ Key features:
//   - Solve — the saddle root, found on an unconstrained reparameterization
//     y with s = t_max − e^y, so the hard boundary t_max disappears from
//     the root-finding problem; Newton steps with a guarded bracketed
//     bisection fallback, bounded iterations.
//   - LogDensity — single observation; x = 0 taken on the exact closed-form
//     branch (no root exists there and none is needed).
//   - LogLikelihood — additive batch over (value, spec) observations with
//     optional observation-level parallelism.
//   - Gradient — ∂ log f̂ / ∂μ_i and ∂ log f̂ / ∂φ_i through the
//     implicit-function theorem: ds/dθ = −(∂K′/∂θ)/K″(s), never through the
//     solver's iterations.
//
// ⚙️ Usage:
//
//	spec, err := nbmix.New([]nbmix.Component{
//	  {Mean: 800, Dispersion: 10},
//	  {Mean: 1600, Dispersion: 1},
//	})
//	opts := saddlepoint.DefaultOptions()
//	ll, err := saddlepoint.LogDensity(spec, 2400, opts)
//
// Failure modes are never silent: domain violations return sentinels,
// a boundary excursion returns cumulant.SingularityError, and an exhausted
// iteration budget returns ConvergenceError carrying the last residual.
// Rejecting the current parameter proposal is always safe; trusting a NaN
// would not be.
//
// All entry points are pure functions over immutable specs and are safe for
// concurrent use.
package saddlepoint
