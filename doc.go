// Package saddlesum approximates the distribution of a sum of independent,
// non-identical negative-binomial random variables with the saddlepoint
// method — fast log-densities (and gradients) for Bayesian inference loops.
//
// 🚀 What is saddlesum?
//
//	A small, deterministic numerical library that answers one question well:
//	“how likely is this total, given per-component means and dispersions?”
//	It is built for use inside likelihood evaluations, where the same sum
//	density is queried thousands of times with fresh parameters:
//	  • Overdispersed count totals (reads, claims, arrivals) across
//	    heterogeneous sources
//	  • Likelihood terms for MCMC / HMC / optimization over μ_i, φ_i
//	  • Tail and bulk probabilities where a normal approximation is too crude
//
// ✨ Key features:
//   - exact cumulant machinery: K, log K′, log K″, K‴ in stable log-space
//   - guarded saddle solve: Newton on an unconstrained reparameterization,
//     automatic bracketed-bisection fallback, bounded iterations
//   - closed-form exact branch at x = 0 (no approximation where none is needed)
//   - gradients w.r.t. every mean and dispersion via the implicit-function
//     theorem — no differentiating through solver iterations
//   - batch log-likelihood with optional observation-level parallelism
//   - strict sentinel/typed errors; never a silently wrong finite number
//
// Everything is organized under three subpackages:
//
//	nbmix/       — Component (μ, φ) pairs and the immutable mixture Spec
//	cumulant/    — K and its derivatives, with boundary (singularity) guards
//	saddlepoint/ — the root solver, density evaluator, batch API and gradients
//
// Quick sketch:
//
//	spec, _ := nbmix.New([]nbmix.Component{{Mean: 800, Dispersion: 10},
//	                                       {Mean: 1600, Dispersion: 1}})
//	opts := saddlepoint.DefaultOptions()
//	ll, _ := saddlepoint.LogDensity(spec, 2400, opts)
//
// The solver and evaluator are pure functions over immutable specs: safe to
// call concurrently from as many goroutines as you like.
//
//	go get github.com/katalvlaran/saddlesum
package saddlesum
