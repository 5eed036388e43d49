// Package cumulant implements the cumulant-generating function K of a sum of
// independent negative-binomial components, together with the derivatives the
// saddlepoint machinery needs: log K′, log K″, K‴, and the closed-form
// partials of K, K′, K″ with respect to every component mean and dispersion.
//
// For a component (μ, φ) define q(s) = φ + μ − μ·e^s. On the open interval
// s < t_max = min_i log(φ_i/μ_i + 1) every q_i is strictly positive and
//
//	K(s)   = Σ_i φ_i · ( log φ_i − log q_i )
//	K′(s)  = Σ_i φ_i μ_i e^s / q_i
//	K″(s)  = Σ_i φ_i μ_i (φ_i+μ_i) e^s / q_i²
//	K‴(s)  = Σ_i φ_i μ_i (φ_i+μ_i) e^s (q_i + 2 μ_i e^s) / q_i³
//
// K is strictly convex; K′ grows from 0 (s → −∞) to +∞ (s ↑ t_max), which is
// what makes the saddlepoint equation K′(s) = x uniquely solvable for every
// x > 0.
//
// Numerical posture:
//   - K′ and K″ are exposed on the log scale (LogKPrime, LogKSecond) and
//     reduced with a log-sum-exp so that means in the hundreds of thousands
//     do not overflow the sum of exponentials.
//   - q_i is computed as φ_i − μ_i·expm1(s) to avoid cancellation near s = 0.
//   - Any q_i ≤ 0 — possible only from floating-point drift at the domain
//     boundary — yields a SingularityError rather than a NaN that would
//     corrupt a likelihood silently.
//
// All functions are pure and safe for concurrent use.
package cumulant
