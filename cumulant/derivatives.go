package cumulant

import (
	"math"

	"github.com/katalvlaran/saddlesum/nbmix"
)

// Partials collects, for one component j at a fixed evaluation point s, the
// partial derivatives of K, K′ and K″ with respect to that component's mean
// and dispersion. These are the closed forms that feed the implicit-function
// theorem: the saddle s solves K′(s) = x, so ds/dθ = −(∂K′/∂θ)/K″(s) and no
// solver iteration ever needs differentiating.
//
// With q = φ + μ − μ·e^s and e = e^s:
//
//	∂K/∂μ   = −φ(1−e)/q
//	∂K′/∂μ  = φ² e / q²
//	∂K″/∂μ  = φ e ( (φ+2μ)q − 2μ(φ+μ)(1−e) ) / q³
//	∂K/∂φ   = log(φ/q) + 1 − φ/q
//	∂K′/∂φ  = μ² e (1−e) / q²
//	∂K″/∂φ  = μ e ( (2φ+μ)q − 2φ(φ+μ) ) / q³
type Partials struct {
	// Mean-direction partials ∂K/∂μ_j, ∂K′/∂μ_j, ∂K″/∂μ_j.
	KMean, KPrimeMean, KSecondMean float64

	// Dispersion-direction partials ∂K/∂φ_j, ∂K′/∂φ_j, ∂K″/∂φ_j.
	KDisp, KPrimeDisp, KSecondDisp float64
}

// PartialsAt evaluates Partials for every component of spec at s.
//
// Contracts: spec non-empty, s strictly inside the domain (q_i > 0 for all i,
// otherwise SingularityError).
//
// Complexity: O(n) time, one O(n) allocation for the result.
func PartialsAt(spec nbmix.Spec, s float64) ([]Partials, error) {
	if spec.Len() == 0 {
		return nil, nbmix.ErrEmptySpec
	}

	var (
		i          int
		c          nbmix.Component
		q, q2, q3  float64
		es, ome    float64 // e^s and 1−e^s
		mu, ph, sm float64 // μ, φ, φ+μ
		out        = make([]Partials, spec.Len())
	)
	es = math.Exp(s)
	ome = -math.Expm1(s)
	for i = 0; i < spec.Len(); i++ {
		c = spec.At(i)
		mu, ph = c.Mean, c.Dispersion
		sm = ph + mu
		q = denom(c, s)
		if q <= 0 {
			return nil, SingularityError{S: s, Component: i}
		}
		q2 = q * q
		q3 = q2 * q

		out[i] = Partials{
			KMean:       -ph * ome / q,
			KPrimeMean:  ph * ph * es / q2,
			KSecondMean: ph * es * ((ph+2*mu)*q - 2*mu*sm*ome) / q3,
			KDisp:       math.Log(ph/q) + 1 - ph/q,
			KPrimeDisp:  mu * mu * es * ome / q2,
			KSecondDisp: mu * es * ((2*ph+mu)*q - 2*ph*sm) / q3,
		}
	}

	return out, nil
}
