package saddlepoint

import (
	"math"

	"github.com/katalvlaran/saddlesum/cumulant"
	"github.com/katalvlaran/saddlesum/nbmix"
)

// ComponentGrad holds the partial derivatives of one log-density value with
// respect to one component's parameters.
type ComponentGrad struct {
	// Mean is ∂ log f̂(x) / ∂μ_j.
	Mean float64

	// Dispersion is ∂ log f̂(x) / ∂φ_j.
	Dispersion float64
}

// Gradient returns ∂ log f̂(x)/∂μ_j and ∂ log f̂(x)/∂φ_j for every component
// j, for use in gradient-based inference over the mixture parameters.
//
// The saddle s is an implicit function of the parameters through K′(s) = x,
// so by the implicit function theorem ds/dθ = −(∂K′/∂θ)/K″(s). Substituting
// into the density formula (and using K′(s) = x, which cancels the explicit
// −x·ds/dθ term against K′·ds/dθ) leaves the closed form
//
//	d log f̂ / dθ = ∂K/∂θ − ( ∂K″/∂θ + K‴(s)·ds/dθ ) / ( 2·K″(s) )
//
// evaluated entirely from the cumulant partials — the solver's iterations
// are never differentiated.
//
// At x = 0 the evaluator's exact branch is differentiated instead:
// ∂/∂μ_j = −φ_j/(φ_j+μ_j), ∂/∂φ_j = log(φ_j/(φ_j+μ_j)) + 1 − φ_j/(φ_j+μ_j).
//
// Errors: as for LogDensity.
//
// Complexity: one root solve plus O(n).
func Gradient(spec nbmix.Spec, x float64, opts Options) ([]ComponentGrad, error) {
	if spec.Len() == 0 {
		return nil, nbmix.ErrEmptySpec
	}
	if math.IsNaN(x) || x < 0 {
		return nil, ErrNegativeObservation
	}

	out := make([]ComponentGrad, spec.Len())

	if x == 0 {
		var (
			i int
			c nbmix.Component
			r float64 // φ/(φ+μ)
		)
		for i = 0; i < spec.Len(); i++ {
			c = spec.At(i)
			r = c.Dispersion / (c.Dispersion + c.Mean)
			out[i] = ComponentGrad{
				Mean:       -r,
				Dispersion: math.Log(r) + 1 - r,
			}
		}

		return out, nil
	}

	s, err := Solve(spec, x, opts)
	if err != nil {
		return nil, err
	}

	logKS, err := cumulant.LogKSecond(spec, s)
	if err != nil {
		return nil, err
	}
	kSecond := math.Exp(logKS)

	kThird, err := cumulant.KThird(spec, s)
	if err != nil {
		return nil, err
	}

	parts, err := cumulant.PartialsAt(spec, s)
	if err != nil {
		return nil, err
	}

	var (
		j    int
		dsdT float64 // ds/dθ from the implicit function theorem
	)
	for j = range parts {
		dsdT = -parts[j].KPrimeMean / kSecond
		out[j].Mean = parts[j].KMean - (parts[j].KSecondMean+kThird*dsdT)/(2*kSecond)

		dsdT = -parts[j].KPrimeDisp / kSecond
		out[j].Dispersion = parts[j].KDisp - (parts[j].KSecondDisp+kThird*dsdT)/(2*kSecond)
	}

	return out, nil
}
