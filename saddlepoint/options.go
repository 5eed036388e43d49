package saddlepoint

import "math"

// DefaultTolerance is the absolute residual tolerance on the log-space
// saddlepoint equation, |log K′(s) − log x| ≤ tol.
const DefaultTolerance = 1e-8

// DefaultMaxIter bounds the root solve; exceeding it is a ConvergenceError,
// never a silent best-effort value.
const DefaultMaxIter = 100

// Options configures the solver and the batch evaluator.
//
// Fields:
//   - Tolerance — absolute residual tolerance for the log-space equation.
//   - MaxIter   — iteration cap for the root solve (termination guarantee).
//   - Workers   — goroutines for LogLikelihood; 0 or 1 means sequential.
//   - Solver    — scalar root-finding strategy; nil selects NewtonBisection.
//
// Example:
//
//	opts := saddlepoint.DefaultOptions()
//	opts.Workers = runtime.GOMAXPROCS(0) // parallel batch evaluation
//	ll, err := saddlepoint.LogLikelihood(obs, opts)
type Options struct {
	Tolerance float64
	MaxIter   int
	Workers   int
	Solver    RootSolver
}

// DefaultOptions returns the recommended configuration: 1e-8 residual
// tolerance, 100-iteration cap, sequential batches, NewtonBisection solver.
func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		MaxIter:   DefaultMaxIter,
	}
}

// validateOptions checks Options in isolation; only sentinel errors.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	if !(opts.Tolerance > 0) || math.IsInf(opts.Tolerance, 1) {
		return ErrBadTolerance
	}
	if opts.MaxIter <= 0 {
		return ErrBadMaxIter
	}
	if opts.Workers < 0 {
		return ErrBadWorkers
	}
	return nil
}

// solverOrDefault resolves the configured root-finding strategy.
func solverOrDefault(opts Options) RootSolver {
	if opts.Solver != nil {
		return opts.Solver
	}
	return NewtonBisection{}
}
