package domain

import "errors"

var (
	// ErrInvalidRate reports a negative nominal rate or a non-positive
	// compounding/payment frequency.
	ErrInvalidRate = errors.New("invalid rate")
	// ErrInvalidTerm reports non-positive or inconsistent principal, term or
	// period counts.
	ErrInvalidTerm = errors.New("invalid term")
	// ErrScheduleDivergence reports a schedule that never reached payoff
	// within the runaway guard.
	ErrScheduleDivergence = errors.New("schedule divergence")
)
