package service

import (
	"fmt"
	"math"

	"loan-amortizer/domain"
)

// PaymentPlan is the result of the payment calculation.
type PaymentPlan struct {
	// Payment is the level payment of the amortizing portion. For a loan
	// without amortizing periods it is the per-period interest.
	Payment float64
	// FinalBalloonDue is the principal left at the end of an entirely
	// interest-only loan.
	FinalBalloonDue float64
}

// LevelPayment computes the annuity payment that retires principal over
// amortizingPeriods periods at periodRate.
func LevelPayment(principal, periodRate float64, amortizingPeriods int) (PaymentPlan, error) {
	if math.IsNaN(principal) || principal <= 0 {
		return PaymentPlan{}, fmt.Errorf("%w: principal must be positive, got %v", domain.ErrInvalidTerm, principal)
	}
	if amortizingPeriods < 0 {
		return PaymentPlan{}, fmt.Errorf("%w: amortizing periods must be >= 0, got %d", domain.ErrInvalidTerm, amortizingPeriods)
	}
	if math.IsNaN(periodRate) || periodRate < 0 {
		return PaymentPlan{}, fmt.Errorf("%w: period rate must be >= 0, got %v", domain.ErrInvalidRate, periodRate)
	}

	if amortizingPeriods == 0 {
		return PaymentPlan{
			Payment:         principal * periodRate,
			FinalBalloonDue: principal,
		}, nil
	}

	n := float64(amortizingPeriods)
	if periodRate == 0 {
		return PaymentPlan{Payment: principal / n}, nil
	}
	return PaymentPlan{
		Payment: principal * periodRate / (1 - math.Pow(1+periodRate, -n)),
	}, nil
}
