package service

import (
	"fmt"
	"math"

	"loan-amortizer/domain"
)

// EffectiveAnnualRate converts a nominal annual rate compounded
// compounding times a year to its effective annual rate.
func EffectiveAnnualRate(nominal float64, compounding int) (float64, error) {
	if err := checkRate(nominal, compounding); err != nil {
		return 0, err
	}
	if nominal == 0 {
		return 0, nil
	}
	c := float64(compounding)
	return math.Pow(1+nominal/c, c) - 1, nil
}

// NominalAnnualRate is the inverse of EffectiveAnnualRate.
func NominalAnnualRate(effective float64, compounding int) (float64, error) {
	if err := checkRate(effective, compounding); err != nil {
		return 0, err
	}
	if effective == 0 {
		return 0, nil
	}
	c := float64(compounding)
	return c * (math.Pow(1+effective, 1/c) - 1), nil
}

// EffectivePeriodRate maps a nominal annual rate compounded at one frequency
// to the effective rate per payment period at another.
func EffectivePeriodRate(nominal float64, compounding, payment int) (float64, error) {
	if err := checkRate(nominal, compounding); err != nil {
		return 0, err
	}
	if payment <= 0 {
		return 0, fmt.Errorf("%w: payment frequency must be positive, got %d", domain.ErrInvalidRate, payment)
	}
	if nominal == 0 {
		return 0, nil
	}
	if compounding == payment {
		return nominal / float64(compounding), nil
	}

	ear, err := EffectiveAnnualRate(nominal, compounding)
	if err != nil {
		return 0, err
	}
	return math.Pow(1+ear, 1/float64(payment)) - 1, nil
}

func checkRate(rate float64, frequency int) error {
	if math.IsNaN(rate) || rate < 0 {
		return fmt.Errorf("%w: rate must be >= 0, got %v", domain.ErrInvalidRate, rate)
	}
	if frequency <= 0 {
		return fmt.Errorf("%w: compounding frequency must be positive, got %d", domain.ErrInvalidRate, frequency)
	}
	return nil
}
