package service

import (
	"fmt"
	"math"

	"loan-amortizer/domain"
)

// GenerateSchedule walks the loan period by period, starting in the
// interest-only state when the terms ask for it, and stops at payoff. A loan
// that is interest-only for its whole term stops at the nominal term and
// reports the balloon. A balance still outstanding after the nominal term
// keeps amortizing until RunawayGuardFactor times the term, after which
// ErrScheduleDivergence is returned together with the periods generated so
// far. At the last nominal period a remainder below FinalPeriodTolerance of
// the base payment is rounding and is paid off with that period.
func GenerateSchedule(terms domain.LoanTerms, periodRate, basePayment float64) (*domain.Schedule, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(periodRate) || periodRate < 0 {
		return nil, fmt.Errorf("%w: period rate must be >= 0, got %v", domain.ErrInvalidRate, periodRate)
	}
	if math.IsNaN(basePayment) || basePayment < 0 {
		return nil, fmt.Errorf("%w: base payment must be >= 0, got %v", domain.ErrInvalidTerm, basePayment)
	}

	nominal := terms.TotalPeriods()
	interestOnly := terms.InterestOnlyPeriods
	guard := nominal * RunawayGuardFactor
	escrow := terms.EscrowPerPeriod()
	financed := terms.FinancedPrincipal()
	feeShare := terms.RolledFees() / financed
	finalTolerance := math.Max(PayoffEpsilon, FinalPeriodTolerance*basePayment)

	sched := &domain.Schedule{
		Records:           make([]domain.PeriodRecord, 0, min(nominal, maxPreallocatedPeriods)),
		PeriodRate:        periodRate,
		BasePayment:       basePayment,
		FinancedPrincipal: financed,
		RolledFees:        terms.RolledFees(),
		UpfrontFees:       terms.UpfrontFees(),
		PeriodsPerYear:    terms.PaymentFrequency,
		NominalPeriods:    nominal,
	}

	state := domain.StateAmortizing
	if interestOnly > 0 {
		state = domain.StateInterestOnly
	}

	balance := financed
	for period := 1; state != domain.StatePaidOff; period++ {
		if period > nominal && interestOnly >= nominal {
			sched.FinalBalloonDue = balance
			break
		}
		if period > guard {
			return sched, fmt.Errorf("%w: balance %.2f still outstanding after %d periods",
				domain.ErrScheduleDivergence, balance, guard)
		}
		if state == domain.StateInterestOnly && period > interestOnly {
			state = domain.StateAmortizing
		}

		rec := domain.PeriodRecord{
			Period:           period,
			Date:             paymentDate(terms.StartDate, terms.PaymentFrequency, period-1),
			State:            state,
			BeginningBalance: balance,
			Interest:         balance * periodRate,
			Escrow:           escrow,
		}

		if state == domain.StateInterestOnly {
			balance = interestOnlyPeriod(&rec, terms.InterestOnlyPayment)
		} else {
			balance = amortizingPeriod(&rec, basePayment, terms.ExtraPaymentFor(period))
		}

		if balance > rec.BeginningBalance {
			rec.NegativeAmortization = true
			sched.NegativeAmortization = true
		}

		if balance <= PayoffEpsilon ||
			(period == nominal && state == domain.StateAmortizing && balance <= finalTolerance) {
			// The residual is folded into the final payment.
			rec.ScheduledPrincipal += balance
			rec.Payment += balance
			balance = 0
			state = domain.StatePaidOff
			sched.PaidOff = true
		}

		if principal := rec.PrincipalPaid(); principal > 0 {
			rec.FeePortion = principal * feeShare
		}
		rec.EndingBalance = balance
		rec.TotalPayment = rec.Payment + rec.Escrow
		sched.Records = append(sched.Records, rec)
	}

	return sched, nil
}

// interestOnlyPeriod fills an interest-only row and returns the ending
// balance. A reduced payment below the accrued interest capitalizes the
// shortfall.
func interestOnlyPeriod(rec *domain.PeriodRecord, reducedPayment float64) float64 {
	payment := rec.Interest
	if reducedPayment > 0 && reducedPayment < payment {
		payment = reducedPayment
	}
	rec.Payment = payment
	return rec.BeginningBalance + rec.Interest - payment
}

// amortizingPeriod fills an amortizing row and returns the ending balance.
// Principal never exceeds the beginning balance; extra principal is trimmed
// first, then the scheduled principal, and the payment shrinks with it.
func amortizingPeriod(rec *domain.PeriodRecord, basePayment, extra float64) float64 {
	begin := rec.BeginningBalance
	scheduled := basePayment - rec.Interest

	if scheduled+extra > begin {
		if scheduled >= begin {
			scheduled, extra = begin, 0
		} else {
			extra = begin - scheduled
		}
	}

	rec.ScheduledPrincipal = scheduled
	rec.ExtraPrincipal = extra
	rec.Payment = rec.Interest + scheduled + extra
	return begin - scheduled - extra
}

// paymentDate returns the date of the payment at index i (0-based). Monthly
// frequencies step whole calendar months from the start date; the rest step
// a fixed number of days (14 for biweekly, 7 for weekly, never less than
// one).
func paymentDate(start domain.Date, frequency, i int) domain.Date {
	if 12%frequency == 0 {
		return start.AddMonths(i * 12 / frequency)
	}
	days := max(1, int(math.Round(365/float64(frequency))))
	return start.AddDays(i * days)
}
