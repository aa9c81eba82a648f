package service

import (
	"math"

	"loan-amortizer/domain"
)

// Summarize reduces a schedule to its totals and yearly rollups.
func Summarize(s *domain.Schedule) domain.SummaryMetrics {
	var interest, principal, extra, escrow, paid accumulator
	for _, rec := range s.Records {
		interest.Add(rec.Interest)
		principal.Add(rec.PrincipalPaid())
		extra.Add(rec.ExtraPrincipal)
		escrow.Add(rec.Escrow)
		paid.Add(rec.TotalPayment)
	}

	var cost accumulator
	cost.Add(paid.Float64())
	cost.Add(s.UpfrontFees)
	cost.Add(s.FinalBalloonDue)

	return domain.SummaryMetrics{
		TotalInterest:        interest.Float64(),
		TotalPrincipal:       principal.Float64(),
		TotalExtraPrincipal:  extra.Float64(),
		TotalEscrow:          escrow.Float64(),
		TotalPaid:            paid.Float64(),
		TotalFees:            s.RolledFees + s.UpfrontFees,
		RolledFees:           s.RolledFees,
		UpfrontFees:          s.UpfrontFees,
		TotalCost:            cost.Float64(),
		PayoffPeriods:        s.Len(),
		PaidOff:              s.PaidOff,
		NegativeAmortization: s.NegativeAmortization,
		FinalBalloonDue:      s.FinalBalloonDue,
		Yearly:               yearlyRollup(s.Records),
	}
}

type yearTotals struct {
	payment, interest, principal, extra, escrow, outflow accumulator
}

func yearlyRollup(records []domain.PeriodRecord) []domain.YearlySummary {
	var (
		years  []int
		totals = make(map[int]*yearTotals)
	)
	for _, rec := range records {
		y := rec.Date.Year()
		t, ok := totals[y]
		if !ok {
			t = &yearTotals{}
			totals[y] = t
			years = append(years, y)
		}
		t.payment.Add(rec.Payment)
		t.interest.Add(rec.Interest)
		t.principal.Add(rec.PrincipalPaid())
		t.extra.Add(rec.ExtraPrincipal)
		t.escrow.Add(rec.Escrow)
		t.outflow.Add(rec.TotalPayment)
	}

	out := make([]domain.YearlySummary, 0, len(years))
	for _, y := range years {
		t := totals[y]
		out = append(out, domain.YearlySummary{
			Year:           y,
			Payment:        t.payment.Float64(),
			Interest:       t.interest.Float64(),
			Principal:      t.principal.Float64(),
			ExtraPrincipal: t.extra.Float64(),
			Escrow:         t.escrow.Float64(),
			TotalOutflow:   t.outflow.Float64(),
		})
	}
	return out
}

// InflationAdjustedPayments deflates each period's payment to the value of
// the first period: payment / (1+rate)^(t/periodsPerYear) with t counted from
// zero. It is display data and is never fed back into the schedule. A zero
// rate returns nil.
func InflationAdjustedPayments(s *domain.Schedule, inflationRate float64) []float64 {
	if inflationRate == 0 || s.PeriodsPerYear <= 0 {
		return nil
	}
	p := float64(s.PeriodsPerYear)
	out := make([]float64, len(s.Records))
	for i, rec := range s.Records {
		out[i] = rec.Payment / math.Pow(1+inflationRate, float64(i)/p)
	}
	return out
}
