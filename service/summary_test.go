package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Totals(t *testing.T) {
	terms := baseTerms()
	terms.ExtraPayment = 100
	terms.EscrowMonthly = 250
	sched, _ := amortize(t, terms)

	summary := Summarize(sched)

	var interest, principal, extra, escrow, paid float64
	for _, rec := range sched.Records {
		interest += rec.Interest
		principal += rec.PrincipalPaid()
		extra += rec.ExtraPrincipal
		escrow += rec.Escrow
		paid += rec.TotalPayment
	}

	assert.InDelta(t, interest, summary.TotalInterest, 1e-6)
	assert.InDelta(t, 200000, summary.TotalPrincipal, PayoffEpsilon)
	assert.InDelta(t, principal, summary.TotalPrincipal, 1e-6)
	assert.InDelta(t, extra, summary.TotalExtraPrincipal, 1e-6)
	assert.InDelta(t, escrow, summary.TotalEscrow, 1e-6)
	assert.InDelta(t, paid, summary.TotalPaid, 1e-6)
	assert.InDelta(t, summary.TotalInterest+summary.TotalPrincipal+summary.TotalEscrow, summary.TotalPaid, 1e-6)
	assert.Equal(t, sched.Len(), summary.PayoffPeriods)
	assert.True(t, summary.PaidOff)
}

func TestSummarize_YearlyRollup(t *testing.T) {
	sched, summary := amortize(t, baseTerms())

	require.Len(t, summary.Yearly, 30)
	assert.Equal(t, 2025, summary.Yearly[0].Year)
	assert.Equal(t, 2054, summary.Yearly[29].Year)

	var interest, principal float64
	for _, y := range summary.Yearly {
		interest += y.Interest
		principal += y.Principal
		assert.InDelta(t, y.Payment+y.Escrow, y.TotalOutflow, 1e-6)
	}
	assert.InDelta(t, summary.TotalInterest, interest, 1e-6)
	assert.InDelta(t, summary.TotalPrincipal, principal, 1e-6)

	var firstYear float64
	for _, rec := range sched.Records[:12] {
		firstYear += rec.Interest
	}
	assert.InDelta(t, firstYear, summary.Yearly[0].Interest, 1e-6)
}

func TestInflationAdjustedPayments(t *testing.T) {
	sched, _ := amortize(t, baseTerms())

	assert.Nil(t, InflationAdjustedPayments(sched, 0))

	adjusted := InflationAdjustedPayments(sched, 0.03)
	require.Len(t, adjusted, sched.Len())
	assert.InDelta(t, sched.Records[0].Payment, adjusted[0], 1e-9)
	assert.InDelta(t, sched.Records[12].Payment/1.03, adjusted[12], 1e-9)
	assert.InDelta(t, sched.Records[359].Payment/math.Pow(1.03, 359.0/12), adjusted[359], 1e-9)
}

func TestSummarize_Balloon(t *testing.T) {
	terms := baseTerms()
	terms.InterestOnlyPeriods = 360
	terms.Fee = 1500
	sched, _ := amortize(t, terms)

	summary := Summarize(sched)
	assert.False(t, summary.PaidOff)
	assert.InDelta(t, 200000, summary.FinalBalloonDue, 1e-9)
	assert.InDelta(t, summary.TotalPaid+1500+200000, summary.TotalCost, 1e-6)
	assert.Equal(t, 1500.0, summary.TotalFees)
	assert.Equal(t, 0.0, summary.TotalPrincipal)
}

func TestRoundTo2Decimals(t *testing.T) {
	assert.Equal(t, 1199.1, roundTo2Decimals(1199.1010503))
	assert.Equal(t, 0.13, roundTo2Decimals(0.125))
	assert.Equal(t, -0.13, roundTo2Decimals(-0.125))
}
