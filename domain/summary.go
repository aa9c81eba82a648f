package domain

import "time"

// YearlySummary rolls up a schedule by calendar year of the payment date.
type YearlySummary struct {
	Year           int     `json:"year"`
	Payment        float64 `json:"payment"`
	Interest       float64 `json:"interest"`
	Principal      float64 `json:"principal"`
	ExtraPrincipal float64 `json:"extra_principal"`
	Escrow         float64 `json:"escrow"`
	TotalOutflow   float64 `json:"total_outflow"`
}

// SummaryMetrics is the reduction of a Schedule.
type SummaryMetrics struct {
	TotalInterest       float64 `json:"total_interest"`
	TotalPrincipal      float64 `json:"total_principal"`
	TotalExtraPrincipal float64 `json:"total_extra_principal"`
	TotalEscrow         float64 `json:"total_escrow"`
	TotalPaid           float64 `json:"total_paid"` // every period's total payment
	TotalFees           float64 `json:"total_fees"`
	RolledFees          float64 `json:"rolled_fees"`
	UpfrontFees         float64 `json:"upfront_fees"`
	TotalCost           float64 `json:"total_cost"` // total paid + upfront fees + balloon

	PayoffPeriods        int     `json:"payoff_periods"`
	PaidOff              bool    `json:"paid_off"`
	NegativeAmortization bool    `json:"negative_amortization"`
	FinalBalloonDue      float64 `json:"final_balloon_due"`

	Yearly                    []YearlySummary `json:"yearly"`
	InflationAdjustedPayments []float64       `json:"inflation_adjusted_payments,omitempty"`
}

// Calculation is a computed schedule as served and recorded by the service.
type Calculation struct {
	ID        string         `json:"id"`
	Terms     LoanTerms      `json:"terms"`
	Schedule  *Schedule      `json:"schedule"`
	Summary   SummaryMetrics `json:"summary"`
	CreatedAt time.Time      `json:"created_at"`
}

// CalculationRequest is what callers send to compute a schedule.
type CalculationRequest struct {
	Terms         LoanTerms `json:"terms"`
	InflationRate float64   `json:"inflation_rate"` // display only
}

// ScenarioResult condenses one side of a comparison.
type ScenarioResult struct {
	Name          string  `json:"name"`
	TotalInterest float64 `json:"total_interest"`
	TotalPaid     float64 `json:"total_paid"`
	PayoffPeriods int     `json:"payoff_periods"`
}

// ExtraPaymentComparison shows the impact of extra principal payments.
type ExtraPaymentComparison struct {
	WithExtra     ScenarioResult `json:"with_extra"`
	WithoutExtra  ScenarioResult `json:"without_extra"`
	InterestSaved float64        `json:"interest_saved"`
	PeriodsSaved  int            `json:"periods_saved"`
}
