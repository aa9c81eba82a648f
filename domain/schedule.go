package domain

// PeriodState is the state of the schedule state machine for one period.
type PeriodState string

const (
	StateInterestOnly PeriodState = "INTEREST_ONLY"
	StateAmortizing   PeriodState = "AMORTIZING"
	StatePaidOff      PeriodState = "PAID_OFF"
)

// PeriodRecord is one row of the amortization table.
type PeriodRecord struct {
	Period             int         `json:"period"`
	Date               Date        `json:"date"`
	State              PeriodState `json:"state"`
	BeginningBalance   float64     `json:"beginning_balance"`
	Interest           float64     `json:"interest"`
	ScheduledPrincipal float64     `json:"scheduled_principal"`
	ExtraPrincipal     float64     `json:"extra_principal"`
	Escrow             float64     `json:"escrow"`
	FeePortion         float64     `json:"fee_portion"`   // rolled-in fee share of the principal repaid
	Payment            float64     `json:"payment"`       // interest + principal
	TotalPayment       float64     `json:"total_payment"` // payment + escrow
	EndingBalance      float64     `json:"ending_balance"`

	NegativeAmortization bool `json:"negative_amortization,omitempty"`
}

// PrincipalPaid is the scheduled plus extra principal of the period.
func (r PeriodRecord) PrincipalPaid() float64 {
	return r.ScheduledPrincipal + r.ExtraPrincipal
}

// Schedule is the ordered output of one generation call. It is never mutated
// after it is returned.
type Schedule struct {
	Records []PeriodRecord `json:"records"`

	PeriodRate        float64 `json:"period_rate"`
	BasePayment       float64 `json:"base_payment"`
	FinancedPrincipal float64 `json:"financed_principal"`
	RolledFees        float64 `json:"rolled_fees"`
	UpfrontFees       float64 `json:"upfront_fees"`
	PeriodsPerYear    int     `json:"periods_per_year"`
	NominalPeriods    int     `json:"nominal_periods"`

	PaidOff              bool    `json:"paid_off"`
	NegativeAmortization bool    `json:"negative_amortization"`
	FinalBalloonDue      float64 `json:"final_balloon_due"`
}

// Len returns the number of generated periods.
func (s *Schedule) Len() int {
	return len(s.Records)
}
