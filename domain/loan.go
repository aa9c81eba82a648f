package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MaxPeriods bounds the nominal term so that period arithmetic, including
// the schedule runaway guard, cannot overflow int.
const MaxPeriods = 1 << 24

// FeePolicy decides whether one-time fees are financed or paid at closing.
type FeePolicy string

const (
	FeeRolledIn FeePolicy = "ROLLED_IN"
	FeeUpfront  FeePolicy = "UPFRONT"
)

// LoanTerms is the immutable input of a schedule computation. All fields are
// comparable, so a LoanTerms value can be used directly as a map key.
type LoanTerms struct {
	Principal            float64   `json:"principal"`
	Deposit              float64   `json:"deposit"`
	AnnualRate           float64   `json:"annual_rate"` // nominal, as a fraction (0.06 = 6%)
	CompoundingFrequency int       `json:"compounding_frequency"`
	PaymentFrequency     int       `json:"payment_frequency"`
	TermYears            int       `json:"term_years"`
	TermPeriods          int       `json:"term_periods"` // takes precedence over TermYears when set
	Fee                  float64   `json:"fee"`
	FeePolicy            FeePolicy `json:"fee_policy"` // empty means ROLLED_IN
	InterestOnlyPeriods  int       `json:"interest_only_periods"`

	// ExtraPayment is applied to principal in every amortizing period within
	// [ExtraPaymentStart, ExtraPaymentEnd]. Zero bounds are open.
	ExtraPayment      float64 `json:"extra_payment"`
	ExtraPaymentStart int     `json:"extra_payment_start"`
	ExtraPaymentEnd   int     `json:"extra_payment_end"`

	EscrowMonthly float64 `json:"escrow_monthly"`
	StartDate     Date    `json:"start_date"`

	// PaymentOverride replaces the computed level payment when positive.
	PaymentOverride float64 `json:"payment_override"`
	// InterestOnlyPayment replaces the accrued interest as the payment of
	// interest-only periods when positive.
	InterestOnlyPayment float64 `json:"interest_only_payment"`
}

// TotalPeriods is the nominal number of payment periods.
func (t LoanTerms) TotalPeriods() int {
	if t.TermPeriods > 0 {
		return t.TermPeriods
	}
	return t.TermYears * t.PaymentFrequency
}

// Policy returns the effective fee policy.
func (t LoanTerms) Policy() FeePolicy {
	if t.FeePolicy == "" {
		return FeeRolledIn
	}
	return t.FeePolicy
}

// RolledFees is the part of the fee added to the financed principal.
func (t LoanTerms) RolledFees() float64 {
	if t.Policy() == FeeRolledIn {
		return t.Fee
	}
	return 0
}

// UpfrontFees is the part of the fee paid once at closing.
func (t LoanTerms) UpfrontFees() float64 {
	if t.Policy() == FeeUpfront {
		return t.Fee
	}
	return 0
}

// FinancedPrincipal is the principal net of deposit plus any rolled-in fee.
func (t LoanTerms) FinancedPrincipal() float64 {
	return t.Principal - t.Deposit + t.RolledFees()
}

// EscrowPerPeriod converts the monthly escrow amount to the payment frequency.
func (t LoanTerms) EscrowPerPeriod() float64 {
	if t.EscrowMonthly == 0 || t.PaymentFrequency <= 0 {
		return 0
	}
	return t.EscrowMonthly * 12 / float64(t.PaymentFrequency)
}

// ExtraPaymentFor returns the extra principal scheduled for the given period.
func (t LoanTerms) ExtraPaymentFor(period int) float64 {
	if t.ExtraPayment == 0 {
		return 0
	}
	if t.ExtraPaymentStart > 0 && period < t.ExtraPaymentStart {
		return 0
	}
	if t.ExtraPaymentEnd > 0 && period > t.ExtraPaymentEnd {
		return 0
	}
	return t.ExtraPayment
}

// WithoutExtraPayments returns a copy of the terms with no extra principal.
func (t LoanTerms) WithoutExtraPayments() LoanTerms {
	t.ExtraPayment = 0
	t.ExtraPaymentStart = 0
	t.ExtraPaymentEnd = 0
	return t
}

// Validate checks every field once. Rate and frequency problems wrap
// ErrInvalidRate; everything else wraps ErrInvalidTerm.
func (t LoanTerms) Validate() error {
	if math.IsNaN(t.AnnualRate) || t.AnnualRate < 0 {
		return fmt.Errorf("%w: annual rate must be >= 0, got %v", ErrInvalidRate, t.AnnualRate)
	}
	if t.CompoundingFrequency <= 0 {
		return fmt.Errorf("%w: compounding frequency must be positive, got %d", ErrInvalidRate, t.CompoundingFrequency)
	}
	if t.PaymentFrequency <= 0 {
		return fmt.Errorf("%w: payment frequency must be positive, got %d", ErrInvalidRate, t.PaymentFrequency)
	}

	if math.IsNaN(t.Principal) || t.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive", ErrInvalidTerm)
	}
	if t.Deposit < 0 || t.Deposit >= t.Principal {
		return fmt.Errorf("%w: deposit must be >= 0 and below the principal", ErrInvalidTerm)
	}
	if t.TermYears < 0 || t.TermPeriods < 0 {
		return fmt.Errorf("%w: term must be positive", ErrInvalidTerm)
	}
	if t.TermPeriods > MaxPeriods || (t.TermPeriods == 0 && t.TermYears > MaxPeriods/t.PaymentFrequency) {
		return fmt.Errorf("%w: term exceeds %d periods", ErrInvalidTerm, MaxPeriods)
	}
	if t.TotalPeriods() <= 0 {
		return fmt.Errorf("%w: term must be positive", ErrInvalidTerm)
	}
	if t.Fee < 0 {
		return fmt.Errorf("%w: fee must be >= 0", ErrInvalidTerm)
	}
	switch t.Policy() {
	case FeeRolledIn, FeeUpfront:
	default:
		return fmt.Errorf("%w: unknown fee policy %q", ErrInvalidTerm, t.FeePolicy)
	}
	if t.InterestOnlyPeriods < 0 || t.InterestOnlyPeriods > t.TotalPeriods() {
		return fmt.Errorf("%w: interest-only periods must be between 0 and %d", ErrInvalidTerm, t.TotalPeriods())
	}
	if t.ExtraPayment < 0 || t.EscrowMonthly < 0 || t.PaymentOverride < 0 || t.InterestOnlyPayment < 0 {
		return fmt.Errorf("%w: extra payment, escrow and payment overrides must be >= 0", ErrInvalidTerm)
	}
	if t.ExtraPaymentStart < 0 || t.ExtraPaymentEnd < 0 ||
		(t.ExtraPaymentEnd > 0 && t.ExtraPaymentEnd < t.ExtraPaymentStart) {
		return fmt.Errorf("%w: invalid extra payment window [%d, %d]", ErrInvalidTerm, t.ExtraPaymentStart, t.ExtraPaymentEnd)
	}
	if t.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidTerm)
	}
	return nil
}

// CacheKey is a stable key derived from every field of the terms.
func (t LoanTerms) CacheKey() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%g|%g|%g|%d|%d|%d|%d|%g|%s|%d|%g|%d|%d|%g|%s|%g|%g",
		t.Principal, t.Deposit, t.AnnualRate,
		t.CompoundingFrequency, t.PaymentFrequency, t.TermYears, t.TermPeriods,
		t.Fee, t.Policy(), t.InterestOnlyPeriods,
		t.ExtraPayment, t.ExtraPaymentStart, t.ExtraPaymentEnd,
		t.EscrowMonthly, t.StartDate.String(),
		t.PaymentOverride, t.InterestOnlyPayment,
	)
	return fmt.Sprintf("loan:%016x", xxhash.Sum64String(b.String()))
}

// InterestOnlyPeriodsFromMonths converts an interest-only window given in
// months to payment periods at the given frequency.
func InterestOnlyPeriodsFromMonths(months, paymentFrequency int) int {
	return int(math.Round(float64(months*paymentFrequency) / 12))
}
