package service

const (
	MaxLoanAmount   = 1_000_000_000.0 // 1 billion
	MaxInterestRate = 10.0            // 1000% nominal per year, as a fraction
	MaxTermPeriods  = 52 * 100        // 100 years of weekly payments

	// PayoffEpsilon absorbs floating rounding: a balance below half a cent
	// counts as paid off.
	PayoffEpsilon = 0.005

	// RunawayGuardFactor bounds generation at this multiple of the nominal
	// period count.
	RunawayGuardFactor = 10

	// FinalPeriodTolerance is the share of one base payment that the last
	// nominal period absorbs. Long high-rate annuities leave a floating
	// remainder well above PayoffEpsilon there.
	FinalPeriodTolerance = 0.01

	// maxPreallocatedPeriods caps the record slice allocated up front.
	maxPreallocatedPeriods = 4096
)
