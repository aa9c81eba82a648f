package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"loan-amortizer/domain"
	"loan-amortizer/repository"
)

// Limits are the outer bounds accepted by the service, on top of the field
// validation done by LoanTerms.
type Limits struct {
	MaxLoanAmount   float64
	MaxInterestRate float64
	MaxTermPeriods  int
}

// DefaultLimits returns the package defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxLoanAmount:   MaxLoanAmount,
		MaxInterestRate: MaxInterestRate,
		MaxTermPeriods:  MaxTermPeriods,
	}
}

// Amortize runs the whole engine for one set of terms: rate conversion,
// level payment, schedule generation and summary. It has no side effects.
func Amortize(terms domain.LoanTerms) (*domain.Schedule, domain.SummaryMetrics, error) {
	if err := terms.Validate(); err != nil {
		return nil, domain.SummaryMetrics{}, err
	}

	rate, err := EffectivePeriodRate(terms.AnnualRate, terms.CompoundingFrequency, terms.PaymentFrequency)
	if err != nil {
		return nil, domain.SummaryMetrics{}, fmt.Errorf("convert rate: %w", err)
	}

	plan, err := LevelPayment(terms.FinancedPrincipal(), rate, terms.TotalPeriods()-terms.InterestOnlyPeriods)
	if err != nil {
		return nil, domain.SummaryMetrics{}, fmt.Errorf("compute payment: %w", err)
	}

	base := plan.Payment
	if terms.PaymentOverride > 0 {
		base = terms.PaymentOverride
	}

	sched, err := GenerateSchedule(terms, rate, base)
	if err != nil {
		return nil, domain.SummaryMetrics{}, fmt.Errorf("generate schedule: %w", err)
	}
	return sched, Summarize(sched), nil
}

type cachedResult struct {
	Schedule *domain.Schedule      `json:"schedule"`
	Summary  domain.SummaryMetrics `json:"summary"`
}

type LoanService struct {
	repo   repository.LoanRepository
	cache  repository.CacheRepository
	limits Limits
	group  singleflight.Group
	now    func() time.Time
}

// NewLoanService creates a new LoanService with the given repository and
// cache.
func NewLoanService(
	repo repository.LoanRepository,
	cache repository.CacheRepository,
	limits Limits,
) *LoanService {
	return &LoanService{
		repo:   repo,
		cache:  cache,
		limits: limits,
		now:    time.Now,
	}
}

// Calculate computes the schedule and summary for the request, adds the
// inflation-adjusted series when asked and records the calculation.
func (s *LoanService) Calculate(
	ctx context.Context,
	req domain.CalculationRequest,
) (domain.Calculation, error) {
	if math.IsNaN(req.InflationRate) || req.InflationRate < 0 {
		return domain.Calculation{}, fmt.Errorf("%w: inflation rate must be >= 0", domain.ErrInvalidRate)
	}

	sched, summary, err := s.Schedule(ctx, req.Terms)
	if err != nil {
		return domain.Calculation{}, err
	}
	summary.InflationAdjustedPayments = InflationAdjustedPayments(sched, req.InflationRate)

	calc := domain.Calculation{
		ID:        uuid.NewString(),
		Terms:     req.Terms,
		Schedule:  sched,
		Summary:   summary,
		CreatedAt: s.now().UTC(),
	}

	// Recording is best effort.
	if err := s.repo.Save(ctx, calc); err != nil {
		slog.WarnContext(ctx, "Failed to save loan calculation", "id", calc.ID, "error", err)
	}

	return calc, nil
}

// Schedule returns the memoized schedule and summary for the terms. The
// returned schedule may be shared with other callers and must not be
// modified.
func (s *LoanService) Schedule(
	ctx context.Context,
	terms domain.LoanTerms,
) (*domain.Schedule, domain.SummaryMetrics, error) {
	if err := s.checkLimits(terms); err != nil {
		return nil, domain.SummaryMetrics{}, err
	}

	key := terms.CacheKey()
	if res, ok := s.fromCache(ctx, key); ok {
		return res.Schedule, res.Summary, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		sched, summary, err := Amortize(terms)
		if err != nil {
			return nil, err
		}
		res := cachedResult{Schedule: sched, Summary: summary}
		s.toCache(ctx, key, res)
		return res, nil
	})
	if err != nil {
		return nil, domain.SummaryMetrics{}, err
	}
	if shared {
		slog.DebugContext(ctx, "Shared in-flight schedule computation", "key", key)
	}

	res := v.(cachedResult)
	return res.Schedule, res.Summary, nil
}

// Get returns a previously recorded calculation.
func (s *LoanService) Get(ctx context.Context, id string) (domain.Calculation, error) {
	calc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("could not get calculation: %w", err)
	}
	return calc, nil
}

func (s *LoanService) checkLimits(terms domain.LoanTerms) error {
	if terms.Principal > s.limits.MaxLoanAmount {
		return fmt.Errorf("%w: principal exceeds the maximum of %.2f", domain.ErrInvalidTerm, s.limits.MaxLoanAmount)
	}
	if terms.AnnualRate > s.limits.MaxInterestRate {
		return fmt.Errorf("%w: annual rate exceeds the maximum of %.4f", domain.ErrInvalidRate, s.limits.MaxInterestRate)
	}
	if terms.TotalPeriods() > s.limits.MaxTermPeriods {
		return fmt.Errorf("%w: term exceeds the maximum of %d periods", domain.ErrInvalidTerm, s.limits.MaxTermPeriods)
	}
	return nil
}

func (s *LoanService) fromCache(ctx context.Context, key string) (cachedResult, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return cachedResult{}, false
	}
	var res cachedResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil || res.Schedule == nil {
		slog.WarnContext(ctx, "Discarding unreadable cache entry", "key", key, "error", err)
		return cachedResult{}, false
	}
	return res, true
}

func (s *LoanService) toCache(ctx context.Context, key string, res cachedResult) {
	raw, err := json.Marshal(res)
	if err != nil {
		slog.WarnContext(ctx, "Failed to encode schedule for cache", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		slog.WarnContext(ctx, "Failed to cache schedule", "key", key, "error", err)
	}
}
