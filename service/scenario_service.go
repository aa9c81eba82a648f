package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"loan-amortizer/domain"
)

type ScenarioService struct {
	loanService *LoanService
}

func NewScenarioService(loanService *LoanService) *ScenarioService {
	return &ScenarioService{loanService: loanService}
}

// CompareExtraPayments computes the loan with and without its extra
// principal payments and reports what the extra payments save.
func (s *ScenarioService) CompareExtraPayments(
	ctx context.Context,
	terms domain.LoanTerms,
) (domain.ExtraPaymentComparison, error) {
	var with, without domain.SummaryMetrics

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, summary, err := s.loanService.Schedule(gctx, terms)
		if err != nil {
			return fmt.Errorf("with extra payments: %w", err)
		}
		with = summary
		return nil
	})
	g.Go(func() error {
		_, summary, err := s.loanService.Schedule(gctx, terms.WithoutExtraPayments())
		if err != nil {
			return fmt.Errorf("without extra payments: %w", err)
		}
		without = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ExtraPaymentComparison{}, err
	}

	return domain.ExtraPaymentComparison{
		WithExtra:     scenarioResult("with_extra_payments", with),
		WithoutExtra:  scenarioResult("without_extra_payments", without),
		InterestSaved: roundTo2Decimals(without.TotalInterest - with.TotalInterest),
		PeriodsSaved:  without.PayoffPeriods - with.PayoffPeriods,
	}, nil
}

func scenarioResult(name string, summary domain.SummaryMetrics) domain.ScenarioResult {
	return domain.ScenarioResult{
		Name:          name,
		TotalInterest: roundTo2Decimals(summary.TotalInterest),
		TotalPaid:     roundTo2Decimals(summary.TotalPaid),
		PayoffPeriods: summary.PayoffPeriods,
	}
}
