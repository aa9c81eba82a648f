package repository

import (
	"context"
	"errors"

	"loan-amortizer/domain"
)

// ErrNotFound is returned when a calculation id is unknown.
var ErrNotFound = errors.New("calculation not found")

// LoanRepository keeps the history of served calculations.
//
//go:generate mockgen -destination=mocks/mock_loan_repository.go -package=mock_repository -source=loan_repository.go LoanRepository
type LoanRepository interface {
	Save(ctx context.Context, calc domain.Calculation) error
	Get(ctx context.Context, id string) (domain.Calculation, error)
}
