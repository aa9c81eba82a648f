package repository

import (
	"context"
	"fmt"
	"sync"

	"loan-amortizer/domain"
)

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
// It keeps at most capacity calculations and drops the oldest first.
type LoanRepositoryMemory struct {
	mu       sync.RWMutex
	capacity int
	order    []string
	data     map[string]domain.Calculation
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory(capacity int) *LoanRepositoryMemory {
	if capacity <= 0 {
		capacity = 1000
	}
	return &LoanRepositoryMemory{
		capacity: capacity,
		data:     make(map[string]domain.Calculation),
	}
}

// Save stores the calculation in memory.
func (r *LoanRepositoryMemory) Save(ctx context.Context, calc domain.Calculation) error {
	if calc.ID == "" {
		return fmt.Errorf("calculation id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[calc.ID]; !exists {
		r.order = append(r.order, calc.ID)
	}
	r.data[calc.ID] = calc

	for len(r.order) > r.capacity {
		delete(r.data, r.order[0])
		r.order = r.order[1:]
	}
	return nil
}

// Get returns a stored calculation by id.
func (r *LoanRepositoryMemory) Get(ctx context.Context, id string) (domain.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calc, ok := r.data[id]
	if !ok {
		return domain.Calculation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return calc, nil
}

// Len returns the number of stored calculations.
func (r *LoanRepositoryMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
