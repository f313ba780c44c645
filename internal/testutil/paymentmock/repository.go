package paymentmock

import (
	"context"

	domain "lendcore-backend/internal/domain/payment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, r *domain.Record) error
	ListByLoanIDFn     func(ctx context.Context, loanID uint64) ([]*domain.Record, error)
	SumByInstallmentFn func(ctx context.Context, loanID uint64, sequence int) (float64, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]*domain.Record, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) SumByInstallment(ctx context.Context, loanID uint64, sequence int) (float64, error) {
	if m.SumByInstallmentFn != nil {
		return m.SumByInstallmentFn(ctx, loanID, sequence)
	}
	return 0, nil
}
