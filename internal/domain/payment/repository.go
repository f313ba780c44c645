package payment

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]*Record, error)
	SumByInstallment(ctx context.Context, loanID uint64, sequence int) (float64, error)
}
