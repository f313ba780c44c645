package uow

import (
	"context"

	"lendcore-backend/internal/domain/installment"
	"lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/payment"
	"lendcore-backend/internal/domain/penalty"
)

type Repos struct {
	Loans        loan.Repository
	Installments installment.Repository
	Payments     payment.Repository
	Penalties    penalty.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in. All
	// ledger mutations (allocation, open-term recalculation, penalty
	// approval, reconciliation) go through this so that writes to a
	// loan's installments are serialized per loan.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
