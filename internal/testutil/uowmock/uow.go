package uowmock

import (
	"context"

	"lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/uow"
)

// Uow runs the callback directly against the supplied repos, with no
// real transaction. WithinLoanTx resolves the loan through
// Repos.Loans.GetByLoanIDForUpdate, so tests control the locked loan
// the same way the gorm implementation does.
type Uow struct {
	Repos uow.Repos
}

func (u *Uow) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return fn(u.Repos)
}

func (u *Uow) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	l, err := u.Repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(u.Repos, l)
}
