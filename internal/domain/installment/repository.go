package installment

import "context"

type Repository interface {
	Create(ctx context.Context, ins *Installment) error
	CreateBatch(ctx context.Context, list []*Installment) error
	GetByID(ctx context.Context, id uint64) (*Installment, error)
	GetByInstallmentID(ctx context.Context, installmentID string) (*Installment, error)
	// ListByLoanID returns every installment of the loan ordered by
	// ascending sequence. The payment waterfall and reconciliation both
	// rely on this ordering contract.
	ListByLoanID(ctx context.Context, loanID uint64) ([]*Installment, error)
	// ListOpenLoanIDs returns the distinct loan ids that still have at
	// least one unsettled installment.
	ListOpenLoanIDs(ctx context.Context) ([]uint64, error)
	Save(ctx context.Context, ins *Installment) error
}
