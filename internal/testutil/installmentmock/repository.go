package installmentmock

import (
	"context"

	domain "lendcore-backend/internal/domain/installment"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, ins *domain.Installment) error
	CreateBatchFn        func(ctx context.Context, list []*domain.Installment) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Installment, error)
	GetByInstallmentIDFn func(ctx context.Context, installmentID string) (*domain.Installment, error)
	ListByLoanIDFn       func(ctx context.Context, loanID uint64) ([]*domain.Installment, error)
	ListOpenLoanIDsFn    func(ctx context.Context) ([]uint64, error)
	SaveFn               func(ctx context.Context, ins *domain.Installment) error
}

func (m *Repo) Create(ctx context.Context, ins *domain.Installment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ins)
	}
	return nil
}

func (m *Repo) CreateBatch(ctx context.Context, list []*domain.Installment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, list)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Installment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByInstallmentID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	if m.GetByInstallmentIDFn != nil {
		return m.GetByInstallmentIDFn(ctx, installmentID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]*domain.Installment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) ListOpenLoanIDs(ctx context.Context) ([]uint64, error) {
	if m.ListOpenLoanIDsFn != nil {
		return m.ListOpenLoanIDsFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, ins *domain.Installment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, ins)
	}
	return nil
}
