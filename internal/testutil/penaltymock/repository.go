package penaltymock

import (
	"context"

	domain "lendcore-backend/internal/domain/penalty"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, e *domain.Endorsement) error
	GetByEndorsementIDFn  func(ctx context.Context, endorsementID string) (*domain.Endorsement, error)
	ListByInstallmentIDFn func(ctx context.Context, installmentID uint64) ([]*domain.Endorsement, error)
	SaveFn                func(ctx context.Context, e *domain.Endorsement) error
}

func (m *Repo) Create(ctx context.Context, e *domain.Endorsement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByEndorsementID(ctx context.Context, endorsementID string) (*domain.Endorsement, error) {
	if m.GetByEndorsementIDFn != nil {
		return m.GetByEndorsementIDFn(ctx, endorsementID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByInstallmentID(ctx context.Context, installmentID uint64) ([]*domain.Endorsement, error) {
	if m.ListByInstallmentIDFn != nil {
		return m.ListByInstallmentIDFn(ctx, installmentID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, e *domain.Endorsement) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}
