package penalty

import "context"

type Repository interface {
	Create(ctx context.Context, e *Endorsement) error
	GetByEndorsementID(ctx context.Context, endorsementID string) (*Endorsement, error)
	ListByInstallmentID(ctx context.Context, installmentID uint64) ([]*Endorsement, error)
	Save(ctx context.Context, e *Endorsement) error
}
