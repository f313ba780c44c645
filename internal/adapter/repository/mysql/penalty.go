package mysql

import (
	"context"

	"gorm.io/gorm"

	penDomain "lendcore-backend/internal/domain/penalty"
)

type PenaltyRepository struct{ db *gorm.DB }

func NewPenaltyRepository(db *gorm.DB) *PenaltyRepository { return &PenaltyRepository{db: db} }

func (r *PenaltyRepository) Create(ctx context.Context, e *penDomain.Endorsement) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *PenaltyRepository) GetByEndorsementID(ctx context.Context, endorsementID string) (*penDomain.Endorsement, error) {
	var out penDomain.Endorsement
	res := r.db.WithContext(ctx).Where("endorsement_id = ?", endorsementID).First(&out)
	return &out, res.Error
}

func (r *PenaltyRepository) ListByInstallmentID(ctx context.Context, installmentID uint64) ([]*penDomain.Endorsement, error) {
	var out []*penDomain.Endorsement
	res := r.db.WithContext(ctx).
		Where("installment_id = ?", installmentID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *PenaltyRepository) Save(ctx context.Context, e *penDomain.Endorsement) error {
	return r.db.WithContext(ctx).Save(e).Error
}
