package mysql

import (
	"context"

	"gorm.io/gorm"

	insDomain "lendcore-backend/internal/domain/installment"
)

type InstallmentRepository struct{ db *gorm.DB }

func NewInstallmentRepository(db *gorm.DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) Create(ctx context.Context, ins *insDomain.Installment) error {
	return r.db.WithContext(ctx).Create(ins).Error
}

func (r *InstallmentRepository) CreateBatch(ctx context.Context, list []*insDomain.Installment) error {
	if len(list) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *InstallmentRepository) GetByID(ctx context.Context, id uint64) (*insDomain.Installment, error) {
	var out insDomain.Installment
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *InstallmentRepository) GetByInstallmentID(ctx context.Context, installmentID string) (*insDomain.Installment, error) {
	var out insDomain.Installment
	res := r.db.WithContext(ctx).Where("installment_id = ?", installmentID).First(&out)
	return &out, res.Error
}

// ListByLoanID orders by sequence: the waterfall and the reconciler
// both depend on this, not on incidental storage order.
func (r *InstallmentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]*insDomain.Installment, error) {
	var out []*insDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("sequence ASC").
		Find(&out)
	return out, res.Error
}

func (r *InstallmentRepository) ListOpenLoanIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	res := r.db.WithContext(ctx).
		Model(&insDomain.Installment{}).
		Where("status IN ?", []insDomain.Status{
			insDomain.StatusUnpaid,
			insDomain.StatusPartial,
			insDomain.StatusPastDue,
			insDomain.StatusOverdue,
		}).
		Distinct().
		Pluck("loan_id", &ids)
	return ids, res.Error
}

func (r *InstallmentRepository) Save(ctx context.Context, ins *insDomain.Installment) error {
	return r.db.WithContext(ctx).Save(ins).Error
}
