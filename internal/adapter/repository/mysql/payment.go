package mysql

import (
	"context"

	"gorm.io/gorm"

	payDomain "lendcore-backend/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, rec *payDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *PaymentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]*payDomain.Record, error) {
	var out []*payDomain.Record
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("paid_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) SumByInstallment(ctx context.Context, loanID uint64, sequence int) (float64, error) {
	var sum float64
	res := r.db.WithContext(ctx).
		Model(&payDomain.Record{}).
		Where("loan_id = ? AND installment_sequence = ?", loanID, sequence).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	return sum, res.Error
}
