package payment

import (
	"time"
)

type Mode string

const (
	ModeCash    Mode = "cash"
	ModeGateway Mode = "gateway"
)

// Record is the append-only audit trail of money applied to an
// installment. Records are never updated or deleted; the sum of
// records for an installment equals that installment's amount_paid.
type Record struct {
	ID                  uint64    `gorm:"primaryKey;column:id" json:"-"`
	Reference           string    `gorm:"size:64;uniqueIndex:ux_payment_records_reference" json:"reference"`
	LoanID              uint64    `gorm:"column:loan_id;not null;index" json:"-"`
	InstallmentSequence int       `gorm:"column:installment_sequence;not null" json:"installment_sequence"`
	BorrowerID          string    `gorm:"size:32;index" json:"borrower_id"`
	Amount              float64   `gorm:"type:decimal(18,2)" json:"amount"`
	Mode                Mode      `gorm:"type:enum('cash','gateway')" json:"mode"`
	Actor               string    `gorm:"size:64" json:"actor"`
	PaidAt              time.Time `gorm:"column:paid_at" json:"paid_at"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Record) TableName() string { return "payment_records" }
