package installment

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusUnpaid  Status = "unpaid"
	StatusPastDue Status = "pastdue"
	StatusOverdue Status = "overdue"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
	StatusLate    Status = "late"
)

// Settled reports whether the status means the period amount is fully
// covered. Settled installments are skipped by the payment waterfall
// and by reconciliation.
func (s Status) Settled() bool { return s == StatusPaid || s == StatusLate }

type Installment struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	InstallmentID string `gorm:"size:32;uniqueIndex:ux_installments_installment_id" json:"installment_id"`
	LoanID        uint64 `gorm:"column:loan_id;not null;index;uniqueIndex:ux_installments_loan_seq,priority:1" json:"-"`
	// Sequence is 1-based and contiguous within a loan. Fixed-term
	// schedules are created whole; open-term loans grow one sequence at
	// a time after each payment.
	Sequence         int            `gorm:"column:sequence;not null;uniqueIndex:ux_installments_loan_seq,priority:2" json:"sequence"`
	DueDate          time.Time      `gorm:"column:due_date;not null" json:"due_date"`
	PeriodAmount     float64        `gorm:"type:decimal(18,2)" json:"period_amount"`
	AmountPaid       float64        `gorm:"type:decimal(18,2)" json:"amount_paid"`
	RemainingBalance float64        `gorm:"type:decimal(18,2)" json:"remaining_balance"`
	Status           Status         `gorm:"type:enum('unpaid','pastdue','overdue','partial','paid','late');default:'unpaid'" json:"status"`
	Collector        string         `gorm:"size:64" json:"collector"`
	Note             string         `gorm:"type:text" json:"note"`
	SettledAt        *time.Time     `gorm:"column:settled_at" json:"settled_at,omitempty"`
	StatusUpdatedAt  time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Installment) TableName() string { return "installments" }
