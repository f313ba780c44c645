package loan

import (
	"time"

	"gorm.io/gorm"
)

type Type string

const (
	TypeFixed Type = "fixed"
	TypeOpen  Type = "open"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusClosed    Status = "closed"
)

// DefaultCreditScore is the midpoint of the [0,10] band a borrower's
// loan starts at; penalty outcomes move it from there.
const DefaultCreditScore = 5.0

type Loan struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	ApplicationID   string         `gorm:"size:32;uniqueIndex:ux_loans_application_active" json:"application_id"`
	BorrowerID      string         `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id"`
	Principal       float64        `gorm:"type:decimal(18,2)" json:"principal"`
	Rate            float64        `gorm:"type:decimal(6,2)" json:"rate"`
	TermCount       int            `gorm:"column:term_count" json:"term_count"`
	Type            Type           `gorm:"type:enum('fixed','open');default:'fixed'" json:"loan_type"`
	Status          Status         `gorm:"type:enum('active','completed','closed');default:'active'" json:"status"`
	TotalPayable    float64        `gorm:"type:decimal(18,2)" json:"total_payable"`
	PaidAmount      float64        `gorm:"type:decimal(18,2)" json:"paid_amount"`
	Balance         float64        `gorm:"type:decimal(18,2)" json:"balance"`
	CreditScore     float64        `gorm:"type:decimal(4,2);default:5" json:"credit_score"`
	DisbursedAt     time.Time      `gorm:"column:disbursed_at" json:"disbursed_at"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
