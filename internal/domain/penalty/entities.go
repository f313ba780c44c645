package penalty

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether the endorsement has been decided. Terminal
// endorsements can never be re-decided.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

var (
	ErrNotFound        = errors.New("endorsement not found")
	ErrAlreadyDecided  = errors.New("endorsement already decided")
	ErrInvalidReason   = errors.New("endorsement reason is required")
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)

type Endorsement struct {
	ID            uint64         `gorm:"primaryKey;column:id" json:"-"`
	EndorsementID string         `gorm:"size:32;uniqueIndex:ux_endorsements_endorsement_id" json:"endorsement_id"`
	InstallmentID uint64         `gorm:"column:installment_id;not null;index" json:"-"`
	LoanID        uint64         `gorm:"column:loan_id;not null;index" json:"-"`
	PenaltyRate   float64        `gorm:"type:decimal(6,4)" json:"penalty_rate"`
	PenaltyAmount float64        `gorm:"type:decimal(18,2)" json:"penalty_amount"`
	Reason        string         `gorm:"type:text;not null" json:"reason"`
	Status        Status         `gorm:"type:enum('pending','approved','rejected');default:'pending'" json:"status"`
	EndorsedBy    string         `gorm:"size:64" json:"endorsed_by"`
	ReviewedBy    string         `gorm:"size:64" json:"reviewed_by"`
	Remarks       string         `gorm:"type:text" json:"remarks"`
	DecidedAt     *time.Time     `gorm:"column:decided_at" json:"decided_at,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Endorsement) TableName() string { return "penalty_endorsements" }
