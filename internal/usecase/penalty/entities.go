package penalty

import "time"

type EndorseInput struct {
	InstallmentID string `json:"installment_id"`
	Reason        string `json:"reason"`
	EndorsedBy    string `json:"endorsed_by"`
}

type DecideInput struct {
	EndorsementID string `json:"endorsement_id"`
	Decision      string `json:"decision"` // approved | rejected
	ReviewedBy    string `json:"reviewed_by"`
	Remarks       string `json:"remarks"`
}

type EndorsementDTO struct {
	EndorsementID string     `json:"endorsement_id"`
	InstallmentID string     `json:"installment_id"`
	PenaltyRate   float64    `json:"penalty_rate"`
	PenaltyAmount float64    `json:"penalty_amount"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	EndorsedBy    string     `json:"endorsed_by"`
	ReviewedBy    string     `json:"reviewed_by"`
	Remarks       string     `json:"remarks"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
}
