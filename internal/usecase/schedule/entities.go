package schedule

import "time"

type DisburseInput struct {
	ApplicationID string    `json:"application_id"`
	BorrowerID    string    `json:"borrower_id"`
	Principal     float64   `json:"principal"`
	Rate          float64   `json:"rate"`
	TermCount     int       `json:"term_count"`
	LoanType      string    `json:"loan_type"`
	Collector     string    `json:"collector"`
	DisbursedAt   time.Time `json:"disbursed_at"`
}

type InstallmentDTO struct {
	InstallmentID    string     `json:"installment_id"`
	Sequence         int        `json:"sequence"`
	DueDate          time.Time  `json:"due_date"`
	PeriodAmount     float64    `json:"period_amount"`
	AmountPaid       float64    `json:"amount_paid"`
	RemainingBalance float64    `json:"remaining_balance"`
	Status           string     `json:"status"`
	Collector        string     `json:"collector"`
	Note             string     `json:"note"`
	SettledAt        *time.Time `json:"settled_at,omitempty"`
}

type LoanDTO struct {
	LoanID        string           `json:"loan_id"`
	ApplicationID string           `json:"application_id"`
	BorrowerID    string           `json:"borrower_id"`
	Principal     float64          `json:"principal"`
	Rate          float64          `json:"rate"`
	TermCount     int              `json:"term_count"`
	LoanType      string           `json:"loan_type"`
	Status        string           `json:"status"`
	TotalPayable  float64          `json:"total_payable"`
	PaidAmount    float64          `json:"paid_amount"`
	Balance       float64          `json:"balance"`
	CreditScore   float64          `json:"credit_score"`
	DisbursedAt   time.Time        `json:"disbursed_at"`
	Installments  []InstallmentDTO `json:"installments,omitempty"`
}
