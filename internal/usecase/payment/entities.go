package payment

import "time"

type AllocateInput struct {
	InstallmentID string  `json:"installment_id"`
	Amount        float64 `json:"amount"`
	Mode          string  `json:"mode"`
	Actor         string  `json:"actor"`
}

// AppliedRecord mirrors one PaymentRecord produced by the waterfall.
type AppliedRecord struct {
	Reference string    `json:"reference"`
	Sequence  int       `json:"sequence"`
	Amount    float64   `json:"amount"`
	PaidAt    time.Time `json:"paid_at"`
}

type AllocationResult struct {
	LoanID        string  `json:"loan_id"`
	AmountApplied float64 `json:"amount_applied"`
	// Unapplied is the over-payment remainder left once every
	// installment was exhausted. AmountApplied + Unapplied always
	// equals the input amount after cent normalization.
	Unapplied   float64         `json:"unapplied_remainder"`
	Records     []AppliedRecord `json:"records"`
	LoanStatus  string          `json:"loan_status"`
	LoanPaid    float64         `json:"loan_paid_amount"`
	LoanBalance float64         `json:"loan_balance"`
}
