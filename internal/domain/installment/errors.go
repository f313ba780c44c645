package installment

import "errors"

var (
	ErrNotFound      = errors.New("installment not found")
	ErrInvalidAmount = errors.New("payment amount must be positive")
)
