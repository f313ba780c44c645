package loan

import "errors"

var (
	ErrNotFound         = errors.New("loan not found")
	ErrInvalidTerms     = errors.New("invalid loan terms")
	ErrAlreadyDisbursed = errors.New("application already has a disbursed loan")
	ErrNotActive        = errors.New("loan is not active")
)
