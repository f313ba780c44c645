package payment

import "errors"

var ErrInvalidMode = errors.New("payment mode must be cash or gateway")
