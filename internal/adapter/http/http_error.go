package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lendcore-backend/internal/domain/installment"
	"lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/payment"
	"lendcore-backend/internal/domain/penalty"
)

// writeDomainError maps the engine's sentinel errors onto HTTP codes:
// validation → 400, not-found → 404, conflicts → 409, anything else 500.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, installment.ErrNotFound),
		errors.Is(err, penalty.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrAlreadyDisbursed),
		errors.Is(err, loan.ErrNotActive),
		errors.Is(err, penalty.ErrAlreadyDecided):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrInvalidTerms),
		errors.Is(err, installment.ErrInvalidAmount),
		errors.Is(err, payment.ErrInvalidMode),
		errors.Is(err, penalty.ErrInvalidReason),
		errors.Is(err, penalty.ErrInvalidDecision):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
