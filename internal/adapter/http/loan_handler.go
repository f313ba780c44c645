package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lendcore-backend/internal/usecase/schedule"
)

type LoanHandler struct{ uc *schedule.Usecase }

func NewLoanHandler(uc *schedule.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type disburseReq struct {
	ApplicationID string  `json:"application_id" validate:"required,hex32"`
	BorrowerID    string  `json:"borrower_id" validate:"required,hex32"`
	Principal     float64 `json:"principal" validate:"required,gt=0"`
	Rate          float64 `json:"rate" validate:"gte=0"`
	TermCount     int     `json:"term_count" validate:"gte=0"`
	LoanType      string  `json:"loan_type" validate:"required,oneof=fixed open"`
	Collector     string  `json:"collector"`
	DisbursedAt   string  `json:"disbursed_at"` // RFC3339, optional
}

func (h *LoanHandler) Disburse(c echo.Context) error {
	var req disburseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	var disbursedAt time.Time
	if req.DisbursedAt != "" {
		t, err := time.Parse(time.RFC3339, req.DisbursedAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "disbursed_at must be RFC3339"})
		}
		disbursedAt = t.UTC()
	}

	dto, err := h.uc.Disburse(c.Request().Context(), schedule.DisburseInput{
		ApplicationID: req.ApplicationID,
		BorrowerID:    req.BorrowerID,
		Principal:     req.Principal,
		Rate:          req.Rate,
		TermCount:     req.TermCount,
		LoanType:      req.LoanType,
		Collector:     req.Collector,
		DisbursedAt:   disbursedAt,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListInstallments(c echo.Context) error {
	list, err := h.uc.ListInstallments(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"installments": list})
}
