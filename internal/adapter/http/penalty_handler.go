package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lendcore-backend/internal/usecase/penalty"
)

type PenaltyHandler struct{ uc *penalty.Machine }

func NewPenaltyHandler(uc *penalty.Machine) *PenaltyHandler { return &PenaltyHandler{uc: uc} }

type endorseReq struct {
	InstallmentID string `json:"installment_id" validate:"required,hex32"`
	Reason        string `json:"reason" validate:"required"`
	EndorsedBy    string `json:"endorsed_by" validate:"required"`
}

func (h *PenaltyHandler) Endorse(c echo.Context) error {
	var req endorseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Endorse(c.Request().Context(), penalty.EndorseInput(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type decideReq struct {
	Decision   string `json:"decision" validate:"required,oneof=approved rejected"`
	ReviewedBy string `json:"reviewed_by" validate:"required"`
	Remarks    string `json:"remarks"`
}

func (h *PenaltyHandler) Decide(c echo.Context) error {
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Decide(c.Request().Context(), penalty.DecideInput{
		EndorsementID: c.Param("endorsement_id"),
		Decision:      req.Decision,
		ReviewedBy:    req.ReviewedBy,
		Remarks:       req.Remarks,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
