package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lendcore-backend/internal/usecase/payment"
)

type PaymentHandler struct{ uc *payment.Allocator }

func NewPaymentHandler(uc *payment.Allocator) *PaymentHandler { return &PaymentHandler{uc: uc} }

type postPaymentReq struct {
	InstallmentID string  `json:"installment_id" validate:"required,hex32"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Mode          string  `json:"mode" validate:"required,oneof=cash gateway"`
	Actor         string  `json:"actor" validate:"required"`
}

// PostPayment records the effect of an externally-confirmed payment:
// the money is already settled by the time this endpoint is called.
func (h *PaymentHandler) PostPayment(c echo.Context) error {
	var req postPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	res, err := h.uc.Allocate(c.Request().Context(), payment.AllocateInput(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}
