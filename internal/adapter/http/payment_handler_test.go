package http

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	insDomain "lendcore-backend/internal/domain/installment"
	loanDomain "lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/internal/notification"
	"lendcore-backend/internal/testutil/installmentmock"
	"lendcore-backend/internal/testutil/loanmock"
	"lendcore-backend/internal/testutil/paymentmock"
	"lendcore-backend/internal/testutil/penaltymock"
	"lendcore-backend/internal/testutil/uowmock"
	"lendcore-backend/internal/usecase/payment"
	"lendcore-backend/internal/usecase/status"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newPaymentHandler wires a real Allocator over one loan with a single
// open installment, so the handler test exercises the whole path.
func newPaymentHandler(t *testing.T) (*PaymentHandler, *loanDomain.Loan, *insDomain.Installment) {
	t.Helper()

	due := time.Now().UTC().Add(24 * time.Hour)
	l := &loanDomain.Loan{
		ID:           3,
		LoanID:       hex32("a"),
		BorrowerID:   hex32("b"),
		Principal:    4000,
		Rate:         12.5,
		TermCount:    1,
		Type:         loanDomain.TypeFixed,
		Status:       loanDomain.StatusActive,
		TotalPayable: 4500,
		Balance:      4500,
	}
	ins := &insDomain.Installment{
		ID: 31, InstallmentID: hex32("d"), LoanID: 3, Sequence: 1,
		DueDate: due, PeriodAmount: 4500, RemainingBalance: 4500,
		Status: insDomain.StatusUnpaid,
	}

	loans := &loanmock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*loanDomain.Loan, error) {
			return l, nil
		},
		GetByLoanIDForUpdateFn: func(_ context.Context, _ string) (*loanDomain.Loan, error) {
			return l, nil
		},
	}
	installments := &installmentmock.Repo{
		GetByInstallmentIDFn: func(_ context.Context, id string) (*insDomain.Installment, error) {
			if id == ins.InstallmentID {
				return ins, nil
			}
			return nil, insDomain.ErrNotFound
		},
		ListByLoanIDFn: func(_ context.Context, _ uint64) ([]*insDomain.Installment, error) {
			return []*insDomain.Installment{ins}, nil
		},
	}
	tx := &uowmock.Uow{Repos: uow.Repos{
		Loans:        loans,
		Installments: installments,
		Payments:     &paymentmock.Repo{},
		Penalties:    &penaltymock.Repo{},
	}}
	classifier := status.NewClassifier(24 * time.Hour)

	alloc := payment.NewAllocator(loans, installments, tx, classifier,
		payment.NewOpenTermRecalculator(classifier), notification.NewLogDispatcher(quietLogger()), quietLogger())
	return NewPaymentHandler(alloc), l, ins
}

func TestPostPayment_Success(t *testing.T) {
	e := newEchoWithValidator()
	h, l, ins := newPaymentHandler(t)

	reqBody := map[string]any{
		"installment_id": ins.InstallmentID,
		"amount":         4500,
		"mode":           "cash",
		"actor":          "teller-3",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/payments", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.PostPayment(c); err != nil {
		t.Fatalf("PostPayment error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var res payment.AllocationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if res.AmountApplied != 4500 || res.Unapplied != 0 {
		t.Fatalf("allocation = %+v", res)
	}
	if res.LoanStatus != string(loanDomain.StatusCompleted) {
		t.Fatalf("loan status = %s, want completed", res.LoanStatus)
	}
	if l.PaidAmount != 4500 || ins.Status != insDomain.StatusPaid {
		t.Fatalf("state not mutated: loan=%+v ins=%+v", l, ins)
	}
}

func TestPostPayment_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h, _, _ := newPaymentHandler(t)

	reqBody := map[string]any{
		"installment_id": "nope",
		"amount":         0,
		"mode":           "wire",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/payments", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.PostPayment(c); err != nil {
		t.Fatalf("PostPayment error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "InstallmentID", "32-char lowercase hex") {
		t.Fatalf("missing hex32 detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Mode", "must be one of") {
		t.Fatalf("missing oneof detail for mode: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Actor", "is required") {
		t.Fatalf("missing required detail for actor: %+v", er.Details)
	}
}

func TestPostPayment_InstallmentNotFound(t *testing.T) {
	e := newEchoWithValidator()
	h, _, _ := newPaymentHandler(t)

	reqBody := map[string]any{
		"installment_id": hex32("e"), // valid shape, unknown id
		"amount":         100,
		"mode":           "gateway",
		"actor":          "gateway-cb",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/payments", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.PostPayment(c); err != nil {
		t.Fatalf("PostPayment error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != insDomain.ErrNotFound.Error() {
		t.Fatalf("error = %q", er.Error)
	}
}
