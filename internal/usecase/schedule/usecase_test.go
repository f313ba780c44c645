package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	domainInstallment "lendcore-backend/internal/domain/installment"
	domainLoan "lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/internal/testutil/installmentmock"
	"lendcore-backend/internal/testutil/loanmock"
	"lendcore-backend/internal/testutil/paymentmock"
	"lendcore-backend/internal/testutil/penaltymock"
	"lendcore-backend/internal/testutil/uowmock"
)

func newDisburseFixture(existing *domainLoan.Loan) (*Usecase, *[]*domainInstallment.Installment) {
	var created []*domainInstallment.Installment

	loans := &loanmock.Repo{
		GetByApplicationIDFn: func(_ context.Context, appID string) (*domainLoan.Loan, error) {
			if existing != nil && existing.ApplicationID == appID {
				return existing, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(_ context.Context, l *domainLoan.Loan) error {
			l.ID = 42
			return nil
		},
	}
	installments := &installmentmock.Repo{
		CreateBatchFn: func(_ context.Context, list []*domainInstallment.Installment) error {
			created = append(created, list...)
			return nil
		},
	}
	tx := &uowmock.Uow{Repos: uow.Repos{
		Loans:        loans,
		Installments: installments,
		Payments:     &paymentmock.Repo{},
		Penalties:    &penaltymock.Repo{},
	}}
	return NewUsecase(loans, installments, tx), &created
}

func TestDisburse_FixedTerm(t *testing.T) {
	uc, created := newDisburseFixture(nil)

	dto, err := uc.Disburse(context.Background(), DisburseInput{
		ApplicationID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BorrowerID:    "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Principal:     20000,
		Rate:          10,
		TermCount:     8,
		LoanType:      "fixed",
		Collector:     "collector-1",
		DisbursedAt:   time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Disburse err: %v", err)
	}
	if len(dto.LoanID) != 32 {
		t.Fatalf("LoanID length: %d", len(dto.LoanID))
	}
	if dto.TotalPayable != 36000 || dto.Balance != 36000 {
		t.Fatalf("payable=%v balance=%v", dto.TotalPayable, dto.Balance)
	}
	if dto.Status != string(domainLoan.StatusActive) {
		t.Fatalf("status = %s", dto.Status)
	}
	if len(*created) != 8 {
		t.Fatalf("installments created = %d, want 8", len(*created))
	}
	for i, ins := range *created {
		if ins.Sequence != i+1 {
			t.Fatalf("installment %d sequence = %d", i, ins.Sequence)
		}
		if ins.LoanID != 42 {
			t.Fatalf("installment %d loan fk = %d, want 42", i, ins.LoanID)
		}
		if ins.Status != domainInstallment.StatusUnpaid || ins.RemainingBalance != 4500 {
			t.Fatalf("installment %d: status=%s remaining=%v", i, ins.Status, ins.RemainingBalance)
		}
		if ins.Collector != "collector-1" {
			t.Fatalf("installment %d collector = %q", i, ins.Collector)
		}
	}
}

func TestDisburse_OpenTermBalanceIsPrincipal(t *testing.T) {
	uc, created := newDisburseFixture(nil)

	dto, err := uc.Disburse(context.Background(), DisburseInput{
		ApplicationID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BorrowerID:    "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Principal:     50000,
		Rate:          6,
		LoanType:      "open",
		DisbursedAt:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Disburse err: %v", err)
	}
	if dto.Balance != 50000 {
		t.Fatalf("balance = %v, want principal 50000", dto.Balance)
	}
	if len(*created) != 1 || (*created)[0].PeriodAmount != 53000 {
		t.Fatalf("created = %+v", *created)
	}
}

func TestDisburse_RejectsDuplicateApplication(t *testing.T) {
	uc, _ := newDisburseFixture(&domainLoan.Loan{
		ApplicationID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		LoanID:        "cccccccccccccccccccccccccccccccc",
	})

	_, err := uc.Disburse(context.Background(), DisburseInput{
		ApplicationID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BorrowerID:    "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Principal:     1000,
		Rate:          5,
		TermCount:     4,
		LoanType:      "fixed",
	})
	if !errors.Is(err, domainLoan.ErrAlreadyDisbursed) {
		t.Fatalf("err = %v, want ErrAlreadyDisbursed", err)
	}
}

func TestDisburse_RejectsUnknownLoanType(t *testing.T) {
	uc, _ := newDisburseFixture(nil)
	_, err := uc.Disburse(context.Background(), DisburseInput{
		ApplicationID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BorrowerID:    "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Principal:     1000,
		LoanType:      "balloon",
	})
	if !errors.Is(err, domainLoan.ErrInvalidTerms) {
		t.Fatalf("err = %v, want ErrInvalidTerms", err)
	}
}
