package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domainInstallment "lendcore-backend/internal/domain/installment"
	domainLoan "lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/pkg/id"
)

// Usecase owns disbursement: it turns approved terms into a Loan plus
// its installment set, atomically, and answers schedule reads.
type Usecase struct {
	loans        domainLoan.Repository
	installments domainInstallment.Repository
	uow          uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, installments domainInstallment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, installments: installments, uow: tx}
}

func (u *Usecase) Disburse(ctx context.Context, in DisburseInput) (*LoanDTO, error) {
	lt := domainLoan.Type(in.LoanType)
	if lt != domainLoan.TypeFixed && lt != domainLoan.TypeOpen {
		return nil, domainLoan.ErrInvalidTerms
	}
	disbursedAt := in.DisbursedAt
	if disbursedAt.IsZero() {
		disbursedAt = time.Now().UTC()
	}

	plan, err := Generate(Terms{
		Principal:   in.Principal,
		Rate:        in.Rate,
		TermCount:   in.TermCount,
		Type:        lt,
		DisbursedAt: disbursedAt,
	})
	if err != nil {
		return nil, err
	}

	var dto *LoanDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// One disbursed loan per application.
		if _, err := r.Loans.GetByApplicationID(ctx, in.ApplicationID); err == nil {
			return domainLoan.ErrAlreadyDisbursed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Open-term balance tracks outstanding principal, not the
		// projected payable; the recalculator reduces it by the
		// principal portion of each payment.
		balance := plan.TotalPayable
		if lt == domainLoan.TypeOpen {
			balance = in.Principal
		}

		l := &domainLoan.Loan{
			LoanID:          id.NewID32(),
			ApplicationID:   in.ApplicationID,
			BorrowerID:      in.BorrowerID,
			Principal:       in.Principal,
			Rate:            in.Rate,
			TermCount:       in.TermCount,
			Type:            lt,
			Status:          domainLoan.StatusActive,
			TotalPayable:    plan.TotalPayable,
			Balance:         balance,
			CreditScore:     domainLoan.DefaultCreditScore,
			DisbursedAt:     disbursedAt,
			StatusUpdatedAt: time.Now().UTC(),
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		list := make([]*domainInstallment.Installment, 0, len(plan.Entries))
		for _, e := range plan.Entries {
			list = append(list, &domainInstallment.Installment{
				InstallmentID:    id.NewID32(),
				LoanID:           l.ID,
				Sequence:         e.Sequence,
				DueDate:          e.DueDate,
				PeriodAmount:     e.PeriodAmount,
				RemainingBalance: e.PeriodAmount,
				Status:           domainInstallment.StatusUnpaid,
				Collector:        in.Collector,
				StatusUpdatedAt:  time.Now().UTC(),
			})
		}
		if err := r.Installments.CreateBatch(ctx, list); err != nil {
			return err
		}

		dto = toLoanDTO(l, list)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	return toLoanDTO(l, nil), nil
}

func (u *Usecase) ListInstallments(ctx context.Context, loanID string) ([]InstallmentDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	list, err := u.installments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]InstallmentDTO, 0, len(list))
	for _, ins := range list {
		out = append(out, toInstallmentDTO(ins))
	}
	return out, nil
}

func toInstallmentDTO(ins *domainInstallment.Installment) InstallmentDTO {
	return InstallmentDTO{
		InstallmentID:    ins.InstallmentID,
		Sequence:         ins.Sequence,
		DueDate:          ins.DueDate,
		PeriodAmount:     ins.PeriodAmount,
		AmountPaid:       ins.AmountPaid,
		RemainingBalance: ins.RemainingBalance,
		Status:           string(ins.Status),
		Collector:        ins.Collector,
		Note:             ins.Note,
		SettledAt:        ins.SettledAt,
	}
}

func toLoanDTO(l *domainLoan.Loan, list []*domainInstallment.Installment) *LoanDTO {
	dto := &LoanDTO{
		LoanID:        l.LoanID,
		ApplicationID: l.ApplicationID,
		BorrowerID:    l.BorrowerID,
		Principal:     l.Principal,
		Rate:          l.Rate,
		TermCount:     l.TermCount,
		LoanType:      string(l.Type),
		Status:        string(l.Status),
		TotalPayable:  l.TotalPayable,
		PaidAmount:    l.PaidAmount,
		Balance:       l.Balance,
		CreditScore:   l.CreditScore,
		DisbursedAt:   l.DisbursedAt,
	}
	for _, ins := range list {
		dto.Installments = append(dto.Installments, toInstallmentDTO(ins))
	}
	return dto
}
