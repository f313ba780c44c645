package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domainInstallment "lendcore-backend/internal/domain/installment"
	domainLoan "lendcore-backend/internal/domain/loan"
	domainPayment "lendcore-backend/internal/domain/payment"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/internal/notification"
	"lendcore-backend/internal/usecase/status"
	"lendcore-backend/pkg/id"
	"lendcore-backend/pkg/money"
)

// Allocator applies an externally-confirmed payment across a loan's
// installments in sequence order. The whole walk, the loan aggregate
// update and the open-term recalculation run in one locked loan
// transaction: either everything commits or nothing does.
type Allocator struct {
	loans        domainLoan.Repository
	installments domainInstallment.Repository
	uow          uow.UnitOfWork
	classifier   *status.Classifier
	openTerm     *OpenTermRecalculator
	dispatcher   notification.Dispatcher
	log          *logrus.Logger
}

func NewAllocator(
	loans domainLoan.Repository,
	installments domainInstallment.Repository,
	tx uow.UnitOfWork,
	classifier *status.Classifier,
	openTerm *OpenTermRecalculator,
	dispatcher notification.Dispatcher,
	log *logrus.Logger,
) *Allocator {
	return &Allocator{
		loans:        loans,
		installments: installments,
		uow:          tx,
		classifier:   classifier,
		openTerm:     openTerm,
		dispatcher:   dispatcher,
		log:          log,
	}
}

func (a *Allocator) Allocate(ctx context.Context, in AllocateInput) (*AllocationResult, error) {
	// The ledger holds two decimal places everywhere; normalize the
	// incoming amount once so applied + unapplied stays exact.
	in.Amount = money.Round2(in.Amount)
	if in.Amount <= 0 {
		return nil, domainInstallment.ErrInvalidAmount
	}
	mode := domainPayment.Mode(in.Mode)
	if mode != domainPayment.ModeCash && mode != domainPayment.ModeGateway {
		return nil, domainPayment.ErrInvalidMode
	}

	// Resolve the owning loan outside the transaction; the locked
	// re-read below is what the waterfall actually operates on.
	target, err := a.installments.GetByInstallmentID(ctx, in.InstallmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainInstallment.ErrNotFound
		}
		return nil, err
	}
	owner, err := a.loans.GetByID(ctx, target.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}

	var res *AllocationResult
	err = a.uow.WithinLoanTx(ctx, owner.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		// Closed is terminal: an administratively closed loan takes no
		// further money.
		if l.Status == domainLoan.StatusClosed {
			return domainLoan.ErrNotActive
		}

		list, err := r.Installments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}

		now := a.classifier.Now()
		remaining := in.Amount
		records := make([]AppliedRecord, 0, 1)

		// Strictly ascending sequence order: the oldest open
		// installment absorbs money first.
		for _, ins := range list {
			if remaining <= 0 || ins.RemainingBalance <= 0 {
				continue
			}
			applied := remaining
			if ins.RemainingBalance < applied {
				applied = ins.RemainingBalance
			}
			applied = money.Round2(applied)

			ins.AmountPaid = money.Round2(ins.AmountPaid + applied)
			ins.RemainingBalance = money.Round2(ins.PeriodAmount - ins.AmountPaid)
			if ins.RemainingBalance <= 0 {
				settled := now
				ins.SettledAt = &settled
			}
			a.classifier.Apply(ins, a.classifier.ClassifyAfterPayment(ins))
			if err := r.Installments.Save(ctx, ins); err != nil {
				return err
			}

			rec := &domainPayment.Record{
				Reference:           fmt.Sprintf("%s-%d-%s", ins.InstallmentID, now.UnixMilli(), id.NewSuffix8()),
				LoanID:              l.ID,
				InstallmentSequence: ins.Sequence,
				BorrowerID:          l.BorrowerID,
				Amount:              applied,
				Mode:                mode,
				Actor:               in.Actor,
				PaidAt:              now,
			}
			if err := r.Payments.Create(ctx, rec); err != nil {
				return err
			}
			records = append(records, AppliedRecord{
				Reference: rec.Reference,
				Sequence:  rec.InstallmentSequence,
				Amount:    rec.Amount,
				PaidAt:    rec.PaidAt,
			})
			remaining = money.Round2(remaining - applied)
		}

		totalApplied := money.Round2(in.Amount - remaining)
		l.PaidAmount = money.Round2(l.PaidAmount + totalApplied)

		if l.Type == domainLoan.TypeOpen {
			// The recalculator owns the balance of interest-only
			// loans: only the principal portion reduces it.
			if err := a.openTerm.Recalculate(ctx, r, l, totalApplied); err != nil {
				return err
			}
		} else {
			l.Balance = money.Round2(l.Balance - totalApplied)
			if l.Balance < 0 {
				l.Balance = 0
			}
		}

		// Loan status is derived only after the open-term branch has
		// finished mutating the balance.
		if l.Balance <= 0 {
			l.Status = domainLoan.StatusCompleted
		} else {
			l.Status = domainLoan.StatusActive
		}
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		res = &AllocationResult{
			LoanID:        l.LoanID,
			AmountApplied: totalApplied,
			Unapplied:     remaining,
			Records:       records,
			LoanStatus:    string(l.Status),
			LoanPaid:      l.PaidAmount,
			LoanBalance:   l.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: a notification failure never unwinds a payment
	// that already committed.
	if err := a.dispatcher.PaymentReceived(ctx, notification.PaymentNotice{
		BorrowerID:    owner.BorrowerID,
		InstallmentID: in.InstallmentID,
		Amount:        res.AmountApplied,
		Mode:          in.Mode,
	}); err != nil {
		a.log.WithError(err).Warn("payment notification failed, continuing")
	}
	return res, nil
}
