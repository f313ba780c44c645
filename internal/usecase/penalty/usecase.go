package penalty

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domainInstallment "lendcore-backend/internal/domain/installment"
	domainLoan "lendcore-backend/internal/domain/loan"
	domainPenalty "lendcore-backend/internal/domain/penalty"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/internal/usecase/status"
	"lendcore-backend/pkg/id"
	"lendcore-backend/pkg/money"
)

// Credit-score deltas keyed by the installment status that results from
// an approved penalty; the score stays clamped to [0,10].
const (
	scoreDeltaPaid    = 0.5
	scoreDeltaPastDue = -0.5
	scoreDeltaOverdue = -1.5
)

// Machine is the Pending -> {Approved, Rejected} endorsement state
// machine. Approval is the only path anywhere in the engine that
// changes an installment's period amount after creation.
type Machine struct {
	loans        domainLoan.Repository
	installments domainInstallment.Repository
	penalties    domainPenalty.Repository
	uow          uow.UnitOfWork
	classifier   *status.Classifier
}

func NewMachine(
	loans domainLoan.Repository,
	installments domainInstallment.Repository,
	penalties domainPenalty.Repository,
	tx uow.UnitOfWork,
	classifier *status.Classifier,
) *Machine {
	return &Machine{
		loans:        loans,
		installments: installments,
		penalties:    penalties,
		uow:          tx,
		classifier:   classifier,
	}
}

// RateFor maps the installment's current status to the penalty rate.
// Anything that is not late yields zero; the endorsement is still
// recorded so the review trail exists.
func RateFor(s domainInstallment.Status) float64 {
	switch s {
	case domainInstallment.StatusPastDue:
		return 0.02
	case domainInstallment.StatusOverdue:
		return 0.05
	default:
		return 0
	}
}

func (m *Machine) Endorse(ctx context.Context, in EndorseInput) (*EndorsementDTO, error) {
	if in.Reason == "" {
		return nil, domainPenalty.ErrInvalidReason
	}
	ins, err := m.installments.GetByInstallmentID(ctx, in.InstallmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainInstallment.ErrNotFound
		}
		return nil, err
	}

	rate := RateFor(ins.Status)
	e := &domainPenalty.Endorsement{
		EndorsementID: id.NewID32(),
		InstallmentID: ins.ID,
		LoanID:        ins.LoanID,
		PenaltyRate:   rate,
		PenaltyAmount: money.Round2(ins.PeriodAmount * rate),
		Reason:        in.Reason,
		Status:        domainPenalty.StatusPending,
		EndorsedBy:    in.EndorsedBy,
	}
	if err := m.penalties.Create(ctx, e); err != nil {
		return nil, err
	}
	return toDTO(e, ins.InstallmentID), nil
}

func (m *Machine) Decide(ctx context.Context, in DecideInput) (*EndorsementDTO, error) {
	decision := domainPenalty.Status(in.Decision)
	if decision != domainPenalty.StatusApproved && decision != domainPenalty.StatusRejected {
		return nil, domainPenalty.ErrInvalidDecision
	}

	e, err := m.penalties.GetByEndorsementID(ctx, in.EndorsementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainPenalty.ErrNotFound
		}
		return nil, err
	}
	owner, err := m.loans.GetByID(ctx, e.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}

	var dto *EndorsementDTO
	err = m.uow.WithinLoanTx(ctx, owner.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		// Re-read under the lock; a concurrent decision must surface
		// as a conflict, never a silent overwrite.
		cur, err := r.Penalties.GetByEndorsementID(ctx, in.EndorsementID)
		if err != nil {
			return err
		}
		if cur.Status.Terminal() {
			return domainPenalty.ErrAlreadyDecided
		}

		now := m.classifier.Now()
		cur.Status = decision
		cur.ReviewedBy = in.ReviewedBy
		cur.Remarks = in.Remarks
		cur.DecidedAt = &now

		ins, err := r.Installments.GetByID(ctx, cur.InstallmentID)
		if err != nil {
			return err
		}

		if decision == domainPenalty.StatusApproved {
			if err := m.applyPenalty(ctx, r, l, ins, cur); err != nil {
				return err
			}
		}
		if err := r.Penalties.Save(ctx, cur); err != nil {
			return err
		}
		dto = toDTO(cur, ins.InstallmentID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// applyPenalty folds the approved penalty into the installment and
// nudges the loan credit score by the resulting status.
func (m *Machine) applyPenalty(ctx context.Context, r uow.Repos, l *domainLoan.Loan, ins *domainInstallment.Installment, e *domainPenalty.Endorsement) error {
	ins.PeriodAmount = money.Round2(ins.PeriodAmount + e.PenaltyAmount)
	ins.RemainingBalance = money.Round2(ins.PeriodAmount - ins.AmountPaid)

	var next domainInstallment.Status
	if ins.RemainingBalance <= 0 {
		next = domainInstallment.StatusPaid
		if ins.SettledAt == nil {
			settled := m.classifier.Now()
			ins.SettledAt = &settled
		}
	} else {
		// Time-based re-derivation keeps PastDue/Overdue in place.
		next = m.classifier.Classify(ins)
	}
	m.classifier.Apply(ins, next)
	if err := r.Installments.Save(ctx, ins); err != nil {
		return err
	}

	var delta float64
	switch next {
	case domainInstallment.StatusPaid:
		delta = scoreDeltaPaid
	case domainInstallment.StatusPastDue:
		delta = scoreDeltaPastDue
	case domainInstallment.StatusOverdue:
		delta = scoreDeltaOverdue
	}
	l.CreditScore = money.Clamp(l.CreditScore+delta, 0, 10)

	// The extra payable lands on the fixed-term aggregates as well;
	// an open-term balance tracks principal only and stays untouched.
	l.TotalPayable = money.Round2(l.TotalPayable + e.PenaltyAmount)
	if l.Type == domainLoan.TypeFixed && ins.RemainingBalance > 0 {
		l.Balance = money.Round2(l.Balance + e.PenaltyAmount)
	}
	return r.Loans.Save(ctx, l)
}

func toDTO(e *domainPenalty.Endorsement, installmentID string) *EndorsementDTO {
	return &EndorsementDTO{
		EndorsementID: e.EndorsementID,
		InstallmentID: installmentID,
		PenaltyRate:   e.PenaltyRate,
		PenaltyAmount: e.PenaltyAmount,
		Reason:        e.Reason,
		Status:        string(e.Status),
		EndorsedBy:    e.EndorsedBy,
		ReviewedBy:    e.ReviewedBy,
		Remarks:       e.Remarks,
		DecidedAt:     e.DecidedAt,
	}
}
