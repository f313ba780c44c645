package payment

import (
	"context"

	domainInstallment "lendcore-backend/internal/domain/installment"
	domainLoan "lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/internal/usecase/schedule"
	"lendcore-backend/internal/usecase/status"
	"lendcore-backend/pkg/id"
	"lendcore-backend/pkg/money"
)

// OpenTermRecalculator keeps interest-only loans rolling. After each
// payment it splits the amount into the interest due on the current
// balance and a principal portion, reduces the balance by the principal
// portion only, and issues the next statement installment from the
// reduced balance. The loan stays open until the principal is cleared.
type OpenTermRecalculator struct {
	classifier *status.Classifier
}

func NewOpenTermRecalculator(classifier *status.Classifier) *OpenTermRecalculator {
	return &OpenTermRecalculator{classifier: classifier}
}

// Recalculate runs inside the allocator's loan transaction; it mutates
// l.Balance and may append one installment, but never saves the loan
// itself. The allocator commits the aggregate once, after this returns.
func (o *OpenTermRecalculator) Recalculate(ctx context.Context, r uow.Repos, l *domainLoan.Loan, paid float64) error {
	if paid <= 0 {
		return nil
	}

	interestDue := money.Round2(l.Balance * l.Rate / 100)
	principalPortion := money.Round2(paid - interestDue)
	if principalPortion < 0 {
		principalPortion = 0
	}
	l.Balance = money.Round2(l.Balance - principalPortion)
	if l.Balance <= 0 {
		l.Balance = 0
		return nil
	}

	list, err := r.Installments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return err
	}
	prev := list[len(list)-1]

	period := money.Round2(l.Balance + l.Balance*l.Rate/100)
	next := &domainInstallment.Installment{
		InstallmentID:    id.NewID32(),
		LoanID:           l.ID,
		Sequence:         prev.Sequence + 1,
		DueDate:          schedule.AddMonthClamped(prev.DueDate, 1),
		PeriodAmount:     period,
		RemainingBalance: period,
		Status:           domainInstallment.StatusUnpaid,
		Collector:        prev.Collector,
		StatusUpdatedAt:  o.classifier.Now(),
	}
	if err := r.Installments.Create(ctx, next); err != nil {
		return err
	}

	l.TotalPayable = money.Round2(l.TotalPayable + period)
	return nil
}
