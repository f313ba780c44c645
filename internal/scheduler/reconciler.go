package scheduler

import (
	"context"

	"github.com/sirupsen/logrus"

	domainInstallment "lendcore-backend/internal/domain/installment"
	domainLoan "lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/internal/usecase/status"
)

// Reconciler is the periodic driver that re-derives installment status
// as time passes, without any payment event. Each pass is a pure
// re-evaluation: rows are written only when the computed status differs
// from the stored one, so running it every few seconds is safe.
type Reconciler struct {
	loans        domainLoan.Repository
	installments domainInstallment.Repository
	uow          uow.UnitOfWork
	classifier   *status.Classifier
	log          *logrus.Logger
}

func NewReconciler(
	loans domainLoan.Repository,
	installments domainInstallment.Repository,
	tx uow.UnitOfWork,
	classifier *status.Classifier,
	log *logrus.Logger,
) *Reconciler {
	return &Reconciler{
		loans:        loans,
		installments: installments,
		uow:          tx,
		classifier:   classifier,
		log:          log,
	}
}

// RunOnce reconciles every loan that still has open installments and
// returns how many installments changed status. A failure on one loan
// is logged and skipped; it never aborts the rest of the batch.
func (r *Reconciler) RunOnce(ctx context.Context) int {
	loanIDs, err := r.installments.ListOpenLoanIDs(ctx)
	if err != nil {
		r.log.WithError(err).Error("reconciliation scan failed")
		return 0
	}

	changed := 0
	for _, loanID := range loanIDs {
		n, err := r.reconcileLoan(ctx, loanID)
		if err != nil {
			r.log.WithError(err).WithField("loan_id", loanID).Warn("loan reconciliation failed, skipping")
			continue
		}
		changed += n
	}
	if changed > 0 {
		r.log.WithFields(logrus.Fields{"loans": len(loanIDs), "changed": changed}).Info("reconciliation pass complete")
	}
	return changed
}

func (r *Reconciler) reconcileLoan(ctx context.Context, loanID uint64) (int, error) {
	l, err := r.loans.GetByID(ctx, loanID)
	if err != nil {
		return 0, err
	}

	changed := 0
	// The same per-loan lock the allocator takes: a reconciliation pass
	// and a concurrent payment cannot interleave on one installment.
	err = r.uow.WithinLoanTx(ctx, l.LoanID, func(rr uow.Repos, locked *domainLoan.Loan) error {
		list, err := rr.Installments.ListByLoanID(ctx, locked.ID)
		if err != nil {
			return err
		}
		for _, ins := range list {
			if ins.Status.Settled() {
				continue
			}
			if !r.classifier.Apply(ins, r.classifier.Classify(ins)) {
				continue
			}
			if err := rr.Installments.Save(ctx, ins); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	return changed, err
}
