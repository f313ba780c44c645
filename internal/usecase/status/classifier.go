package status

import (
	"time"

	"lendcore-backend/internal/domain/installment"
)

// Lateness thresholds, measured in Unit multiples past the due date.
const (
	pastDueAfter = 3
	overdueAfter = 30
)

// Classifier derives an installment's lifecycle status from elapsed
// time and payment state. The production cadence counts days
// (Unit = 24h); the fast test cadence counts minutes. Both share this
// one implementation; only Unit differs.
type Classifier struct {
	Unit time.Duration
	Now  func() time.Time
}

func NewClassifier(unit time.Duration) *Classifier {
	return &Classifier{Unit: unit, Now: func() time.Time { return time.Now().UTC() }}
}

// unitsLate returns how many whole Units have elapsed between due and t,
// floored, negative when t is before due.
func (c *Classifier) unitsLate(due, t time.Time) int {
	d := t.Sub(due)
	q := d / c.Unit
	if d < 0 && d%c.Unit != 0 {
		q--
	}
	return int(q)
}

// Classify is the time-first evaluation used by reconciliation: lateness
// outranks partial payment for unsettled installments.
func (c *Classifier) Classify(ins *installment.Installment) installment.Status {
	if ins.AmountPaid >= ins.PeriodAmount {
		return c.settledStatus(ins)
	}
	late := c.unitsLate(ins.DueDate, c.Now())
	switch {
	case late > overdueAfter:
		return installment.StatusOverdue
	case late > pastDueAfter:
		return installment.StatusPastDue
	case ins.AmountPaid > 0:
		return installment.StatusPartial
	default:
		return installment.StatusUnpaid
	}
}

// ClassifyAfterPayment is the money-first evaluation used right after an
// allocation: once money lands, Paid/Partial outrank the time-based
// PastDue/Overdue.
func (c *Classifier) ClassifyAfterPayment(ins *installment.Installment) installment.Status {
	if ins.AmountPaid >= ins.PeriodAmount {
		return c.settledStatus(ins)
	}
	if ins.AmountPaid > 0 {
		return installment.StatusPartial
	}
	late := c.unitsLate(ins.DueDate, c.Now())
	switch {
	case late > overdueAfter:
		return installment.StatusOverdue
	case late > pastDueAfter:
		return installment.StatusPastDue
	default:
		return installment.StatusUnpaid
	}
}

func (c *Classifier) settledStatus(ins *installment.Installment) installment.Status {
	settled := c.Now()
	if ins.SettledAt != nil {
		settled = *ins.SettledAt
	}
	if c.unitsLate(ins.DueDate, settled) > pastDueAfter {
		return installment.StatusLate
	}
	return installment.StatusPaid
}

// Apply writes the computed status onto the installment and stamps
// StatusUpdatedAt, but only when it actually changed. Re-running with
// the same clock is a no-op, which is what makes reconciliation safe to
// invoke at any frequency.
func (c *Classifier) Apply(ins *installment.Installment, s installment.Status) bool {
	if ins.Status == s {
		return false
	}
	ins.Status = s
	ins.StatusUpdatedAt = c.Now()
	return true
}
