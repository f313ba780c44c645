package notification

import (
	"context"

	"github.com/sirupsen/logrus"
)

// PaymentNotice is what the engine hands to the notification
// collaborator after a successful allocation. Rendering and delivery
// (SMS, e-mail) are owned by that collaborator, not by the engine.
type PaymentNotice struct {
	BorrowerID    string
	InstallmentID string
	Amount        float64
	Mode          string
}

type Dispatcher interface {
	PaymentReceived(ctx context.Context, n PaymentNotice) error
}

// LogDispatcher is the default sink: it records the notice and nothing
// else. A failing dispatcher must never roll back a payment, so callers
// treat any error from here as log-and-continue.
type LogDispatcher struct {
	log *logrus.Logger
}

func NewLogDispatcher(log *logrus.Logger) *LogDispatcher { return &LogDispatcher{log: log} }

func (d *LogDispatcher) PaymentReceived(_ context.Context, n PaymentNotice) error {
	d.log.WithFields(logrus.Fields{
		"borrower_id":    n.BorrowerID,
		"installment_id": n.InstallmentID,
		"amount":         n.Amount,
		"mode":           n.Mode,
	}).Info("payment notification dispatched")
	return nil
}
