package schedule

import (
	"time"

	"lendcore-backend/internal/domain/loan"
	"lendcore-backend/pkg/money"
)

// Terms is what origination hands over at disbursement.
type Terms struct {
	Principal   float64
	Rate        float64 // percent, flat add-on
	TermCount   int     // ignored for open-term
	Type        loan.Type
	DisbursedAt time.Time
}

type Entry struct {
	Sequence       int
	DueDate        time.Time
	PeriodAmount   float64
	RunningBalance float64
}

type Plan struct {
	TotalInterest float64
	TotalPayable  float64
	PeriodAmount  float64
	Entries       []Entry
}

// Generate turns loan terms into the full repayment plan. Interest is
// flat add-on: computed once on the original principal and spread
// evenly over equal periods, never recomputed on a declining balance.
func Generate(t Terms) (*Plan, error) {
	if t.Principal <= 0 || t.Rate < 0 {
		return nil, loan.ErrInvalidTerms
	}
	if t.Type == loan.TypeOpen {
		return generateOpen(t), nil
	}
	if t.TermCount < 1 {
		return nil, loan.ErrInvalidTerms
	}

	interest := money.Round2(t.Principal * t.Rate / 100)
	totalInterest := money.Round2(interest * float64(t.TermCount))
	totalPayable := money.Round2(t.Principal + totalInterest)
	period := money.Round2(totalPayable / float64(t.TermCount))

	entries := make([]Entry, 0, t.TermCount)
	for i := 1; i <= t.TermCount; i++ {
		balance := money.Round2(totalPayable - period*float64(i))
		if balance < 0 {
			balance = 0
		}
		entries = append(entries, Entry{
			Sequence:       i,
			DueDate:        AddMonthClamped(t.DisbursedAt, i),
			PeriodAmount:   period,
			RunningBalance: balance,
		})
	}
	return &Plan{
		TotalInterest: totalInterest,
		TotalPayable:  totalPayable,
		PeriodAmount:  period,
		Entries:       entries,
	}, nil
}

// generateOpen produces the single opening installment of an
// interest-only loan: the full principal plus one period of interest.
// Follow-on installments come from the recalculator after each payment.
func generateOpen(t Terms) *Plan {
	period := money.Round2(t.Principal + t.Principal*t.Rate/100)
	return &Plan{
		TotalInterest: money.Round2(t.Principal * t.Rate / 100),
		TotalPayable:  period,
		PeriodAmount:  period,
		Entries: []Entry{{
			Sequence:       1,
			DueDate:        AddMonthClamped(t.DisbursedAt, 1),
			PeriodAmount:   period,
			RunningBalance: period,
		}},
	}
}

// AddMonthClamped advances t by the given number of calendar months,
// clamping the day to the last day of the target month when the source
// day does not exist there (e.g. Jan 31 + 1 month = Feb 28/29).
func AddMonthClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
