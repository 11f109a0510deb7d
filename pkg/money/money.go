package money

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid principal, rate or tenure")

// Entry is one row of an amortization schedule.
type Entry struct {
	Period    int
	DueDate   time.Time
	Principal decimal.Decimal
	Interest  decimal.Decimal
	EMI       decimal.Decimal
	Remaining decimal.Decimal
}

// ComputeEMI returns the fixed monthly installment for the annuity formula
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate derived from annualRatePercent (9.5 means 9.5%/yr).
// Banker's rounding is applied once, on the final result.
func ComputeEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if tenureMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) || annualRatePercent.IsNegative() {
		return decimal.Zero, ErrInvalidInput
	}
	if annualRatePercent.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(tenureMonths))).RoundBank(2), nil
	}

	// The power term has no exact decimal representation; compute it in
	// float64 and convert back for the single final rounding.
	r := annualRatePercent.InexactFloat64() / (12 * 100)
	n := float64(tenureMonths)
	factor := math.Pow(1+r, n)
	emi := principal.InexactFloat64() * r * factor / (factor - 1)
	return decimal.NewFromFloat(emi).RoundBank(2), nil
}

// BuildSchedule produces exactly tenureMonths entries, due monthly starting one
// month after start. The last entry's principal component absorbs the rounding
// remainder so the principal components sum to principal exactly.
func BuildSchedule(principal, annualRatePercent decimal.Decimal, tenureMonths int, start time.Time) ([]Entry, error) {
	emi, err := ComputeEMI(principal, annualRatePercent, tenureMonths)
	if err != nil {
		return nil, err
	}

	monthlyRate := annualRatePercent.Div(decimal.NewFromInt(12 * 100))
	remaining := principal
	entries := make([]Entry, 0, tenureMonths)

	for period := 1; period <= tenureMonths; period++ {
		interest := remaining.Mul(monthlyRate).RoundBank(2)
		principalPart := emi.Sub(interest)
		due := emi
		if period == tenureMonths {
			// close the balance exactly
			principalPart = remaining
			due = principalPart.Add(interest)
		}
		remaining = remaining.Sub(principalPart)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		entries = append(entries, Entry{
			Period:    period,
			DueDate:   start.AddDate(0, period, 0),
			Principal: principalPart,
			Interest:  interest,
			EMI:       due,
			Remaining: remaining,
		})
	}
	return entries, nil
}

// DaysOverdue returns max(0, asOf - due) in whole calendar days, UTC.
func DaysOverdue(due, asOf time.Time) int {
	d := int(truncDay(asOf).Sub(truncDay(due)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func truncDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
