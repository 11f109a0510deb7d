package repayment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("installment not found")
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
)

type PaymentStatus string

const (
	StatusPending PaymentStatus = "Pending"
	StatusPaid    PaymentStatus = "Paid"
	StatusOverdue PaymentStatus = "Overdue"
	StatusPartial PaymentStatus = "Partial"
)

// Installment is one scheduled due date in the repayment ledger. Rows are
// created in bulk at approval, mutated by payment events, never deleted.
// A Paid row is immutable.
type Installment struct {
	ID                 uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	LoanID             uint64          `gorm:"column:loan_id;not null;index:idx_repayments_loan"`
	Period             int             `gorm:"column:period;not null"`
	DueDate            time.Time       `gorm:"column:due_date;type:date;not null;index:idx_repayments_due"`
	PaymentDate        *time.Time      `gorm:"column:payment_date;type:date"`
	EMIAmount          decimal.Decimal `gorm:"column:emi_amount;type:decimal(15,2);not null"`
	PrincipalComponent decimal.Decimal `gorm:"column:principal_component;type:decimal(15,2)"`
	InterestComponent  decimal.Decimal `gorm:"column:interest_component;type:decimal(15,2)"`
	AmountPaid         decimal.Decimal `gorm:"column:amount_paid;type:decimal(15,2);default:0"`
	Status             PaymentStatus   `gorm:"column:payment_status;size:20;default:'Pending';index:idx_repayments_status"`
	DaysOverdue        int             `gorm:"column:days_overdue;default:0"`
	PenaltyAmount      decimal.Decimal `gorm:"column:penalty_amount;type:decimal(15,2);default:0"`
	// PenaltyAccruedThrough keys penalty accrual so repeated overdue
	// recomputation on the same as-of date adds nothing.
	PenaltyAccruedThrough *time.Time `gorm:"column:penalty_accrued_through;type:date"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Installment) TableName() string { return "repayments" }

// Funds allocate penalty first, then interest, then principal. The split is
// derived from AmountPaid, not stored.

func (i *Installment) PenaltyPaid() decimal.Decimal {
	return decimal.Min(i.AmountPaid, i.PenaltyAmount)
}

func (i *Installment) InterestPaid() decimal.Decimal {
	rest := i.AmountPaid.Sub(i.PenaltyAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(rest, i.InterestComponent)
}

func (i *Installment) PrincipalPaid() decimal.Decimal {
	rest := i.AmountPaid.Sub(i.PenaltyAmount).Sub(i.InterestComponent)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(rest, i.PrincipalComponent)
}

// PenaltyOutstanding is accrued but unpaid penalty.
func (i *Installment) PenaltyOutstanding() decimal.Decimal {
	return i.PenaltyAmount.Sub(i.PenaltyPaid())
}

// TotalDue is the full amount required to settle the row: the scheduled EMI
// plus any accrued penalty.
func (i *Installment) TotalDue() decimal.Decimal {
	return i.EMIAmount.Add(i.PenaltyAmount)
}

// Outstanding is TotalDue minus what has been paid, floored at zero.
func (i *Installment) Outstanding() decimal.Decimal {
	out := i.TotalDue().Sub(i.AmountPaid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// EMIOutstanding is the unpaid portion of the scheduled EMI, ignoring
// penalties. Penalty accrual is computed on this balance.
func (i *Installment) EMIOutstanding() decimal.Decimal {
	nonPenalty := i.AmountPaid.Sub(i.PenaltyPaid())
	out := i.EMIAmount.Sub(nonPenalty)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

func (i *Installment) Settled() bool {
	return i.AmountPaid.GreaterThanOrEqual(i.TotalDue())
}

// Apply consumes up to Outstanding() from amount and returns the remainder to
// roll into the next installment. The row transitions to Paid when fully
// settled (EMI plus penalty), otherwise Partial.
func (i *Installment) Apply(amount decimal.Decimal, paymentDate time.Time) decimal.Decimal {
	if i.Status == StatusPaid {
		return amount
	}
	pay := decimal.Min(amount, i.Outstanding())
	if pay.LessThanOrEqual(decimal.Zero) {
		return amount
	}
	i.AmountPaid = i.AmountPaid.Add(pay)
	d := paymentDate
	i.PaymentDate = &d
	if i.Settled() {
		i.Status = StatusPaid
	} else {
		i.Status = StatusPartial
	}
	return amount.Sub(pay)
}

// PaidOnTime reports whether the row settled on or before its due date.
func (i *Installment) PaidOnTime() bool {
	return i.Status == StatusPaid && i.PaymentDate != nil && !i.PaymentDate.After(i.DueDate)
}

// PenaltyPolicy is the configurable flat-rate-on-overdue-balance accrual.
type PenaltyPolicy struct {
	DailyRate decimal.Decimal
}

// Accrue returns the penalty for days of delinquency on balance.
func (p PenaltyPolicy) Accrue(balance decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 || balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return balance.Mul(p.DailyRate).Mul(decimal.NewFromInt(int64(days))).RoundBank(2)
}
