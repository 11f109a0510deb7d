package npa

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("npa record not found")
	ErrNotOpen  = errors.New("npa record is not open")
	// ErrStillOverdue blocks resolution until a full catch-up payment
	// brings overdue days back to zero.
	ErrStillOverdue = errors.New("loan still has overdue installments")
)

// Category per regulatory overdue-day thresholds.
type Category string

const (
	CategoryStandard    Category = "Standard"
	CategorySubStandard Category = "Sub-Standard"
	CategoryDoubtful    Category = "Doubtful"
	CategoryLoss        Category = "Loss"
)

// Classify maps worst days overdue to a category:
// 0-89 Standard, 90-179 Sub-Standard, 180-364 Doubtful, >=365 Loss.
func Classify(daysOverdue int) Category {
	switch {
	case daysOverdue < 90:
		return CategoryStandard
	case daysOverdue < 180:
		return CategorySubStandard
	case daysOverdue < 365:
		return CategoryDoubtful
	default:
		return CategoryLoss
	}
}

// Rank orders categories by severity.
func (c Category) Rank() int {
	switch c {
	case CategorySubStandard:
		return 1
	case CategoryDoubtful:
		return 2
	case CategoryLoss:
		return 3
	default:
		return 0
	}
}

type Resolution string

const (
	ResolutionOpen       Resolution = "Open"
	ResolutionResolved   Resolution = "Resolved"
	ResolutionWrittenOff Resolution = "Written-Off"
)

// ProvisionPolicy holds per-category provisioning rates. Rates are policy
// configuration, not constants.
type ProvisionPolicy struct {
	SubStandard decimal.Decimal
	Doubtful    decimal.Decimal
	Loss        decimal.Decimal
}

// DefaultProvisionPolicy follows RBI norms: 15% / 40% / 100%.
func DefaultProvisionPolicy() ProvisionPolicy {
	return ProvisionPolicy{
		SubStandard: decimal.RequireFromString("0.15"),
		Doubtful:    decimal.RequireFromString("0.40"),
		Loss:        decimal.RequireFromString("1.00"),
	}
}

func (p ProvisionPolicy) Rate(c Category) decimal.Decimal {
	switch c {
	case CategorySubStandard:
		return p.SubStandard
	case CategoryDoubtful:
		return p.Doubtful
	case CategoryLoss:
		return p.Loss
	default:
		return decimal.Zero
	}
}

// Provision is the capital reserved against expected loss on outstanding.
func (p ProvisionPolicy) Provision(outstanding decimal.Decimal, c Category) decimal.Decimal {
	return outstanding.Mul(p.Rate(c)).RoundBank(2)
}

// Record is the derived NPA snapshot for one loan. A loan has at most one
// open record; category changes update it in place.
type Record struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	NpaID             string          `gorm:"column:npa_id;type:char(32);not null;uniqueIndex:ux_npa_npa_id"`
	LoanID            uint64          `gorm:"column:loan_id;not null;index:idx_npa_loan"`
	NpaDate           time.Time       `gorm:"column:npa_date;type:date;not null"`
	DaysOverdue       int             `gorm:"column:days_overdue;not null"`
	OutstandingAmount decimal.Decimal `gorm:"column:outstanding_amount;type:decimal(15,2)"`
	Category          Category        `gorm:"column:npa_category;size:20"`
	ProvisionAmount   decimal.Decimal `gorm:"column:provision_amount;type:decimal(15,2)"`
	Resolution        Resolution      `gorm:"column:resolution_status;size:50;default:'Open'"`
	Notes             string          `gorm:"column:notes;type:text"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Record) TableName() string { return "npa_tracking" }
