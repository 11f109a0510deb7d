package application

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("application not found")
	ErrInvalidInput = errors.New("invalid application input")
	// ErrNotPending guards the single decision step: an application is
	// decided exactly once.
	ErrNotPending = errors.New("application already decided")
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Terminal reports whether the application can no longer change.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// LoanApplication carries the externally-supplied risk assessment alongside the
// requested terms. The decisioning step mutates it exactly once; an Approved
// application spawns exactly one Loan.
type LoanApplication struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	ApplicationID   string          `gorm:"column:application_id;type:char(32);not null;uniqueIndex:ux_applications_application_id"`
	CustomerID      uint64          `gorm:"column:customer_id;not null;index:idx_applications_customer"`
	LoanAmount      decimal.Decimal `gorm:"column:loan_amount;type:decimal(15,2);not null"`
	TenureMonths    int             `gorm:"column:loan_tenure_months;not null"`
	InterestRate    decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null"`
	LoanPurpose     string          `gorm:"column:loan_purpose;size:100"`
	ApplicationDate time.Time       `gorm:"column:application_date;autoCreateTime"`
	Status          Status          `gorm:"column:status;size:20;default:'Pending'"`
	CreditScore     decimal.Decimal `gorm:"column:credit_score;type:decimal(6,2)"`
	RiskProbability decimal.Decimal `gorm:"column:risk_probability;type:decimal(6,4)"`
	RiskLevel       string          `gorm:"column:risk_level;size:20"`
	Recommendation  string          `gorm:"column:recommendation;type:text"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (LoanApplication) TableName() string { return "loan_applications" }
