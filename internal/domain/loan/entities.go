package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("loan not found")
	ErrInvalidTransition  = errors.New("invalid loan state transition")
	ErrOverDisbursement   = errors.New("disbursement exceeds loan amount")
	ErrOutstandingBalance = errors.New("loan has outstanding balance")
	// ErrClosed means the loan is in a state that accepts no further
	// ledger mutation (Closed or Written-Off).
	ErrClosed        = errors.New("loan already closed")
	ErrInvalidAmount = errors.New("amount must be positive")
)

type Status string

const (
	StatusActive     Status = "Active"
	StatusClosed     Status = "Closed"
	StatusDefaulted  Status = "Defaulted"
	StatusWrittenOff Status = "Written-Off"
)

// transitions is the exhaustive table of legal status changes. Closed and
// Written-Off are final; Defaulted can only be written off.
var transitions = map[Status][]Status{
	StatusActive:    {StatusClosed, StatusDefaulted, StatusWrittenOff},
	StatusDefaulted: {StatusWrittenOff},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// AcceptsPayments reports whether the ledger may still apply payments.
// Defaulted loans accept catch-up payments; Closed/Written-Off do not.
func (s Status) AcceptsPayments() bool {
	return s == StatusActive || s == StatusDefaulted
}

// Loan is the funded contract. OutstandingAmount and TotalPaid are cached
// projections of the installment ledger, re-derived inside every mutating
// transaction rather than incremented independently.
type Loan struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	LoanID            string          `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id"`
	ApplicationID     uint64          `gorm:"column:application_id;not null;uniqueIndex:ux_loans_application"`
	CustomerID        uint64          `gorm:"column:customer_id;not null;index:idx_loans_customer"`
	LoanAmount        decimal.Decimal `gorm:"column:loan_amount;type:decimal(15,2);not null"`
	DisbursedAmount   decimal.Decimal `gorm:"column:disbursed_amount;type:decimal(15,2)"`
	InterestRate      decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null"`
	TenureMonths      int             `gorm:"column:tenure_months;not null"`
	EMIAmount         decimal.Decimal `gorm:"column:emi_amount;type:decimal(15,2)"`
	StartDate         time.Time       `gorm:"column:loan_start_date;type:date"`
	EndDate           time.Time       `gorm:"column:loan_end_date;type:date"`
	Status            Status          `gorm:"column:loan_status;size:20;default:'Active';index:idx_loans_status"`
	OutstandingAmount decimal.Decimal `gorm:"column:outstanding_amount;type:decimal(15,2)"`
	TotalPaid         decimal.Decimal `gorm:"column:total_paid;type:decimal(15,2);default:0"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Loan) TableName() string { return "loans" }

// TransitionTo flips the status or fails with ErrInvalidTransition.
func (l *Loan) TransitionTo(next Status) error {
	if !l.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	l.Status = next
	return nil
}

// Disbursement is one payout tranche. Append-only.
type Disbursement struct {
	ID               uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	LoanID           uint64          `gorm:"column:loan_id;not null;index:idx_disbursements_loan"`
	DisbursementDate time.Time       `gorm:"column:disbursement_date;type:date;not null"`
	Amount           decimal.Decimal `gorm:"column:amount;type:decimal(15,2);not null"`
	PaymentMode      string          `gorm:"column:payment_mode;size:50"`
	ReferenceNumber  string          `gorm:"column:reference_number;size:100"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Disbursement) TableName() string { return "disbursements" }

// Collateral and Guarantor are static supporting records; they have no
// lifecycle interaction with the ledger beyond existence.
type Collateral struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	LoanID         uint64          `gorm:"column:loan_id;not null;index:idx_collateral_loan"`
	CollateralType string          `gorm:"column:collateral_type;size:100"`
	Description    string          `gorm:"column:description;type:text"`
	EstimatedValue decimal.Decimal `gorm:"column:estimated_value;type:decimal(15,2)"`
	ValuationDate  time.Time       `gorm:"column:valuation_date;type:date"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Collateral) TableName() string { return "collateral" }

type Guarantor struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	LoanID        uint64          `gorm:"column:loan_id;not null;index:idx_guarantors_loan"`
	FullName      string          `gorm:"column:full_name;size:200;not null"`
	Relationship  string          `gorm:"column:relationship;size:100"`
	Phone         string          `gorm:"column:phone;size:20"`
	Email         string          `gorm:"column:email;size:200"`
	MonthlyIncome decimal.Decimal `gorm:"column:monthly_income;type:decimal(15,2)"`
	Address       string          `gorm:"column:address;type:text"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Guarantor) TableName() string { return "guarantors" }
