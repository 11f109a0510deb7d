package mysql

import (
	"context"
	"errors"

	loanDomain "credit-risk-ledger/internal/domain/loan"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, err
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := lockForUpdate(r.db).WithContext(ctx).Where("loan_id = ?", loanID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, err
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, err
}

func (r *LoanRepository) ListOpenIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("loan_status IN ?", []loanDomain.Status{loanDomain.StatusActive, loanDomain.StatusDefaulted}).
		Order("id ASC").
		Pluck("loan_id", &ids).Error
	return ids, err
}

func (r *LoanRepository) CreateDisbursement(ctx context.Context, d *loanDomain.Disbursement) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *LoanRepository) ListDisbursements(ctx context.Context, loanNumericID uint64) ([]loanDomain.Disbursement, error) {
	var out []loanDomain.Disbursement
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("disbursement_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) SumDisbursed(ctx context.Context, loanNumericID uint64) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&loanDomain.Disbursement{}).Where("loan_id = ?", loanNumericID), "amount")
}

func (r *LoanRepository) CreateCollateral(ctx context.Context, c *loanDomain.Collateral) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *LoanRepository) CreateGuarantor(ctx context.Context, g *loanDomain.Guarantor) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Count(&n).Error
	return n, err
}

func (r *LoanRepository) CountByStatus(ctx context.Context, s loanDomain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Where("loan_status = ?", s).Count(&n).Error
	return n, err
}

func (r *LoanRepository) SumOutstandingByStatus(ctx context.Context, statuses ...loanDomain.Status) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&loanDomain.Loan{}).Where("loan_status IN ?", statuses), "outstanding_amount")
}

func (r *LoanRepository) SumDisbursedAll(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&loanDomain.Loan{}), "disbursed_amount")
}

func (r *LoanRepository) SumTotalPaid(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&loanDomain.Loan{}), "total_paid")
}

func (r *LoanRepository) sum(ctx context.Context, q *gorm.DB, column string) (decimal.Decimal, error) {
	var out decimal.Decimal
	row := q.WithContext(ctx).Select("COALESCE(SUM(" + column + "), 0)").Row()
	if err := row.Scan(&out); err != nil {
		return decimal.Zero, err
	}
	return out, nil
}
