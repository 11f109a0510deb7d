package mysql

import (
	"context"
	"database/sql"
	"time"

	repaymentDomain "credit-risk-ledger/internal/domain/repayment"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

func (r *RepaymentRepository) CreateBatch(ctx context.Context, installments []*repaymentDomain.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(installments).Error
}

func (r *RepaymentRepository) Save(ctx context.Context, i *repaymentDomain.Installment) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *RepaymentRepository) ListByLoan(ctx context.Context, loanNumericID uint64) ([]*repaymentDomain.Installment, error) {
	var out []*repaymentDomain.Installment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("due_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *RepaymentRepository) StatusDistribution(ctx context.Context) (map[repaymentDomain.PaymentStatus]int64, error) {
	var rows []struct {
		PaymentStatus repaymentDomain.PaymentStatus
		N             int64
	}
	err := r.db.WithContext(ctx).Model(&repaymentDomain.Installment{}).
		Select("payment_status, COUNT(*) AS n").
		Group("payment_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[repaymentDomain.PaymentStatus]int64, len(rows))
	for _, row := range rows {
		out[row.PaymentStatus] = row.N
	}
	return out, nil
}

func (r *RepaymentRepository) CountDueBefore(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&repaymentDomain.Installment{}).
		Where("due_date <= ?", asOf).Count(&n).Error
	return n, err
}

func (r *RepaymentRepository) CountPaidOnTimeBefore(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&repaymentDomain.Installment{}).
		Where("due_date <= ? AND payment_status = ? AND payment_date IS NOT NULL AND payment_date <= due_date",
			asOf, repaymentDomain.StatusPaid).
		Count(&n).Error
	return n, err
}

func (r *RepaymentRepository) SumEMIDue(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&repaymentDomain.Installment{}), "emi_amount")
}

func (r *RepaymentRepository) SumCollected(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&repaymentDomain.Installment{}), "amount_paid")
}

func (r *RepaymentRepository) SumPenalties(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&repaymentDomain.Installment{}), "penalty_amount")
}

func (r *RepaymentRepository) AvgDaysOverdue(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	row := r.db.WithContext(ctx).Model(&repaymentDomain.Installment{}).
		Where("days_overdue > 0").
		Select("AVG(days_overdue)").Row()
	if err := row.Scan(&avg); err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *RepaymentRepository) sum(ctx context.Context, q *gorm.DB, column string) (decimal.Decimal, error) {
	var out decimal.Decimal
	row := q.WithContext(ctx).Select("COALESCE(SUM(" + column + "), 0)").Row()
	if err := row.Scan(&out); err != nil {
		return decimal.Zero, err
	}
	return out, nil
}
