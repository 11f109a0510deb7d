package mysql

import (
	"context"
	"errors"

	npaDomain "credit-risk-ledger/internal/domain/npa"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type NpaRepository struct{ db *gorm.DB }

func NewNpaRepository(db *gorm.DB) *NpaRepository { return &NpaRepository{db: db} }

func (r *NpaRepository) Create(ctx context.Context, rec *npaDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *NpaRepository) Save(ctx context.Context, rec *npaDomain.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *NpaRepository) GetByNpaID(ctx context.Context, npaID string) (*npaDomain.Record, error) {
	var out npaDomain.Record
	err := r.db.WithContext(ctx).Where("npa_id = ?", npaID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, npaDomain.ErrNotFound
	}
	return &out, err
}

func (r *NpaRepository) GetOpenByLoan(ctx context.Context, loanNumericID uint64) (*npaDomain.Record, error) {
	var out npaDomain.Record
	err := r.db.WithContext(ctx).
		Where("loan_id = ? AND resolution_status = ?", loanNumericID, npaDomain.ResolutionOpen).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, npaDomain.ErrNotFound
	}
	return &out, err
}

func (r *NpaRepository) OpenExposure(ctx context.Context) (decimal.Decimal, error) {
	var out decimal.Decimal
	row := r.db.WithContext(ctx).
		Table("loans").
		Joins("JOIN npa_tracking ON npa_tracking.loan_id = loans.id AND npa_tracking.resolution_status = ?", npaDomain.ResolutionOpen).
		Select("COALESCE(SUM(loans.outstanding_amount), 0)").
		Row()
	if err := row.Scan(&out); err != nil {
		return decimal.Zero, err
	}
	return out, nil
}

func (r *NpaRepository) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&npaDomain.Record{}).
		Where("resolution_status = ?", npaDomain.ResolutionOpen).Count(&n).Error
	return n, err
}

func (r *NpaRepository) CategoryBreakdown(ctx context.Context) (map[npaDomain.Category]npaDomain.CategoryStats, error) {
	var rows []struct {
		NpaCategory npaDomain.Category
		N           int64
		Outstanding decimal.Decimal
		Provision   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&npaDomain.Record{}).
		Select("npa_category, COUNT(*) AS n, COALESCE(SUM(outstanding_amount),0) AS outstanding, COALESCE(SUM(provision_amount),0) AS provision").
		Group("npa_category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[npaDomain.Category]npaDomain.CategoryStats, len(rows))
	for _, row := range rows {
		out[row.NpaCategory] = npaDomain.CategoryStats{
			Count:       row.N,
			Outstanding: row.Outstanding,
			Provision:   row.Provision,
		}
	}
	return out, nil
}
