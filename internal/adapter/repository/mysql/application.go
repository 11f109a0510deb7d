package mysql

import (
	"context"
	"errors"

	applicationDomain "credit-risk-ledger/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *applicationDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *applicationDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*applicationDomain.LoanApplication, error) {
	return r.get(ctx, r.db, applicationID)
}

func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*applicationDomain.LoanApplication, error) {
	return r.get(ctx, lockForUpdate(r.db), applicationID)
}

func (r *ApplicationRepository) get(ctx context.Context, db *gorm.DB, applicationID string) (*applicationDomain.LoanApplication, error) {
	var out applicationDomain.LoanApplication
	err := db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, applicationDomain.ErrNotFound
	}
	return &out, err
}

func (r *ApplicationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&applicationDomain.LoanApplication{}).Count(&n).Error
	return n, err
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, s applicationDomain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&applicationDomain.LoanApplication{}).
		Where("status = ?", s).Count(&n).Error
	return n, err
}

// lockForUpdate applies SELECT ... FOR UPDATE on dialects that support it.
// The SQLite test dialect serializes writes on its own.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
