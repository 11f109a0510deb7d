package customermock

import (
	"context"

	domain "credit-risk-ledger/internal/domain/customer"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, c *domain.Customer) error
	GetByCustomerIDFn  func(ctx context.Context, customerID string) (*domain.Customer, error)
	GetEmploymentFn    func(ctx context.Context, customerNumericID uint64) (*domain.EmploymentDetail, error)
	CreateEmploymentFn func(ctx context.Context, e *domain.EmploymentDetail) error
	PurgeCascadeFn     func(ctx context.Context, customerID string) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error) {
	if m.GetByCustomerIDFn != nil {
		return m.GetByCustomerIDFn(ctx, customerID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetEmployment(ctx context.Context, customerNumericID uint64) (*domain.EmploymentDetail, error) {
	if m.GetEmploymentFn != nil {
		return m.GetEmploymentFn(ctx, customerNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) CreateEmployment(ctx context.Context, e *domain.EmploymentDetail) error {
	if m.CreateEmploymentFn != nil {
		return m.CreateEmploymentFn(ctx, e)
	}
	return nil
}

func (m *Repo) PurgeCascade(ctx context.Context, customerID string) error {
	if m.PurgeCascadeFn != nil {
		return m.PurgeCascadeFn(ctx, customerID)
	}
	return nil
}
