package customer

import "context"

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByCustomerID(ctx context.Context, customerID string) (*Customer, error)
	GetEmployment(ctx context.Context, customerNumericID uint64) (*EmploymentDetail, error)
	CreateEmployment(ctx context.Context, e *EmploymentDetail) error

	// PurgeCascade deletes a customer and every dependent financial record.
	// Admin/seed/test paths only; production lifecycle code never deletes
	// financial history.
	PurgeCascade(ctx context.Context, customerID string) error
}
