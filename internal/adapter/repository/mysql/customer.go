package mysql

import (
	"context"
	"errors"
	"log"

	customerDomain "credit-risk-ledger/internal/domain/customer"
	"credit-risk-ledger/internal/domain/loan"

	"gorm.io/gorm"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) Create(ctx context.Context, c *customerDomain.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepository) GetByCustomerID(ctx context.Context, customerID string) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, customerDomain.ErrNotFound
	}
	return &out, err
}

func (r *CustomerRepository) GetEmployment(ctx context.Context, customerNumericID uint64) (*customerDomain.EmploymentDetail, error) {
	var out customerDomain.EmploymentDetail
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerNumericID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, customerDomain.ErrNotFound
	}
	return &out, err
}

func (r *CustomerRepository) CreateEmployment(ctx context.Context, e *customerDomain.EmploymentDetail) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// PurgeCascade removes a customer and every dependent record, loan financial
// history included. The cascade is explicit and logged; nothing in the
// production lifecycle reaches it.
func (r *CustomerRepository) PurgeCascade(ctx context.Context, customerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := (&CustomerRepository{db: tx}).GetByCustomerID(ctx, customerID)
		if err != nil {
			return err
		}

		var loanIDs []uint64
		if err := tx.Model(&loan.Loan{}).Where("customer_id = ?", c.ID).Pluck("id", &loanIDs).Error; err != nil {
			return err
		}
		if len(loanIDs) > 0 {
			for _, table := range []string{"repayments", "disbursements", "collateral", "guarantors", "npa_tracking"} {
				if err := tx.Exec("DELETE FROM "+table+" WHERE loan_id IN ?", loanIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Exec("DELETE FROM loans WHERE id IN ?", loanIDs).Error; err != nil {
				return err
			}
		}
		for _, table := range []string{"loan_applications", "employment_details"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE customer_id = ?", c.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM customers WHERE id = ?", c.ID).Error; err != nil {
			return err
		}
		log.Printf("purge: customer %s removed with %d loans", customerID, len(loanIDs))
		return nil
	})
}
