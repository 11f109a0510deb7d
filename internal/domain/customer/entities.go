package customer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("customer not found")

// Customer is reference data for the ledger: the engine reads it, never
// mutates it. PAN/Aadhar carry unique indexes (identity invariant).
type Customer struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID   string    `gorm:"column:customer_id;type:char(32);not null;uniqueIndex:ux_customers_customer_id"`
	FirstName    string    `gorm:"column:first_name;size:100;not null"`
	LastName     string    `gorm:"column:last_name;size:100;not null"`
	DateOfBirth  time.Time `gorm:"column:date_of_birth;type:date;not null"`
	Gender       string    `gorm:"column:gender;size:10"`
	Email        string    `gorm:"column:email;size:200;not null;uniqueIndex:ux_customers_email"`
	Phone        string    `gorm:"column:phone;size:20;not null"`
	Address      string    `gorm:"column:address;type:text"`
	City         string    `gorm:"column:city;size:100"`
	State        string    `gorm:"column:state;size:100"`
	Pincode      string    `gorm:"column:pincode;size:10"`
	PANNumber    string    `gorm:"column:pan_number;size:10;uniqueIndex:ux_customers_pan"`
	AadharNumber string    `gorm:"column:aadhar_number;size:12;uniqueIndex:ux_customers_aadhar"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string { return "customers" }

// EmploymentDetail is the income evidence consumed upstream by risk scoring.
// Read-only input to this core.
type EmploymentDetail struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID        uint64          `gorm:"column:customer_id;not null;index:idx_employment_customer"`
	EmployerName      string          `gorm:"column:employer_name;size:200"`
	EmploymentType    string          `gorm:"column:employment_type;size:50"`
	Designation       string          `gorm:"column:designation;size:100"`
	MonthlyIncome     decimal.Decimal `gorm:"column:monthly_income;type:decimal(15,2);not null"`
	YearsOfExperience decimal.Decimal `gorm:"column:years_of_experience;type:decimal(5,2)"`
	OfficeAddress     string          `gorm:"column:office_address;type:text"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (EmploymentDetail) TableName() string { return "employment_details" }
