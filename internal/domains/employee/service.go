package employee

import (
	"context"
)

// Service is the business logic layer contract.
type Service interface {
	// Listing
	ListEmployees(ctx context.Context, page, limit int) (*EmployeeListResponse, error)
	SearchEmployees(ctx context.Context, name, title string, page, limit int) (*EmployeeListResponse, error)
	GetEmployee(ctx context.Context, id int64) (*EmployeeWithCurrentSalary, error)

	// Mutations
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*CreateEmployeeResponse, error)
	AddSalary(ctx context.Context, employeeID int64, req AddSalaryRequest) (*SalaryRecord, error)

	// Salary history
	GetSalaryHistory(ctx context.Context, employeeID int64) ([]SalaryRecord, error)

	// Statistics
	GetTitleStats(ctx context.Context) ([]TitleStats, error)
}
