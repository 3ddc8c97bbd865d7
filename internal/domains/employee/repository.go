package employee

import (
	"context"
)

// Repository is the contract for the data access layer. It is the sole
// authority over the employees and employee_salaries tables and the
// enforcer of the single-open-salary-record invariant.
type Repository interface {
	// List returns one page of employees ordered by id ascending, each
	// annotated with its current salary, plus the total employee count.
	List(ctx context.Context, page, limit int) ([]EmployeeWithCurrentSalary, int, error)

	// Search filters by case-insensitive substring match on name at the
	// store level. Title filtering is applied afterwards by the service
	// because title lives in the salary table. total is the name-filtered
	// count, unrelated to any title filter.
	Search(ctx context.Context, name string, page, limit int) ([]EmployeeWithCurrentSalary, int, error)

	// GetByID returns one employee with its current salary.
	// Returns ErrEmployeeNotFound when absent.
	GetByID(ctx context.Context, id int64) (*EmployeeWithCurrentSalary, error)

	// CreateWithInitialSalary inserts the employee and its initial salary
	// record (from_date = join date, open-ended) in a single transaction.
	// Returns ErrDuplicateSSN on SSN uniqueness violation.
	CreateWithInitialSalary(ctx context.Context, emp *Employee, title string, salary int64) (*Employee, *SalaryRecord, error)

	// SalaryHistory returns all salary records for the employee ordered
	// by from_date descending.
	SalaryHistory(ctx context.Context, employeeID int64) ([]SalaryRecord, error)

	// CurrentSalary returns the open salary record, or nil when the
	// employee has none.
	CurrentSalary(ctx context.Context, employeeID int64) (*SalaryRecord, error)

	// AddSalary closes any open record (to_date = rec.FromDate) and
	// inserts rec open-ended, both inside one transaction so concurrent
	// calls can never leave two open records.
	AddSalary(ctx context.Context, rec *SalaryRecord) (*SalaryRecord, error)

	// TitleStats aggregates min/max salary and distinct employee count per
	// title over the full salary history, ordered by title ascending.
	TitleStats(ctx context.Context) ([]TitleStats, error)
}
