package repository

import (
	"context"
	"errors"
	"fmt"

	"employee-records-backend/internal/domains/employee"
	"employee-records-backend/pkg/database"
	"employee-records-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) employee.Repository {
	return &postgresRepository{pool: pool}
}

// employeeColumns are the select columns shared by every employee query.
// DATE columns go through ::text so the YYYY-MM-DD wire format is exact.
const employeeColumns = `
	e.id, e.name, e.ssn, e.dob::text, e.address, e.city, e.country,
	e.zip, e.phone, e.join_date::text, e.exit_date::text`

const salaryColumns = `
	s.id, s.employee_id, s.from_date::text, s.to_date::text, s.title, s.salary`

func (r *postgresRepository) List(
	ctx context.Context,
	page, limit int,
) ([]employee.EmployeeWithCurrentSalary, int, error) {
	const countQuery = `SELECT COUNT(*) FROM employees`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		logger.Error("List: count failed", err)
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	// Current salary joined on the open record (to_date IS NULL); at most
	// one such record exists per employee.
	const query = `
		SELECT ` + employeeColumns + `, s.title, s.salary
		FROM employees e
		LEFT JOIN employee_salaries s
			ON s.employee_id = e.id AND s.to_date IS NULL
		ORDER BY e.id ASC
		LIMIT $1 OFFSET $2
	`

	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		logger.Error("List: query failed", err)
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees, err := scanEmployeesWithSalary(rows)
	if err != nil {
		logger.Error("List: scan failed", err)
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, total, nil
}

func (r *postgresRepository) Search(
	ctx context.Context,
	name string,
	page, limit int,
) ([]employee.EmployeeWithCurrentSalary, int, error) {
	const countQuery = `
		SELECT COUNT(*) FROM employees e
		WHERE ($1 = '' OR e.name ILIKE '%' || $1 || '%')
	`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, name).Scan(&total); err != nil {
		logger.Error("Search: count failed", err)
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	const query = `
		SELECT ` + employeeColumns + `, s.title, s.salary
		FROM employees e
		LEFT JOIN employee_salaries s
			ON s.employee_id = e.id AND s.to_date IS NULL
		WHERE ($1 = '' OR e.name ILIKE '%' || $1 || '%')
		ORDER BY e.id ASC
		LIMIT $2 OFFSET $3
	`

	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx, query, name, limit, offset)
	if err != nil {
		logger.Error("Search: query failed", err)
		return nil, 0, fmt.Errorf("failed to search employees: %w", err)
	}
	defer rows.Close()

	employees, err := scanEmployeesWithSalary(rows)
	if err != nil {
		logger.Error("Search: scan failed", err)
		return nil, 0, fmt.Errorf("failed to search employees: %w", err)
	}

	return employees, total, nil
}

func (r *postgresRepository) GetByID(
	ctx context.Context,
	id int64,
) (*employee.EmployeeWithCurrentSalary, error) {
	const query = `
		SELECT ` + employeeColumns + `
		FROM employees e
		WHERE e.id = $1
	`

	result := &employee.EmployeeWithCurrentSalary{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.SSN,
		&result.DOB,
		&result.Address,
		&result.City,
		&result.Country,
		&result.Zip,
		&result.Phone,
		&result.JoinDate,
		&result.ExitDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	current, err := r.CurrentSalary(ctx, id)
	if err != nil {
		return nil, err
	}
	if current != nil {
		result.CurrentSalary = &employee.CurrentSalary{
			Title:  current.Title,
			Salary: current.Salary,
		}
	}

	return result, nil
}

type createResult struct {
	emp *employee.Employee
	sal *employee.SalaryRecord
}

func (r *postgresRepository) CreateWithInitialSalary(
	ctx context.Context,
	emp *employee.Employee,
	title string,
	salary int64,
) (*employee.Employee, *employee.SalaryRecord, error) {
	// Employee insert and initial salary insert share one transaction: a
	// failure between them must not leave an employee without history.
	res, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (createResult, error) {
		const insertEmployee = `
			INSERT INTO employees (
				name, ssn, dob, address, city, country, zip, phone,
				join_date, exit_date
			)
			VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9::date, $10::date)
			RETURNING
				id, name, ssn, dob::text, address, city, country, zip, phone,
				join_date::text, exit_date::text
		`

		created := &employee.Employee{}
		err := tx.QueryRow(ctx, insertEmployee,
			emp.Name,
			emp.SSN,
			emp.DOB,
			emp.Address,
			emp.City,
			emp.Country,
			emp.Zip,
			emp.Phone,
			emp.JoinDate,
			emp.ExitDate,
		).Scan(
			&created.ID,
			&created.Name,
			&created.SSN,
			&created.DOB,
			&created.Address,
			&created.City,
			&created.Country,
			&created.Zip,
			&created.Phone,
			&created.JoinDate,
			&created.ExitDate,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				logger.Error("CreateWithInitialSalary: duplicate ssn", err)
				return createResult{}, employee.ErrDuplicateSSN
			}
			logger.Error("CreateWithInitialSalary: insert employee failed", err)
			return createResult{}, fmt.Errorf("failed to create employee: %w", err)
		}

		// Initial record starts on the join date and is open-ended.
		const insertSalary = `
			INSERT INTO employee_salaries (employee_id, from_date, to_date, title, salary)
			VALUES ($1, $2::date, NULL, $3, $4)
			RETURNING id, employee_id, from_date::text, to_date::text, title, salary
		`

		rec := &employee.SalaryRecord{}
		err = tx.QueryRow(ctx, insertSalary,
			created.ID,
			created.JoinDate,
			title,
			salary,
		).Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.FromDate,
			&rec.ToDate,
			&rec.Title,
			&rec.Salary,
		)
		if err != nil {
			logger.Error("CreateWithInitialSalary: insert salary failed", err)
			return createResult{}, fmt.Errorf("failed to create initial salary: %w", err)
		}

		return createResult{emp: created, sal: rec}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	return res.emp, res.sal, nil
}

func (r *postgresRepository) SalaryHistory(
	ctx context.Context,
	employeeID int64,
) ([]employee.SalaryRecord, error) {
	const query = `
		SELECT ` + salaryColumns + `
		FROM employee_salaries s
		WHERE s.employee_id = $1
		ORDER BY s.from_date DESC
	`

	rows, err := r.pool.Query(ctx, query, employeeID)
	if err != nil {
		logger.Error("SalaryHistory: query failed", err)
		return nil, fmt.Errorf("failed to get salary history: %w", err)
	}
	defer rows.Close()

	records := []employee.SalaryRecord{}
	for rows.Next() {
		var rec employee.SalaryRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.FromDate,
			&rec.ToDate,
			&rec.Title,
			&rec.Salary,
		); err != nil {
			logger.Error("SalaryHistory: scan failed", err)
			return nil, fmt.Errorf("failed to get salary history: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get salary history: %w", err)
	}

	return records, nil
}

func (r *postgresRepository) CurrentSalary(
	ctx context.Context,
	employeeID int64,
) (*employee.SalaryRecord, error) {
	const query = `
		SELECT ` + salaryColumns + `
		FROM employee_salaries s
		WHERE s.employee_id = $1 AND s.to_date IS NULL
		LIMIT 1
	`

	rec := &employee.SalaryRecord{}
	err := r.pool.QueryRow(ctx, query, employeeID).Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.FromDate,
		&rec.ToDate,
		&rec.Title,
		&rec.Salary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No open record is a normal state, not an error.
			return nil, nil
		}
		logger.Error("CurrentSalary: database error", err)
		return nil, fmt.Errorf("failed to get current salary: %w", err)
	}

	return rec, nil
}

func (r *postgresRepository) AddSalary(
	ctx context.Context,
	rec *employee.SalaryRecord,
) (*employee.SalaryRecord, error) {
	// Close-then-insert runs in one transaction so concurrent calls for
	// the same employee cannot leave two open records.
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*employee.SalaryRecord, error) {
		const closeQuery = `
			UPDATE employee_salaries
			SET to_date = $2::date
			WHERE employee_id = $1 AND to_date IS NULL
		`

		if _, err := tx.Exec(ctx, closeQuery, rec.EmployeeID, rec.FromDate); err != nil {
			logger.Error("AddSalary: close current record failed", err)
			return nil, fmt.Errorf("failed to close current salary: %w", err)
		}

		const insertQuery = `
			INSERT INTO employee_salaries (employee_id, from_date, to_date, title, salary)
			VALUES ($1, $2::date, NULL, $3, $4)
			RETURNING id, employee_id, from_date::text, to_date::text, title, salary
		`

		created := &employee.SalaryRecord{}
		err := tx.QueryRow(ctx, insertQuery,
			rec.EmployeeID,
			rec.FromDate,
			rec.Title,
			rec.Salary,
		).Scan(
			&created.ID,
			&created.EmployeeID,
			&created.FromDate,
			&created.ToDate,
			&created.Title,
			&created.Salary,
		)
		if err != nil {
			logger.Error("AddSalary: insert failed", err)
			return nil, fmt.Errorf("failed to add salary record: %w", err)
		}

		return created, nil
	})
}

func (r *postgresRepository) TitleStats(ctx context.Context) ([]employee.TitleStats, error) {
	// Aggregates over all historical records, not just open ones; each
	// employee counts once per title regardless of how many records they
	// have with it.
	const query = `
		SELECT title,
		       MIN(salary) AS min_salary,
		       MAX(salary) AS max_salary,
		       COUNT(DISTINCT employee_id) AS employee_count
		FROM employee_salaries
		GROUP BY title
		ORDER BY title ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("TitleStats: query failed", err)
		return nil, fmt.Errorf("failed to get title stats: %w", err)
	}
	defer rows.Close()

	stats := []employee.TitleStats{}
	for rows.Next() {
		var st employee.TitleStats
		if err := rows.Scan(&st.Title, &st.MinSalary, &st.MaxSalary, &st.EmployeeCount); err != nil {
			logger.Error("TitleStats: scan failed", err)
			return nil, fmt.Errorf("failed to get title stats: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get title stats: %w", err)
	}

	return stats, nil
}

// scanEmployeesWithSalary walks rows produced by the list/search join.
func scanEmployeesWithSalary(rows pgx.Rows) ([]employee.EmployeeWithCurrentSalary, error) {
	employees := []employee.EmployeeWithCurrentSalary{}
	for rows.Next() {
		var emp employee.EmployeeWithCurrentSalary
		var title *string
		var salary *int64

		if err := rows.Scan(
			&emp.ID,
			&emp.Name,
			&emp.SSN,
			&emp.DOB,
			&emp.Address,
			&emp.City,
			&emp.Country,
			&emp.Zip,
			&emp.Phone,
			&emp.JoinDate,
			&emp.ExitDate,
			&title,
			&salary,
		); err != nil {
			return nil, err
		}

		if title != nil && salary != nil {
			emp.CurrentSalary = &employee.CurrentSalary{
				Title:  *title,
				Salary: *salary,
			}
		}

		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
