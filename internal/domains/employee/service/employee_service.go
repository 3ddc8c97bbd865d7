package service

import (
	"context"
	"strings"
	"time"

	"employee-records-backend/internal/domains/employee"
	"employee-records-backend/pkg/cache"
	"employee-records-backend/pkg/logger"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	// maxLimit caps page size; the API enforces no contract above this.
	maxLimit = 100

	titleStatsCacheKey = "employee:title-stats"
	titleStatsCacheTTL = 5 * time.Minute
)

type employeeService struct {
	repo  employee.Repository
	cache cache.Cache
}

// NewService builds the employee service. cache may be nil, in which case
// title statistics are always computed from the store.
func NewService(repo employee.Repository, cache cache.Cache) employee.Service {
	return &employeeService{repo: repo, cache: cache}
}

func (s *employeeService) ListEmployees(ctx context.Context, page, limit int) (*employee.EmployeeListResponse, error) {
	page, limit = normalizePaging(page, limit)

	employees, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &employee.EmployeeListResponse{Employees: employees, Total: total}, nil
}

// SearchEmployees matches name at the store level and title in-process
// against the current salary record. When a title filter is present,
// total is the match count within the fetched page, not a global count;
// without one it is the full name-filtered count. That asymmetry is kept
// for compatibility with existing consumers.
func (s *employeeService) SearchEmployees(ctx context.Context, name, title string, page, limit int) (*employee.EmployeeListResponse, error) {
	page, limit = normalizePaging(page, limit)

	employees, total, err := s.repo.Search(ctx, name, page, limit)
	if err != nil {
		return nil, err
	}

	if title == "" {
		return &employee.EmployeeListResponse{Employees: employees, Total: total}, nil
	}

	titleLower := strings.ToLower(title)
	filtered := []employee.EmployeeWithCurrentSalary{}
	for _, emp := range employees {
		if emp.CurrentSalary == nil {
			continue
		}
		if strings.Contains(strings.ToLower(emp.CurrentSalary.Title), titleLower) {
			filtered = append(filtered, emp)
		}
	}

	return &employee.EmployeeListResponse{Employees: filtered, Total: len(filtered)}, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, id int64) (*employee.EmployeeWithCurrentSalary, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *employeeService) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (*employee.CreateEmployeeResponse, error) {
	emp := &employee.Employee{
		Name:     req.Name,
		SSN:      req.SSN,
		DOB:      req.DOB,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Zip:      req.Zip,
		Phone:    req.Phone,
		JoinDate: req.JoinDate,
		ExitDate: normalizeOptionalDate(req.ExitDate),
	}

	created, salary, err := s.repo.CreateWithInitialSalary(ctx, emp, req.Title, req.Salary)
	if err != nil {
		return nil, err
	}

	s.invalidateTitleStats(ctx)

	return &employee.CreateEmployeeResponse{Employee: created, Salary: salary}, nil
}

func (s *employeeService) AddSalary(ctx context.Context, employeeID int64, req employee.AddSalaryRequest) (*employee.SalaryRecord, error) {
	// Resolve the employee first so an unknown id surfaces as not-found
	// rather than a foreign key failure.
	if _, err := s.repo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	rec := &employee.SalaryRecord{
		EmployeeID: employeeID,
		FromDate:   req.FromDate,
		Title:      req.Title,
		Salary:     req.Salary,
	}

	created, err := s.repo.AddSalary(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.invalidateTitleStats(ctx)

	return created, nil
}

func (s *employeeService) GetSalaryHistory(ctx context.Context, employeeID int64) ([]employee.SalaryRecord, error) {
	return s.repo.SalaryHistory(ctx, employeeID)
}

func (s *employeeService) GetTitleStats(ctx context.Context) ([]employee.TitleStats, error) {
	if s.cache != nil {
		var cached []employee.TitleStats
		found, err := s.cache.Get(ctx, titleStatsCacheKey, &cached)
		if err != nil {
			// Cache trouble must not take the endpoint down.
			logger.Error("GetTitleStats: cache read failed", err)
		}
		if found {
			return cached, nil
		}
	}

	stats, err := s.repo.TitleStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, titleStatsCacheKey, stats, titleStatsCacheTTL); err != nil {
			logger.Error("GetTitleStats: cache write failed", err)
		}
	}

	return stats, nil
}

// invalidateTitleStats drops the cached aggregate after any salary write.
func (s *employeeService) invalidateTitleStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, titleStatsCacheKey); err != nil {
		logger.Error("invalidateTitleStats: cache delete failed", err)
	}
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func normalizeOptionalDate(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	return d
}
