package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-records-backend/internal/domains/employee"
)

// stubService implements employee.Service with pluggable behavior per test.
type stubService struct {
	listFn          func(ctx context.Context, page, limit int) (*employee.EmployeeListResponse, error)
	searchFn        func(ctx context.Context, name, title string, page, limit int) (*employee.EmployeeListResponse, error)
	getFn           func(ctx context.Context, id int64) (*employee.EmployeeWithCurrentSalary, error)
	createFn        func(ctx context.Context, req employee.CreateEmployeeRequest) (*employee.CreateEmployeeResponse, error)
	addSalaryFn     func(ctx context.Context, employeeID int64, req employee.AddSalaryRequest) (*employee.SalaryRecord, error)
	salaryHistoryFn func(ctx context.Context, employeeID int64) ([]employee.SalaryRecord, error)
	titleStatsFn    func(ctx context.Context) ([]employee.TitleStats, error)
}

func (s *stubService) ListEmployees(ctx context.Context, page, limit int) (*employee.EmployeeListResponse, error) {
	return s.listFn(ctx, page, limit)
}

func (s *stubService) SearchEmployees(ctx context.Context, name, title string, page, limit int) (*employee.EmployeeListResponse, error) {
	return s.searchFn(ctx, name, title, page, limit)
}

func (s *stubService) GetEmployee(ctx context.Context, id int64) (*employee.EmployeeWithCurrentSalary, error) {
	return s.getFn(ctx, id)
}

func (s *stubService) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (*employee.CreateEmployeeResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubService) AddSalary(ctx context.Context, employeeID int64, req employee.AddSalaryRequest) (*employee.SalaryRecord, error) {
	return s.addSalaryFn(ctx, employeeID, req)
}

func (s *stubService) GetSalaryHistory(ctx context.Context, employeeID int64) ([]employee.SalaryRecord, error) {
	return s.salaryHistoryFn(ctx, employeeID)
}

func (s *stubService) GetTitleStats(ctx context.Context) ([]employee.TitleStats, error) {
	return s.titleStatsFn(ctx)
}

func setupRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewEmployeeHandler(svc)
	router := gin.New()

	employees := router.Group("/api/v1/employees")
	{
		employees.GET("", h.ListEmployees)
		employees.GET("/search", h.SearchEmployees)
		employees.GET("/:id", h.GetEmployee)
		employees.POST("", h.CreateEmployee)
		employees.GET("/:id/salaries", h.GetSalaryHistory)
		employees.POST("/:id/salaries", h.AddSalary)
	}
	router.GET("/api/v1/titles", h.GetTitleStats)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validCreateBody() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Jane Doe",
		"ssn":      "123-45-6789",
		"dob":      "1990-01-01",
		"address":  "1 Main Street",
		"city":     "Springfield",
		"country":  "United States",
		"zip":      "12345",
		"phone":    "555-123-4567",
		"joinDate": "2020-06-01",
		"title":    "Software Engineer",
		"salary":   90000,
	}
}

func TestListEmployees(t *testing.T) {
	svc := &stubService{
		listFn: func(ctx context.Context, page, limit int) (*employee.EmployeeListResponse, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, limit)
			return &employee.EmployeeListResponse{
				Employees: []employee.EmployeeWithCurrentSalary{
					{
						Employee:      employee.Employee{ID: 6, Name: "Jane Doe"},
						CurrentSalary: &employee.CurrentSalary{Title: "Software Engineer", Salary: 90000},
					},
				},
				Total: 11,
			}, nil
		},
	}

	w := doJSON(t, setupRouter(svc), http.MethodGet, "/api/v1/employees?page=2&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Employees []employee.EmployeeWithCurrentSalary `json:"employees"`
			Total     int                                  `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 11, body.Data.Total)
	require.Len(t, body.Data.Employees, 1)
	assert.Equal(t, "Software Engineer", body.Data.Employees[0].CurrentSalary.Title)
}

func TestSearchEmployeesPassesFilters(t *testing.T) {
	svc := &stubService{
		searchFn: func(ctx context.Context, name, title string, page, limit int) (*employee.EmployeeListResponse, error) {
			assert.Equal(t, "doe", name)
			assert.Equal(t, "engineer", title)
			return &employee.EmployeeListResponse{Employees: []employee.EmployeeWithCurrentSalary{}, Total: 0}, nil
		},
	}

	w := doJSON(t, setupRouter(svc), http.MethodGet, "/api/v1/employees/search?name=doe&title=engineer", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetEmployeeNotFound(t *testing.T) {
	svc := &stubService{
		getFn: func(ctx context.Context, id int64) (*employee.EmployeeWithCurrentSalary, error) {
			return nil, employee.ErrEmployeeNotFound
		},
	}

	w := doJSON(t, setupRouter(svc), http.MethodGet, "/api/v1/employees/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEmployeeInvalidID(t *testing.T) {
	svc := &stubService{}

	w := doJSON(t, setupRouter(svc), http.MethodGet, "/api/v1/employees/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEmployee(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (*employee.CreateEmployeeResponse, error) {
			return &employee.CreateEmployeeResponse{
				Employee: &employee.Employee{ID: 1, Name: req.Name},
				Salary: &employee.SalaryRecord{
					ID: 1, EmployeeID: 1, FromDate: req.JoinDate,
					Title: req.Title, Salary: req.Salary,
				},
			}, nil
		},
	}

	w := doJSON(t, setupRouter(svc), http.MethodPost, "/api/v1/employees", validCreateBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Employee employee.Employee     `json:"employee"`
			Salary   employee.SalaryRecord `json:"salary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Data.Employee.ID)
	assert.Nil(t, body.Data.Salary.ToDate)
}

func TestCreateEmployeeValidationFailure(t *testing.T) {
	createCalled := false
	svc := &stubService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (*employee.CreateEmployeeResponse, error) {
			createCalled = true
			return nil, nil
		},
	}

	body := validCreateBody()
	body["ssn"] = "123456789"

	w := doJSON(t, setupRouter(svc), http.MethodPost, "/api/v1/employees", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, createCalled, "invalid payloads must not reach the service")
	assert.Contains(t, w.Body.String(), "ssn")
}

func TestCreateEmployeeDuplicateSSN(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (*employee.CreateEmployeeResponse, error) {
			return nil, employee.ErrDuplicateSSN
		},
	}

	w := doJSON(t, setupRouter(svc), http.MethodPost, "/api/v1/employees", validCreateBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetSalaryHistory(t *testing.T) {
	closed := "2024-01-01"
	svc := &stubService{
		salaryHistoryFn: func(ctx context.Context, employeeID int64) ([]employee.SalaryRecord, error) {
			assert.Equal(t, int64(6), employeeID)
			return []employee.SalaryRecord{
				{ID: 2, EmployeeID: 6, FromDate: "2024-01-01", Title: "Senior Software Engineer", Salary: 120000},
				{ID: 1, EmployeeID: 6, FromDate: "2020-06-01", ToDate: &closed, Title: "Software Engineer", Salary: 90000},
			}, nil
		},
	}

	w := doJSON(t, setupRouter(svc), http.MethodGet, "/api/v1/employees/6/salaries", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []employee.SalaryRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Nil(t, body.Data[0].ToDate)
	require.NotNil(t, body.Data[1].ToDate)
	assert.Equal(t, "2024-01-01", *body.Data[1].ToDate)
}

func TestAddSalary(t *testing.T) {
	svc := &stubService{
		addSalaryFn: func(ctx context.Context, employeeID int64, req employee.AddSalaryRequest) (*employee.SalaryRecord, error) {
			return &employee.SalaryRecord{
				ID: 3, EmployeeID: employeeID, FromDate: req.FromDate,
				Title: req.Title, Salary: req.Salary,
			}, nil
		},
	}

	body := map[string]interface{}{
		"fromDate": "2024-01-01",
		"title":    "Senior Software Engineer",
		"salary":   120000,
	}

	w := doJSON(t, setupRouter(svc), http.MethodPost, "/api/v1/employees/6/salaries", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data employee.SalaryRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(6), resp.Data.EmployeeID)
	assert.Nil(t, resp.Data.ToDate)
}

func TestAddSalaryUnknownEmployee(t *testing.T) {
	svc := &stubService{
		addSalaryFn: func(ctx context.Context, employeeID int64, req employee.AddSalaryRequest) (*employee.SalaryRecord, error) {
			return nil, employee.ErrEmployeeNotFound
		},
	}

	body := map[string]interface{}{
		"fromDate": "2024-01-01",
		"title":    "Senior Software Engineer",
		"salary":   120000,
	}

	w := doJSON(t, setupRouter(svc), http.MethodPost, "/api/v1/employees/99/salaries", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddSalaryValidationFailure(t *testing.T) {
	svc := &stubService{}

	body := map[string]interface{}{
		"fromDate": "2024-01-01",
		"title":    "Senior Software Engineer",
		"salary":   12000,
	}

	w := doJSON(t, setupRouter(svc), http.MethodPost, "/api/v1/employees/6/salaries", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTitleStats(t *testing.T) {
	svc := &stubService{
		titleStatsFn: func(ctx context.Context) ([]employee.TitleStats, error) {
			return []employee.TitleStats{
				{Title: "Data Analyst", MinSalary: 55000, MaxSalary: 98000, EmployeeCount: 4},
				{Title: "Software Engineer", MinSalary: 60000, MaxSalary: 150000, EmployeeCount: 12},
			}, nil
		},
	}

	w := doJSON(t, setupRouter(svc), http.MethodGet, "/api/v1/titles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []employee.TitleStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.LessOrEqual(t, body.Data[0].MinSalary, body.Data[0].MaxSalary)
	assert.Equal(t, "Data Analyst", body.Data[0].Title)
}

func TestTitleStatsError(t *testing.T) {
	svc := &stubService{
		titleStatsFn: func(ctx context.Context) ([]employee.TitleStats, error) {
			return nil, assert.AnError
		},
	}

	w := doJSON(t, setupRouter(svc), http.MethodGet, "/api/v1/titles", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
