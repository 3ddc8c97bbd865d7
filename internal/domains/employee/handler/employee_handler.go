package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"employee-records-backend/internal/domains/employee"
	"employee-records-backend/internal/shared/response"
	"employee-records-backend/pkg/logger"
)

type EmployeeHandler struct {
	svc employee.Service
}

func NewEmployeeHandler(svc employee.Service) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// ListEmployees returns one page of employees with their current salary.
// GET /employees?page=&limit=
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	result, err := h.svc.ListEmployees(c.Request.Context(), page, limit)
	if err != nil {
		logger.Error("ListEmployees failed", err)
		response.InternalServerError(c, "Failed to fetch employees")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// SearchEmployees filters by name and current title.
// GET /employees/search?name=&title=&page=&limit=
func (h *EmployeeHandler) SearchEmployees(c *gin.Context) {
	name := c.Query("name")
	title := c.Query("title")
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	result, err := h.svc.SearchEmployees(c.Request.Context(), name, title, page, limit)
	if err != nil {
		logger.Error("SearchEmployees failed", err)
		response.InternalServerError(c, "Failed to search employees")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetEmployee returns a single employee with its current salary.
// GET /employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	emp, err := h.svc.GetEmployee(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			response.NotFound(c, "Employee not found")
			return
		}
		logger.Error("GetEmployee failed", err)
		response.InternalServerError(c, "Failed to fetch employee")
		return
	}

	response.Success(c, http.StatusOK, emp)
}

// CreateEmployee creates an employee together with its initial salary
// record.
// POST /employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req employee.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Validation failed", err.Error())
		return
	}

	result, err := h.svc.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, employee.ErrDuplicateSSN) {
			response.Conflict(c, "An employee with this SSN already exists")
			return
		}
		logger.Error("CreateEmployee failed", err)
		response.InternalServerError(c, "Failed to create employee")
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GetSalaryHistory returns the employee's salary records, newest first.
// GET /employees/:id/salaries
func (h *EmployeeHandler) GetSalaryHistory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	records, err := h.svc.GetSalaryHistory(c.Request.Context(), id)
	if err != nil {
		logger.Error("GetSalaryHistory failed", err)
		response.InternalServerError(c, "Failed to fetch salary history")
		return
	}

	response.Success(c, http.StatusOK, records)
}

// AddSalary appends a salary record, closing the current one.
// POST /employees/:id/salaries
func (h *EmployeeHandler) AddSalary(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req employee.AddSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Validation failed", err.Error())
		return
	}

	record, err := h.svc.AddSalary(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			response.NotFound(c, "Employee not found")
			return
		}
		logger.Error("AddSalary failed", err)
		response.InternalServerError(c, "Failed to add salary record")
		return
	}

	response.Success(c, http.StatusCreated, record)
}

// GetTitleStats returns min/max salary and employee count per title.
// GET /titles
func (h *EmployeeHandler) GetTitleStats(c *gin.Context) {
	stats, err := h.svc.GetTitleStats(c.Request.Context())
	if err != nil {
		logger.Error("GetTitleStats failed", err)
		response.InternalServerError(c, "Failed to fetch title statistics")
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// paramID parses the :id path segment; writes the 400 itself on failure.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "Invalid employee ID")
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}
