package employee

import "errors"

// Repository-level errors
var (
	// Not Found
	ErrEmployeeNotFound = errors.New("employee not found")

	// Conflict
	ErrDuplicateSSN = errors.New("an employee with this SSN already exists")
)
