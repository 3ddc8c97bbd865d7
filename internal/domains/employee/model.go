package employee

// Dates are carried as YYYY-MM-DD strings end to end. The DATE columns are
// scanned through ::text casts so the wire format never drifts with time
// zones or client locales.

// Employee is a person on the payroll. SSN is unique across all employees.
// ExitDate nil means still employed.
type Employee struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	SSN      string  `json:"ssn"`
	DOB      string  `json:"dob"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Zip      string  `json:"zip"`
	Phone    string  `json:"phone"`
	JoinDate string  `json:"joinDate"`
	ExitDate *string `json:"exitDate"`
}

// SalaryRecord is one interval of an employee's salary history.
// ToDate nil marks the current (open) record; per employee at most one
// record is open at any time.
type SalaryRecord struct {
	ID         int64   `json:"id"`
	EmployeeID int64   `json:"employeeId"`
	FromDate   string  `json:"fromDate"`
	ToDate     *string `json:"toDate"`
	Title      string  `json:"title"`
	Salary     int64   `json:"salary"`
}

// CurrentSalary is the title/amount pair of the open salary record,
// embedded in employee listings.
type CurrentSalary struct {
	Title  string `json:"title"`
	Salary int64  `json:"salary"`
}

// EmployeeWithCurrentSalary annotates an employee with the open salary
// record, when one exists.
type EmployeeWithCurrentSalary struct {
	Employee
	CurrentSalary *CurrentSalary `json:"currentSalary,omitempty"`
}

// TitleStats aggregates salaries per job title over the full history,
// not just current records. EmployeeCount counts distinct employees that
// ever held the title.
type TitleStats struct {
	Title         string `json:"title"`
	MinSalary     int64  `json:"minSalary"`
	MaxSalary     int64  `json:"maxSalary"`
	EmployeeCount int    `json:"employeeCount"`
}
