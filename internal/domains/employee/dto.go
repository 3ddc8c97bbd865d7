package employee

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const dateLayout = "2006-01-02"

var (
	ssnPattern   = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}$`)
)

// validCountries is the fixed list the form offers; anything else is
// rejected server-side too.
var validCountries = []interface{}{
	"United States", "Canada", "Mexico", "United Kingdom", "France",
	"Germany", "Italy", "Spain", "Portugal", "Netherlands",
	"Belgium", "Switzerland", "Austria", "Sweden", "Norway",
	"Denmark", "Finland", "Ireland", "Greece", "Poland",
	"Japan", "China", "South Korea", "India", "Australia",
	"New Zealand", "Brazil", "Argentina", "Chile", "South Africa",
}

// ========================================
// REQUEST DTOs
// ========================================

// CreateEmployeeRequest is the body of POST /employees: a new employee
// plus the title/salary of the initial salary record. The initial record
// starts on the join date and is open-ended.
type CreateEmployeeRequest struct {
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
	Title    string  `json:"title"`
	Salary   int64   `json:"salary"`
}

func (r CreateEmployeeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.SSN,
			validation.Required.Error("ssn is required"),
			validation.Match(ssnPattern).Error("ssn must be in format XXX-XX-XXXX"),
		),
		validation.Field(&r.DOB,
			validation.Required.Error("dob is required"),
			validation.By(validateAge),
		),
		validation.Field(&r.Address,
			validation.Required.Error("address is required"),
		),
		validation.Field(&r.City,
			validation.Required.Error("city is required"),
		),
		validation.Field(&r.Country,
			validation.Required.Error("country is required"),
			validation.In(validCountries...).Error("please select a valid country"),
		),
		validation.Field(&r.Zip,
			validation.Required.Error("zip is required"),
			validation.Match(zipPattern).Error("zip code must be 5 digits"),
		),
		validation.Field(&r.Phone,
			validation.Required.Error("phone is required"),
			validation.Match(phonePattern).Error("phone must be in format XXX-XXX-XXXX"),
		),
		validation.Field(&r.JoinDate,
			validation.Required.Error("join date is required"),
			validation.By(validateDate),
		),
		validation.Field(&r.ExitDate,
			validation.By(validateOptionalDate),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
		),
		validation.Field(&r.Salary,
			// Required comes first: ozzo threshold rules skip zero values.
			validation.Required.Error("salary is required"),
			validation.Min(int64(20000)).Error("salary must be at least 20000"),
		),
	)
}

// AddSalaryRequest is the body of POST /employees/:id/salaries. The stored
// record is always inserted open-ended; a ToDate on the wire is accepted
// for form compatibility but ignored, keeping the single-open-record
// invariant with the close-then-insert write.
type AddSalaryRequest struct {
	FromDate string  `json:"fromDate"`
	ToDate   *string `json:"toDate"`
	Title    string  `json:"title"`
	Salary   int64   `json:"salary"`
}

func (r AddSalaryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FromDate,
			validation.Required.Error("from date is required"),
			validation.By(validateDate),
		),
		validation.Field(&r.ToDate,
			validation.By(validateOptionalDate),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
		),
		validation.Field(&r.Salary,
			validation.Required.Error("salary is required"),
			validation.Min(int64(20000)).Error("salary must be at least 20000"),
		),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// EmployeeListResponse is the page payload of list and search.
// Total semantics differ between the two (see Service.SearchEmployees).
type EmployeeListResponse struct {
	Employees []EmployeeWithCurrentSalary `json:"employees"`
	Total     int                         `json:"total"`
}

// CreateEmployeeResponse pairs the created employee with its initial
// salary record.
type CreateEmployeeResponse struct {
	Employee *Employee     `json:"employee"`
	Salary   *SalaryRecord `json:"salary"`
}

// ========================================
// FIELD VALIDATORS
// ========================================

func validateDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required handles empties
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}
	return nil
}

func validateOptionalDate(value interface{}) error {
	s, _ := value.(*string)
	if s == nil || *s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, *s); err != nil {
		return fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}
	return nil
}

// validateAge enforces the hiring band: a parseable birth date and an age
// between 18 and 100 at validation time.
func validateAge(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	dob, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}

	age := ageAt(dob, time.Now())
	if age < 18 || age > 100 {
		return fmt.Errorf("employee must be between 18 and 100 years old")
	}
	return nil
}

func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() ||
		(now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
