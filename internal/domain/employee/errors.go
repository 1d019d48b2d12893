package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrEmployeeInUse    = errors.New("employee has payroll or expense records")
)
