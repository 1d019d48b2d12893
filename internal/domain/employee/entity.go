package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	FullName      string
	Email         string
	Role          Role
	Department    *string
	BaseSalary    decimal.Decimal // annual
	JoinDate      time.Time
	Status        Status
	BankAccountNo *string
	BankIFSC      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Role string

const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
