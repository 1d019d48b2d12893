package employee

import (
	"context"
	"strings"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/employee"
	"github.com/ai-finance/finance-backend-go/internal/pkg/validator"
)

type transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type EmployeeServiceImpl struct {
	tx           transactor
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewEmployeeService(tx transactor, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.ToResponse(e))
	}
	return resp, nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Role:          roleOrDefault(req.Role),
		Department:    req.Department,
		BaseSalary:    *req.BaseSalary,
		JoinDate:      s.joinDate(req.JoinDate),
		Status:        employee.StatusActive,
		BankAccountNo: req.BankAccountNo,
		BankIFSC:      req.BankIFSC,
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(created), nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		current.FullName = strings.TrimSpace(req.FullName)
		current.Email = strings.ToLower(strings.TrimSpace(req.Email))
		current.Role = roleOrDefault(req.Role)
		current.Department = req.Department
		current.BaseSalary = *req.BaseSalary
		current.BankAccountNo = req.BankAccountNo
		current.BankIFSC = req.BankIFSC
		if req.JoinDate != nil && *req.JoinDate != "" {
			current.JoinDate = s.joinDate(req.JoinDate)
		}
		if req.Status != "" {
			current.Status = employee.Status(req.Status)
		}

		updated, err = s.employeeRepo.Update(ctx, current)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(updated), nil
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}
	return s.employeeRepo.Delete(ctx, id)
}

func roleOrDefault(role string) employee.Role {
	if role == "" {
		return employee.RoleEmployee
	}
	return employee.Role(role)
}

// joinDate parses an already validated date, defaulting to today
func (s *EmployeeServiceImpl) joinDate(raw *string) time.Time {
	if raw != nil && *raw != "" {
		if t, ok := validator.IsValidDate(*raw); ok {
			return t
		}
	}
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
