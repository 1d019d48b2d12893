package export

type EmployeeRow struct {
	ID            Cell `csv:"id"`
	FullName      Cell `csv:"full_name"`
	Email         Cell `csv:"email"`
	Role          Cell `csv:"role"`
	Department    Cell `csv:"department"`
	BaseSalary    Cell `csv:"base_salary"`
	JoinDate      Cell `csv:"join_date"`
	Status        Cell `csv:"status"`
	BankAccountNo Cell `csv:"bank_account_no"`
	BankIFSC      Cell `csv:"bank_ifsc"`
	CreatedAt     Cell `csv:"created_at"`
}

type CategoryRow struct {
	ID          Cell `csv:"id"`
	Name        Cell `csv:"name"`
	BudgetLimit Cell `csv:"budget_limit"`
	Description Cell `csv:"description"`
}

type ExpenseRow struct {
	ID           Cell `csv:"id"`
	UserID       Cell `csv:"user_id"`
	CategoryID   Cell `csv:"category_id"`
	Description  Cell `csv:"description"`
	Amount       Cell `csv:"amount"`
	DateIncurred Cell `csv:"date_incurred"`
	Status       Cell `csv:"status"`
	ReceiptURL   Cell `csv:"receipt_url"`
	AIFlag       Cell `csv:"ai_flag"`
	AIConfidence Cell `csv:"ai_confidence"`
	CreatedAt    Cell `csv:"created_at"`
}

type PayrollRow struct {
	ID              Cell `csv:"id"`
	EmployeeID      Cell `csv:"employee_id"`
	MonthYear       Cell `csv:"month_year"`
	Basic           Cell `csv:"basic"`
	HRA             Cell `csv:"hra"`
	Special         Cell `csv:"special"`
	OvertimePay     Cell `csv:"overtime_pay"`
	GrossSalary     Cell `csv:"gross_salary"`
	PF              Cell `csv:"pf"`
	ProfessionalTax Cell `csv:"professional_tax"`
	TDS             Cell `csv:"tds"`
	LeaveDeduction  Cell `csv:"leave_deduction"`
	TotalDeductions Cell `csv:"total_deductions"`
	NetSalary       Cell `csv:"net_salary"`
	Status          Cell `csv:"status"`
	PaymentDate     Cell `csv:"payment_date"`
}

type AlertRow struct {
	ID         Cell `csv:"id"`
	Type       Cell `csv:"type"`
	Message    Cell `csv:"message"`
	Severity   Cell `csv:"severity"`
	IsResolved Cell `csv:"is_resolved"`
	CreatedAt  Cell `csv:"created_at"`
}
