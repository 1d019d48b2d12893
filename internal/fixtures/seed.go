package fixtures

import (
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/alert"
	"github.com/ai-finance/finance-backend-go/internal/domain/category"
	"github.com/ai-finance/finance-backend-go/internal/domain/employee"
	"github.com/ai-finance/finance-backend-go/internal/domain/expense"
	"github.com/ai-finance/finance-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ==========================================
// CATEGORIES
// ==========================================

// DefaultCategories returns the expense categories with their monthly budgets.
// IDs are assigned by the database in this order, starting at 1.
func DefaultCategories() []category.Category {
	return []category.Category{
		{Name: "Infrastructure", BudgetLimit: decimal.NewFromInt(5000), Description: strPtr("Server costs")},
		{Name: "Meals", BudgetLimit: decimal.NewFromInt(1000), Description: strPtr("Team lunch")},
		{Name: "Software", BudgetLimit: decimal.NewFromInt(2000), Description: strPtr("Licenses")},
		{Name: "Travel", BudgetLimit: decimal.NewFromInt(10000), Description: strPtr("Client visits")},
		{Name: "Office", BudgetLimit: decimal.NewFromInt(500), Description: strPtr("Supplies")},
		{Name: "Miscellaneous", BudgetLimit: decimal.NewFromInt(500), Description: strPtr("Other")},
	}
}

// ==========================================
// EMPLOYEES
// ==========================================

type rosterEntry struct {
	name       string
	email      string
	role       employee.Role
	department string
	salary     int64
	joined     string
}

// DefaultEmployees returns the demo roster. All employees are Active.
func DefaultEmployees() []employee.Employee {
	roster := []rosterEntry{
		{"Arjun Mehta", "arjun.mehta@company.com", employee.RoleEmployee, "Engineering", 72000, "2023-03-15"},
		{"Priya Sharma", "priya.sharma@company.com", employee.RoleAdmin, "Operations", 88000, "2022-11-20"},
		{"Rohan Verma", "rohan.verma@company.com", employee.RoleEmployee, "Marketing", 65000, "2023-06-10"},
		{"Sneha Kapoor", "sneha.kapoor@company.com", employee.RoleEmployee, "Finance", 78000, "2021-09-05"},
		{"Vikram Rao", "vikram.rao@company.com", employee.RoleEmployee, "HR", 60000, "2022-02-18"},
		{"Ananya Gupta", "ananya.gupta@company.com", employee.RoleEmployee, "Design", 68000, "2023-01-12"},
		{"Karan Malhotra", "karan.malhotra@company.com", employee.RoleAdmin, "Engineering", 95000, "2020-07-22"},
		{"Meera Iyer", "meera.iyer@company.com", employee.RoleEmployee, "Sales", 73000, "2023-08-01"},
		{"Rahul Nair", "rahul.nair@company.com", employee.RoleEmployee, "Engineering", 71000, "2022-04-11"},
		{"Divya Singh", "divya.singh@company.com", employee.RoleEmployee, "Finance", 82000, "2021-12-09"},
		{"Amit Kulkarni", "amit.kulkarni@company.com", employee.RoleEmployee, "Operations", 69000, "2023-05-03"},
		{"Neha Reddy", "neha.reddy@company.com", employee.RoleEmployee, "Marketing", 67000, "2022-09-14"},
		{"Siddharth Jain", "siddharth.jain@company.com", employee.RoleAdmin, "Finance", 98000, "2020-01-28"},
		{"Pooja Menon", "pooja.menon@company.com", employee.RoleEmployee, "HR", 64000, "2023-02-19"},
		{"Harsh Patel", "harsh.patel@company.com", employee.RoleEmployee, "Engineering", 76000, "2022-06-07"},
		{"Ishita Roy", "ishita.roy@company.com", employee.RoleEmployee, "Design", 70000, "2023-04-16"},
		{"Nikhil Arora", "nikhil.arora@company.com", employee.RoleEmployee, "Sales", 72000, "2021-11-23"},
		{"Tanvi Desai", "tanvi.desai@company.com", employee.RoleEmployee, "Marketing", 66000, "2022-08-30"},
		{"Aditya Bhatt", "aditya.bhatt@company.com", employee.RoleEmployee, "Engineering", 81000, "2021-10-10"},
		{"Shruti Bose", "shruti.bose@company.com", employee.RoleEmployee, "Finance", 74000, "2023-07-05"},
		{"Manish Yadav", "manish.yadav@company.com", employee.RoleEmployee, "Operations", 68000, "2022-03-17"},
		{"Kavya Nair", "kavya.nair@company.com", employee.RoleEmployee, "Design", 72000, "2023-01-29"},
		{"Ritesh Sinha", "ritesh.sinha@company.com", employee.RoleAdmin, "HR", 92000, "2020-05-21"},
		{"Simran Kaur", "simran.kaur@company.com", employee.RoleEmployee, "Sales", 69000, "2023-09-11"},
		{"Akash Tiwari", "akash.tiwari@company.com", employee.RoleEmployee, "Engineering", 83000, "2021-06-14"},
		{"Riya Chatterjee", "riya.chatterjee@company.com", employee.RoleEmployee, "Marketing", 71000, "2022-10-08"},
		{"Deepak Kumar", "deepak.kumar@company.com", employee.RoleEmployee, "Operations", 65000, "2023-03-03"},
		{"Naina Joshi", "naina.joshi@company.com", employee.RoleEmployee, "Finance", 77000, "2021-08-19"},
		{"Yash Agarwal", "yash.agarwal@company.com", employee.RoleEmployee, "Engineering", 88000, "2020-12-12"},
		{"Komal Bansal", "komal.bansal@company.com", employee.RoleEmployee, "HR", 62000, "2023-05-27"},
		{"Varun Saxena", "varun.saxena@company.com", employee.RoleEmployee, "Design", 74000, "2022-01-18"},
		{"Shreya Pillai", "shreya.pillai@company.com", employee.RoleEmployee, "Sales", 69000, "2023-04-09"},
		{"Gaurav Mishra", "gaurav.mishra@company.com", employee.RoleAdmin, "Engineering", 99000, "2019-11-01"},
		{"Tanya Bhatia", "tanya.bhatia@company.com", employee.RoleEmployee, "Marketing", 72000, "2022-07-25"},
		{"Mohit Shah", "mohit.shah@company.com", employee.RoleEmployee, "Finance", 76000, "2021-03-14"},
		{"Alok Pradhan", "alok.pradhan@company.com", employee.RoleEmployee, "Operations", 70000, "2023-02-02"},
		{"Pallavi Rao", "pallavi.rao@company.com", employee.RoleEmployee, "HR", 63000, "2022-05-16"},
		{"Rohit Das", "rohit.das@company.com", employee.RoleEmployee, "Engineering", 82000, "2021-09-30"},
		{"Snehal Patil", "snehal.patil@company.com", employee.RoleEmployee, "Design", 71000, "2023-06-21"},
		{"Arnav Kapoor", "arnav.kapoor@company.com", employee.RoleEmployee, "Sales", 75000, "2022-04-04"},
		{"Diya Verma", "diya.verma@company.com", employee.RoleEmployee, "Marketing", 67000, "2023-08-12"},
		{"Kunal Mehra", "kunal.mehra@company.com", employee.RoleEmployee, "Finance", 79000, "2021-12-01"},
		{"Ankit Roy", "ankit.roy@company.com", employee.RoleEmployee, "Engineering", 86000, "2020-06-06"},
		{"Bhavna Iyer", "bhavna.iyer@company.com", employee.RoleEmployee, "Operations", 69000, "2023-03-25"},
		{"Rajat Chawla", "rajat.chawla@company.com", employee.RoleEmployee, "HR", 64000, "2022-09-09"},
		{"Sakshi Dubey", "sakshi.dubey@company.com", employee.RoleEmployee, "Design", 72000, "2023-01-05"},
		{"Pranav Joshi", "pranav.joshi@company.com", employee.RoleEmployee, "Engineering", 90000, "2020-02-20"},
		{"Aarushi Sharma", "aarushi.sharma@company.com", employee.RoleEmployee, "Marketing", 68000, "2022-12-18"},
		{"Dev Malhotra", "dev.malhotra@company.com", employee.RoleEmployee, "Sales", 74000, "2023-07-30"},
	}

	employees := make([]employee.Employee, 0, len(roster))
	for _, r := range roster {
		employees = append(employees, employee.Employee{
			FullName:   r.name,
			Email:      r.email,
			Role:       r.role,
			Department: strPtr(r.department),
			BaseSalary: decimal.NewFromInt(r.salary),
			JoinDate:   mustDate(r.joined),
			Status:     employee.StatusActive,
		})
	}
	return employees
}

// ==========================================
// PAYROLL
// ==========================================

// PayrollHistory computes two months of payroll for an employee: the month
// before now is Approved, the one before that was Paid on its last day.
func PayrollHistory(e employee.Employee, now time.Time) ([]payroll.PayrollRecord, error) {
	current := payroll.MonthStart(now)
	approvedMonth := current.AddDate(0, -1, 0)
	paidMonth := current.AddDate(0, -2, 0)
	paidOn := approvedMonth.AddDate(0, 0, -1)

	months := []struct {
		month       time.Time
		status      payroll.PayrollStatus
		paymentDate *time.Time
	}{
		{approvedMonth, payroll.PayrollStatusApproved, nil},
		{paidMonth, payroll.PayrollStatusPaid, &paidOn},
	}

	records := make([]payroll.PayrollRecord, 0, len(months))
	for _, m := range months {
		res, err := payroll.Calculate(payroll.PayrollRequest{
			Employee: payroll.EmployeeInput{
				ID:         e.ID,
				BaseSalary: e.BaseSalary,
				Department: deref(e.Department),
			},
			OvertimeHours: decimal.Zero,
			UnpaidLeaves:  decimal.Zero,
			MonthYear:     m.month,
		})
		if err != nil {
			return nil, err
		}

		rec := payroll.PayrollRecord{
			EmployeeID:    e.ID,
			MonthYear:     m.month,
			BaseSalary:    e.BaseSalary,
			OvertimeHours: decimal.Zero,
			UnpaidLeaves:  decimal.Zero,
			Status:        m.status,
			PaymentDate:   m.paymentDate,
		}
		rec.ApplyResult(res)
		records = append(records, rec)
	}
	return records, nil
}

// ==========================================
// EXPENSES
// ==========================================

// DefaultExpenses returns the demo expenses incurred on `on`. Submitters are
// picked from employees with a fixed stride; categoryIDs follow DefaultCategories.
func DefaultExpenses(employees []employee.Employee, categoryIDs []int, on time.Time) []expense.Expense {
	items := []struct {
		description string
		amount      string
		category    int // index into categoryIDs
		status      expense.Status
	}{
		{"AWS Server Cost", "150.00", 0, expense.StatusApproved},
		{"Team Lunch", "200.50", 1, expense.StatusApproved},
		{"Software License (Adobe)", "59.99", 2, expense.StatusPending},
		{"Travel to Client", "450.00", 3, expense.StatusApproved},
		{"Office Supplies", "120.00", 4, expense.StatusApproved},
		{"Unknown Charge", "999.00", 5, expense.StatusPending},
	}
	if len(employees) == 0 || len(categoryIDs) < len(items) {
		return nil
	}

	date := time.Date(on.Year(), on.Month(), on.Day(), 0, 0, 0, 0, time.UTC)
	expenses := make([]expense.Expense, 0, len(items))
	for i, item := range items {
		expenses = append(expenses, expense.Expense{
			UserID:       employees[(i*7)%len(employees)].ID,
			CategoryID:   categoryIDs[item.category],
			Description:  item.description,
			Amount:       decimal.RequireFromString(item.amount),
			DateIncurred: date,
			Status:       item.status,
			ReceiptURL:   strPtr("http://example.com/receipt.jpg"),
		})
	}
	return expenses
}

// ==========================================
// ALERTS
// ==========================================

func DefaultAlerts() []alert.Alert {
	return []alert.Alert{
		{Type: alert.TypeAnomaly, Message: "Unusual high expense detected: ₹999.00 for Unknown Charge", Severity: alert.SeverityHigh},
		{Type: alert.TypeBudgetOverrun, Message: "Marketing budget 85% utilized.", Severity: alert.SeverityMedium},
		{Type: alert.TypePayrollAction, Message: "Payroll processing due for October.", Severity: alert.SeverityLow},
	}
}
