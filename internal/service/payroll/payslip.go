package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ai-finance/finance-backend-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// core PDF fonts have no rupee glyph
const currencyLabel = "INR"

type payslipLine struct {
	label  string
	amount decimal.Decimal
}

func renderPayslip(rec payroll.PayrollRecord, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s", rec.MonthYear.Format("January 2006")), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	name := rec.EmployeeID
	if rec.EmployeeName != nil {
		name = *rec.EmployeeName
	}
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", name))
	pdf.Ln(6)
	if rec.Department != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Department: %s", *rec.Department))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s", rec.MonthYear.Format("January 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Annual CTC: %s %s", rec.BaseSalary.StringFixed(2), currencyLabel))
	pdf.Ln(6)
	status := string(rec.Status)
	if rec.PaymentDate != nil {
		status += " on " + rec.PaymentDate.Format("2006-01-02")
	}
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", status))
	pdf.Ln(10)

	earnings := []payslipLine{
		{"Basic", rec.Basic},
		{"HRA", rec.HRA},
		{"Special Allowance", rec.Special},
		{fmt.Sprintf("Overtime (%s h)", rec.OvertimeHours.String()), rec.OvertimePay},
	}
	deductions := []payslipLine{
		{"Provident Fund", rec.PF},
		{"Professional Tax", rec.ProfessionalTax},
		{"TDS", rec.TDS},
		{fmt.Sprintf("Unpaid Leave (%s d)", rec.UnpaidLeaves.String()), rec.LeaveDeduction},
	}

	writeSection(pdf, "Earnings", earnings, payslipLine{"Gross Salary", rec.GrossSalary})
	pdf.Ln(4)
	writeSection(pdf, "Deductions", deductions, payslipLine{"Total Deductions", rec.TotalDeductions})
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(120, 9, "Net Pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 9, fmt.Sprintf("%s %s", rec.NetSalary.StringFixed(2), currencyLabel), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated %s", generatedAt.UTC().Format(time.RFC3339)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gofpdf.Fpdf, title string, lines []payslipLine, total payslipLine) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 238, 245)
	pdf.CellFormat(180, 8, title, "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, l := range lines {
		pdf.CellFormat(120, 7, l.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, l.amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 7, total.label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, total.amount.StringFixed(2), "1", 1, "R", false, 0, "")
}
