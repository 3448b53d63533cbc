package payslip

type GeneratePayslipRequest struct {
	SalaryID string `json:"salary_id" binding:"required,uuid"`
}

type PayslipResponse struct {
	ID              string `json:"id"`
	SalaryID        string `json:"salary_id"`
	EmployeeID      string `json:"employee_id"`
	Name            string `json:"name"`
	Month           string `json:"month"`
	Year            int    `json:"year"`
	GrossEarnings   int64  `json:"gross_earnings"`
	TotalDeductions int64  `json:"total_deductions"`
	NetPay          int64  `json:"net_pay"`
	GeneratedAt     string `json:"generated_at"`
}
