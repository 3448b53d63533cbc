package salary

type ComponentInput struct {
	Type   string `json:"type" binding:"required"`
	Amount int64  `json:"amount" binding:"min=0"`
}

type CreateSalaryRequest struct {
	EmployeeID      string           `json:"employee_id" binding:"required"`
	Month           string           `json:"month"`
	Year            int              `json:"year"`
	MonthlyCTC      int64            `json:"monthly_ctc" binding:"required,min=0"`
	PaidDays        int              `json:"paid_days"`
	LopDays         int              `json:"lop_days"`
	RemainingLeaves int              `json:"remaining_leaves"`
	LeaveTaken      int              `json:"leave_taken"`
	Earnings        []ComponentInput `json:"earnings"`
	Deductions      []ComponentInput `json:"deductions"`
}

type ApplyHikeRequest struct {
	StartDate   string  `json:"start_date" binding:"required"`
	HikePercent float64 `json:"hike_percent" binding:"required"`
}

type ComponentResponse struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

type HikeResponse struct {
	StartDate          string  `json:"start_date,omitempty"`
	HikePercent        float64 `json:"hike_percent,omitempty"`
	PreviousMonthlyCTC int64   `json:"previous_monthly_ctc,omitempty"`
	Applied            bool    `json:"applied"`
}

type SalaryResponse struct {
	ID              string              `json:"id"`
	EmployeeID      string              `json:"employee_id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Designation     string              `json:"designation"`
	Month           string              `json:"month"`
	Year            int                 `json:"year"`
	PayDate         string              `json:"pay_date,omitempty"`
	MonthlyCTC      int64               `json:"monthly_ctc"`
	GrossEarnings   int64               `json:"gross_earnings"`
	TotalDeductions int64               `json:"total_deductions"`
	NetPay          int64               `json:"net_pay"`
	PaidDays        int                 `json:"paid_days"`
	LopDays         int                 `json:"lop_days"`
	RemainingLeaves int                 `json:"remaining_leaves"`
	LeaveTaken      int                 `json:"leave_taken"`
	Earnings        []ComponentResponse `json:"earnings"`
	Deductions      []ComponentResponse `json:"deductions"`
	Status          string              `json:"status"`
	ActiveStatus    string              `json:"active_status"`
	Hike            *HikeResponse       `json:"hike,omitempty"`
	CreatedAt       string              `json:"created_at,omitempty"`
}

type ApplyHikeResponse struct {
	CurrentSalary SalaryResponse `json:"current_salary"`
	NewSalary     SalaryResponse `json:"new_salary"`
}

type PendingHikeResponse struct {
	HasPendingHike bool            `json:"has_pending_hike"`
	PendingSalary  *SalaryResponse `json:"pending_salary,omitempty"`
}
