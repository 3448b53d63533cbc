package events

import "time"

const PayslipGeneratedTopic = "payroll.payslip.generated.v1"

type PayslipGeneratedEvent struct {
	EventType  string    `json:"event_type"`
	PayslipID  string    `json:"payslip_id"`
	SalaryID   string    `json:"salary_id"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	Month      string    `json:"month"`
	Year       int       `json:"year"`
	OccurredAt time.Time `json:"occurred_at"`
}
