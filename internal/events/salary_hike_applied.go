package events

import "time"

const SalaryHikeAppliedTopic = "payroll.salary.hike.v1"

type SalaryHikeAppliedEvent struct {
	EventType     string    `json:"event_type"`
	EmployeeID    string    `json:"employee_id"`
	SalaryID      string    `json:"salary_id"`
	NewSalaryID   string    `json:"new_salary_id"`
	HikePercent   float64   `json:"hike_percent"`
	EffectiveDate string    `json:"effective_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}
