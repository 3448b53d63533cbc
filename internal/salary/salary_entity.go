package salary

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft = "draft"
	StatusPaid  = "paid"

	ActiveStatusEnabled  = "enabled"
	ActiveStatusDisabled = "disabled"

	ComponentEarning   = "earning"
	ComponentDeduction = "deduction"

	// Hike amounts are credited to this earning component. When an
	// employee has no component with this name the first earning
	// component takes the hike instead.
	BasicSalaryComponent = "Basic Salary"
)

type Salary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID string    `gorm:"type:varchar(32);not null;index:idx_salary_employee_active"`

	// Denormalized from the employee directory at creation time.
	Name        string `gorm:"not null"`
	Email       string `gorm:"not null"`
	Designation string `gorm:"not null"`

	// Pay period. Overwritten by the activation scheduler when a hike
	// record becomes the active one.
	Month string `gorm:"type:varchar(12);not null"`
	Year  int    `gorm:"not null"`

	PayDate time.Time `gorm:"type:date"`

	// Financials are stored in the smallest currency unit (cents) to
	// avoid floating point drift.
	MonthlyCTC      int64 `gorm:"type:bigint;not null;default:0"`
	GrossEarnings   int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductions int64 `gorm:"type:bigint;not null;default:0"`
	NetPay          int64 `gorm:"type:bigint;not null;default:0"`

	PaidDays        int `gorm:"not null;default:0"`
	LopDays         int `gorm:"not null;default:0"`
	RemainingLeaves int `gorm:"not null;default:0"`
	LeaveTaken      int `gorm:"not null;default:0"`

	Status       string `gorm:"type:varchar(10);not null;default:'draft'"`
	ActiveStatus string `gorm:"type:varchar(10);not null;default:'enabled';index:idx_salary_employee_active"`

	Hike Hike `gorm:"embedded"`

	Components []SalaryComponent `gorm:"foreignKey:SalaryID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hike is the sub-record stamped on salaries created by ApplyHike.
// Applied stays false on ordinary records and is cleared again when a
// competing hike supersedes this one.
type Hike struct {
	StartDate          *time.Time `gorm:"column:hike_start_date;type:date;index"`
	Percent            float64    `gorm:"column:hike_percent;type:numeric(5,2);default:0"`
	PreviousMonthlyCTC int64      `gorm:"column:hike_previous_monthly_ctc;type:bigint;default:0"`
	Applied            bool       `gorm:"column:hike_applied;not null;default:false;index"`
}

type SalaryComponent struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SalaryID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ComponentType string    `gorm:"type:varchar(20);not null"`
	Name          string    `gorm:"type:varchar(120);not null"`
	Amount        int64     `gorm:"type:bigint;not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Period is the (month-name, year) pair a salary record represents.
type Period struct {
	Month string
	Year  int
}

// PeriodFromDate derives the pay period from a calendar date.
func PeriodFromDate(t time.Time) Period {
	return Period{
		Month: t.Month().String(),
		Year:  t.Year(),
	}
}

// Recalculate keeps the derived totals consistent with the component
// lines: gross = monthly CTC + earnings, net = gross - deductions.
func (s *Salary) Recalculate() {
	var earnings, deductions int64
	for _, c := range s.Components {
		switch c.ComponentType {
		case ComponentEarning:
			earnings += c.Amount
		case ComponentDeduction:
			deductions += c.Amount
		}
	}

	s.GrossEarnings = s.MonthlyCTC + earnings
	s.TotalDeductions = deductions
	s.NetPay = s.GrossEarnings - s.TotalDeductions
}

// BeforeSave recomputes derived totals on every mutating write so a
// persisted record can never disagree with its own line items.
func (s *Salary) BeforeSave(tx *gorm.DB) error {
	s.Recalculate()
	return nil
}

// EarningComponents returns the earning lines in insertion order.
func (s *Salary) EarningComponents() []SalaryComponent {
	out := make([]SalaryComponent, 0, len(s.Components))
	for _, c := range s.Components {
		if c.ComponentType == ComponentEarning {
			out = append(out, c)
		}
	}
	return out
}

// DeductionComponents returns the deduction lines in insertion order.
func (s *Salary) DeductionComponents() []SalaryComponent {
	out := make([]SalaryComponent, 0, len(s.Components))
	for _, c := range s.Components {
		if c.ComponentType == ComponentDeduction {
			out = append(out, c)
		}
	}
	return out
}

// IsHikePending reports whether this record is a hike waiting for its
// start date.
func (s *Salary) IsHikePending(now time.Time) bool {
	if !s.Hike.Applied || s.Hike.StartDate == nil {
		return false
	}
	return truncateToDay(now).Before(truncateToDay(*s.Hike.StartDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
