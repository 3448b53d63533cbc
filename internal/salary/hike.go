package salary

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// computeHike is the pure hike decision: given the currently enabled
// record and hike parameters it produces the new pending record. It
// never touches the current record and performs no I/O; persistence and
// activation timing are the caller's concern.
func computeHike(current *Salary, startDate time.Time, hikePercent float64) *Salary {
	hikeAmount := int64(math.Round(float64(current.MonthlyCTC) * hikePercent / 100))

	newID := uuid.New()
	components := make([]SalaryComponent, 0, len(current.Components))
	for _, c := range current.Components {
		copied := c
		copied.ID = uuid.New()
		copied.SalaryID = newID
		copied.CreatedAt = time.Time{}
		copied.UpdatedAt = time.Time{}
		components = append(components, copied)
	}

	// The hike lands on the Basic Salary earning line; employees without
	// one get it on their first earning line.
	if idx := basicEarningIndex(components); idx >= 0 {
		components[idx].Amount += hikeAmount
	}

	period := PeriodFromDate(startDate)
	start := truncateToDay(startDate)

	next := &Salary{
		ID:          newID,
		EmployeeID:  current.EmployeeID,
		Name:        current.Name,
		Email:       current.Email,
		Designation: current.Designation,

		// Placeholder period; the scheduler stamps the definitive one
		// when the record activates.
		Month: period.Month,
		Year:  period.Year,

		PayDate:    current.PayDate,
		MonthlyCTC: current.MonthlyCTC + hikeAmount,

		PaidDays:        current.PaidDays,
		LopDays:         current.LopDays,
		RemainingLeaves: current.RemainingLeaves,
		LeaveTaken:      current.LeaveTaken,

		Status:       StatusDraft,
		ActiveStatus: ActiveStatusDisabled,
		Components:   components,

		Hike: Hike{
			StartDate:          &start,
			Percent:            hikePercent,
			PreviousMonthlyCTC: current.MonthlyCTC,
			Applied:            true,
		},
	}

	next.Recalculate()
	return next
}

func basicEarningIndex(components []SalaryComponent) int {
	first := -1
	for i, c := range components {
		if c.ComponentType != ComponentEarning {
			continue
		}
		if c.Name == BasicSalaryComponent {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}
