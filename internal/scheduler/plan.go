package scheduler

import (
	"sort"
	"time"

	"go-payroll/internal/salary"
)

// employeePlan is the outcome of one employee's pending-hike selection:
// the record to enable and the now-obsolete records to disable.
type employeePlan struct {
	EmployeeID string
	Selected   salary.Salary
	Superseded []salary.Salary
}

// buildActivationPlan is the pure selection step of a reconciliation
// pass. For each employee the most recent pending hike whose start date
// falls exactly on asOf (truncated to calendar day) is selected; other
// pending hikes dated on or before asOf are superseded by it. Employees
// with no exact-day match are left alone until a future pass.
//
// The exact-day comparison is deliberate: a hike activates on its
// scheduled day, never retroactively.
func buildActivationPlan(pending []salary.Salary, asOf time.Time) []employeePlan {
	day := truncateToDay(asOf)

	byEmployee := make(map[string][]salary.Salary)
	for _, record := range pending {
		if record.Hike.StartDate == nil {
			continue
		}
		byEmployee[record.EmployeeID] = append(byEmployee[record.EmployeeID], record)
	}

	employeeIDs := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	plans := make([]employeePlan, 0, len(byEmployee))
	for _, employeeID := range employeeIDs {
		hikes := byEmployee[employeeID]

		// Most recent start date first; ties broken by creation time so
		// the later-scheduled hike wins.
		sort.SliceStable(hikes, func(i, j int) bool {
			a, b := *hikes[i].Hike.StartDate, *hikes[j].Hike.StartDate
			if a.Equal(b) {
				return hikes[i].CreatedAt.After(hikes[j].CreatedAt)
			}
			return a.After(b)
		})

		selectedIdx := -1
		for i, hike := range hikes {
			if truncateToDay(*hike.Hike.StartDate).Equal(day) {
				selectedIdx = i
				break
			}
		}
		if selectedIdx < 0 {
			continue
		}

		plan := employeePlan{
			EmployeeID: employeeID,
			Selected:   hikes[selectedIdx],
		}
		for i, hike := range hikes {
			if i == selectedIdx {
				continue
			}
			if !truncateToDay(*hike.Hike.StartDate).After(day) {
				plan.Superseded = append(plan.Superseded, hike)
			}
		}

		plans = append(plans, plan)
	}

	return plans
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
