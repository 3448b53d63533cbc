package scheduler

import (
	"testing"
	"time"

	"go-payroll/internal/salary"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func pendingHike(employeeID string, start time.Time, createdAt time.Time) salary.Salary {
	return salary.Salary{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		ActiveStatus: salary.ActiveStatusDisabled,
		Hike: salary.Hike{
			StartDate: &start,
			Applied:   true,
		},
		CreatedAt: createdAt,
	}
}

func TestBuildActivationPlan(t *testing.T) {
	jun1 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	jun14 := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	jun15 := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	jun20 := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("activates only on the exact start day", func(t *testing.T) {
		pending := []salary.Salary{pendingHike("EMP-001", jun15, base)}

		assert.Empty(t, buildActivationPlan(pending, jun14))

		plans := buildActivationPlan(pending, jun15)
		assert.Len(t, plans, 1)
		assert.Equal(t, "EMP-001", plans[0].EmployeeID)
		assert.Equal(t, pending[0].ID, plans[0].Selected.ID)
		assert.Empty(t, plans[0].Superseded)
	})

	t.Run("no retroactive activation after the start day", func(t *testing.T) {
		pending := []salary.Salary{pendingHike("EMP-001", jun15, base)}

		assert.Empty(t, buildActivationPlan(pending, jun20))
	})

	t.Run("supersedes earlier pending hikes when one is selected", func(t *testing.T) {
		older := pendingHike("EMP-001", jun1, base)
		due := pendingHike("EMP-001", jun15, base.Add(time.Hour))

		plans := buildActivationPlan([]salary.Salary{older, due}, jun15)

		assert.Len(t, plans, 1)
		assert.Equal(t, due.ID, plans[0].Selected.ID)
		assert.Len(t, plans[0].Superseded, 1)
		assert.Equal(t, older.ID, plans[0].Superseded[0].ID)
	})

	t.Run("future hikes survive an activation", func(t *testing.T) {
		due := pendingHike("EMP-001", jun15, base)
		future := pendingHike("EMP-001", jun20, base.Add(time.Hour))

		plans := buildActivationPlan([]salary.Salary{due, future}, jun15)

		assert.Len(t, plans, 1)
		assert.Equal(t, due.ID, plans[0].Selected.ID)
		assert.Empty(t, plans[0].Superseded)
	})

	t.Run("same start day prefers the later scheduled hike", func(t *testing.T) {
		first := pendingHike("EMP-001", jun15, base)
		second := pendingHike("EMP-001", jun15, base.Add(time.Hour))

		plans := buildActivationPlan([]salary.Salary{first, second}, jun15)

		assert.Len(t, plans, 1)
		assert.Equal(t, second.ID, plans[0].Selected.ID)
		assert.Len(t, plans[0].Superseded, 1)
		assert.Equal(t, first.ID, plans[0].Superseded[0].ID)
	})

	t.Run("employees are planned independently", func(t *testing.T) {
		a := pendingHike("EMP-001", jun15, base)
		b := pendingHike("EMP-002", jun20, base)
		c := pendingHike("EMP-003", jun15, base)

		plans := buildActivationPlan([]salary.Salary{c, b, a}, jun15)

		assert.Len(t, plans, 2)
		// Deterministic order by employee id.
		assert.Equal(t, "EMP-001", plans[0].EmployeeID)
		assert.Equal(t, "EMP-003", plans[1].EmployeeID)
	})

	t.Run("records without a start date are skipped", func(t *testing.T) {
		broken := salary.Salary{
			ID:         uuid.New(),
			EmployeeID: "EMP-001",
			Hike:       salary.Hike{Applied: true},
		}

		assert.Empty(t, buildActivationPlan([]salary.Salary{broken}, jun15))
	})
}
