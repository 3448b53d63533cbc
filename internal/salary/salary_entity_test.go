package salary_test

import (
	"testing"
	"time"

	"go-payroll/internal/salary"

	"github.com/stretchr/testify/assert"
)

func TestRecalculate(t *testing.T) {
	t.Run("derives totals from component lines", func(t *testing.T) {
		s := salary.Salary{
			MonthlyCTC: 5000000,
			Components: []salary.SalaryComponent{
				{ComponentType: salary.ComponentEarning, Name: "Basic Salary", Amount: 1000000},
				{ComponentType: salary.ComponentEarning, Name: "HRA", Amount: 400000},
				{ComponentType: salary.ComponentDeduction, Name: "PF", Amount: 180000},
			},
		}

		s.Recalculate()

		assert.Equal(t, int64(6400000), s.GrossEarnings)
		assert.Equal(t, int64(180000), s.TotalDeductions)
		assert.Equal(t, int64(6220000), s.NetPay)
	})

	t.Run("overwrites stale totals", func(t *testing.T) {
		s := salary.Salary{
			MonthlyCTC:      5000000,
			GrossEarnings:   1,
			TotalDeductions: 2,
			NetPay:          3,
		}

		s.Recalculate()

		assert.Equal(t, int64(5000000), s.GrossEarnings)
		assert.Equal(t, int64(0), s.TotalDeductions)
		assert.Equal(t, int64(5000000), s.NetPay)
	})
}

func TestPeriodFromDate(t *testing.T) {
	period := salary.PeriodFromDate(time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, "June", period.Month)
	assert.Equal(t, 2026, period.Year)
}

func TestIsHikePending(t *testing.T) {
	now := time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC)
	future := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("pending when the start date is in the future", func(t *testing.T) {
		s := salary.Salary{Hike: salary.Hike{Applied: true, StartDate: &future}}
		assert.True(t, s.IsHikePending(now))
	})

	t.Run("not pending on the start date itself", func(t *testing.T) {
		s := salary.Salary{Hike: salary.Hike{Applied: true, StartDate: &future}}
		assert.False(t, s.IsHikePending(future))
	})

	t.Run("not pending without the applied flag", func(t *testing.T) {
		s := salary.Salary{Hike: salary.Hike{Applied: false, StartDate: &future}}
		assert.False(t, s.IsHikePending(now))
	})

	t.Run("not pending without a start date", func(t *testing.T) {
		s := salary.Salary{Hike: salary.Hike{Applied: true}}
		assert.False(t, s.IsHikePending(now))
	})
}
