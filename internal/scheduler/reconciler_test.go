package scheduler_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/salary"
	"go-payroll/internal/scheduler"
	"go-payroll/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSalaryRepository struct {
	withTxFn                func(tx *sql.Tx) salary.Repository
	findPendingHikesFn      func(ctx context.Context) ([]salary.Salary, error)
	findEnabledByEmployeeFn func(ctx context.Context, employeeID string) (*salary.Salary, error)
	updateActiveStatusFn    func(ctx context.Context, id string, status string, period *salary.Period) error
	markHikeSupersededFn    func(ctx context.Context, id string) error
}

func (f *fakeSalaryRepository) WithTx(tx *sql.Tx) salary.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeSalaryRepository) Create(ctx context.Context, record *salary.Salary) error {
	return nil
}

func (f *fakeSalaryRepository) FindByID(ctx context.Context, id string) (*salary.Salary, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSalaryRepository) FindAll(ctx context.Context) ([]salary.Salary, error) {
	return nil, nil
}

func (f *fakeSalaryRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]salary.Salary, error) {
	return nil, nil
}

func (f *fakeSalaryRepository) FindEnabledByEmployee(ctx context.Context, employeeID string) (*salary.Salary, error) {
	if f.findEnabledByEmployeeFn != nil {
		return f.findEnabledByEmployeeFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSalaryRepository) FindPendingHikes(ctx context.Context) ([]salary.Salary, error) {
	if f.findPendingHikesFn != nil {
		return f.findPendingHikesFn(ctx)
	}
	return nil, nil
}

func (f *fakeSalaryRepository) FindPendingHikeByEmployee(ctx context.Context, employeeID string, after time.Time) (*salary.Salary, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSalaryRepository) ExistsEnabledForPeriod(ctx context.Context, employeeID, month string, year int) (bool, error) {
	return false, nil
}

func (f *fakeSalaryRepository) UpdateActiveStatus(ctx context.Context, id string, status string, period *salary.Period) error {
	if f.updateActiveStatusFn != nil {
		return f.updateActiveStatusFn(ctx, id, status, period)
	}
	return nil
}

func (f *fakeSalaryRepository) MarkHikeSuperseded(ctx context.Context, id string) error {
	if f.markHikeSupersededFn != nil {
		return f.markHikeSupersededFn(ctx, id)
	}
	return nil
}

func (f *fakeSalaryRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return nil
}

type statusFlip struct {
	id     string
	status string
	period *salary.Period
}

func pendingHikeRecord(employeeID string, start time.Time) salary.Salary {
	return salary.Salary{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		ActiveStatus: salary.ActiveStatusDisabled,
		Hike: salary.Hike{
			StartDate: &start,
			Applied:   true,
		},
	}
}

func TestReconciler_Reconcile(t *testing.T) {
	jun1 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	jun15 := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("activation retires the previously enabled record", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		current := salary.Salary{
			ID:           uuid.New(),
			EmployeeID:   "EMP-001",
			ActiveStatus: salary.ActiveStatusEnabled,
		}
		due := pendingHikeRecord("EMP-001", jun15)
		obsolete := pendingHikeRecord("EMP-001", jun1)

		repo := &fakeSalaryRepository{}
		repo.findPendingHikesFn = func(ctx context.Context) ([]salary.Salary, error) {
			return []salary.Salary{due, obsolete}, nil
		}
		repo.findEnabledByEmployeeFn = func(ctx context.Context, employeeID string) (*salary.Salary, error) {
			assert.Equal(t, "EMP-001", employeeID)
			return &current, nil
		}

		var flips []statusFlip
		repo.updateActiveStatusFn = func(ctx context.Context, id string, status string, period *salary.Period) error {
			flips = append(flips, statusFlip{id: id, status: status, period: period})
			return nil
		}

		var superseded []string
		repo.markHikeSupersededFn = func(ctx context.Context, id string) error {
			superseded = append(superseded, id)
			return nil
		}

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		result, err := scheduler.NewReconciler(db, repo).Reconcile(context.Background(), jun15)

		assert.NoError(t, err)
		assert.Equal(t, scheduler.Result{Activated: 1, Disabled: 2}, result)

		assert.Len(t, flips, 2)
		assert.Equal(t, statusFlip{id: current.ID.String(), status: salary.ActiveStatusDisabled}, flips[0])
		assert.Equal(t, due.ID.String(), flips[1].id)
		assert.Equal(t, salary.ActiveStatusEnabled, flips[1].status)
		assert.Equal(t, &salary.Period{Month: "June", Year: 2026}, flips[1].period)
		assert.Equal(t, []string{obsolete.ID.String()}, superseded)

		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("first activation has nothing to retire", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		due := pendingHikeRecord("EMP-001", jun15)

		repo := &fakeSalaryRepository{}
		repo.findPendingHikesFn = func(ctx context.Context) ([]salary.Salary, error) {
			return []salary.Salary{due}, nil
		}

		var flips []statusFlip
		repo.updateActiveStatusFn = func(ctx context.Context, id string, status string, period *salary.Period) error {
			flips = append(flips, statusFlip{id: id, status: status, period: period})
			return nil
		}

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		result, err := scheduler.NewReconciler(db, repo).Reconcile(context.Background(), jun15)

		assert.NoError(t, err)
		assert.Equal(t, scheduler.Result{Activated: 1, Disabled: 0}, result)
		assert.Len(t, flips, 1)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("second pass is a no-op", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		// Activated records no longer match the pending filter.
		repo := &fakeSalaryRepository{}
		repo.findPendingHikesFn = func(ctx context.Context) ([]salary.Salary, error) {
			return nil, nil
		}

		result, err := scheduler.NewReconciler(db, repo).Reconcile(context.Background(), jun15)

		assert.NoError(t, err)
		assert.Equal(t, scheduler.Result{}, result)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("competing same-day hikes stay settled after a replay", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		current := &salary.Salary{
			ID:           uuid.New(),
			EmployeeID:   "EMP-001",
			ActiveStatus: salary.ActiveStatusEnabled,
		}
		loser := pendingHikeRecord("EMP-001", jun15)
		loser.CreatedAt = jun1
		winner := pendingHikeRecord("EMP-001", jun15)
		winner.CreatedAt = jun1.Add(time.Hour)

		records := map[string]*salary.Salary{
			current.ID.String(): current,
			loser.ID.String():   &loser,
			winner.ID.String():  &winner,
		}

		repo := &fakeSalaryRepository{}
		repo.withTxFn = func(tx *sql.Tx) salary.Repository {
			assert.NotNil(t, tx)
			return repo
		}
		repo.findPendingHikesFn = func(ctx context.Context) ([]salary.Salary, error) {
			var out []salary.Salary
			for _, r := range []*salary.Salary{current, &loser, &winner} {
				if r.Hike.Applied && r.ActiveStatus == salary.ActiveStatusDisabled {
					out = append(out, *r)
				}
			}
			return out, nil
		}
		repo.findEnabledByEmployeeFn = func(ctx context.Context, employeeID string) (*salary.Salary, error) {
			for _, r := range records {
				if r.EmployeeID == employeeID && r.ActiveStatus == salary.ActiveStatusEnabled {
					return r, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		}
		repo.updateActiveStatusFn = func(ctx context.Context, id string, status string, period *salary.Period) error {
			records[id].ActiveStatus = status
			return nil
		}
		repo.markHikeSupersededFn = func(ctx context.Context, id string) error {
			records[id].ActiveStatus = salary.ActiveStatusDisabled
			records[id].Hike.Applied = false
			return nil
		}

		// Only the first pass opens a transaction.
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		reconciler := scheduler.NewReconciler(db, repo)

		first, err := reconciler.Reconcile(context.Background(), jun15)
		assert.NoError(t, err)
		assert.Equal(t, scheduler.Result{Activated: 1, Disabled: 2}, first)
		assert.Equal(t, salary.ActiveStatusEnabled, winner.ActiveStatus)
		assert.Equal(t, salary.ActiveStatusDisabled, current.ActiveStatus)
		assert.Equal(t, salary.ActiveStatusDisabled, loser.ActiveStatus)
		assert.False(t, loser.Hike.Applied)

		second, err := reconciler.Reconcile(context.Background(), jun15)
		assert.NoError(t, err)
		assert.Equal(t, scheduler.Result{}, second)
		assert.Equal(t, salary.ActiveStatusEnabled, winner.ActiveStatus)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("nothing due leaves the store untouched", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		future := pendingHikeRecord("EMP-001", jun15.AddDate(0, 1, 0))

		repo := &fakeSalaryRepository{}
		repo.findPendingHikesFn = func(ctx context.Context) ([]salary.Salary, error) {
			return []salary.Salary{future}, nil
		}

		result, err := scheduler.NewReconciler(db, repo).Reconcile(context.Background(), jun15)

		assert.NoError(t, err)
		assert.Equal(t, scheduler.Result{}, result)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("store failure aborts the whole pass", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		due := pendingHikeRecord("EMP-001", jun15)

		repo := &fakeSalaryRepository{}
		repo.findPendingHikesFn = func(ctx context.Context) ([]salary.Salary, error) {
			return []salary.Salary{due}, nil
		}
		repo.findEnabledByEmployeeFn = func(ctx context.Context, employeeID string) (*salary.Salary, error) {
			return nil, errors.New("connection reset")
		}

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err = scheduler.NewReconciler(db, repo).Reconcile(context.Background(), jun15)

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeTransientStore, appErr.Code)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("flip failure rolls everything back", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		due := pendingHikeRecord("EMP-001", jun15)

		repo := &fakeSalaryRepository{}
		repo.findPendingHikesFn = func(ctx context.Context) ([]salary.Salary, error) {
			return []salary.Salary{due}, nil
		}
		repo.updateActiveStatusFn = func(ctx context.Context, id string, status string, period *salary.Period) error {
			return errors.New("deadlock detected")
		}

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err = scheduler.NewReconciler(db, repo).Reconcile(context.Background(), jun15)

		assert.Error(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
