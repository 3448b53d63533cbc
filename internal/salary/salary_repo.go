package salary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, salary *Salary) error
	FindByID(ctx context.Context, id string) (*Salary, error)
	FindAll(ctx context.Context) ([]Salary, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Salary, error)
	FindEnabledByEmployee(ctx context.Context, employeeID string) (*Salary, error)
	FindPendingHikes(ctx context.Context) ([]Salary, error)
	FindPendingHikeByEmployee(ctx context.Context, employeeID string, after time.Time) (*Salary, error)
	ExistsEnabledForPeriod(ctx context.Context, employeeID, month string, year int) (bool, error)
	UpdateActiveStatus(ctx context.Context, id string, status string, period *Period) error
	MarkHikeSuperseded(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status string) error
}

type repository struct {
	db  *gorm.DB
	raw *sql.DB
	tx  *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	raw, _ := db.DB()
	return &repository{db: db, raw: raw}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db:  r.db,
		raw: r.raw,
		tx:  tx,
	}
}

func (r *repository) Create(ctx context.Context, salary *Salary) error {
	return r.db.WithContext(ctx).Create(salary).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Salary, error) {
	var s Salary
	err := r.db.WithContext(ctx).
		Preload("Components").
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Salary, error) {
	var salaries []Salary
	err := r.db.WithContext(ctx).
		Preload("Components").
		Order("created_at DESC").
		Find(&salaries).Error
	return salaries, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Salary, error) {
	var salaries []Salary
	err := r.db.WithContext(ctx).
		Preload("Components").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&salaries).Error
	return salaries, err
}

func (r *repository) FindEnabledByEmployee(ctx context.Context, employeeID string) (*Salary, error) {
	if r.tx != nil {
		return r.findEnabledByEmployeeTx(ctx, employeeID)
	}

	var s Salary
	err := r.db.WithContext(ctx).
		Preload("Components").
		Where("employee_id = ?", employeeID).
		Where("active_status = ?", ActiveStatusEnabled).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// findEnabledByEmployeeTx reads through the caller's sql.Tx so a
// reconciliation pass sees its own uncommitted status flips. Component
// lines are not loaded; transactional callers only flip statuses.
func (r *repository) findEnabledByEmployeeTx(ctx context.Context, employeeID string) (*Salary, error) {
	query := `
SELECT id, employee_id, month, year, active_status
FROM salaries
WHERE employee_id = $1 AND active_status = $2
LIMIT 1
`
	var s Salary
	err := r.tx.QueryRowContext(ctx, query, employeeID, ActiveStatusEnabled).
		Scan(&s.ID, &s.EmployeeID, &s.Month, &s.Year, &s.ActiveStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindPendingHikes(ctx context.Context) ([]Salary, error) {
	var salaries []Salary
	err := r.db.WithContext(ctx).
		Preload("Components").
		Where("hike_applied = ?", true).
		Where("active_status = ?", ActiveStatusDisabled).
		Find(&salaries).Error
	return salaries, err
}

func (r *repository) FindPendingHikeByEmployee(
	ctx context.Context,
	employeeID string,
	after time.Time,
) (*Salary, error) {
	var s Salary
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("hike_applied = ?", true).
		Where("active_status = ?", ActiveStatusDisabled).
		Where("hike_start_date > ?", after).
		Order("hike_start_date DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ExistsEnabledForPeriod(
	ctx context.Context,
	employeeID, month string,
	year int,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Salary{}).
		Where("employee_id = ?", employeeID).
		Where("month = ? AND year = ?", month, year).
		Where("active_status = ?", ActiveStatusEnabled).
		Count(&count).Error
	return count > 0, err
}

// UpdateActiveStatus flips a record's activation status, optionally
// stamping the pay period in the same statement. It is the only write
// path the activation scheduler uses, and it goes through the raw
// connection so all updates of one reconciliation pass share one sql.Tx.
func (r *repository) UpdateActiveStatus(
	ctx context.Context,
	id string,
	status string,
	period *Period,
) error {
	if period != nil {
		query := `
UPDATE salaries
SET active_status = $2, month = $3, year = $4, updated_at = NOW()
WHERE id = $1
`
		_, err := r.execer().ExecContext(ctx, query, id, status, period.Month, period.Year)
		return err
	}

	query := `
UPDATE salaries
SET active_status = $2, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, status)
	return err
}

// MarkHikeSuperseded retires a pending hike that lost to a competing
// one. Clearing hike_applied takes the record out of the pending set
// for good, so a replayed pass cannot pick the settled loser again.
func (r *repository) MarkHikeSuperseded(ctx context.Context, id string) error {
	query := `
UPDATE salaries
SET active_status = $2, hike_applied = FALSE, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, ActiveStatusDisabled)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `
UPDATE salaries
SET status = $2, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, status)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.raw
}
