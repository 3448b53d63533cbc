package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payroll/internal/salary"
	"go-payroll/internal/shared/apperror"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Result summarizes one reconciliation pass for observability.
type Result struct {
	Activated int `json:"activated"`
	Disabled  int `json:"disabled"`
}

// Reconciler activates pending salary hikes whose start date has
// arrived. All status flips of one pass are applied in a single
// transaction: the previously enabled record is retired in the same
// commit that enables its successor, so at most one record per employee
// is ever enabled.
type Reconciler struct {
	db     *sql.DB
	repo   salary.Repository
	logger *zap.Logger
}

func NewReconciler(db *sql.DB, repo salary.Repository, logger ...*zap.Logger) *Reconciler {
	l := zap.L().Named("scheduler.reconciler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.reconciler")
	}
	return &Reconciler{db: db, repo: repo, logger: l}
}

// Reconcile runs one pass as of the given date. Running it twice with
// the same asOf is a no-op the second time: activated records no longer
// match the pending filter, and superseded ones have their hike flag
// cleared so they never re-enter it.
func (r *Reconciler) Reconcile(ctx context.Context, asOf time.Time) (Result, error) {
	pending, err := r.repo.FindPendingHikes(ctx)
	if err != nil {
		return Result{}, apperror.TransientStore(err)
	}

	plans := buildActivationPlan(pending, asOf)
	if len(plans) == 0 {
		r.logger.Debug("no hikes due", zap.Time("as_of", asOf), zap.Int("pending", len(pending)))
		return Result{}, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, apperror.TransientStore(err)
	}
	defer tx.Rollback()

	qtx := r.repo.WithTx(tx)

	var result Result
	for _, plan := range plans {
		current, err := qtx.FindEnabledByEmployee(ctx, plan.EmployeeID)
		switch {
		case err == nil:
			if err := qtx.UpdateActiveStatus(ctx, current.ID.String(), salary.ActiveStatusDisabled, nil); err != nil {
				return Result{}, apperror.TransientStore(err)
			}
			result.Disabled++
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Nothing to retire; the selected record becomes the first
			// enabled one for this employee.
		default:
			return Result{}, apperror.TransientStore(err)
		}

		period := salary.PeriodFromDate(*plan.Selected.Hike.StartDate)
		if err := qtx.UpdateActiveStatus(ctx, plan.Selected.ID.String(), salary.ActiveStatusEnabled, &period); err != nil {
			return Result{}, apperror.TransientStore(err)
		}
		result.Activated++

		for _, obsolete := range plan.Superseded {
			if err := qtx.MarkHikeSuperseded(ctx, obsolete.ID.String()); err != nil {
				return Result{}, apperror.TransientStore(err)
			}
			result.Disabled++
		}
	}

	if err := tx.Commit(); err != nil {
		return Result{}, apperror.TransientStore(err)
	}

	r.logger.Info("reconciliation pass committed",
		zap.Time("as_of", asOf),
		zap.Int("activated", result.Activated),
		zap.Int("disabled", result.Disabled),
	)

	return result, nil
}
