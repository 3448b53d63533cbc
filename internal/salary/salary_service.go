package salary

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	salaryerrors "go-payroll/internal/salary/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory is the narrow contract this module needs from the
// employee module: display fields to stamp on new salary records.
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, employeeID string) (EmployeeInfo, error)
}

type EmployeeInfo struct {
	Name        string
	Email       string
	Designation string
}

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error)
	GetAll(ctx context.Context) ([]SalaryResponse, error)
	GetByID(ctx context.Context, id string) (SalaryResponse, error)
	GetActive(ctx context.Context, employeeID string) (SalaryResponse, error)
	GetHistory(ctx context.Context, employeeID string) ([]SalaryResponse, error)
	HasPendingHike(ctx context.Context, employeeID string) (PendingHikeResponse, error)
	ApplyHike(ctx context.Context, id string, req ApplyHikeRequest) (ApplyHikeResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory EmployeeDirectory) Service {
	return NewServiceWithOutbox(db, repo, directory, nil)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Create is the manual creation path that bypasses the hike flow, e.g.
// the first salary record of a new employee. It must uphold the single
// enabled record per employee rule on its own.
func (s *service) Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	period := PeriodFromDate(time.Now().UTC())
	if req.Month != "" {
		period.Month = req.Month
	}
	if req.Year != 0 {
		period.Year = req.Year
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	info, err := s.directory.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Warn("create salary employee lookup failed",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return SalaryResponse{}, err
	}

	exists, err := qtx.ExistsEnabledForPeriod(ctx, req.EmployeeID, period.Month, period.Year)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}
	if exists {
		return SalaryResponse{}, salaryerrors.ErrDuplicateEnabledPeriod
	}

	id := uuid.New()
	record := &Salary{
		ID:              id,
		EmployeeID:      req.EmployeeID,
		Name:            info.Name,
		Email:           info.Email,
		Designation:     info.Designation,
		Month:           period.Month,
		Year:            period.Year,
		PayDate:         time.Now().UTC(),
		MonthlyCTC:      req.MonthlyCTC,
		PaidDays:        req.PaidDays,
		LopDays:         req.LopDays,
		RemainingLeaves: req.RemainingLeaves,
		LeaveTaken:      req.LeaveTaken,
		Status:          StatusDraft,
		ActiveStatus:    ActiveStatusEnabled,
		Components:      buildComponents(id, req.Earnings, req.Deductions),
	}

	if err := qtx.Create(ctx, record); err != nil {
		s.logger.Error("create salary persist failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	return mapToResponse(*record), nil
}

// ApplyHike schedules a salary hike: it inserts a new disabled record
// carrying the raised CTC and leaves the currently enabled record
// untouched. The activation scheduler performs the switch on the start
// date.
func (s *service) ApplyHike(
	ctx context.Context,
	id string,
	req ApplyHikeRequest,
) (ApplyHikeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.HikePercent <= 0 || req.HikePercent > 100 {
		return ApplyHikeResponse{}, salaryerrors.ErrHikePercentOutOfRange
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ApplyHikeResponse{}, salaryerrors.ErrInvalidStartDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ApplyHikeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplyHikeResponse{}, salaryerrors.ErrActiveSalaryNotFound
		}
		return ApplyHikeResponse{}, mapRepositoryError(err)
	}
	if current.ActiveStatus != ActiveStatusEnabled {
		return ApplyHikeResponse{}, salaryerrors.ErrActiveSalaryNotFound
	}

	newSalary := computeHike(current, startDate, req.HikePercent)

	if err := qtx.Create(ctx, newSalary); err != nil {
		s.logger.Error("apply hike persist failed",
			zap.String("request_id", rid),
			zap.String("salary_id", id),
			zap.Error(err),
		)
		return ApplyHikeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.SalaryHikeAppliedEvent{
			EventType:     "salary_hike_applied",
			EmployeeID:    current.EmployeeID,
			SalaryID:      current.ID.String(),
			NewSalaryID:   newSalary.ID.String(),
			HikePercent:   req.HikePercent,
			EffectiveDate: startDate.Format("2006-01-02"),
			OccurredAt:    time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return ApplyHikeResponse{}, err
		}

		outboxTx := s.outbox.WithTx(tx)
		if err := outboxTx.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "salary",
			AggregateID:   newSalary.ID.String(),
			EventType:     event.EventType,
			Topic:         events.SalaryHikeAppliedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return ApplyHikeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ApplyHikeResponse{}, err
	}

	s.logger.Info("hike scheduled",
		zap.String("request_id", rid),
		zap.String("employee_id", current.EmployeeID),
		zap.Float64("hike_percent", req.HikePercent),
		zap.String("start_date", req.StartDate),
	)

	return ApplyHikeResponse{
		CurrentSalary: mapToResponse(*current),
		NewSalary:     mapToResponse(*newSalary),
	}, nil
}

func (s *service) GetAll(ctx context.Context) ([]SalaryResponse, error) {
	salaries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(salaries), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*record), nil
}

func (s *service) GetActive(ctx context.Context, employeeID string) (SalaryResponse, error) {
	record, err := s.repo.FindEnabledByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrActiveSalaryNotFound
		}
		return SalaryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*record), nil
}

func (s *service) GetHistory(ctx context.Context, employeeID string) ([]SalaryResponse, error) {
	salaries, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(salaries), nil
}

func (s *service) HasPendingHike(ctx context.Context, employeeID string) (PendingHikeResponse, error) {
	record, err := s.repo.FindPendingHikeByEmployee(ctx, employeeID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PendingHikeResponse{HasPendingHike: false}, nil
		}
		return PendingHikeResponse{}, mapRepositoryError(err)
	}

	resp := mapToResponse(*record)
	return PendingHikeResponse{
		HasPendingHike: true,
		PendingSalary:  &resp,
	}, nil
}

func buildComponents(salaryID uuid.UUID, earnings, deductions []ComponentInput) []SalaryComponent {
	components := make([]SalaryComponent, 0, len(earnings)+len(deductions))
	for _, e := range earnings {
		components = append(components, SalaryComponent{
			ID:            uuid.New(),
			SalaryID:      salaryID,
			ComponentType: ComponentEarning,
			Name:          e.Type,
			Amount:        e.Amount,
		})
	}
	for _, d := range deductions {
		components = append(components, SalaryComponent{
			ID:            uuid.New(),
			SalaryID:      salaryID,
			ComponentType: ComponentDeduction,
			Name:          d.Type,
			Amount:        d.Amount,
		})
	}
	return components
}

func mapToResponse(record Salary) SalaryResponse {
	earnings := make([]ComponentResponse, 0, len(record.Components))
	deductions := make([]ComponentResponse, 0, len(record.Components))
	for _, c := range record.Components {
		line := ComponentResponse{Type: c.Name, Amount: c.Amount}
		switch c.ComponentType {
		case ComponentEarning:
			earnings = append(earnings, line)
		case ComponentDeduction:
			deductions = append(deductions, line)
		}
	}

	resp := SalaryResponse{
		ID:              record.ID.String(),
		EmployeeID:      record.EmployeeID,
		Name:            record.Name,
		Email:           record.Email,
		Designation:     record.Designation,
		Month:           record.Month,
		Year:            record.Year,
		MonthlyCTC:      record.MonthlyCTC,
		GrossEarnings:   record.GrossEarnings,
		TotalDeductions: record.TotalDeductions,
		NetPay:          record.NetPay,
		PaidDays:        record.PaidDays,
		LopDays:         record.LopDays,
		RemainingLeaves: record.RemainingLeaves,
		LeaveTaken:      record.LeaveTaken,
		Earnings:        earnings,
		Deductions:      deductions,
		Status:          record.Status,
		ActiveStatus:    record.ActiveStatus,
	}

	if !record.PayDate.IsZero() {
		resp.PayDate = record.PayDate.Format("2006-01-02")
	}
	if !record.CreatedAt.IsZero() {
		resp.CreatedAt = record.CreatedAt.Format(time.RFC3339)
	}
	if record.Hike.Applied {
		hike := &HikeResponse{
			HikePercent:        record.Hike.Percent,
			PreviousMonthlyCTC: record.Hike.PreviousMonthlyCTC,
			Applied:            true,
		}
		if record.Hike.StartDate != nil {
			hike.StartDate = record.Hike.StartDate.Format("2006-01-02")
		}
		resp.Hike = hike
	}

	return resp
}

func mapToListResponse(salaries []Salary) []SalaryResponse {
	resp := make([]SalaryResponse, len(salaries))
	for i, record := range salaries {
		resp[i] = mapToResponse(record)
	}
	return resp
}
