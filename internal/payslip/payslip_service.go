package payslip

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/salary"
	salaryerrors "go-payroll/internal/salary/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)
	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	GetDocument(ctx context.Context, id string) ([]byte, string, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]PayslipResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	salaries salary.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, salaries salary.Repository) Service {
	return NewServiceWithOutbox(db, repo, salaries, nil)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	salaries salary.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		salaries: salaries,
		outbox:   outboxRepo,
		logger:   l,
	}
}

// Generate renders a payslip document from the enabled salary record,
// stores it and marks the record paid, all in one transaction.
func (s *service) Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	record, err := s.salaries.FindByID(ctx, req.SalaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return PayslipResponse{}, err
	}

	if record.ActiveStatus != salary.ActiveStatusEnabled {
		return PayslipResponse{}, paysliperrors.ErrSalaryNotActive
	}

	exists, err := s.repo.ExistsForPeriod(ctx, record.EmployeeID, record.Month, record.Year)
	if err != nil {
		return PayslipResponse{}, err
	}
	if exists {
		return PayslipResponse{}, paysliperrors.ErrPayslipAlreadyExists
	}

	document, err := buildPayslipPDF(payslipLines(record))
	if err != nil {
		return PayslipResponse{}, err
	}

	slip := &Payslip{
		ID:              uuid.New(),
		SalaryID:        record.ID,
		EmployeeID:      record.EmployeeID,
		Name:            record.Name,
		Month:           record.Month,
		Year:            record.Year,
		GrossEarnings:   record.GrossEarnings,
		TotalDeductions: record.TotalDeductions,
		NetPay:          record.NetPay,
		Document:        document,
		GeneratedAt:     time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, slip); err != nil {
		s.logger.Error("payslip persist failed",
			zap.String("request_id", rid),
			zap.String("salary_id", req.SalaryID),
			zap.Error(err),
		)
		return PayslipResponse{}, mapRepositoryError(err)
	}

	salaryTx := s.salaries.WithTx(tx)
	if err := salaryTx.UpdateStatus(ctx, record.ID.String(), salary.StatusPaid); err != nil {
		return PayslipResponse{}, err
	}

	if s.outbox != nil {
		event := events.PayslipGeneratedEvent{
			EventType:  "payslip_generated",
			PayslipID:  slip.ID.String(),
			SalaryID:   record.ID.String(),
			EmployeeID: record.EmployeeID,
			Email:      record.Email,
			Month:      record.Month,
			Year:       record.Year,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return PayslipResponse{}, err
		}

		outboxTx := s.outbox.WithTx(tx)
		if err := outboxTx.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payslip",
			AggregateID:   slip.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayslipGeneratedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return PayslipResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	s.logger.Info("payslip generated",
		zap.String("request_id", rid),
		zap.String("payslip_id", slip.ID.String()),
		zap.String("employee_id", record.EmployeeID),
		zap.String("month", record.Month),
		zap.Int("year", record.Year),
	)

	return mapToResponse(*slip), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayslipResponse, error) {
	slip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*slip), nil
}

func (s *service) GetDocument(ctx context.Context, id string) ([]byte, string, error) {
	slip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}
	filename := fmt.Sprintf("payslip-%s-%s-%d.pdf", slip.EmployeeID, slip.Month, slip.Year)
	return slip.Document, filename, nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]PayslipResponse, error) {
	payslips, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]PayslipResponse, len(payslips))
	for i, slip := range payslips {
		resp[i] = mapToResponse(slip)
	}
	return resp, nil
}

func payslipLines(record *salary.Salary) []string {
	lines := []string{
		"Payslip",
		fmt.Sprintf("Employee: %s (%s)", record.Name, record.EmployeeID),
		fmt.Sprintf("Designation: %s", record.Designation),
		fmt.Sprintf("Period: %s %d", record.Month, record.Year),
		fmt.Sprintf("Paid days: %d, LOP days: %d", record.PaidDays, record.LopDays),
		"",
		fmt.Sprintf("Monthly CTC: %s", formatMoney(record.MonthlyCTC)),
	}

	for _, c := range record.EarningComponents() {
		lines = append(lines, fmt.Sprintf("Earning - %s: %s", c.Name, formatMoney(c.Amount)))
	}
	for _, c := range record.DeductionComponents() {
		lines = append(lines, fmt.Sprintf("Deduction - %s: %s", c.Name, formatMoney(c.Amount)))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("Gross earnings: %s", formatMoney(record.GrossEarnings)),
		fmt.Sprintf("Total deductions: %s", formatMoney(record.TotalDeductions)),
		fmt.Sprintf("Net pay: %s", formatMoney(record.NetPay)),
	)

	return lines
}

// formatMoney renders an amount stored in cents as a decimal string.
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func mapToResponse(slip Payslip) PayslipResponse {
	return PayslipResponse{
		ID:              slip.ID.String(),
		SalaryID:        slip.SalaryID.String(),
		EmployeeID:      slip.EmployeeID,
		Name:            slip.Name,
		Month:           slip.Month,
		Year:            slip.Year,
		GrossEarnings:   slip.GrossEarnings,
		TotalDeductions: slip.TotalDeductions,
		NetPay:          slip.NetPay,
		GeneratedAt:     slip.GeneratedAt.Format(time.RFC3339),
	}
}
