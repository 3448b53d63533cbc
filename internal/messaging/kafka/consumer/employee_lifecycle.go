package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-payroll/internal/events"
	"go-payroll/internal/salary"
	salaryerrors "go-payroll/internal/salary/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle creates the initial enabled salary record
// when an employee is onboarded. This path bypasses the hike flow, so
// the duplicate-period guard in the salary service is what keeps a
// single enabled record per employee.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	salaryService salary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = salaryService.Create(ctx, salary.CreateSalaryRequest{
			EmployeeID: event.EmployeeID,
			MonthlyCTC: 0,
		})
		if err != nil {
			if errors.Is(err, salaryerrors.ErrDuplicateEnabledPeriod) {
				log.Warn("salary already exists for employee, skipping",
					zap.String("employee_id", event.EmployeeID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create initial salary failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("initial salary created from employee_created event",
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
