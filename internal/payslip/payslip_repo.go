package payslip

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, payslip *Payslip) error
	FindByID(ctx context.Context, id string) (*Payslip, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Payslip, error)
	ExistsForPeriod(ctx context.Context, employeeID, month string, year int) (bool, error)
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

// Create goes through the raw connection so the insert can share a
// sql.Tx with the salary status flip and the outbox write.
func (r *repository) Create(ctx context.Context, payslip *Payslip) error {
	query := `
INSERT INTO payslips (
	id, salary_id, employee_id, name, month, year,
	gross_earnings, total_deductions, net_pay, document, generated_at,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		payslip.ID, payslip.SalaryID, payslip.EmployeeID, payslip.Name,
		payslip.Month, payslip.Year,
		payslip.GrossEarnings, payslip.TotalDeductions, payslip.NetPay,
		payslip.Document, payslip.GeneratedAt,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Payslip, error) {
	var payslips []Payslip
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("year DESC, generated_at DESC").
		Find(&payslips).Error
	return payslips, err
}

func (r *repository) ExistsForPeriod(
	ctx context.Context,
	employeeID, month string,
	year int,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Where("employee_id = ?", employeeID).
		Where("month = ? AND year = ?", month, year).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.raw
}
