package payslip

import (
	"time"

	"github.com/google/uuid"
)

type Payslip struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	SalaryID        uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID      string    `gorm:"type:varchar(32);not null;index:idx_payslip_employee_period"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Month           string    `gorm:"type:varchar(16);not null;index:idx_payslip_employee_period"`
	Year            int       `gorm:"not null;index:idx_payslip_employee_period"`
	GrossEarnings   int64     `gorm:"not null"`
	TotalDeductions int64     `gorm:"not null"`
	NetPay          int64     `gorm:"not null"`
	Document        []byte    `gorm:"type:bytea;not null"`
	GeneratedAt     time.Time `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}
