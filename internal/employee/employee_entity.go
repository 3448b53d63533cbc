package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name        string    `gorm:"not null"`
	Email       string    `gorm:"not null;uniqueIndex"`
	Designation string    `gorm:"not null"`
	Department  string
	Phone       string
	Address     string
	JoiningDate time.Time `gorm:"type:date"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
