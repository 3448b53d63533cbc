package employee

import (
	"context"

	"go-payroll/internal/salary"
)

// directory adapts the employee service to the salary module's
// EmployeeDirectory contract.
type directory struct {
	service Service
}

func NewDirectory(service Service) salary.EmployeeDirectory {
	return &directory{service: service}
}

func (d *directory) GetEmployee(ctx context.Context, employeeID string) (salary.EmployeeInfo, error) {
	resp, err := d.service.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return salary.EmployeeInfo{}, err
	}

	return salary.EmployeeInfo{
		Name:        resp.Name,
		Email:       resp.Email,
		Designation: resp.Designation,
	}, nil
}
