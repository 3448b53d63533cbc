package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/salary"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn           func(tx *sql.Tx) employee.Repository
	createFn           func(ctx context.Context, empl *employee.Employee) error
	findAllFn          func(ctx context.Context) ([]employee.Employee, error)
	findByEmployeeIDFn func(ctx context.Context, employeeID string) (*employee.Employee, error)
	updateFn           func(ctx context.Context, empl *employee.Employee) error
	deleteFn           func(ctx context.Context, employeeID string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if f.findByEmployeeIDFn != nil {
		return f.findByEmployeeIDFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, employeeID)
	}
	return nil
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *fakeEmployeeRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	svc := employee.NewService(db, repo)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		req := employee.CreateEmployeeRequest{
			EmployeeID:  "EMP-001",
			Name:        "Asha Nair",
			Email:       "asha.nair@example.com",
			Designation: "Software Engineer",
			JoiningDate: "2025-04-01",
		}

		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, "EMP-001", empl.EmployeeID)
			assert.Equal(t, "Asha Nair", empl.Name)
			assert.Equal(t, "2025-04-01", empl.JoiningDate.Format("2006-01-02"))
			return nil
		}

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-001", resp.EmployeeID)
		assert.Equal(t, "2025-04-01", resp.JoiningDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate employee id", func(t *testing.T) {
		req := employee.CreateEmployeeRequest{
			EmployeeID:  "EMP-001",
			Name:        "Asha Nair",
			Email:       "asha.nair@example.com",
			Designation: "Software Engineer",
			JoiningDate: "2025-04-01",
		}

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), EmployeeID: employeeID}, nil
		}

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		deps.repo.findByEmployeeIDFn = nil
	})

	t.Run("invalid joining date", func(t *testing.T) {
		req := employee.CreateEmployeeRequest{
			EmployeeID:  "EMP-001",
			Name:        "Asha Nair",
			Email:       "asha.nair@example.com",
			Designation: "Software Engineer",
			JoiningDate: "01-04-2025",
		}

		_, err := deps.service.Create(ctx, req)

		assert.Error(t, err)
	})
}

func TestEmployeeService_GetByEmployeeID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps.repo.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:          uuid.New(),
				EmployeeID:  employeeID,
				Name:        "Asha Nair",
				Email:       "asha.nair@example.com",
				Designation: "Software Engineer",
			}, nil
		}

		resp, err := deps.service.GetByEmployeeID(ctx, "EMP-001")

		assert.NoError(t, err)
		assert.Equal(t, "EMP-001", resp.EmployeeID)
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByEmployeeID(ctx, "EMP-404")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeDirectory(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	directory := employee.NewDirectory(deps.service)

	t.Run("maps employee display fields", func(t *testing.T) {
		deps.repo.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:          uuid.New(),
				EmployeeID:  employeeID,
				Name:        "Asha Nair",
				Email:       "asha.nair@example.com",
				Designation: "Software Engineer",
			}, nil
		}

		info, err := directory.GetEmployee(context.Background(), "EMP-001")

		assert.NoError(t, err)
		assert.Equal(t, salary.EmployeeInfo{
			Name:        "Asha Nair",
			Email:       "asha.nair@example.com",
			Designation: "Software Engineer",
		}, info)
	})

	t.Run("propagates lookup failures", func(t *testing.T) {
		deps.repo.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return nil, errors.New("db down")
		}

		_, err := directory.GetEmployee(context.Background(), "EMP-001")

		assert.Error(t, err)
	})
}
