package salary_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/salary"
	salaryerrors "go-payroll/internal/salary/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeSalaryService struct {
	createFn         func(ctx context.Context, req salary.CreateSalaryRequest) (salary.SalaryResponse, error)
	getAllFn         func(ctx context.Context) ([]salary.SalaryResponse, error)
	getByIDFn        func(ctx context.Context, id string) (salary.SalaryResponse, error)
	getActiveFn      func(ctx context.Context, employeeID string) (salary.SalaryResponse, error)
	getHistoryFn     func(ctx context.Context, employeeID string) ([]salary.SalaryResponse, error)
	hasPendingHikeFn func(ctx context.Context, employeeID string) (salary.PendingHikeResponse, error)
	applyHikeFn      func(ctx context.Context, id string, req salary.ApplyHikeRequest) (salary.ApplyHikeResponse, error)
}

func (f *fakeSalaryService) Create(ctx context.Context, req salary.CreateSalaryRequest) (salary.SalaryResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeSalaryService) GetAll(ctx context.Context) ([]salary.SalaryResponse, error) {
	return f.getAllFn(ctx)
}

func (f *fakeSalaryService) GetByID(ctx context.Context, id string) (salary.SalaryResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeSalaryService) GetActive(ctx context.Context, employeeID string) (salary.SalaryResponse, error) {
	return f.getActiveFn(ctx, employeeID)
}

func (f *fakeSalaryService) GetHistory(ctx context.Context, employeeID string) ([]salary.SalaryResponse, error) {
	return f.getHistoryFn(ctx, employeeID)
}

func (f *fakeSalaryService) HasPendingHike(ctx context.Context, employeeID string) (salary.PendingHikeResponse, error) {
	return f.hasPendingHikeFn(ctx, employeeID)
}

func (f *fakeSalaryService) ApplyHike(ctx context.Context, id string, req salary.ApplyHikeRequest) (salary.ApplyHikeResponse, error) {
	return f.applyHikeFn(ctx, id, req)
}

func TestSalaryHandler_ApplyHike(t *testing.T) {
	salaryID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeSalaryService{
			applyHikeFn: func(ctx context.Context, id string, req salary.ApplyHikeRequest) (salary.ApplyHikeResponse, error) {
				assert.Equal(t, salaryID, id)
				assert.Equal(t, "2026-06-15", req.StartDate)
				assert.Equal(t, 10.0, req.HikePercent)
				return salary.ApplyHikeResponse{
					CurrentSalary: salary.SalaryResponse{ID: id, ActiveStatus: salary.ActiveStatusEnabled},
					NewSalary:     salary.SalaryResponse{ID: uuid.New().String(), ActiveStatus: salary.ActiveStatusDisabled},
				}, nil
			},
		}

		h := salary.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"start_date":"2026-06-15","hike_percent":10}`
		c.Request = httptest.NewRequest(http.MethodPost, "/salaries/"+salaryID+"/apply-hike", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: salaryID}}

		h.ApplyHike(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp salary.ApplyHikeResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, salaryID, resp.CurrentSalary.ID)
		assert.Equal(t, salary.ActiveStatusDisabled, resp.NewSalary.ActiveStatus)
	})

	t.Run("missing fields rejected by binding", func(t *testing.T) {
		svc := &fakeSalaryService{}

		h := salary.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/salaries/"+salaryID+"/apply-hike", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: salaryID}}

		h.ApplyHike(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("no enabled record", func(t *testing.T) {
		svc := &fakeSalaryService{
			applyHikeFn: func(ctx context.Context, id string, req salary.ApplyHikeRequest) (salary.ApplyHikeResponse, error) {
				return salary.ApplyHikeResponse{}, salaryerrors.ErrActiveSalaryNotFound
			},
		}

		h := salary.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"start_date":"2026-06-15","hike_percent":10}`
		c.Request = httptest.NewRequest(http.MethodPost, "/salaries/"+salaryID+"/apply-hike", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: salaryID}}

		h.ApplyHike(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
	})
}

func TestSalaryHandler_HasPendingHike(t *testing.T) {
	t.Run("pending hike reported", func(t *testing.T) {
		svc := &fakeSalaryService{
			hasPendingHikeFn: func(ctx context.Context, employeeID string) (salary.PendingHikeResponse, error) {
				assert.Equal(t, "EMP-001", employeeID)
				return salary.PendingHikeResponse{
					HasPendingHike: true,
					PendingSalary:  &salary.SalaryResponse{EmployeeID: employeeID},
				}, nil
			},
		}

		h := salary.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees/EMP-001/salary/pending-hike", nil)
		c.Params = gin.Params{{Key: "employeeId", Value: "EMP-001"}}

		h.HasPendingHike(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp salary.PendingHikeResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.True(t, resp.HasPendingHike)
	})
}
