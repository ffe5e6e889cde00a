package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CoderFake/healthcare-system/internal/api/handlers"
	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) List(ctx context.Context) ([]*entities.Patient, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Patient), args.Error(1)
}

func (m *MockPatientService) Get(ctx context.Context, id int64) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	patient, _ := args.Get(0).(*entities.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientService) GetByNationalID(ctx context.Context, nationalID string) (*entities.Patient, error) {
	args := m.Called(ctx, nationalID)
	patient, _ := args.Get(0).(*entities.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientService) Search(ctx context.Context, term string) ([]*entities.Patient, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]*entities.Patient), args.Error(1)
}

func (m *MockPatientService) Create(ctx context.Context, fields entities.Fields) (*entities.Patient, error) {
	args := m.Called(ctx, fields)
	patient, _ := args.Get(0).(*entities.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientService) Update(ctx context.Context, id int64, fields entities.Fields) (*entities.Patient, error) {
	args := m.Called(ctx, id, fields)
	patient, _ := args.Get(0).(*entities.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPatientService) Appointments(ctx context.Context, id int64) ([]*entities.AppointmentDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*entities.AppointmentDetail), args.Error(1)
}

func (m *MockPatientService) MedicalRecords(ctx context.Context, id int64) ([]*entities.MedicalRecordDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*entities.MedicalRecordDetail), args.Error(1)
}

func TestPatientHandler_Get(t *testing.T) {
	t.Run("returns patient", func(t *testing.T) {
		mockService := new(MockPatientService)
		handler := handlers.NewPatientHandler(mockService)

		req := httptest.NewRequest("GET", "/api/patients/3", nil)
		req.SetPathValue("id", "3")
		w := httptest.NewRecorder()

		mockService.On("Get", mock.Anything, int64(3)).
			Return(&entities.Patient{ID: 3, FirstName: "An", LastName: "Nguyen", NationalID: "012345678901"}, nil)

		handler.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, "012345678901", data["national_id"])
	})

	t.Run("absent patient is not found", func(t *testing.T) {
		mockService := new(MockPatientService)
		handler := handlers.NewPatientHandler(mockService)

		req := httptest.NewRequest("GET", "/api/patients/lookup?national_id=123456789", nil)
		w := httptest.NewRecorder()

		mockService.On("GetByNationalID", mock.Anything, "123456789").Return(nil, nil)

		handler.GetByNationalID(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, decodeResponse(t, w).Success)
	})

	t.Run("search passes the term through", func(t *testing.T) {
		mockService := new(MockPatientService)
		handler := handlers.NewPatientHandler(mockService)

		req := httptest.NewRequest("GET", "/api/patients/search?q=nguyen", nil)
		w := httptest.NewRecorder()

		mockService.On("Search", mock.Anything, "nguyen").Return([]*entities.Patient{}, nil)

		handler.Search(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestPatientHandler_Create(t *testing.T) {
	t.Run("validation errors carry fields", func(t *testing.T) {
		mockService := new(MockPatientService)
		handler := handlers.NewPatientHandler(mockService)

		req := httptest.NewRequest("POST", "/api/patients", bytes.NewBufferString(`{"first_name":"","height":172.5,"active":true,"notes":null}`))
		w := httptest.NewRecorder()

		mockService.On("Create", mock.Anything, entities.Fields{
			"first_name": "",
			"height":     "172.5",
			"active":     "true",
			"notes":      "",
		}).Return(nil, apperrors.NewFieldValidationError(map[string]string{"first_name": "is required"}))

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "is required", resp.Errors["first_name"])
		mockService.AssertExpectations(t)
	})

	t.Run("duplicate national id is a conflict", func(t *testing.T) {
		mockService := new(MockPatientService)
		handler := handlers.NewPatientHandler(mockService)

		req := httptest.NewRequest("POST", "/api/patients", bytes.NewBufferString(`{"national_id":"123456789"}`))
		w := httptest.NewRecorder()

		mockService.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewFieldConflictError("national_id", "already registered"))

		handler.Create(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestPatientHandler_Delete(t *testing.T) {
	mockService := new(MockPatientService)
	handler := handlers.NewPatientHandler(mockService)

	req := httptest.NewRequest("DELETE", "/api/patients/5", nil)
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()

	mockService.On("Delete", mock.Anything, int64(5)).Return(apperrors.NewNotFoundError("patient not found"))

	handler.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
