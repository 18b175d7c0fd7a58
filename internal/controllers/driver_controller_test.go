package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"truckops/internal/models"
)

type MockDriverStore struct {
	mock.Mock
}

func (m *MockDriverStore) FindAll(ctx context.Context) ([]models.Driver, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.([]models.Driver), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDriverStore) FindByID(ctx context.Context, id uint) (*models.Driver, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*models.Driver), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDriverStore) FindByEmail(ctx context.Context, email string) (*models.Driver, error) {
	args := m.Called(ctx, email)
	if d := args.Get(0); d != nil {
		return d.(*models.Driver), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDriverStore) Create(ctx context.Context, d *models.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverStore) Update(ctx context.Context, d *models.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverStore) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter(ms *MockDriverStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctl := NewDriverController(ms)
	hos := NewHOSController(ms)

	r.POST("/drivers", ctl.Create)
	r.GET("/drivers/:id", ctl.Get)
	r.POST("/drivers/:id/assign-load", ctl.AssignLoad)
	r.POST("/drivers/:id/complete-load", ctl.CompleteLoad)
	r.POST("/drivers/:id/terminate", ctl.Terminate)
	r.GET("/drivers/:id/credentials", ctl.Credentials)
	r.POST("/drivers/:id/hos/driving", hos.AddDrivingTime)
	return r
}

func validCreateBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.CreateDriverInput{
		FirstName:         "Ray",
		LastName:          "Mercer",
		Email:             "ray.mercer@example.com",
		Phone:             "555-010-2233",
		DateOfBirth:       time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		LicenseNumber:     "D1234567",
		LicenseState:      "TX",
		LicenseClass:      "A",
		LicenseExpiry:     time.Now().AddDate(2, 0, 0),
		MedicalCardExpiry: time.Now().AddDate(1, 0, 0),
		DriverType:        models.DriverTypeCompany,
	})
	require.NoError(t, err)
	return body
}

func testDriver(t *testing.T) *models.Driver {
	t.Helper()
	d, err := models.NewDriver(models.CreateDriverInput{
		FirstName:         "Ray",
		LastName:          "Mercer",
		Email:             "ray.mercer@example.com",
		Phone:             "555-010-2233",
		DateOfBirth:       time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		LicenseNumber:     "D1234567",
		LicenseState:      "TX",
		LicenseClass:      "A",
		LicenseExpiry:     time.Now().AddDate(2, 0, 0),
		MedicalCardExpiry: time.Now().AddDate(1, 0, 0),
		DriverType:        models.DriverTypeCompany,
	})
	require.NoError(t, err)
	d.ID = 1
	return d
}

func TestCreateDriver(t *testing.T) {
	ms := new(MockDriverStore)
	ms.On("FindByEmail", mock.Anything, "ray.mercer@example.com").Return(nil, models.ErrDriverNotFound)
	ms.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/drivers", bytes.NewReader(validCreateBody(t)))
	setupRouter(ms).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Driver models.Driver `json:"driver"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusAvailable, resp.Driver.Status)
	assert.Equal(t, models.EmploymentActive, resp.Driver.EmploymentStatus)
	ms.AssertExpectations(t)
}

func TestCreateDriverDuplicateEmail(t *testing.T) {
	ms := new(MockDriverStore)
	ms.On("FindByEmail", mock.Anything, "ray.mercer@example.com").Return(testDriver(t), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/drivers", bytes.NewReader(validCreateBody(t)))
	setupRouter(ms).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	ms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDriverInvalidAge(t *testing.T) {
	ms := new(MockDriverStore)

	var input models.CreateDriverInput
	require.NoError(t, json.Unmarshal(validCreateBody(t), &input))
	input.DateOfBirth = time.Now().AddDate(-18, 0, 0)
	body, err := json.Marshal(input)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/drivers", bytes.NewReader(body))
	setupRouter(ms).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	ms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetDriverNotFound(t *testing.T) {
	ms := new(MockDriverStore)
	ms.On("FindByID", mock.Anything, uint(42)).Return(nil, models.ErrDriverNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/drivers/42", nil)
	setupRouter(ms).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignLoad(t *testing.T) {
	ms := new(MockDriverStore)
	ms.On("FindByID", mock.Anything, uint(1)).Return(testDriver(t), nil)
	ms.On("Update", mock.Anything, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/drivers/1/assign-load",
		bytes.NewReader([]byte(`{"load_id":"LOAD-77"}`)))
	setupRouter(ms).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Driver models.Driver `json:"driver"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusDriving, resp.Driver.Status)
	require.NotNil(t, resp.Driver.CurrentLoadID)
	assert.Equal(t, "LOAD-77", *resp.Driver.CurrentLoadID)
	ms.AssertExpectations(t)
}

func TestAssignLoadNotAvailable(t *testing.T) {
	driver := testDriver(t)
	require.NoError(t, driver.SetStatus(models.StatusOnBreak))

	ms := new(MockDriverStore)
	ms.On("FindByID", mock.Anything, uint(1)).Return(driver, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/drivers/1/assign-load",
		bytes.NewReader([]byte(`{"load_id":"LOAD-77"}`)))
	setupRouter(ms).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.StatusOnBreak, driver.Status)
	ms.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTerminateDriver(t *testing.T) {
	ms := new(MockDriverStore)
	ms.On("FindByID", mock.Anything, uint(1)).Return(testDriver(t), nil)
	ms.On("Update", mock.Anything, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/drivers/1/terminate",
		bytes.NewReader([]byte(`{"notes":"policy violation"}`)))
	setupRouter(ms).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Driver models.Driver `json:"driver"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.EmploymentTerminated, resp.Driver.EmploymentStatus)
	assert.Equal(t, models.StatusOffDuty, resp.Driver.Status)
	assert.Contains(t, resp.Driver.Notes, "Termination: policy violation")
}

func TestCredentials(t *testing.T) {
	driver := testDriver(t)
	driver.LicenseExpiry = time.Now().AddDate(0, 0, 10)

	ms := new(MockDriverStore)
	ms.On("FindByID", mock.Anything, uint(1)).Return(driver, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/drivers/1/credentials?days=30", nil)
	setupRouter(ms).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Credentials models.CredentialStatus `json:"credentials"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Credentials.LicenseExpired)
	assert.True(t, resp.Credentials.LicenseExpiringSoon)
}

func TestAddDrivingTimeOverLimit(t *testing.T) {
	driver := testDriver(t)
	require.NoError(t, driver.HOS.AddDrivingTime(10))

	ms := new(MockDriverStore)
	ms.On("FindByID", mock.Anything, uint(1)).Return(driver, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/drivers/1/hos/driving",
		bytes.NewReader([]byte(`{"hours":2}`)))
	setupRouter(ms).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 10.0, driver.HOS.DrivingHoursToday)
	ms.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
