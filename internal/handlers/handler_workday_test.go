package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
	"github.com/checkin-tracker/tracker_backend/internal/handlers"
	"github.com/checkin-tracker/tracker_backend/internal/platform/config"
)

// --- Mock WorkdayService ---

type MockWorkdayService struct {
	mock.Mock
}

func (m *MockWorkdayService) Checkin(ctx context.Context, req dto.CheckinRequest, userID string) (*domain.Workday, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workday), args.Error(1)
}

func (m *MockWorkdayService) Checkout(ctx context.Context, req dto.CheckoutRequest) (*domain.Workday, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workday), args.Error(1)
}

func (m *MockWorkdayService) Approve(ctx context.Context, workdayID string) (*domain.Workday, error) {
	args := m.Called(ctx, workdayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workday), args.Error(1)
}

func (m *MockWorkdayService) Reject(ctx context.Context, workdayID, reason string) (*domain.Workday, error) {
	args := m.Called(ctx, workdayID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workday), args.Error(1)
}

func (m *MockWorkdayService) GetUserHistory(ctx context.Context, userID string) ([]domain.Workday, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workday), args.Error(1)
}

func (m *MockWorkdayService) ListPending(ctx context.Context) ([]domain.Workday, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workday), args.Error(1)
}

func (m *MockWorkdayService) ListApproved(ctx context.Context) ([]domain.Workday, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workday), args.Error(1)
}

func (m *MockWorkdayService) ListBySupervisor(ctx context.Context, supervisorID string) ([]domain.Workday, error) {
	args := m.Called(ctx, supervisorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workday), args.Error(1)
}

func (m *MockWorkdayService) GetUserStats(ctx context.Context, userID string, from, to time.Time) (*domain.UserRangeStats, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRangeStats), args.Error(1)
}

var _ portssvc.WorkdaySvcFacade = (*MockWorkdayService)(nil)

// --- Mock CarryForwardService ---

type MockCarryForwardService struct {
	mock.Mock
}

func (m *MockCarryForwardService) ListPendingCandidates(ctx context.Context, userID string) ([]domain.Activity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockCarryForwardService) MaterializeCarry(ctx context.Context, newWorkdayID, ownerID string, activityIDs []string) ([]domain.Activity, error) {
	args := m.Called(ctx, newWorkdayID, ownerID, activityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockCarryForwardService) BuildCarryClones(ctx context.Context, newWorkdayID, ownerID string, activityIDs []string, now time.Time) ([]domain.Activity, error) {
	args := m.Called(ctx, newWorkdayID, ownerID, activityIDs, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

var _ portssvc.CarryForwardSvc = (*MockCarryForwardService)(nil)

// --- Test Suite ---

type WorkdayHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockWorkday *MockWorkdayService
	mockCarry   *MockCarryForwardService
	jwtSecret   string
}

func (suite *WorkdayHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "checkin-tracker-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *WorkdayHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockWorkday = new(MockWorkdayService)
	suite.mockCarry = new(MockCarryForwardService)

	cfg := &config.Config{
		JWTSecret:          suite.jwtSecret,
		IsProduction:       true, // skip the swagger routes
		LoginRateLimit:     "10-M",
		AuditRetentionDays: 90,
	}
	services := &portssvc.ServiceContainer{
		Workday:      suite.mockWorkday,
		CarryForward: suite.mockCarry,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *WorkdayHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *WorkdayHandlerTestSuite) TestCheckin_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	body := dto.CheckinRequest{
		Date:         "2026-03-02",
		PlannedTasks: []dto.PlannedTask{{Task: "Revisar contratos", Goal: "Cerrar pendientes"}},
	}
	created := &domain.Workday{
		WorkdayID: uuid.NewString(),
		UserID:    userID,
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CheckinAt: time.Now(),
	}

	suite.mockWorkday.On("Checkin", mock.Anything, mock.AnythingOfType("dto.CheckinRequest"), userID).
		Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/workdays/checkin", token, body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.WorkdayResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.WorkdayID, resp.WorkdayID)
	suite.Equal("2026-03-02", resp.Date)
	suite.mockWorkday.AssertExpectations(suite.T())
}

func (suite *WorkdayHandlerTestSuite) TestCheckin_DuplicateDate() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	body := dto.CheckinRequest{
		Date:         "2026-03-02",
		PlannedTasks: []dto.PlannedTask{{Task: "x", Goal: "y"}},
	}

	suite.mockWorkday.On("Checkin", mock.Anything, mock.AnythingOfType("dto.CheckinRequest"), userID).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/workdays/checkin", token, body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *WorkdayHandlerTestSuite) TestCheckin_MissingToken() {
	body := dto.CheckinRequest{
		Date:         "2026-03-02",
		PlannedTasks: []dto.PlannedTask{{Task: "x", Goal: "y"}},
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/workdays/checkin", "", body)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockWorkday.AssertNotCalled(suite.T(), "Checkin", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkdayHandlerTestSuite) TestCheckin_MissingPlannedTasks() {
	token := suite.generateTestToken(uuid.NewString())

	w := suite.doRequest(http.MethodPost, "/api/v1/workdays/checkin", token, gin.H{"date": "2026-03-02"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWorkday.AssertNotCalled(suite.T(), "Checkin", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkdayHandlerTestSuite) TestCheckout_AlreadyClosed() {
	token := suite.generateTestToken(uuid.NewString())
	workdayID := uuid.NewString()

	suite.mockWorkday.On("Checkout", mock.Anything, dto.CheckoutRequest{WorkdayID: workdayID}).
		Return(nil, apperrors.ErrAlreadyClosed).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/workdays/checkout", token, gin.H{"workdayId": workdayID})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *WorkdayHandlerTestSuite) TestApprove_AlreadyApproved() {
	token := suite.generateTestToken(uuid.NewString())
	workdayID := uuid.NewString()

	suite.mockWorkday.On("Approve", mock.Anything, workdayID).
		Return(nil, apperrors.ErrAlreadyApproved).Once()

	w := suite.doRequest(http.MethodPatch, "/api/v1/workdays/"+workdayID+"/approve", token, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *WorkdayHandlerTestSuite) TestReject_Success() {
	token := suite.generateTestToken(uuid.NewString())
	workdayID := uuid.NewString()
	rejected := &domain.Workday{
		WorkdayID: workdayID,
		UserID:    uuid.NewString(),
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	suite.mockWorkday.On("Reject", mock.Anything, workdayID, "Faltan evidencias").
		Return(rejected, nil).Once()

	w := suite.doRequest(http.MethodPatch, "/api/v1/workdays/"+workdayID+"/reject", token, gin.H{"reason": "Faltan evidencias"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.WorkdayResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Approved)
	suite.mockWorkday.AssertExpectations(suite.T())
}

func (suite *WorkdayHandlerTestSuite) TestCarryCandidates_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	candidates := []domain.Activity{
		{ActivityID: uuid.NewString(), Task: "Migrar servidor", Goal: "Produccion"},
	}

	suite.mockCarry.On("ListPendingCandidates", mock.Anything, userID).Return(candidates, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/workdays/carry-candidates", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ActivityResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(candidates[0].ActivityID, resp[0].ActivityID)
	suite.mockCarry.AssertExpectations(suite.T())
}

func (suite *WorkdayHandlerTestSuite) TestMyStats_InvalidRange() {
	token := suite.generateTestToken(uuid.NewString())

	w := suite.doRequest(http.MethodGet, "/api/v1/workdays/stats?from=2026-03-10&to=2026-03-01", token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWorkday.AssertNotCalled(suite.T(), "GetUserStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestWorkdayHandler(t *testing.T) {
	suite.Run(t, new(WorkdayHandlerTestSuite))
}
