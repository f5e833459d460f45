package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/core/services"
)

// MockActivityRepository is a mock type for the ActivityRepository interface
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) SaveActivities(ctx context.Context, activities []domain.Activity) error {
	args := m.Called(ctx, activities)
	return args.Error(0)
}

func (m *MockActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindActivitiesByIDs(ctx context.Context, activityIDs []string) ([]domain.Activity, error) {
	args := m.Called(ctx, activityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) UpdateActivity(ctx context.Context, activityID string, stateID, observation *string, updatedBy string) error {
	args := m.Called(ctx, activityID, stateID, observation, updatedBy)
	return args.Error(0)
}

func (m *MockActivityRepository) ListActivitiesByWorkday(ctx context.Context, workdayID string) ([]domain.Activity, error) {
	args := m.Called(ctx, workdayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) ListActivitiesByWorkdayAndState(ctx context.Context, workdayID, stateID string) ([]domain.Activity, error) {
	args := m.Called(ctx, workdayID, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

// --- Test Suite Setup ---

type CarryForwardServiceTestSuite struct {
	suite.Suite
	mockWorkdayRepo  *MockWorkdayRepository
	mockActivityRepo *MockActivityRepository
	mockStateRepo    *MockTaskStateRepository
	service          portssvc.CarryForwardSvc

	pendingState *domain.TaskState
}

func (suite *CarryForwardServiceTestSuite) SetupTest() {
	suite.mockWorkdayRepo = new(MockWorkdayRepository)
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.mockStateRepo = new(MockTaskStateRepository)
	suite.service = services.NewCarryForwardService(suite.mockWorkdayRepo, suite.mockActivityRepo, suite.mockStateRepo)
	suite.pendingState = &domain.TaskState{StateID: uuid.NewString(), Name: domain.StatePending}
}

// candidateFixture wires a closed workday with the given pending activities
// into the mocks.
func (suite *CarryForwardServiceTestSuite) candidateFixture(ctx context.Context, userID string, candidates []domain.Activity) {
	checkoutAt := time.Now().Add(-16 * time.Hour)
	last := &domain.Workday{
		WorkdayID:  uuid.NewString(),
		UserID:     userID,
		CheckoutAt: &checkoutAt,
	}
	suite.mockWorkdayRepo.On("FindLatestClosedWorkday", ctx, userID).Return(last, nil).Once()
	suite.mockStateRepo.On("FindTaskStateByName", ctx, domain.StatePending).Return(suite.pendingState, nil).Once()
	suite.mockActivityRepo.On("ListActivitiesByWorkdayAndState", ctx, last.WorkdayID, suite.pendingState.StateID).
		Return(candidates, nil).Once()
}

// --- Test Cases ---

func (suite *CarryForwardServiceTestSuite) TestListPendingCandidates_NoClosedWorkday() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockWorkdayRepo.On("FindLatestClosedWorkday", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	candidates, err := suite.service.ListPendingCandidates(ctx, userID)

	suite.Require().NoError(err)
	suite.Empty(candidates)
	suite.NotNil(candidates)
	suite.mockStateRepo.AssertNotCalled(suite.T(), "FindTaskStateByName", mock.Anything, mock.Anything)
	suite.mockWorkdayRepo.AssertExpectations(suite.T())
}

func (suite *CarryForwardServiceTestSuite) TestListPendingCandidates_RepoError() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockWorkdayRepo.On("FindLatestClosedWorkday", ctx, userID).Return(nil, expectedErr).Once()

	candidates, err := suite.service.ListPendingCandidates(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(candidates)
	suite.ErrorIs(err, expectedErr)
	suite.mockWorkdayRepo.AssertExpectations(suite.T())
}

func (suite *CarryForwardServiceTestSuite) TestListPendingCandidates_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expected := []domain.Activity{
		{ActivityID: uuid.NewString(), Task: "Migrar servidor", StateID: suite.pendingState.StateID},
	}
	suite.candidateFixture(ctx, userID, expected)

	candidates, err := suite.service.ListPendingCandidates(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expected, candidates)
	suite.mockWorkdayRepo.AssertExpectations(suite.T())
	suite.mockStateRepo.AssertExpectations(suite.T())
	suite.mockActivityRepo.AssertExpectations(suite.T())
}

func (suite *CarryForwardServiceTestSuite) TestBuildCarryClones_EmptySelection() {
	ctx := context.Background()

	clones, err := suite.service.BuildCarryClones(ctx, uuid.NewString(), uuid.NewString(), nil, time.Now())

	suite.Require().NoError(err)
	suite.Empty(clones)
	suite.mockWorkdayRepo.AssertNotCalled(suite.T(), "FindLatestClosedWorkday", mock.Anything, mock.Anything)
}

func (suite *CarryForwardServiceTestSuite) TestBuildCarryClones_CloneFields() {
	ctx := context.Background()
	userID := uuid.NewString()
	newWorkdayID := uuid.NewString()
	now := time.Now()
	origin := domain.Activity{
		ActivityID:  uuid.NewString(),
		WorkdayID:   uuid.NewString(),
		Task:        "Migrar servidor",
		Goal:        "Dejarlo en produccion",
		StateID:     suite.pendingState.StateID,
		Observation: "avanzado al 50%",
	}
	suite.candidateFixture(ctx, userID, []domain.Activity{origin})

	clones, err := suite.service.BuildCarryClones(ctx, newWorkdayID, userID, []string{origin.ActivityID}, now)

	suite.Require().NoError(err)
	suite.Require().Len(clones, 1)
	clone := clones[0]
	suite.NotEqual(origin.ActivityID, clone.ActivityID)
	suite.Equal(newWorkdayID, clone.WorkdayID)
	suite.Equal(origin.Task, clone.Task)
	suite.Equal(origin.Goal, clone.Goal)
	suite.Equal(origin.StateID, clone.StateID)
	suite.True(clone.Carried)
	suite.Equal(origin.ActivityID, clone.OriginActivityID)
	suite.Equal(domain.CarryMarker+": avanzado al 50%", clone.Observation)
	suite.Equal(userID, clone.CreatedBy)
	suite.Equal(now, clone.CreatedAt)
}

func (suite *CarryForwardServiceTestSuite) TestBuildCarryClones_EmptyOriginObservation() {
	ctx := context.Background()
	userID := uuid.NewString()
	origin := domain.Activity{
		ActivityID: uuid.NewString(),
		Task:       "Inventario",
		Goal:       "Cerrarlo",
		StateID:    suite.pendingState.StateID,
	}
	suite.candidateFixture(ctx, userID, []domain.Activity{origin})

	clones, err := suite.service.BuildCarryClones(ctx, uuid.NewString(), userID, []string{origin.ActivityID}, time.Now())

	suite.Require().NoError(err)
	suite.Require().Len(clones, 1)
	suite.Equal(domain.CarryMarker, clones[0].Observation)
}

func (suite *CarryForwardServiceTestSuite) TestBuildCarryClones_DropsIneligibleAndDuplicates() {
	ctx := context.Background()
	userID := uuid.NewString()
	origin := domain.Activity{
		ActivityID: uuid.NewString(),
		Task:       "Tarea valida",
		Goal:       "Meta",
		StateID:    suite.pendingState.StateID,
	}
	suite.candidateFixture(ctx, userID, []domain.Activity{origin})

	selection := []string{origin.ActivityID, uuid.NewString(), origin.ActivityID}
	clones, err := suite.service.BuildCarryClones(ctx, uuid.NewString(), userID, selection, time.Now())

	suite.Require().NoError(err)
	suite.Len(clones, 1)
}

func (suite *CarryForwardServiceTestSuite) TestMaterializeCarry_Persists() {
	ctx := context.Background()
	userID := uuid.NewString()
	newWorkdayID := uuid.NewString()
	origin := domain.Activity{
		ActivityID: uuid.NewString(),
		Task:       "Terminar informe",
		Goal:       "Entregarlo",
		StateID:    suite.pendingState.StateID,
	}
	suite.candidateFixture(ctx, userID, []domain.Activity{origin})
	suite.mockActivityRepo.On("SaveActivities", ctx, mock.MatchedBy(func(acts []domain.Activity) bool {
		return len(acts) == 1 && acts[0].WorkdayID == newWorkdayID && acts[0].Carried
	})).Return(nil).Once()

	clones, err := suite.service.MaterializeCarry(ctx, newWorkdayID, userID, []string{origin.ActivityID})

	suite.Require().NoError(err)
	suite.Len(clones, 1)
	suite.mockActivityRepo.AssertExpectations(suite.T())
}

func (suite *CarryForwardServiceTestSuite) TestMaterializeCarry_NothingEligible() {
	ctx := context.Background()
	userID := uuid.NewString()
	suite.candidateFixture(ctx, userID, []domain.Activity{})

	clones, err := suite.service.MaterializeCarry(ctx, uuid.NewString(), userID, []string{uuid.NewString()})

	suite.Require().NoError(err)
	suite.Empty(clones)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "SaveActivities", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestCarryForwardService(t *testing.T) {
	suite.Run(t, new(CarryForwardServiceTestSuite))
}
