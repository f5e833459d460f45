package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/core/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
)

type ActivityServiceTestSuite struct {
	suite.Suite
	mockActivityRepo *MockActivityRepository
	mockWorkdayRepo  *MockWorkdayRepository
	mockStateRepo    *MockTaskStateRepository
	mockAudit        *MockAuditRecorder
	service          portssvc.ActivitySvcFacade

	pendingState *domain.TaskState
}

func (suite *ActivityServiceTestSuite) SetupTest() {
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.mockWorkdayRepo = new(MockWorkdayRepository)
	suite.mockStateRepo = new(MockTaskStateRepository)
	suite.mockAudit = new(MockAuditRecorder)
	suite.service = services.NewActivityService(suite.mockActivityRepo, suite.mockWorkdayRepo, suite.mockStateRepo, suite.mockAudit)
	suite.pendingState = &domain.TaskState{StateID: uuid.NewString(), Name: domain.StatePending}
}

func (suite *ActivityServiceTestSuite) TestCreateActivity_DefaultsToPendingState() {
	ctx := context.Background()
	userID := uuid.NewString()
	workdayID := uuid.NewString()
	req := dto.CreateActivityRequest{
		WorkdayID: workdayID,
		Task:      "Responder correos",
		Goal:      "Bandeja a cero",
	}
	open := &domain.Workday{
		WorkdayID: workdayID,
		UserID:    userID,
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	suite.mockWorkdayRepo.On("FindWorkdayByID", ctx, workdayID).Return(open, nil).Once()
	suite.mockStateRepo.On("FindTaskStateByName", ctx, domain.StatePending).Return(suite.pendingState, nil).Once()
	suite.mockActivityRepo.On("SaveActivity", ctx, mock.MatchedBy(func(a domain.Activity) bool {
		return a.WorkdayID == workdayID && a.StateID == suite.pendingState.StateID && !a.Carried
	})).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionCreateActivity, mock.AnythingOfType("string"), userID).Return().Once()

	activity, err := suite.service.CreateActivity(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal(suite.pendingState.StateID, activity.StateID)
	suite.Equal(req.Task, activity.Task)
	suite.mockWorkdayRepo.AssertExpectations(suite.T())
	suite.mockActivityRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestCreateActivity_ForeignWorkday() {
	ctx := context.Background()
	workdayID := uuid.NewString()
	req := dto.CreateActivityRequest{WorkdayID: workdayID, Task: "x", Goal: "y"}
	foreign := &domain.Workday{WorkdayID: workdayID, UserID: uuid.NewString()}

	suite.mockWorkdayRepo.On("FindWorkdayByID", ctx, workdayID).Return(foreign, nil).Once()

	activity, err := suite.service.CreateActivity(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(activity)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "SaveActivity", mock.Anything, mock.Anything)
}

func (suite *ActivityServiceTestSuite) TestCreateActivity_ClosedWorkday() {
	ctx := context.Background()
	userID := uuid.NewString()
	workdayID := uuid.NewString()
	req := dto.CreateActivityRequest{WorkdayID: workdayID, Task: "x", Goal: "y"}
	checkoutAt := time.Now().Add(-time.Hour)
	closed := &domain.Workday{WorkdayID: workdayID, UserID: userID, CheckoutAt: &checkoutAt}

	suite.mockWorkdayRepo.On("FindWorkdayByID", ctx, workdayID).Return(closed, nil).Once()

	activity, err := suite.service.CreateActivity(ctx, req, userID)

	suite.Require().Error(err)
	suite.Nil(activity)
	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
}

func (suite *ActivityServiceTestSuite) TestCreateActivity_UnknownState() {
	ctx := context.Background()
	userID := uuid.NewString()
	workdayID := uuid.NewString()
	req := dto.CreateActivityRequest{WorkdayID: workdayID, Task: "x", Goal: "y", StateID: uuid.NewString()}
	open := &domain.Workday{WorkdayID: workdayID, UserID: userID}

	suite.mockWorkdayRepo.On("FindWorkdayByID", ctx, workdayID).Return(open, nil).Once()
	suite.mockStateRepo.On("FindTaskStateByID", ctx, req.StateID).Return(nil, apperrors.ErrNotFound).Once()

	activity, err := suite.service.CreateActivity(ctx, req, userID)

	suite.Require().Error(err)
	suite.Nil(activity)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ActivityServiceTestSuite) TestUpdateActivity_SupervisorMayUpdate() {
	ctx := context.Background()
	supervisorID := uuid.NewString()
	activityID := uuid.NewString()
	workdayID := uuid.NewString()
	doneStateID := uuid.NewString()
	observation := "Verificado por el supervisor"
	req := dto.UpdateActivityRequest{StateID: &doneStateID, Observation: &observation}

	stored := &domain.Activity{ActivityID: activityID, WorkdayID: workdayID, Task: "Inventario"}
	workday := &domain.Workday{WorkdayID: workdayID, UserID: uuid.NewString(), SupervisorID: supervisorID}
	updated := &domain.Activity{ActivityID: activityID, WorkdayID: workdayID, Task: "Inventario", StateID: doneStateID, Observation: observation}

	suite.mockActivityRepo.On("FindActivityByID", ctx, activityID).Return(stored, nil).Once()
	suite.mockWorkdayRepo.On("FindWorkdayByID", ctx, workdayID).Return(workday, nil).Once()
	suite.mockStateRepo.On("FindTaskStateByID", ctx, doneStateID).
		Return(&domain.TaskState{StateID: doneStateID, Name: domain.StateDone}, nil).Once()
	suite.mockActivityRepo.On("UpdateActivity", ctx, activityID, &doneStateID, &observation, supervisorID).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionUpdateActivity, mock.AnythingOfType("string"), supervisorID).Return().Once()
	suite.mockActivityRepo.On("FindActivityByID", ctx, activityID).Return(updated, nil).Once()

	activity, err := suite.service.UpdateActivity(ctx, activityID, req, supervisorID)

	suite.Require().NoError(err)
	suite.Equal(updated, activity)
	suite.mockActivityRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestUpdateActivity_StrangerForbidden() {
	ctx := context.Background()
	activityID := uuid.NewString()
	workdayID := uuid.NewString()
	stateID := uuid.NewString()
	req := dto.UpdateActivityRequest{StateID: &stateID}

	stored := &domain.Activity{ActivityID: activityID, WorkdayID: workdayID}
	workday := &domain.Workday{WorkdayID: workdayID, UserID: uuid.NewString(), SupervisorID: uuid.NewString()}

	suite.mockActivityRepo.On("FindActivityByID", ctx, activityID).Return(stored, nil).Once()
	suite.mockWorkdayRepo.On("FindWorkdayByID", ctx, workdayID).Return(workday, nil).Once()

	activity, err := suite.service.UpdateActivity(ctx, activityID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(activity)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "UpdateActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ActivityServiceTestSuite) TestListByWorkday_OwnerAllowed() {
	ctx := context.Background()
	userID := uuid.NewString()
	workdayID := uuid.NewString()
	workday := &domain.Workday{WorkdayID: workdayID, UserID: userID}
	expected := []domain.Activity{{ActivityID: uuid.NewString(), WorkdayID: workdayID}}

	suite.mockWorkdayRepo.On("FindWorkdayByID", ctx, workdayID).Return(workday, nil).Once()
	suite.mockActivityRepo.On("ListActivitiesByWorkday", ctx, workdayID).Return(expected, nil).Once()

	activities, err := suite.service.ListByWorkday(ctx, workdayID, userID)

	suite.Require().NoError(err)
	suite.Equal(expected, activities)
}

func (suite *ActivityServiceTestSuite) TestGetActivityByID_StrangerForbidden() {
	ctx := context.Background()
	activityID := uuid.NewString()
	workdayID := uuid.NewString()
	stored := &domain.Activity{ActivityID: activityID, WorkdayID: workdayID}
	workday := &domain.Workday{WorkdayID: workdayID, UserID: uuid.NewString(), SupervisorID: uuid.NewString()}

	suite.mockActivityRepo.On("FindActivityByID", ctx, activityID).Return(stored, nil).Once()
	suite.mockWorkdayRepo.On("FindWorkdayByID", ctx, workdayID).Return(workday, nil).Once()

	activity, err := suite.service.GetActivityByID(ctx, activityID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(activity)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestActivityService(t *testing.T) {
	suite.Run(t, new(ActivityServiceTestSuite))
}
