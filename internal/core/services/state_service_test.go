package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/core/services"
)

type TaskStateServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockTaskStateRepository
	mockAudit *MockAuditRecorder
	service   portssvc.TaskStateSvcFacade
}

func (suite *TaskStateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTaskStateRepository)
	suite.mockAudit = new(MockAuditRecorder)
	suite.service = services.NewTaskStateService(suite.mockRepo, suite.mockAudit)
}

func (suite *TaskStateServiceTestSuite) TestCreateTaskState_Success() {
	ctx := context.Background()

	suite.mockRepo.On("SaveTaskState", ctx, mock.MatchedBy(func(s domain.TaskState) bool {
		return s.Name == "En revisión" && s.StateID != ""
	})).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionCreateState, mock.AnythingOfType("string"), domain.SystemUserID).Return().Once()

	state, err := suite.service.CreateTaskState(ctx, "En revisión")

	suite.Require().NoError(err)
	suite.Equal("En revisión", state.Name)
	suite.NotEmpty(state.StateID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *TaskStateServiceTestSuite) TestCreateTaskState_DuplicateName() {
	ctx := context.Background()

	suite.mockRepo.On("SaveTaskState", ctx, mock.AnythingOfType("domain.TaskState")).
		Return(apperrors.ErrDuplicate).Once()

	state, err := suite.service.CreateTaskState(ctx, domain.StatePending)

	suite.Require().Error(err)
	suite.Nil(state)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TaskStateServiceTestSuite) TestDeleteTaskState_BlockedWhileReferenced() {
	ctx := context.Background()
	stateID := uuid.NewString()

	suite.mockRepo.On("CountActivitiesInState", ctx, stateID).Return(int64(7), nil).Once()

	err := suite.service.DeleteTaskState(ctx, stateID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTaskState", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaskStateServiceTestSuite) TestDeleteTaskState_Success() {
	ctx := context.Background()
	stateID := uuid.NewString()

	suite.mockRepo.On("CountActivitiesInState", ctx, stateID).Return(int64(0), nil).Once()
	suite.mockRepo.On("DeleteTaskState", ctx, stateID).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionDeleteState, mock.AnythingOfType("string"), domain.SystemUserID).Return().Once()

	err := suite.service.DeleteTaskState(ctx, stateID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *TaskStateServiceTestSuite) TestUpdateTaskState_RefetchesAfterRename() {
	ctx := context.Background()
	stateID := uuid.NewString()
	renamed := &domain.TaskState{StateID: stateID, Name: "Bloqueado"}

	suite.mockRepo.On("UpdateTaskState", ctx, stateID, "Bloqueado", domain.SystemUserID).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionUpdateState, mock.AnythingOfType("string"), domain.SystemUserID).Return().Once()
	suite.mockRepo.On("FindTaskStateByID", ctx, stateID).Return(renamed, nil).Once()

	state, err := suite.service.UpdateTaskState(ctx, stateID, "Bloqueado")

	suite.Require().NoError(err)
	suite.Equal(renamed, state)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaskStateServiceTestSuite) TestUpdateTaskState_NotFound() {
	ctx := context.Background()
	stateID := uuid.NewString()

	suite.mockRepo.On("UpdateTaskState", ctx, stateID, "Bloqueado", domain.SystemUserID).
		Return(apperrors.ErrNotFound).Once()

	state, err := suite.service.UpdateTaskState(ctx, stateID, "Bloqueado")

	suite.Require().Error(err)
	suite.Nil(state)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTaskStateService(t *testing.T) {
	suite.Run(t, new(TaskStateServiceTestSuite))
}
