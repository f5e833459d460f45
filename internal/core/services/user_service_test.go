package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/checkin-tracker/tracker_backend/internal/apperrors"
	"github.com/checkin-tracker/tracker_backend/internal/core/domain"
	portssvc "github.com/checkin-tracker/tracker_backend/internal/core/ports/services"
	"github.com/checkin-tracker/tracker_backend/internal/core/services"
	"github.com/checkin-tracker/tracker_backend/internal/dto"
)

// MockRoleRepository is a mock type for the RoleRepository interface
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

func (m *MockRoleRepository) UpdateRole(ctx context.Context, roleID, name, updatedBy string) error {
	args := m.Called(ctx, roleID, name, updatedBy)
	return args.Error(0)
}

func (m *MockRoleRepository) DeleteRole(ctx context.Context, roleID string) error {
	args := m.Called(ctx, roleID)
	return args.Error(0)
}

// MockAreaRepository is a mock type for the AreaRepository interface
type MockAreaRepository struct {
	mock.Mock
}

func (m *MockAreaRepository) SaveArea(ctx context.Context, area domain.Area) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *MockAreaRepository) FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *MockAreaRepository) FindAreaByName(ctx context.Context, name string) (*domain.Area, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *MockAreaRepository) ListAreas(ctx context.Context) ([]domain.Area, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Area), args.Error(1)
}

func (m *MockAreaRepository) UpdateArea(ctx context.Context, areaID, name, updatedBy string) error {
	args := m.Called(ctx, areaID, name, updatedBy)
	return args.Error(0)
}

func (m *MockAreaRepository) DeleteArea(ctx context.Context, areaID string) error {
	args := m.Called(ctx, areaID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockRoleRepo *MockRoleRepository
	mockAreaRepo *MockAreaRepository
	mockAudit    *MockAuditRecorder
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockRoleRepo = new(MockRoleRepository)
	suite.mockAreaRepo = new(MockAreaRepository)
	suite.mockAudit = new(MockAuditRecorder)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockRoleRepo, suite.mockAreaRepo, suite.mockAudit)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	roleID := uuid.NewString()
	req := dto.CreateUserRequest{
		FirstName: "Laura",
		LastName:  "Gómez",
		Email:     "laura.gomez@example.com",
		Password:  "contrasena-larga",
		RoleID:    roleID,
	}

	suite.mockRoleRepo.On("FindRoleByID", ctx, roleID).
		Return(&domain.Role{RoleID: roleID, Name: domain.RoleEmployee}, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email && u.RoleID == roleID && u.UserID != ""
	}), mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) == nil
	})).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionCreateUser, mock.AnythingOfType("string"), domain.SystemUserID).Return().Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(req.Email, user.Email)
	suite.NotEmpty(user.UserID)

	suite.mockRoleRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
	suite.mockAreaRepo.AssertNotCalled(suite.T(), "FindAreaByID", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		FirstName: "Laura",
		LastName:  "Gómez",
		Email:     "laura.gomez@example.com",
		Password:  "contrasena-larga",
		RoleID:    uuid.NewString(),
	}

	suite.mockRoleRepo.On("FindRoleByID", ctx, req.RoleID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	roleID := uuid.NewString()
	req := dto.CreateUserRequest{
		FirstName: "Laura",
		LastName:  "Gómez",
		Email:     "laura.gomez@example.com",
		Password:  "contrasena-larga",
		RoleID:    roleID,
	}

	suite.mockRoleRepo.On("FindRoleByID", ctx, roleID).
		Return(&domain.Role{RoleID: roleID, Name: domain.RoleEmployee}, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("string")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "contrasena-larga"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "laura.gomez@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, string(hash), nil).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionLogin, mock.AnythingOfType("string"), user.UserID).Return().Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, user.Email, password)

	suite.Require().NoError(err)
	suite.Equal(user, authenticated)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("la-correcta"), bcrypt.MinCost)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "laura.gomez@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, string(hash), nil).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, user.Email, "otra-distinta")

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	ctx := context.Background()
	email := "nadie@example.com"

	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(nil, "", apperrors.ErrNotFound).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, email, "cualquiera")

	suite.Require().Error(err)
	suite.Nil(authenticated)
	// Unknown account and wrong password must be indistinguishable.
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestAssignRole_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	roleID := uuid.NewString()
	updated := &domain.User{UserID: userID, RoleID: roleID}

	suite.mockRoleRepo.On("FindRoleByID", ctx, roleID).
		Return(&domain.Role{RoleID: roleID, Name: domain.RoleSupervisor}, nil).Once()
	suite.mockUserRepo.On("SetUserRole", ctx, userID, roleID, domain.SystemUserID).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionAssignRole, mock.AnythingOfType("string"), domain.SystemUserID).Return().Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(updated, nil).Once()

	user, err := suite.service.AssignRole(ctx, userID, roleID)

	suite.Require().NoError(err)
	suite.Equal(roleID, user.RoleID)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAssignArea_UnknownArea() {
	ctx := context.Background()
	userID := uuid.NewString()
	areaID := uuid.NewString()

	suite.mockAreaRepo.On("FindAreaByID", ctx, areaID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AssignArea(ctx, userID, areaID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SetUserArea", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_HashesNewPassword() {
	ctx := context.Background()
	userID := uuid.NewString()
	newPassword := "nueva-contrasena"
	req := dto.UpdateUserRequest{Password: &newPassword}
	updated := &domain.User{UserID: userID}

	suite.mockUserRepo.On("UpdateUser", ctx, userID, (*string)(nil), (*string)(nil), (*string)(nil), mock.MatchedBy(func(hash *string) bool {
		return hash != nil && bcrypt.CompareHashAndPassword([]byte(*hash), []byte(newPassword)) == nil
	}), domain.SystemUserID).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionUpdateUser, mock.AnythingOfType("string"), domain.SystemUserID).Return().Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(updated, nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal(updated, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("DeleteUser", ctx, userID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteUser(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestListUsers_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockUserRepo.On("ListUsers", ctx).Return(nil, expectedErr).Once()

	users, err := suite.service.ListUsers(ctx)

	suite.Require().Error(err)
	suite.Nil(users)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Test Suite ---

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
