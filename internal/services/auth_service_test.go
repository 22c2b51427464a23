package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gudang/internal/apperror"
	"gudang/internal/logger"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

// MockOperatorRepository is a mock implementation of repositories.OperatorRepository
type MockOperatorRepository struct {
	mock.Mock
}

func (m *MockOperatorRepository) Create(ctx context.Context, operator *models.Operator) error {
	args := m.Called(ctx, operator)
	return args.Error(0)
}

func (m *MockOperatorRepository) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Operator), args.Error(1)
}

func (m *MockOperatorRepository) GetByEmail(ctx context.Context, email string) (*models.Operator, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Operator), args.Error(1)
}

func (m *MockOperatorRepository) GetByID(ctx context.Context, id uint) (*models.Operator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Operator), args.Error(1)
}

func newAuthService(repo repositories.OperatorRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, time.Hour, logger.Discard())
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	req := models.RegisterRequest{
		Username: "testuser",
		Email:    "Test@Example.com ",
		Password: "password123",
	}

	t.Run("success hashes the password", func(t *testing.T) {
		mockRepo := new(MockOperatorRepository)
		mockRepo.On("GetByUsername", ctx, "testuser").Return(nil, repositories.ErrNotFound).Once()
		mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, repositories.ErrNotFound).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Operator")).Return(nil).Once()

		operator, err := newAuthService(mockRepo).Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", operator.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte("password123")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("username already taken", func(t *testing.T) {
		mockRepo := new(MockOperatorRepository)
		mockRepo.On("GetByUsername", ctx, "testuser").Return(&models.Operator{ID: 1}, nil).Once()

		_, err := newAuthService(mockRepo).Register(ctx, req)
		assert.True(t, apperror.Is(err, apperror.KindConflict))
		assert.Contains(t, apperror.MessageOf(err), "Username 'testuser' already taken")
		mockRepo.AssertExpectations(t)
	})

	t.Run("email already registered", func(t *testing.T) {
		mockRepo := new(MockOperatorRepository)
		mockRepo.On("GetByUsername", ctx, "testuser").Return(nil, repositories.ErrNotFound).Once()
		mockRepo.On("GetByEmail", ctx, "test@example.com").Return(&models.Operator{ID: 1}, nil).Once()

		_, err := newAuthService(mockRepo).Register(ctx, req)
		assert.True(t, apperror.Is(err, apperror.KindConflict))
		assert.Contains(t, apperror.MessageOf(err), "Email 'test@example.com' already registered")
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		mockRepo := new(MockOperatorRepository)
		bad := req
		bad.Email = "not-an-email"

		_, err := newAuthService(mockRepo).Register(ctx, bad)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		assert.Contains(t, apperror.MessageOf(err), "email")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	operator := &models.Operator{
		ID:       7,
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	mockRepo := new(MockOperatorRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByUsername", ctx, "testuser").Return(operator, nil).Once()
	token, err := authService.Login(ctx, models.LoginRequest{Username: "testuser", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 7, claims["operator_id"])
	assert.Equal(t, "testuser", claims["username"])

	mockRepo.On("GetByUsername", ctx, "testuser").Return(operator, nil).Once()
	_, err = authService.Login(ctx, models.LoginRequest{Username: "testuser", Password: "wrongpassword"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.On("GetByUsername", ctx, "nobody").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Login(ctx, models.LoginRequest{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.On("GetByUsername", ctx, "testuser").Return(nil, fmt.Errorf("connection reset")).Once()
	_, err = authService.Login(ctx, models.LoginRequest{Username: "testuser", Password: "password123"})
	assert.True(t, apperror.Is(err, apperror.KindInternal))

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(new(MockOperatorRepository))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"operator_id": 7,
		"username":    "testuser",
		"exp":         jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", claims["username"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"operator_id": 7,
		"exp":         jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	otherSecret, _ := token.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(otherSecret)
	assert.Error(t, err)
}
