package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/taskman/internal/auth/domain"
	"github.com/allisson/taskman/internal/auth/service"
	apperrors "github.com/allisson/taskman/internal/errors"
	userDomain "github.com/allisson/taskman/internal/user/domain"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func newTestUseCase(t *testing.T, txManager *MockTxManager, userRepo *MockUserRepository) AuthUseCase {
	t.Helper()

	codec, err := service.NewTokenCodec([]byte("test-secret"))
	require.NoError(t, err)

	return NewAuthUseCase(txManager, userRepo, service.NewPasswordService(), codec)
}

func TestAuthUseCase_Register(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	uc := newTestUseCase(t, txManager, userRepo)
	ctx := context.Background()

	txManager.On("WithTx", ctx, mock.Anything).Return(nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	output, err := uc.Register(ctx, RegisterInput{
		Name:     "John Doe",
		Email:    "John@Example.com",
		Password: "SecurePass123!",
	})
	require.NoError(t, err)
	require.NotNil(t, output)

	// Email is normalized to lowercase and password stored hashed
	assert.Equal(t, "john@example.com", output.User.Email)
	assert.Equal(t, "John Doe", output.User.Name)
	assert.NotEqual(t, "SecurePass123!", output.User.Password)
	assert.NotEqual(t, uuid.Nil, output.User.ID)

	require.NotNil(t, output.Tokens)
	assert.NotEmpty(t, output.Tokens.AccessToken)
	assert.NotEmpty(t, output.Tokens.RefreshToken)
	assert.Equal(t, "bearer", output.Tokens.TokenType)

	txManager.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestAuthUseCase_Register_ValidationFailure(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	uc := newTestUseCase(t, txManager, userRepo)
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{
			name:  "missing name",
			input: RegisterInput{Email: "a@x.com", Password: "SecurePass123!"},
		},
		{
			name:  "invalid email",
			input: RegisterInput{Name: "John", Email: "not-an-email", Password: "SecurePass123!"},
		},
		{
			name:  "short password",
			input: RegisterInput{Name: "John", Email: "a@x.com", Password: "short"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := uc.Register(ctx, tt.input)
			assert.Nil(t, output)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}

	// No repository call should have happened
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUseCase_Register_DuplicateEmail(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	uc := newTestUseCase(t, txManager, userRepo)
	ctx := context.Background()

	txManager.On("WithTx", ctx, mock.Anything).Return(nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(userDomain.ErrUserAlreadyExists)

	output, err := uc.Register(ctx, RegisterInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "SecurePass123!",
	})
	assert.Nil(t, output)
	assert.True(t, apperrors.Is(err, userDomain.ErrUserAlreadyExists))
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}

	passwords := service.NewPasswordService()
	hashed, err := passwords.Hash("SecurePass123!")
	require.NoError(t, err)

	codec, err := service.NewTokenCodec([]byte("test-secret"))
	require.NoError(t, err)

	uc := NewAuthUseCase(txManager, userRepo, passwords, codec)
	ctx := context.Background()

	storedUser := &userDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Email:    "john@example.com",
		Password: hashed,
	}
	userRepo.On("GetByEmail", ctx, "john@example.com").Return(storedUser, nil)

	user, err := uc.Authenticate(ctx, "john@example.com", "SecurePass123!")
	require.NoError(t, err)
	assert.Equal(t, storedUser.ID, user.ID)

	// Wrong password
	user, err = uc.Authenticate(ctx, "john@example.com", "WrongPass123!")
	assert.Nil(t, user)
	assert.True(t, apperrors.Is(err, domain.ErrInvalidCredentials))
}

func TestAuthUseCase_Authenticate_UnknownEmail(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	uc := newTestUseCase(t, txManager, userRepo)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, userDomain.ErrUserNotFound)

	// Unknown email yields the same error as a wrong password
	user, err := uc.Authenticate(ctx, "ghost@example.com", "any-password")
	assert.Nil(t, user)
	assert.True(t, apperrors.Is(err, domain.ErrInvalidCredentials))
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestAuthUseCase_Login(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}

	passwords := service.NewPasswordService()
	hashed, err := passwords.Hash("SecurePass123!")
	require.NoError(t, err)

	codec, err := service.NewTokenCodec([]byte("test-secret"))
	require.NoError(t, err)

	uc := NewAuthUseCase(txManager, userRepo, passwords, codec)
	ctx := context.Background()

	userID := uuid.Must(uuid.NewV7())
	storedUser := &userDomain.User{
		ID:       userID,
		Email:    "john@example.com",
		Password: hashed,
	}
	userRepo.On("GetByEmail", ctx, "john@example.com").Return(storedUser, nil)

	pair, err := uc.Login(ctx, "john@example.com", "SecurePass123!")
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)

	// The access token carries the subject identity and kind
	claims, err := codec.Decode(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.KindAccess, claims.Kind)

	claims, err = codec.Decode(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, domain.KindRefresh, claims.Kind)
}

func TestAuthUseCase_Refresh(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}

	codec, err := service.NewTokenCodec([]byte("test-secret"))
	require.NoError(t, err)

	uc := NewAuthUseCase(txManager, userRepo, service.NewPasswordService(), codec)
	ctx := context.Background()

	userID := uuid.Must(uuid.NewV7())
	refreshToken, err := codec.Encode("john@example.com", userID, domain.KindRefresh, domain.RefreshTokenTTL)
	require.NoError(t, err)

	accessToken, err := uc.Refresh(ctx, refreshToken)
	require.NoError(t, err)

	claims, err := codec.Decode(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.KindAccess, claims.Kind)
	assert.WithinDuration(t, time.Now().UTC().Add(domain.AccessTokenTTL), claims.ExpiresAt, 5*time.Second)
}

func TestAuthUseCase_Refresh_WrongKind(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}

	codec, err := service.NewTokenCodec([]byte("test-secret"))
	require.NoError(t, err)

	uc := NewAuthUseCase(txManager, userRepo, service.NewPasswordService(), codec)
	ctx := context.Background()

	// Presenting an access token where a refresh token is required fails
	accessToken, err := codec.Encode("john@example.com", uuid.Must(uuid.NewV7()), domain.KindAccess, domain.AccessTokenTTL)
	require.NoError(t, err)

	token, err := uc.Refresh(ctx, accessToken)
	assert.Empty(t, token)
	assert.True(t, apperrors.Is(err, domain.ErrWrongTokenKind))
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestAuthUseCase_Refresh_InvalidToken(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}
	uc := newTestUseCase(t, txManager, userRepo)
	ctx := context.Background()

	token, err := uc.Refresh(ctx, "garbage")
	assert.Empty(t, token)
	assert.True(t, apperrors.Is(err, domain.ErrInvalidToken))
}

func TestAuthUseCase_Refresh_MissingClaims(t *testing.T) {
	txManager := &MockTxManager{}
	userRepo := &MockUserRepository{}

	codec, err := service.NewTokenCodec([]byte("test-secret"))
	require.NoError(t, err)

	uc := NewAuthUseCase(txManager, userRepo, service.NewPasswordService(), codec)
	ctx := context.Background()

	// Refresh token with an empty subject
	refreshToken, err := codec.Encode("", uuid.Must(uuid.NewV7()), domain.KindRefresh, domain.RefreshTokenTTL)
	require.NoError(t, err)

	token, err := uc.Refresh(ctx, refreshToken)
	assert.Empty(t, token)
	assert.True(t, apperrors.Is(err, domain.ErrMalformedClaims))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}
