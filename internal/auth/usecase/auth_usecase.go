// Package usecase implements the authentication business logic: registration,
// credential verification and token pair issuance.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/taskman/internal/auth/domain"
	"github.com/allisson/taskman/internal/auth/service"
	"github.com/allisson/taskman/internal/database"
	apperrors "github.com/allisson/taskman/internal/errors"
	userDomain "github.com/allisson/taskman/internal/user/domain"
	appValidation "github.com/allisson/taskman/internal/validation"
)

// RegisterInput contains the input data for account registration
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterOutput carries the created user and its first token pair
type RegisterOutput struct {
	User   *userDomain.User
	Tokens *domain.TokenPair
}

// AuthUseCase defines the interface for authentication business logic operations
type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Authenticate(ctx context.Context, email, password string) (*userDomain.User, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	IssueTokenPair(ctx context.Context, email string, userID uuid.UUID) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *userDomain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// authUseCase handles authentication-related business logic
type authUseCase struct {
	txManager  database.TxManager
	userRepo   UserRepository
	passwords  service.PasswordService
	tokenCodec service.TokenCodec
}

// NewAuthUseCase creates a new AuthUseCase
func NewAuthUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwords service.PasswordService,
	tokenCodec service.TokenCodec,
) AuthUseCase {
	return &authUseCase{
		txManager:  txManager,
		userRepo:   userRepo,
		passwords:  passwords,
		tokenCodec: tokenCodec,
	}
}

// validateRegisterInput validates the registration input using jellydator/validation
func (uc *authUseCase) validateRegisterInput(input RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a new account and returns it with a fresh token pair.
// Duplicate emails surface as userDomain.ErrUserAlreadyExists.
func (uc *authUseCase) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	if err := uc.validateRegisterInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwords.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &userDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(strings.ToLower(input.Email)),
		Password: hashedPassword,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	tokens, err := uc.IssueTokenPair(ctx, user.Email, user.ID)
	if err != nil {
		return nil, err
	}

	return &RegisterOutput{User: user, Tokens: tokens}, nil
}

// Authenticate verifies the email/password pair and returns the matching user.
//
// When the email is unknown, the password is still verified against a dummy
// hash so the response time does not reveal whether the account exists. Both
// unknown email and wrong password return domain.ErrInvalidCredentials.
func (uc *authUseCase) Authenticate(ctx context.Context, email, password string) (*userDomain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			uc.passwords.Verify(password, uc.passwords.DummyHash())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.passwords.Verify(password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the credentials and issues a token pair
func (uc *authUseCase) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := uc.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return uc.IssueTokenPair(ctx, user.Email, user.ID)
}

// IssueTokenPair mints a fresh access/refresh token pair for the subject
func (uc *authUseCase) IssueTokenPair(
	_ context.Context,
	email string,
	userID uuid.UUID,
) (*domain.TokenPair, error) {
	accessToken, err := uc.tokenCodec.Encode(email, userID, domain.KindAccess, domain.AccessTokenTTL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode access token")
	}

	refreshToken, err := uc.tokenCodec.Encode(email, userID, domain.KindRefresh, domain.RefreshTokenTTL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode refresh token")
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    domain.TokenTypeBearer,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated.
func (uc *authUseCase) Refresh(_ context.Context, refreshToken string) (string, error) {
	claims, err := uc.tokenCodec.Decode(refreshToken)
	if err != nil {
		return "", err
	}

	if claims.Kind != domain.KindRefresh {
		return "", domain.ErrWrongTokenKind
	}

	if claims.Email == "" || claims.UserID == uuid.Nil {
		return "", domain.ErrMalformedClaims
	}

	accessToken, err := uc.tokenCodec.Encode(claims.Email, claims.UserID, domain.KindAccess, domain.AccessTokenTTL)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encode access token")
	}

	return accessToken, nil
}
