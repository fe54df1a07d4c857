package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/taskman/internal/auth/domain"
	"github.com/allisson/taskman/internal/auth/http/dto"
	authUseCase "github.com/allisson/taskman/internal/auth/usecase"
	"github.com/allisson/taskman/internal/httputil"
	customValidation "github.com/allisson/taskman/internal/validation"
)

// AuthHandler handles HTTP requests for registration and token operations.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates a new account.
// POST /auth/register - No authentication required.
// Returns 201 Created with the account and its first token pair.
// A duplicate email returns 400, the same status as any other invalid input.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.authUseCase.Register(c.Request.Context(), authUseCase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.RegisterResponse{
		User:         dto.MapUserToResponse(output.User),
		AccessToken:  output.Tokens.AccessToken,
		RefreshToken: output.Tokens.RefreshToken,
		TokenType:    output.Tokens.TokenType,
	}

	c.JSON(http.StatusCreated, response)
}

// LoginHandler exchanges credentials for a token pair.
// POST /auth/token - No authentication required; form encoded with the email
// in the username field. Bad credentials return a uniform 401.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBind(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	pair, err := h.authUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenPairToResponse(pair))
}

// RefreshHandler exchanges a refresh token for a new access token.
// POST /auth/refresh - No authentication required; the refresh token itself
// is the credential. Invalid or wrong-kind tokens return 401; a token that
// verifies but lacks identity claims returns 400.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	accessToken, err := h.authUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AccessTokenResponse{
		AccessToken: accessToken,
		TokenType:   authDomain.TokenTypeBearer,
	})
}
