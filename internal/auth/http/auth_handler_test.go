package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/taskman/internal/auth/domain"
	"github.com/allisson/taskman/internal/auth/http/mocks"
	authUseCase "github.com/allisson/taskman/internal/auth/usecase"
	userDomain "github.com/allisson/taskman/internal/user/domain"
)

func newAuthRouter(useCase *mocks.MockAuthUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewAuthHandler(useCase, logger)

	router := gin.New()
	router.POST("/auth/register", handler.RegisterHandler)
	router.POST("/auth/token", handler.LoginHandler)
	router.POST("/auth/refresh", handler.RefreshHandler)
	return router
}

func TestRegisterHandler(t *testing.T) {
	useCase := &mocks.MockAuthUseCase{}
	router := newAuthRouter(useCase)

	userID := uuid.Must(uuid.NewV7())
	output := &authUseCase.RegisterOutput{
		User: &userDomain.User{
			ID:    userID,
			Name:  "John Doe",
			Email: "john@example.com",
		},
		Tokens: &authDomain.TokenPair{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "bearer",
		},
	}
	useCase.On("Register", mock.Anything, authUseCase.RegisterInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "SecurePass123!",
	}).Return(output, nil)

	body, err := json.Marshal(map[string]string{
		"name":     "John Doe",
		"email":    "john@example.com",
		"password": "SecurePass123!",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access", resp["access_token"])
	assert.Equal(t, "refresh", resp["refresh_token"])
	assert.Equal(t, "bearer", resp["token_type"])

	user := resp["user"].(map[string]interface{})
	assert.Equal(t, userID.String(), user["id"])
	assert.Equal(t, "john@example.com", user["email"])
	// The password hash never appears in responses
	assert.NotContains(t, w.Body.String(), "password")

	useCase.AssertExpectations(t)
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	useCase := &mocks.MockAuthUseCase{}
	router := newAuthRouter(useCase)

	useCase.On("Register", mock.Anything, mock.Anything).Return(nil, userDomain.ErrUserAlreadyExists)

	body := `{"name":"John","email":"john@example.com","password":"SecurePass123!"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterHandler_InvalidBody(t *testing.T) {
	useCase := &mocks.MockAuthUseCase{}
	router := newAuthRouter(useCase)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: "{"},
		{name: "missing email", body: `{"name":"John","password":"SecurePass123!"}`},
		{name: "bad email", body: `{"name":"John","email":"nope","password":"SecurePass123!"}`},
		{name: "short password", body: `{"name":"John","email":"a@x.com","password":"short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	useCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLoginHandler(t *testing.T) {
	useCase := &mocks.MockAuthUseCase{}
	router := newAuthRouter(useCase)

	pair := &authDomain.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "bearer",
	}
	useCase.On("Login", mock.Anything, "john@example.com", "SecurePass123!").Return(pair, nil)

	form := url.Values{}
	form.Set("username", "john@example.com")
	form.Set("password", "SecurePass123!")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access", resp["access_token"])
	assert.Equal(t, "refresh", resp["refresh_token"])
	assert.Equal(t, "bearer", resp["token_type"])
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	useCase := &mocks.MockAuthUseCase{}
	router := newAuthRouter(useCase)

	useCase.On("Login", mock.Anything, "john@example.com", "wrong").Return(nil, authDomain.ErrInvalidCredentials)

	form := url.Values{}
	form.Set("username", "john@example.com")
	form.Set("password", "wrong")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestLoginHandler_MissingFields(t *testing.T) {
	useCase := &mocks.MockAuthUseCase{}
	router := newAuthRouter(useCase)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader("username=john@example.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	useCase.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshHandler(t *testing.T) {
	useCase := &mocks.MockAuthUseCase{}
	router := newAuthRouter(useCase)

	useCase.On("Refresh", mock.Anything, "refresh-token").Return("new-access", nil)

	body := `{"refresh_token":"refresh-token"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new-access", resp["access_token"])
	assert.Equal(t, "bearer", resp["token_type"])
}

func TestRefreshHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		useCaseErr error
		wantStatus int
	}{
		{
			name:       "invalid token",
			useCaseErr: authDomain.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong token kind",
			useCaseErr: authDomain.ErrWrongTokenKind,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed claims",
			useCaseErr: authDomain.ErrMalformedClaims,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &mocks.MockAuthUseCase{}
			router := newAuthRouter(useCase)

			useCase.On("Refresh", mock.Anything, "some-token").Return("", tt.useCaseErr)

			body := `{"refresh_token":"some-token"}`
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRefreshHandler_MissingToken(t *testing.T) {
	useCase := &mocks.MockAuthUseCase{}
	router := newAuthRouter(useCase)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	useCase.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}
