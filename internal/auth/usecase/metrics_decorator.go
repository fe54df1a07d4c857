package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/taskman/internal/auth/domain"
	"github.com/allisson/taskman/internal/metrics"
	userDomain "github.com/allisson/taskman/internal/user/domain"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for account registration operations.
func (a *authUseCaseWithMetrics) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	start := time.Now()
	output, err := a.next.Register(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "register", status)
	a.metrics.RecordDuration(ctx, "auth", "register", time.Since(start), status)

	return output, err
}

// Authenticate records metrics for credential verification operations.
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	email, password string,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := a.next.Authenticate(ctx, email, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	a.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return user, err
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	start := time.Now()
	pair, err := a.next.Login(ctx, email, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "login", status)
	a.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return pair, err
}

// IssueTokenPair records metrics for token issuance operations.
func (a *authUseCaseWithMetrics) IssueTokenPair(
	ctx context.Context,
	email string,
	userID uuid.UUID,
) (*domain.TokenPair, error) {
	start := time.Now()
	pair, err := a.next.IssueTokenPair(ctx, email, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "issue_token_pair", status)
	a.metrics.RecordDuration(ctx, "auth", "issue_token_pair", time.Since(start), status)

	return pair, err
}

// Refresh records metrics for access token refresh operations.
func (a *authUseCaseWithMetrics) Refresh(ctx context.Context, refreshToken string) (string, error) {
	start := time.Now()
	token, err := a.next.Refresh(ctx, refreshToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "refresh", status)
	a.metrics.RecordDuration(ctx, "auth", "refresh", time.Since(start), status)

	return token, err
}
