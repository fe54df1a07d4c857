package app

import (
	"context"
	"fmt"

	authHTTP "github.com/allisson/taskman/internal/auth/http"
	authService "github.com/allisson/taskman/internal/auth/service"
	authUsecase "github.com/allisson/taskman/internal/auth/usecase"
	userRepository "github.com/allisson/taskman/internal/user/repository"
)

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// TokenCodec returns the token codec used to sign and verify tokens.
// The signing secret is loaded from configuration, optionally decrypted
// through the configured KMS key.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	c.tokenCodecInit.Do(func() {
		secret, err := authService.LoadSigningSecret(
			context.Background(),
			c.config.SigningSecret,
			c.config.KMSKeyURI,
		)
		if err != nil {
			c.initErrors["tokenCodec"] = fmt.Errorf("failed to load signing secret: %w", err)
			return
		}

		codec, err := authService.NewTokenCodec(secret)
		if err != nil {
			c.initErrors["tokenCodec"] = fmt.Errorf("failed to create token codec: %w", err)
			return
		}
		c.tokenCodec = codec
	})
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (authUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		userRepo, err := c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
			return
		}
		c.userRepo = userRepo
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// AuthUseCase returns the authentication use case instance.
func (c *Container) AuthUseCase() (authUsecase.AuthUseCase, error) {
	c.authUseCaseInit.Do(func() {
		useCase, err := c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		c.authUseCase = useCase
	})
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// AuthHandler returns the authentication HTTP handler instance.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	c.authHandlerInit.Do(func() {
		useCase, err := c.AuthUseCase()
		if err != nil {
			c.initErrors["authHandler"] = err
			return
		}
		c.authHandler = authHTTP.NewAuthHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// initUserRepository creates the user repository instance.
func (c *Container) initUserRepository() (authUsecase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return userRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuthUseCase creates the authentication use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUsecase.AuthUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for auth use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for auth use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}

	useCase := authUsecase.NewAuthUseCase(txManager, userRepo, c.PasswordService(), tokenCodec)

	return authUsecase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
}
