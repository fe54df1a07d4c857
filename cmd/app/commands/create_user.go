package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	authUseCase "github.com/allisson/taskman/internal/auth/usecase"
	userDomain "github.com/allisson/taskman/internal/user/domain"
)

// RunCreateUser creates a new user account from the command line.
// Useful for bootstrapping the first account without going through the HTTP API.
// Outputs the user ID and email in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	email string,
	password string,
	format string,
) error {
	logger.Info("creating new user", slog.String("email", email))

	output, err := useCase.Register(ctx, authUseCase.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		outputUserJSON(output.User, writer)
	} else {
		outputUserText(output.User, writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", output.User.ID.String()),
		slog.String("email", output.User.Email),
	)

	return nil
}

// outputUserText outputs the result in human-readable text format.
func outputUserText(user *userDomain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", user.Name)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
}

// outputUserJSON outputs the result in JSON format for machine consumption.
func outputUserJSON(user *userDomain.User, writer io.Writer) {
	result := map[string]string{
		"user_id": user.ID.String(),
		"name":    user.Name,
		"email":   user.Email,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
