// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	authDomain "github.com/allisson/taskman/internal/auth/domain"
	userDomain "github.com/allisson/taskman/internal/user/domain"
)

// UserResponse represents an account in API responses (excludes the password hash).
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}
}

// TokenPairResponse represents an access/refresh token pair in API responses.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// MapTokenPairToResponse converts a domain token pair to an API response.
func MapTokenPairToResponse(pair *authDomain.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}
}

// RegisterResponse contains the created account and its first token pair.
type RegisterResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
}

// AccessTokenResponse contains a freshly minted access token.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
