package domain

import (
	"context"
	"time"
)

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// Refresh mints a new access token from a live refresh token. The refresh
	// token itself is not rotated.
	Refresh(ctx context.Context, rawRefresh string) (*RefreshResult, error)
	// Revoke blacklists the refresh token. ErrTokenMalformed means the token
	// string could not be parsed; ErrTokenNotFound means there was no live
	// record to revoke (already blacklisted or never issued).
	Revoke(ctx context.Context, rawRefresh string) error
	// Authenticate verifies an access token and resolves the user record.
	Authenticate(ctx context.Context, rawAccess string) (*User, error)
}

type CreateUserRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	User   *User
	Tokens *TokenPair
}

type RefreshResult struct {
	AccessToken     string
	AccessExpiresAt time.Time
}
