package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenBlacklisted   = errors.New("token blacklisted")
	ErrTokenNotFound      = errors.New("token not found")
)
