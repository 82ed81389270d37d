package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
}

type TokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByJTI(ctx context.Context, jti string) (*RefreshToken, error)
	// Blacklist marks the token revoked with a single conditional update so a
	// concurrent refresh cannot race a revoke. It reports whether a live row
	// was transitioned.
	Blacklist(ctx context.Context, jti string, at time.Time) (bool, error)
}
