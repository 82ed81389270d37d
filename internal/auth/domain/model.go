// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User represents a system user account. The email address is the login
// identifier; there is no separate username.
type User struct {
	ID             snowflake.ID  `gorm:"primaryKey"`
	Email          string        `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash   *string       `gorm:"type:text"`
	FirstName      string        `gorm:"column:first_name;type:text"`
	LastName       string        `gorm:"column:last_name;type:text"`
	OrganizationID *snowflake.ID `gorm:"column:organization_id;index"`
	IsOrgAdmin     bool          `gorm:"column:is_org_admin;not null;default:false"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// RefreshToken is the persisted record backing a refresh token. Access
// tokens are stateless; only refresh tokens can be individually revoked.
type RefreshToken struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	JTI           string       `gorm:"column:jti;type:text;not null;uniqueIndex"`
	UserID        snowflake.ID `gorm:"column:user_id;not null;index"`
	IssuedAt      time.Time    `gorm:"column:issued_at;not null"`
	ExpiresAt     time.Time    `gorm:"column:expires_at;not null;index"`
	BlacklistedAt *time.Time   `gorm:"column:blacklisted_at"`
}

// TableName sets the database table name.
func (RefreshToken) TableName() string { return "refresh_tokens" }

// TokenPair carries a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}
