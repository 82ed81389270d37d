// Package domain contains persistence models for the project service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Project is owned by exactly one organization. The owning organization is
// always derived from the authenticated caller, never from request input.
type Project struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	Name           string       `gorm:"type:text;not null"`
	OrganizationID snowflake.ID `gorm:"column:organization_id;not null;index"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Project) TableName() string { return "projects" }
