package domain

import "time"

type PermissionLevel string

const (
	PermissionRead  PermissionLevel = "read"
	PermissionWrite PermissionLevel = "write"
)

// ProjectPermission grants a non-owning, non-admin user access to a project.
// Unique per (project, user) pair.
type ProjectPermission struct {
	ID         int64           `gorm:"column:id;primaryKey" json:"id"`
	ProjectID  int64           `gorm:"column:project_id;uniqueIndex:idx_project_user" json:"project_id"`
	UserID     int64           `gorm:"column:user_id;uniqueIndex:idx_project_user" json:"user_id"`
	Permission PermissionLevel `gorm:"column:permission;size:20;default:read" json:"permission"`
	CreatedAt  time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (ProjectPermission) TableName() string { return "project_permissions" }
