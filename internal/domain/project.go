package domain

import "time"

// Project is a hosted static site. OwnerID is the creating user; ManagerID
// is an optional delegated admin. CurrentVersionID, when set, points at the
// version served on the project's canonical static path.
type Project struct {
	ID               int64     `gorm:"column:id;primaryKey" json:"id"`
	Name             string    `gorm:"column:name;size:100" json:"name"`
	Description      string    `gorm:"column:description" json:"description,omitempty"`
	OwnerID          int64     `gorm:"column:user_id" json:"user_id"`
	ManagerID        *int64    `gorm:"column:manager_id" json:"manager_id,omitempty"`
	CurrentVersionID *int64    `gorm:"column:current_version_id" json:"current_version_id,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
