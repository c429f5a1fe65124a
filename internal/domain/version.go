package domain

import "time"

// Version is one uploaded snapshot of a project's static content.
// FilePath is the storage path relative to the static root, derived from
// project ID and label; ShareCode grants unauthenticated preview access.
// At most one version per project has IsActive set.
type Version struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	ProjectID    int64     `gorm:"column:project_id;index" json:"project_id"`
	Label        string    `gorm:"column:version;size:50" json:"version"`
	FilePath     string    `gorm:"column:file_path;size:255" json:"file_path"`
	FileSize     int64     `gorm:"column:file_size" json:"file_size"`
	UploadUserID int64     `gorm:"column:upload_user_id" json:"upload_user_id"`
	IsActive     bool      `gorm:"column:is_active;default:false" json:"is_active"`
	ShareCode    string    `gorm:"column:share_code;size:64;uniqueIndex" json:"share_code,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Version) TableName() string { return "versions" }
