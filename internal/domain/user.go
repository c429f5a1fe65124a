package domain

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleUser    UserRole = "user"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch UserRole(r) {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Username     string    `gorm:"column:username;size:50;uniqueIndex" json:"username"`
	Email        string    `gorm:"column:email;size:100" json:"email,omitempty"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Role         UserRole  `gorm:"column:role;size:20;default:user" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
