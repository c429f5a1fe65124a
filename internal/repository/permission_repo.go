package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"easyweb/internal/domain"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// Find returns the permission row for (project, user), or nil when the user
// has no grant at all.
func (r *PermissionRepository) Find(ctx context.Context, projectID, userID int64) (*domain.ProjectPermission, error) {
	var p domain.ProjectPermission
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert creates the grant or updates its level for an existing pair.
func (r *PermissionRepository) Upsert(ctx context.Context, projectID, userID int64, level domain.PermissionLevel) error {
	existing, err := r.Find(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return r.db.WithContext(ctx).
			Model(&domain.ProjectPermission{}).
			Where("id = ?", existing.ID).
			Update("permission", level).Error
	}
	return r.db.WithContext(ctx).Create(&domain.ProjectPermission{
		ProjectID:  projectID,
		UserID:     userID,
		Permission: level,
	}).Error
}

func (r *PermissionRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectPermission, error) {
	var perms []domain.ProjectPermission
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&perms).Error
	return perms, err
}
