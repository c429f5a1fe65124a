package repository

import (
	"context"

	"gorm.io/gorm"

	"easyweb/internal/domain"
)

type VersionRepository struct {
	db *gorm.DB
}

func NewVersionRepository(db *gorm.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

func (r *VersionRepository) Create(ctx context.Context, v *domain.Version) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VersionRepository) GetByID(ctx context.Context, id int64) (*domain.Version, error) {
	var v domain.Version
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByShareCode backs the public preview path; share_code carries a unique
// index so the lookup stays cheap without authentication in front of it.
func (r *VersionRepository) GetByShareCode(ctx context.Context, code string) (*domain.Version, error) {
	var v domain.Version
	err := r.db.WithContext(ctx).Where("share_code = ?", code).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VersionRepository) GetByProjectAndLabel(ctx context.Context, projectID int64, label string) (*domain.Version, error) {
	var v domain.Version
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND version = ?", projectID, label).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VersionRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Version, error) {
	var versions []domain.Version
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&versions).Error
	return versions, err
}

// DeactivateAll clears the active flag on every version of a project.
// Always called before SetActive so the at-most-one-active invariant holds
// even if the second step never runs.
func (r *VersionRepository) DeactivateAll(ctx context.Context, projectID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Version{}).
		Where("project_id = ?", projectID).
		Update("is_active", false).Error
}

func (r *VersionRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Version{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *VersionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Version{}, id).Error
}
