package repository

import (
	"context"

	"gorm.io/gorm"

	"easyweb/internal/domain"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SetCurrentVersion updates the project's active-version pointer; nil clears it.
func (r *ProjectRepository) SetCurrentVersion(ctx context.Context, id int64, versionID *int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Update("current_version_id", versionID).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, id).Error
}
