package version

import (
	"context"

	"easyweb/internal/domain"
)

type VersionRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Version, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Version, error)
	DeactivateAll(ctx context.Context, projectID int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type ProjectRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	SetCurrentVersion(ctx context.Context, id int64, versionID *int64) error
}

type PermissionRepo interface {
	Find(ctx context.Context, projectID, userID int64) (*domain.ProjectPermission, error)
}
