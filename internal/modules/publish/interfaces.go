package publish

import (
	"context"

	"easyweb/internal/domain"
)

type ProjectRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
}

type VersionRepo interface {
	Create(ctx context.Context, v *domain.Version) error
	GetByProjectAndLabel(ctx context.Context, projectID int64, label string) (*domain.Version, error)
}

type PermissionRepo interface {
	Find(ctx context.Context, projectID, userID int64) (*domain.ProjectPermission, error)
}

// Activator flips the freshly recorded version to active when the upload
// asks for it. Implemented by the version service.
type Activator interface {
	Activate(ctx context.Context, versionID, userID int64, role domain.UserRole) error
}
