package project

import (
	"context"

	"easyweb/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type PermissionRepo interface {
	Find(ctx context.Context, projectID, userID int64) (*domain.ProjectPermission, error)
	Upsert(ctx context.Context, projectID, userID int64, level domain.PermissionLevel) error
}

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
