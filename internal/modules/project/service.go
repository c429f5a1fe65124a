package project

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"easyweb/internal/domain"
)

type Service struct {
	projects ProjectRepo
	perms    PermissionRepo
	users    UserRepo
}

func NewService(projects ProjectRepo, perms PermissionRepo, users UserRepo) *Service {
	return &Service{projects: projects, perms: perms, users: users}
}

// List returns every project for admins, own projects otherwise.
func (s *Service) List(ctx context.Context, userID int64, role domain.UserRole) ([]domain.Project, error) {
	if role == domain.RoleAdmin {
		return s.projects.ListAll(ctx)
	}
	return s.projects.ListByOwner(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id, userID int64, role domain.UserRole) (*domain.Project, error) {
	p, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}

	perm, err := s.perms.Find(ctx, p.ID, userID)
	if err != nil {
		return nil, err
	}
	if !CanRead(p, userID, role, perm) {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateProjectRequest) (*domain.Project, error) {
	p := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, role domain.UserRole, req UpdateProjectRequest) error {
	p, err := s.getProject(ctx, id)
	if err != nil {
		return err
	}

	perm, err := s.perms.Find(ctx, p.ID, userID)
	if err != nil {
		return err
	}
	if !CanWrite(p, userID, role, perm) {
		return ErrForbidden
	}

	fields := map[string]any{}
	if req.Name != nil && *req.Name != "" {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	// Reassigning the manager stays an admin operation.
	if req.ManagerID != nil && role == domain.RoleAdmin {
		if *req.ManagerID != 0 {
			if _, err := s.users.GetByID(ctx, *req.ManagerID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUserNotFound
				}
				return err
			}
			fields["manager_id"] = *req.ManagerID
		} else {
			fields["manager_id"] = nil
		}
	}

	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	return s.projects.Update(ctx, id, fields)
}

// Delete removes the project record. Route-level AdminOnly gates the call.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.getProject(ctx, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}

// GrantPermission creates or updates an access grant for another user.
func (s *Service) GrantPermission(ctx context.Context, projectID, actorID int64, role domain.UserRole, req GrantPermissionRequest) error {
	p, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !CanManageAccess(p, actorID, role) {
		return ErrForbidden
	}

	level := domain.PermissionLevel(req.Permission)
	if level == "" {
		level = domain.PermissionRead
	}
	if level != domain.PermissionRead && level != domain.PermissionWrite {
		return ErrInvalidLevel
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.perms.Upsert(ctx, projectID, req.UserID, level)
}

func (s *Service) getProject(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
