package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"easyweb/internal/domain"
)

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.UserRole) error
	Delete(ctx context.Context, id int64) error
}

// Service covers admin user management: listing accounts, role changes
// and account removal. Admins cannot change or remove themselves.
type Service struct {
	users UserRepo
}

func NewService(users UserRepo) *Service {
	return &Service{users: users}
}

// Get returns one account. Only admins and the user themselves may look it up.
func (s *Service) Get(ctx context.Context, actorID int64, actorRole domain.UserRole, targetID int64) (*domain.User, error) {
	if actorRole != domain.RoleAdmin && actorID != targetID {
		return nil, ErrForbidden
	}
	u, err := s.getUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *Service) UpdateRole(ctx context.Context, actorID, targetID int64, role string) error {
	if !domain.ValidRole(role) {
		return ErrInvalidRole
	}
	if actorID == targetID {
		return ErrSelfChange
	}
	if _, err := s.getUser(ctx, targetID); err != nil {
		return err
	}
	return s.users.UpdateRole(ctx, targetID, domain.UserRole(role))
}

func (s *Service) Delete(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return ErrSelfChange
	}
	if _, err := s.getUser(ctx, targetID); err != nil {
		return err
	}
	return s.users.Delete(ctx, targetID)
}

func (s *Service) getUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
