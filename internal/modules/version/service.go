package version

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"

	"gorm.io/gorm"

	"easyweb/internal/domain"
	"easyweb/internal/modules/project"
	"easyweb/internal/pkg/staticsite"
)

// Service owns version metadata transitions: listing, the activation
// switch and deletion with storage cleanup.
type Service struct {
	versions   VersionRepo
	projects   ProjectRepo
	perms      PermissionRepo
	staticRoot string

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewService(versions VersionRepo, projects ProjectRepo, perms PermissionRepo, staticRoot string) *Service {
	return &Service{
		versions:   versions,
		projects:   projects,
		perms:      perms,
		staticRoot: staticRoot,
		locks:      map[int64]*sync.Mutex{},
	}
}

func (s *Service) ListByProject(ctx context.Context, projectID, userID int64, role domain.UserRole) ([]domain.Version, error) {
	p, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	perm, err := s.perms.Find(ctx, p.ID, userID)
	if err != nil {
		return nil, err
	}
	if !project.CanRead(p, userID, role, perm) {
		return nil, ErrForbidden
	}
	return s.versions.ListByProject(ctx, projectID)
}

// Activate makes the version its project's published one. The transition is
// two storage writes (deactivate all, then activate the target) plus the
// project pointer update; a per-project mutex serializes concurrent calls,
// and the deactivate-first ordering keeps the at-most-one-active invariant
// even if a later step fails.
func (s *Service) Activate(ctx context.Context, versionID, userID int64, role domain.UserRole) error {
	v, err := s.getVersion(ctx, versionID)
	if err != nil {
		return err
	}
	p, err := s.getProject(ctx, v.ProjectID)
	if err != nil {
		return err
	}
	if err := s.requireWrite(ctx, p, userID, role); err != nil {
		return err
	}

	lock := s.projectLock(p.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.versions.DeactivateAll(ctx, p.ID); err != nil {
		return err
	}
	if err := s.versions.SetActive(ctx, v.ID, true); err != nil {
		return err
	}
	return s.projects.SetCurrentVersion(ctx, p.ID, &v.ID)
}

// Delete removes the version row and its extracted tree. The project's
// pointer is cleared first when it references this version; storage removal
// is best-effort (an orphaned directory beats an unreclaimable row), the
// metadata delete runs last.
func (s *Service) Delete(ctx context.Context, versionID, userID int64, role domain.UserRole) error {
	v, err := s.getVersion(ctx, versionID)
	if err != nil {
		return err
	}
	p, err := s.getProject(ctx, v.ProjectID)
	if err != nil {
		return err
	}
	if err := s.requireWrite(ctx, p, userID, role); err != nil {
		return err
	}

	lock := s.projectLock(p.ID)
	lock.Lock()
	defer lock.Unlock()

	if p.CurrentVersionID != nil && *p.CurrentVersionID == v.ID {
		if err := s.projects.SetCurrentVersion(ctx, p.ID, nil); err != nil {
			return err
		}
	}

	dir := staticsite.VersionDir(s.staticRoot, v.ProjectID, v.Label)
	if err := os.RemoveAll(dir); err != nil {
		log.Printf("version delete: remove %s failed: %v", dir, err)
	}

	return s.versions.Delete(ctx, v.ID)
}

func (s *Service) requireWrite(ctx context.Context, p *domain.Project, userID int64, role domain.UserRole) error {
	perm, err := s.perms.Find(ctx, p.ID, userID)
	if err != nil {
		return err
	}
	if !project.CanWrite(p, userID, role, perm) {
		return ErrForbidden
	}
	return nil
}

func (s *Service) projectLock(projectID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[projectID] = l
	}
	return l
}

func (s *Service) getVersion(ctx context.Context, id int64) (*domain.Version, error) {
	v, err := s.versions.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVersionNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
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
