package publish

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"easyweb/internal/domain"
	"easyweb/internal/modules/project"
	"easyweb/internal/pkg/archive"
	"easyweb/internal/pkg/staticsite"
)

const DefaultMaxUploadSize = 100 * 1024 * 1024 // 100 MB, matches the multipart limit

type Config struct {
	StaticRoot    string // extracted version trees live under here
	UploadsDir    string // temp archive artifacts, removed on every exit path
	MaxUploadSize int64
}

// Service runs the upload pipeline: validate, buffer the archive to a temp
// file, extract into the version directory, guarantee an entry point and
// record the version row. Metadata is written only after bytes are durably
// extracted, so a row never references a missing directory.
type Service struct {
	projects  ProjectRepo
	versions  VersionRepo
	perms     PermissionRepo
	activator Activator
	cfg       Config
}

func NewService(projects ProjectRepo, versions VersionRepo, perms PermissionRepo, activator Activator, cfg Config) *Service {
	if cfg.MaxUploadSize == 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
	}
	return &Service{
		projects:  projects,
		versions:  versions,
		perms:     perms,
		activator: activator,
		cfg:       cfg,
	}
}

type Input struct {
	ProjectID int64
	Label     string
	SetActive bool
	File      *multipart.FileHeader
}

type Result struct {
	VersionID int64  `json:"versionId"`
	ShareCode string `json:"shareCode"`
	StaticURL string `json:"staticUrl"`
}

func (s *Service) Publish(ctx context.Context, userID int64, role domain.UserRole, in Input) (*Result, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	p, err := s.projects.GetByID(ctx, in.ProjectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	perm, err := s.perms.Find(ctx, p.ID, userID)
	if err != nil {
		return nil, err
	}
	if !project.CanWrite(p, userID, role, perm) {
		return nil, ErrForbidden
	}

	// A populated directory keyed by the same (project, label) pair would
	// be silently overwritten otherwise; reject instead.
	if _, err := s.versions.GetByProjectAndLabel(ctx, p.ID, in.Label); err == nil {
		return nil, ErrLabelTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tmp, err := s.saveTemp(in.File)
	if err != nil {
		return nil, fmt.Errorf("buffer upload: %w", err)
	}
	defer func() {
		if err := os.Remove(tmp); err != nil {
			log.Printf("publish: remove temp %s failed: %v", tmp, err)
		}
	}()

	dest := staticsite.VersionDir(s.cfg.StaticRoot, p.ID, in.Label)
	if err := archive.Extract(ctx, tmp, dest); err != nil {
		s.discard(dest)
		if errors.Is(err, archive.ErrUnsafeEntry) {
			return nil, fmt.Errorf("%w: %v", ErrUnsafeArchive, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	staticsite.EnsureEntryPoint(dest)

	code, err := newShareCode()
	if err != nil {
		s.discard(dest)
		return nil, err
	}

	v := &domain.Version{
		ProjectID:    p.ID,
		Label:        in.Label,
		FilePath:     staticsite.VersionPath(p.ID, in.Label),
		FileSize:     in.File.Size,
		UploadUserID: userID,
		ShareCode:    code,
	}
	if err := s.versions.Create(ctx, v); err != nil {
		s.discard(dest)
		return nil, fmt.Errorf("%w: %v", ErrRecordFailed, err)
	}

	if in.SetActive {
		if err := s.activator.Activate(ctx, v.ID, userID, role); err != nil {
			// The version is recorded; activation can be retried separately.
			return nil, fmt.Errorf("version %d recorded but not activated: %w", v.ID, err)
		}
	}

	return &Result{
		VersionID: v.ID,
		ShareCode: code,
		StaticURL: staticsite.StaticURL(p.ID, in.Label),
	}, nil
}

func (s *Service) validate(in Input) error {
	if !staticsite.SafeLabel(in.Label) {
		return ErrInvalidLabel
	}
	if !strings.HasSuffix(strings.ToLower(in.File.Filename), ".zip") {
		return ErrNotZip
	}
	if in.File.Size == 0 {
		return ErrEmptyFile
	}
	if in.File.Size > s.cfg.MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

// saveTemp buffers the multipart file into the uploads dir under a unique
// name so extraction can reread the archive's central directory.
func (s *Service) saveTemp(fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadsDir, 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(s.cfg.UploadsDir, uuid.New().String()+".zip")
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// discard drops a partially or freshly populated version directory after a
// pipeline failure. Best-effort: cleanup failures must not mask the
// original error.
func (s *Service) discard(dest string) {
	if err := os.RemoveAll(dest); err != nil {
		log.Printf("publish: discard %s failed: %v", dest, err)
	}
}

func newShareCode() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
