package publish

import (
	"archive/zip"
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"easyweb/internal/domain"
	"easyweb/internal/pkg/staticsite"
)

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

type MockVersionRepo struct {
	mock.Mock
}

func (m *MockVersionRepo) Create(ctx context.Context, v *domain.Version) error {
	args := m.Called(ctx, v)
	if args.Error(0) == nil {
		v.ID = 42
	}
	return args.Error(0)
}

func (m *MockVersionRepo) GetByProjectAndLabel(ctx context.Context, projectID int64, label string) (*domain.Version, error) {
	args := m.Called(ctx, projectID, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Version), args.Error(1)
}

type MockPermissionRepo struct {
	mock.Mock
}

func (m *MockPermissionRepo) Find(ctx context.Context, projectID, userID int64) (*domain.ProjectPermission, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectPermission), args.Error(1)
}

type MockActivator struct {
	mock.Mock
}

func (m *MockActivator) Activate(ctx context.Context, versionID, userID int64, role domain.UserRole) error {
	args := m.Called(ctx, versionID, userID, role)
	return args.Error(0)
}

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// fileHeader round-trips content through a multipart form so tests get a
// real *multipart.FileHeader.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

type testEnv struct {
	projects  *MockProjectRepo
	versions  *MockVersionRepo
	perms     *MockPermissionRepo
	activator *MockActivator
	svc       *Service
	cfg       Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		projects:  new(MockProjectRepo),
		versions:  new(MockVersionRepo),
		perms:     new(MockPermissionRepo),
		activator: new(MockActivator),
		cfg: Config{
			StaticRoot: t.TempDir(),
			UploadsDir: t.TempDir(),
		},
	}
	env.svc = NewService(env.projects, env.versions, env.perms, env.activator, env.cfg)
	return env
}

func (e *testEnv) ownedProject(ownerID int64) {
	e.projects.On("GetByID", mock.Anything, int64(1)).Return(&domain.Project{ID: 1, OwnerID: ownerID}, nil)
	e.perms.On("Find", mock.Anything, int64(1), mock.Anything).Return(nil, nil)
}

func TestPublish_Success(t *testing.T) {
	env := newTestEnv(t)
	env.ownedProject(7)
	env.versions.On("GetByProjectAndLabel", mock.Anything, int64(1), "v1").Return(nil, gorm.ErrRecordNotFound)
	env.versions.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Version) bool {
		return v.ProjectID == 1 && v.Label == "v1" && v.UploadUserID == 7 &&
			v.FilePath == "projects/1/v1" && len(v.ShareCode) == 32
	})).Return(nil)

	fh := fileHeader(t, "site.zip", zipBytes(t, map[string]string{
		"index.html":    "<h1>hello</h1>",
		"css/style.css": "body{}",
	}))

	res, err := env.svc.Publish(context.Background(), 7, domain.RoleUser, Input{
		ProjectID: 1,
		Label:     "v1",
		File:      fh,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.VersionID)
	assert.Len(t, res.ShareCode, 32)
	assert.Equal(t, "/static/projects/1/v1/", res.StaticURL)

	dir := staticsite.VersionDir(env.cfg.StaticRoot, 1, "v1")
	got, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>hello</h1>", string(got))
	_, err = os.Stat(filepath.Join(dir, "css", "style.css"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(env.cfg.UploadsDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp archive must be removed")
}

func TestPublish_SynthesizesEntryPoint(t *testing.T) {
	env := newTestEnv(t)
	env.ownedProject(7)
	env.versions.On("GetByProjectAndLabel", mock.Anything, int64(1), "v1").Return(nil, gorm.ErrRecordNotFound)
	env.versions.On("Create", mock.Anything, mock.Anything).Return(nil)

	fh := fileHeader(t, "site.zip", zipBytes(t, map[string]string{"about.html": "<p>about</p>"}))

	_, err := env.svc.Publish(context.Background(), 7, domain.RoleUser, Input{
		ProjectID: 1, Label: "v1", File: fh,
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(staticsite.VersionDir(env.cfg.StaticRoot, 1, "v1"), "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "about.html")
}

func TestPublish_LabelTaken(t *testing.T) {
	env := newTestEnv(t)
	env.ownedProject(7)
	env.versions.On("GetByProjectAndLabel", mock.Anything, int64(1), "v1").
		Return(&domain.Version{ID: 3, ProjectID: 1, Label: "v1"}, nil)

	fh := fileHeader(t, "site.zip", zipBytes(t, map[string]string{"index.html": "x"}))

	_, err := env.svc.Publish(context.Background(), 7, domain.RoleUser, Input{
		ProjectID: 1, Label: "v1", File: fh,
	})
	assert.ErrorIs(t, err, ErrLabelTaken)
	env.versions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPublish_UnsafeArchiveDiscarded(t *testing.T) {
	env := newTestEnv(t)
	env.ownedProject(7)
	env.versions.On("GetByProjectAndLabel", mock.Anything, int64(1), "v1").Return(nil, gorm.ErrRecordNotFound)

	fh := fileHeader(t, "evil.zip", zipBytes(t, map[string]string{
		"ok.html":     "x",
		"../evil.txt": "escape",
	}))

	_, err := env.svc.Publish(context.Background(), 7, domain.RoleUser, Input{
		ProjectID: 1, Label: "v1", File: fh,
	})
	assert.ErrorIs(t, err, ErrUnsafeArchive)

	_, statErr := os.Stat(staticsite.VersionDir(env.cfg.StaticRoot, 1, "v1"))
	assert.True(t, os.IsNotExist(statErr), "partial extraction must be discarded")
	_, statErr = os.Stat(filepath.Join(env.cfg.StaticRoot, "evil.txt"))
	assert.True(t, os.IsNotExist(statErr))
	env.versions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPublish_CorruptArchive(t *testing.T) {
	env := newTestEnv(t)
	env.ownedProject(7)
	env.versions.On("GetByProjectAndLabel", mock.Anything, int64(1), "v1").Return(nil, gorm.ErrRecordNotFound)

	fh := fileHeader(t, "broken.zip", []byte("this is not a zip archive"))

	_, err := env.svc.Publish(context.Background(), 7, domain.RoleUser, Input{
		ProjectID: 1, Label: "v1", File: fh,
	})
	assert.ErrorIs(t, err, ErrExtractFailed)
}

func TestPublish_Validation(t *testing.T) {
	env := newTestEnv(t)
	zipFH := fileHeader(t, "site.zip", zipBytes(t, map[string]string{"index.html": "x"}))

	tests := []struct {
		name string
		in   Input
		want error
	}{
		{"not a zip", Input{ProjectID: 1, Label: "v1", File: fileHeader(t, "site.tar.gz", []byte("data"))}, ErrNotZip},
		{"empty file", Input{ProjectID: 1, Label: "v1", File: fileHeader(t, "site.zip", nil)}, ErrEmptyFile},
		{"empty label", Input{ProjectID: 1, Label: "", File: zipFH}, ErrInvalidLabel},
		{"label with slash", Input{ProjectID: 1, Label: "a/b", File: zipFH}, ErrInvalidLabel},
		{"label traversal", Input{ProjectID: 1, Label: "..", File: zipFH}, ErrInvalidLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Publish(context.Background(), 7, domain.RoleUser, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPublish_FileTooLarge(t *testing.T) {
	env := newTestEnv(t)
	env.svc = NewService(env.projects, env.versions, env.perms, env.activator, Config{
		StaticRoot:    env.cfg.StaticRoot,
		UploadsDir:    env.cfg.UploadsDir,
		MaxUploadSize: 10,
	})

	fh := fileHeader(t, "site.zip", zipBytes(t, map[string]string{"index.html": "some content"}))

	_, err := env.svc.Publish(context.Background(), 7, domain.RoleUser, Input{
		ProjectID: 1, Label: "v1", File: fh,
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestPublish_Forbidden(t *testing.T) {
	env := newTestEnv(t)
	env.projects.On("GetByID", mock.Anything, int64(1)).Return(&domain.Project{ID: 1, OwnerID: 7}, nil)
	env.perms.On("Find", mock.Anything, int64(1), int64(9)).
		Return(&domain.ProjectPermission{ProjectID: 1, UserID: 9, Permission: domain.PermissionRead}, nil)

	fh := fileHeader(t, "site.zip", zipBytes(t, map[string]string{"index.html": "x"}))

	_, err := env.svc.Publish(context.Background(), 9, domain.RoleUser, Input{
		ProjectID: 1, Label: "v1", File: fh,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPublish_ProjectNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.projects.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	fh := fileHeader(t, "site.zip", zipBytes(t, map[string]string{"index.html": "x"}))

	_, err := env.svc.Publish(context.Background(), 7, domain.RoleUser, Input{
		ProjectID: 99, Label: "v1", File: fh,
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestPublish_SetActiveCallsActivator(t *testing.T) {
	env := newTestEnv(t)
	env.ownedProject(7)
	env.versions.On("GetByProjectAndLabel", mock.Anything, int64(1), "v1").Return(nil, gorm.ErrRecordNotFound)
	env.versions.On("Create", mock.Anything, mock.Anything).Return(nil)
	env.activator.On("Activate", mock.Anything, int64(42), int64(7), domain.RoleUser).Return(nil)

	fh := fileHeader(t, "site.zip", zipBytes(t, map[string]string{"index.html": "x"}))

	_, err := env.svc.Publish(context.Background(), 7, domain.RoleUser, Input{
		ProjectID: 1, Label: "v1", SetActive: true, File: fh,
	})
	require.NoError(t, err)
	env.activator.AssertExpectations(t)
}

func TestPublish_ConcurrentUploadsToDistinctPairsStayIsolated(t *testing.T) {
	env := newTestEnv(t)
	env.projects.On("GetByID", mock.Anything, int64(1)).Return(&domain.Project{ID: 1, OwnerID: 7}, nil)
	env.projects.On("GetByID", mock.Anything, int64(2)).Return(&domain.Project{ID: 2, OwnerID: 7}, nil)
	env.perms.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	env.versions.On("GetByProjectAndLabel", mock.Anything, mock.Anything, "v1").Return(nil, gorm.ErrRecordNotFound)
	env.versions.On("Create", mock.Anything, mock.Anything).Return(nil)

	inputs := []struct {
		projectID int64
		body      string
		fh        *multipart.FileHeader
	}{
		{1, "<h1>site one</h1>", nil},
		{2, "<h1>site two</h1>", nil},
	}
	for i := range inputs {
		inputs[i].fh = fileHeader(t, "site.zip", zipBytes(t, map[string]string{
			"index.html": inputs[i].body,
		}))
	}

	var wg sync.WaitGroup
	errs := make([]error, len(inputs))
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, projectID int64, fh *multipart.FileHeader) {
			defer wg.Done()
			_, errs[i] = env.svc.Publish(context.Background(), 7, domain.RoleUser, Input{
				ProjectID: projectID,
				Label:     "v1",
				File:      fh,
			})
		}(i, in.projectID, in.fh)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "upload %d", i)
	}
	for _, in := range inputs {
		got, err := os.ReadFile(filepath.Join(staticsite.VersionDir(env.cfg.StaticRoot, in.projectID, "v1"), "index.html"))
		require.NoError(t, err)
		assert.Equal(t, in.body, string(got), "project %d must keep its own bytes", in.projectID)
	}
}

func TestPublish_RecordFailureDiscardsFiles(t *testing.T) {
	env := newTestEnv(t)
	env.ownedProject(7)
	env.versions.On("GetByProjectAndLabel", mock.Anything, int64(1), "v1").Return(nil, gorm.ErrRecordNotFound)
	env.versions.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	fh := fileHeader(t, "site.zip", zipBytes(t, map[string]string{"index.html": "x"}))

	_, err := env.svc.Publish(context.Background(), 7, domain.RoleUser, Input{
		ProjectID: 1, Label: "v1", File: fh,
	})
	assert.ErrorIs(t, err, ErrRecordFailed)

	_, statErr := os.Stat(staticsite.VersionDir(env.cfg.StaticRoot, 1, "v1"))
	assert.True(t, os.IsNotExist(statErr))
}
