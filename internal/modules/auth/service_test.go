package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"easyweb/internal/domain"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type fakeJWT struct{}

func (fakeJWT) GenerateToken(userID int64, role string) (string, error) {
	return "test-token", nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "alice" && u.Role == domain.RoleUser && u.PasswordHash != "" && u.PasswordHash != "secret123"
	})).Return(nil)

	s := NewService(users, fakeJWT{})
	user, err := s.Register(context.Background(), RegisterRequest{
		Username: "  alice  ",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)
	users.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{ID: 1, Username: "alice"}, nil)

	s := NewService(users, fakeJWT{})
	_, err := s.Register(context.Background(), RegisterRequest{Username: "alice", Password: "secret123"})

	assert.ErrorIs(t, err, ErrUsernameTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: hashOf(t, "secret123"),
		Role:         domain.RoleUser,
	}, nil)

	s := NewService(users, fakeJWT{})
	res, err := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "test-token", res.Token)
	assert.Empty(t, res.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: hashOf(t, "secret123"),
	}, nil)

	s := NewService(users, fakeJWT{})
	_, err := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	s := NewService(users, fakeJWT{})
	_, err := s.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile_NotFound(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	s := NewService(users, fakeJWT{})
	_, err := s.Profile(context.Background(), 99)

	assert.ErrorIs(t, err, ErrUserNotFound)
}
