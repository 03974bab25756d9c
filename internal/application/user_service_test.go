package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	repo "github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
	"github.com/oksasatya/airbnb-listing-service/internal/testutils"
	"github.com/oksasatya/airbnb-listing-service/pkg/helpers"
)

func newUserService(ttl time.Duration) (*UserService, *testutils.UserRepo) {
	r := testutils.NewUserRepo()
	return NewUserService(r, helpers.NewJWTManager("test-secret", ttl), nil), r
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	svc, r := newUserService(time.Hour)

	key, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Len(t, key, 32)

	u, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", u.Password)
	assert.Equal(t, []string{entity.RoleUser}, u.Roles)
	assert.Equal(t, key, u.APIKey)

	_, err = svc.Register(ctx, "alice", "otherpass1")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

// retryRepo reports an api key collision for the first failFirst inserts
type retryRepo struct {
	*testutils.UserRepo
	failFirst int
	attempts  int
}

func (r *retryRepo) Create(ctx context.Context, u *entity.User) error {
	r.attempts++
	if r.attempts <= r.failFirst {
		return repo.ErrAPIKeyTaken
	}
	return r.UserRepo.Create(ctx, u)
}

func TestUserService_RegisterRetriesAPIKeyCollision(t *testing.T) {
	ctx := context.Background()
	r := &retryRepo{UserRepo: testutils.NewUserRepo(), failFirst: 2}
	svc := NewUserService(r, helpers.NewJWTManager("s", time.Hour), nil)

	key, err := svc.Register(ctx, "bob", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, key)
	assert.Equal(t, 3, r.attempts)
}

func TestUserService_RegisterStopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &retryRepo{UserRepo: testutils.NewUserRepo(), failFirst: 1000}
	svc := NewUserService(r, helpers.NewJWTManager("s", time.Hour), nil)

	_, err := svc.Register(ctx, "bob", "password123")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(time.Hour)
	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.Authenticate(ctx, "alice", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_LoginAndResolveToken(t *testing.T) {
	ctx := context.Background()
	svc, r := newUserService(time.Hour)
	key, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, key, res.User.APIKey)

	u, err := svc.ResolveToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	u, err = svc.ResolveAPIKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.ResolveAPIKey(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	r.Remove(u.ID)
	_, err = svc.ResolveToken(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUserService_ExpiredTokenRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(-time.Second)
	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	_, err = svc.ResolveToken(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, r := newUserService(time.Hour)
	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)
	u, _ := r.GetByUsername(ctx, "alice")

	assert.ErrorIs(t, svc.ChangePassword(ctx, u.ID, "wrong-pass", "newpassword1"), ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "password123", "newpassword1"))
	_, err = svc.Authenticate(ctx, "alice", "newpassword1")
	assert.NoError(t, err)

	before, _ := r.GetByID(ctx, u.ID)
	require.NoError(t, svc.ChangePassword(ctx, u.ID, "newpassword1", "newpassword1"))
	after, _ := r.GetByID(ctx, u.ID)
	assert.Equal(t, before.Password, after.Password)
}
