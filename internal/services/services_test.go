package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/bloglist-backend/internal/apperr"
	"github.com/baharkarakas/bloglist-backend/internal/auth"
	"github.com/baharkarakas/bloglist-backend/internal/models"
	"github.com/baharkarakas/bloglist-backend/internal/repository/sqlite"
	"github.com/baharkarakas/bloglist-backend/internal/testutil"
	"github.com/baharkarakas/bloglist-backend/internal/worker"
)

type fixture struct {
	repos sqlite.Repositories
	tm    *auth.TokenManager
	users *UserService
	auth  *AuthService
	blogs *BlogService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repos := sqlite.NewRepositories(testutil.NewSQLite(t))
	pool := worker.NewPool(2)
	t.Cleanup(pool.Stop)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost, pool)
	tm := auth.NewTokenManager("test-secret", "bloglist-test", time.Hour)
	return fixture{
		repos: repos,
		tm:    tm,
		users: NewUserService(repos.Users, repos.Blogs, hasher),
		auth:  NewAuthService(repos.Users, hasher, tm),
		blogs: NewBlogService(repos.Blogs),
	}
}

func (f fixture) register(t *testing.T, username string) models.Identity {
	t.Helper()
	u, err := f.users.Register(context.Background(), username, username+" name", "password")
	require.NoError(t, err)
	return models.Identity{UserID: u.ID, Username: u.Username}
}

func TestRegister_DigestStoredAndDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.users.Register(ctx, "root", "Superuser", "salainen")
	require.NoError(t, err)

	stored, err := f.repos.Users.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.NotEqual(t, "salainen", stored.PasswordDigest)
	assert.Equal(t, u.ID, stored.ID)

	_, err = f.users.Register(ctx, "root", "Again", "other")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	all, err := f.repos.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.users.Register(ctx, "root", "Superuser", "salainen")
	require.NoError(t, err)

	res, err := f.auth.Login(ctx, "root", "salainen")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "root", res.Username)
	assert.Equal(t, "Superuser", res.Name)

	who, err := f.auth.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "root", who.Username)

	_, wrongPass := f.auth.Login(ctx, "root", "wrong")
	_, unknownUser := f.auth.Login(ctx, "nobody", "salainen")
	require.Error(t, wrongPass)
	require.Error(t, unknownUser)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(wrongPass))
	assert.Equal(t, wrongPass.Error(), unknownUser.Error())
}

func TestVerify_UserMustStillExist(t *testing.T) {
	f := newFixture(t)

	tok, _, err := f.tm.Issue("5a9d3c2e-0000-4000-8000-000000000000", "ghost")
	require.NoError(t, err)

	_, err = f.auth.Verify(context.Background(), tok)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = f.auth.Verify(context.Background(), "garbage")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestBlogs_OwnershipOnDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.register(t, "owner")
	other := f.register(t, "other")

	b, err := f.blogs.Create(ctx, models.NewBlog{Title: "Go", URL: "go.dev", OwnerID: other.UserID}, owner)
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, b.OwnerID(), "owner comes from the caller, not the input")

	err = f.blogs.Delete(ctx, b.ID, other)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, f.blogs.Delete(ctx, b.ID, owner))

	_, err = f.blogs.Get(ctx, b.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	err = f.blogs.Delete(ctx, b.ID, owner)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestBlogs_UpdateMergesSuppliedFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.register(t, "owner")
	author := "Rob Pike"

	b, err := f.blogs.Create(ctx, models.NewBlog{Title: "Go", Author: &author, URL: "go.dev", Likes: 3}, owner)
	require.NoError(t, err)

	likes := b.Likes + 1
	updated, err := f.blogs.Update(ctx, b.ID, models.BlogPatch{Likes: &likes})
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.Likes)
	assert.Equal(t, "Go", updated.Title)
	assert.Equal(t, "go.dev", updated.URL)
	require.NotNil(t, updated.Author)
	assert.Equal(t, author, *updated.Author)
	assert.Equal(t, owner.UserID, updated.OwnerID())
}

func TestBlogs_MalformedIDIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.blogs.Get(context.Background(), "5a3d5da59070081a82a3445")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	_, err = f.blogs.Update(context.Background(), "nope", models.BlogPatch{})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUsers_ListIncludesOwnedBlogs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.register(t, "alice")
	f.register(t, "bob")

	_, err := f.blogs.Create(ctx, models.NewBlog{Title: "A1", URL: "a1.dev"}, a)
	require.NoError(t, err)

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	require.Len(t, users[0].Blogs, 1)
	assert.Equal(t, "A1", users[0].Blogs[0].Title)
	assert.NotNil(t, users[1].Blogs)
	assert.Empty(t, users[1].Blogs)
}

func TestUsers_GetWithOwnBlogsOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.register(t, "alice")
	b := f.register(t, "bob")

	_, err := f.blogs.Create(ctx, models.NewBlog{Title: "A1", URL: "a1.dev"}, a)
	require.NoError(t, err)
	_, err = f.blogs.Create(ctx, models.NewBlog{Title: "B1", URL: "b1.dev"}, b)
	require.NoError(t, err)

	got, err := f.users.Get(ctx, a.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	require.Len(t, got.Blogs, 1)
	assert.Equal(t, "A1", got.Blogs[0].Title)

	for _, id := range []string{"nope", "8d9e2f5c-3b4a-4c1d-9e8f-7a6b5c4d3e2f"} {
		_, err = f.users.Get(ctx, id)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), id)
	}
}
