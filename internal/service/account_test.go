package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/storage"
)

func newUserRepo(t *testing.T) storage.UserRepository {
	s, err := storage.NewFileStorage(t.TempDir(), internal.NopLogger{})
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func alexRequest() *RegisterRequest {
	return &RegisterRequest{
		Name:     "Alex Doe",
		Email:    "a@x.com",
		Username: "alex",
		Password: "pw12",
	}
}

func TestRegister_SetsSession(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	user, err := Register(ctx, repo, alexRequest())
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.JoinedDate)

	session, err := repo.GetSession(ctx)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, session.ID)
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	_, err := Register(ctx, repo, alexRequest())
	assert.NoError(t, err)

	dup := alexRequest()
	dup.Email = "A@X.COM"
	dup.Username = "someoneelse"
	_, err = Register(ctx, repo, dup)
	assert.True(t, errors.Is(err, ErrDuplicateEmail))
}

func TestRegister_DuplicateUsernameCaseInsensitive(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	_, err := Register(ctx, repo, alexRequest())
	assert.NoError(t, err)

	dup := alexRequest()
	dup.Email = "other@x.com"
	dup.Username = "ALEX"
	_, err = Register(ctx, repo, dup)
	assert.True(t, errors.Is(err, ErrDuplicateUsername))
}

func TestLogin_ByEmailAndUsername(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	_, err := Register(ctx, repo, alexRequest())
	assert.NoError(t, err)
	assert.NoError(t, Logout(ctx, repo))

	user, err := Login(ctx, repo, "A@x.Com", "pw12")
	assert.NoError(t, err)
	assert.Equal(t, "alex", user.Username)

	assert.NoError(t, Logout(ctx, repo))

	user, err = Login(ctx, repo, "Alex", "pw12")
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestLogin_Failures(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	_, err := Register(ctx, repo, alexRequest())
	assert.NoError(t, err)
	assert.NoError(t, Logout(ctx, repo))

	// Wrong password.
	_, err = Login(ctx, repo, "alex", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	// Correct password, unknown identifier.
	_, err = Login(ctx, repo, "nobody", "pw12")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	// Failed login must not establish a session.
	_, err = repo.GetSession(ctx)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestCheckUsernameAvailable_PureQuery(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	_, err := Register(ctx, repo, alexRequest())
	assert.NoError(t, err)

	for i := 0; i < 5; i++ {
		available, err := CheckUsernameAvailable(ctx, repo, "Alex")
		assert.NoError(t, err)
		assert.False(t, available)

		available, err = CheckUsernameAvailable(ctx, repo, "taylor")
		assert.NoError(t, err)
		assert.True(t, available)
	}

	users, err := repo.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 1, "availability checks must not mutate the store")
}

func TestUpdateProfile_MutatesNameAndAvatarOnly(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	registered, err := Register(ctx, repo, alexRequest())
	assert.NoError(t, err)

	updated, err := UpdateProfile(ctx, repo, &ProfileUpdateRequest{
		Name:      "Alexandra Doe",
		AvatarURL: "https://example.com/a.png",
	})
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, updated.ID)
	assert.Equal(t, "Alexandra Doe", updated.Name)
	assert.Equal(t, "https://example.com/a.png", updated.AvatarURL)
	assert.Equal(t, registered.Email, updated.Email)
	assert.Equal(t, registered.Username, updated.Username)

	// Directory entry and session both overwritten.
	users, err := repo.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "Alexandra Doe", users[0].Name)

	session, err := repo.GetSession(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Alexandra Doe", session.Name)
}

func TestLogout_ClearsSessionOnly(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	_, err := Register(ctx, repo, alexRequest())
	assert.NoError(t, err)

	assert.NoError(t, Logout(ctx, repo))

	_, err = repo.GetSession(ctx)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	users, err := repo.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}
