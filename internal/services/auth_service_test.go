package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishanreddy/habitmind/internal/constants"
	"github.com/rishanreddy/habitmind/internal/logger"
	"github.com/rishanreddy/habitmind/internal/models"
	"github.com/rishanreddy/habitmind/internal/repository"
)

type fakeObjectStorage struct {
	objects    map[string][]byte
	putErr     error
	presignErr error
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: map[string][]byte{}}
}

func (f *fakeObjectStorage) Put(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeObjectStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://objects.test/" + key + "?sig=abc", nil
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)
}

func signup(t *testing.T, service *AuthService, email string) string {
	t.Helper()
	user, err := service.Signup(context.Background(), SignupInput{
		Name:                 "Ada",
		Email:                email,
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
	})
	require.NoError(t, err)
	return user.ID
}

func TestAuthService_Signup(t *testing.T) {
	service := newTestAuthService(t)

	user, err := service.Signup(context.Background(), SignupInput{
		Name:                 " Ada ",
		Email:                " Ada@Example.com ",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	_, err = service.Signup(context.Background(), SignupInput{
		Name:                 "Other",
		Email:                "ADA@example.com",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_SignupValidation(t *testing.T) {
	service := newTestAuthService(t)

	cases := []struct {
		name  string
		input SignupInput
		want  error
	}{
		{"missing name", SignupInput{Email: "a@example.com", Password: "supersecret", PasswordConfirmation: "supersecret"}, ErrNameRequired},
		{"bad email", SignupInput{Name: "A", Email: "not-an-email", Password: "supersecret", PasswordConfirmation: "supersecret"}, ErrInvalidEmail},
		{"short password", SignupInput{Name: "A", Email: "a@example.com", Password: "short", PasswordConfirmation: "short"}, ErrPasswordTooShort},
		{"mismatch", SignupInput{Name: "A", Email: "a@example.com", Password: "supersecret", PasswordConfirmation: "supersecreT"}, ErrPasswordMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	service := newTestAuthService(t)
	id := signup(t, service, "ada@example.com")

	user, err := service.Login(context.Background(), LoginInput{Email: "ADA@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, err = service.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUser(t *testing.T) {
	service := newTestAuthService(t)
	id := signup(t, service, "ada@example.com")

	user, err := service.GetUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = service.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Tokens(t *testing.T) {
	service := newTestAuthService(t)

	token, expiresAt, err := service.IssueToken("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	userID, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	other := NewAuthService(nil, "other-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestAuthService_SetAvatar(t *testing.T) {
	service := newTestAuthService(t)
	id := signup(t, service, "ada@example.com")

	_, err := service.SetAvatar(context.Background(), id, AvatarUpload{
		Filename: "me.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("png"),
	})
	assert.ErrorIs(t, err, ErrStorageNotConfigured)

	store := newFakeObjectStorage()
	service.WithStorage(store)

	_, err = service.SetAvatar(context.Background(), id, AvatarUpload{
		Filename: "notes.txt", ContentType: "text/plain", Size: 3, Body: strings.NewReader("txt"),
	})
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = service.SetAvatar(context.Background(), id, AvatarUpload{
		Filename: "huge.png", ContentType: "image/png", Size: constants.MaxAvatarBytes + 1, Body: strings.NewReader(""),
	})
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.Empty(t, store.objects)

	user, err := service.SetAvatar(context.Background(), id, AvatarUpload{
		Filename: "Me.PNG", ContentType: "image/png", Size: 3, Body: bytes.NewReader([]byte("png")),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.ImageKey, "avatars/"+id+"/"))
	assert.True(t, strings.HasSuffix(user.ImageKey, ".png"))
	assert.Equal(t, []byte("png"), store.objects[user.ImageKey])

	stored, err := service.GetUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, user.ImageKey, stored.ImageKey)
	assert.Equal(t, "https://objects.test/"+user.ImageKey+"?sig=abc", service.AvatarURL(context.Background(), stored))

	store.putErr = errors.New("bucket gone")
	_, err = service.SetAvatar(context.Background(), id, AvatarUpload{
		Filename: "me.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("png"),
	})
	assert.ErrorContains(t, err, "bucket gone")
}

func TestAuthService_AvatarURLLogsPresignFailure(t *testing.T) {
	original := logger.Logger
	t.Cleanup(func() { logger.Logger = original })

	var buf bytes.Buffer
	logger.Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	store := newFakeObjectStorage()
	store.presignErr = errors.New("signer unavailable")
	service := newTestAuthService(t).WithStorage(store)

	user := &models.User{ID: "user-1", ImageKey: "avatars/user-1/a.png"}
	assert.Empty(t, service.AvatarURL(context.Background(), user))
	assert.Contains(t, buf.String(), "Failed to presign avatar URL")
	assert.Contains(t, buf.String(), "signer unavailable")

	assert.Empty(t, service.AvatarURL(context.Background(), &models.User{ID: "user-2"}))
}
