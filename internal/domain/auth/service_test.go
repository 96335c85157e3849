package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/evanlin/lifeboard/pkg/errors"
)

func newTestService(repo Repository) Service {
	return NewService(Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}, repo, newTestLogger())
}

func TestService_RegisterLoginAndRefresh(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Owner@Example.com",
		Password: "supersecret123",
	})
	require.NoError(t, err)
	require.Equal(t, "owner@example.com", resp.Email)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "supersecret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)

	claims, err := svc.ValidateToken(context.Background(), login.Token)
	require.NoError(t, err)
	require.Equal(t, "owner@example.com", claims.Email)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.Token)
}

func TestService_RegistrationClosesAfterFirstOwner(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "owner@example.com",
		Password: "supersecret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Email:    "intruder@example.com",
		Password: "alsoverysecret",
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "registration_closed"))
}

func TestService_RegisterValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "supersecret123"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "owner@example.com", Password: "short"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestService_LoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "owner@example.com",
		Password: "supersecret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "owner@example.com", Password: "wrongpassword"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "supersecret123"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))
}

func TestService_ValidateTokenRejectsRefreshToken(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "owner@example.com",
		Password: "supersecret123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), resp.RefreshToken)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_token"))

	_, err = svc.Refresh(context.Background(), resp.Token)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestService_GoogleDisabledWithoutConfig(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.GoogleAuthURL(context.Background(), "state")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "auth_disabled"))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type memoryRepo struct {
	users map[int64]User
	seq   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]User)}
}

func (m *memoryRepo) Create(_ context.Context, email, passwordHash, googleSub string) (User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return User{}, ErrEmailExists
		}
	}
	m.seq++
	user := User{
		ID:           m.seq,
		Email:        email,
		PasswordHash: passwordHash,
		GoogleSub:    googleSub,
		CreatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (User, bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return User{}, false, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (User, bool, error) {
	user, ok := m.users[id]
	return user, ok, nil
}

func (m *memoryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *memoryRepo) SetGoogleSub(_ context.Context, id int64, sub string) error {
	user, ok := m.users[id]
	if !ok {
		return nil
	}
	user.GoogleSub = sub
	m.users[id] = user
	return nil
}
