package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/auth"
)

func newAuthServiceForTest(users *fakeUsers, tokens *fakeTokens) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	return NewAuthService(users, tokens, jwtService)
}

func addActiveUser(t *testing.T, users *fakeUsers, id int64, email, password string, role models.RoleType) {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	users.addUser(&models.User{
		ID:       id,
		Email:    email,
		Password: hashed,
		FullName: "Test User",
		RoleType: role,
		IsActive: true,
	})
}

func TestRegisterCreatesPraktikan(t *testing.T) {
	users := newFakeUsers()
	svc := newAuthServiceForTest(users, newFakeTokens())

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "student@lab.edu",
		Password: "Password1!",
		FullName: "A Student",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RolePraktikan), resp.RoleType)

	stored, err := users.GetUserByEmail(context.Background(), "student@lab.edu")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "Password1!", stored.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	addActiveUser(t, users, 1, "student@lab.edu", "Password1!", models.RolePraktikan)
	svc := newAuthServiceForTest(users, newFakeTokens())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "student@lab.edu",
		Password: "Password1!",
		FullName: "Someone Else",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	users := newFakeUsers()
	addActiveUser(t, users, 1, "student@lab.edu", "Password1!", models.RolePraktikan)
	svc := newAuthServiceForTest(users, newFakeTokens())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "student@lab.edu", Password: "Password1!"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUsers()
	addActiveUser(t, users, 1, "student@lab.edu", "Password1!", models.RolePraktikan)
	svc := newAuthServiceForTest(users, newFakeTokens())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "student@lab.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUsers(), newFakeTokens())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@lab.edu", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	users := newFakeUsers()
	hashed, err := auth.HashPassword("Password1!")
	require.NoError(t, err)
	users.addUser(&models.User{ID: 1, Email: "off@lab.edu", Password: hashed, RoleType: models.RolePraktikan, IsActive: false})
	svc := newAuthServiceForTest(users, newFakeTokens())

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "off@lab.edu", Password: "Password1!"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRotation(t *testing.T) {
	users := newFakeUsers()
	addActiveUser(t, users, 1, "student@lab.edu", "Password1!", models.RolePraktikan)
	tokens := newFakeTokens()
	svc := newAuthServiceForTest(users, tokens)

	loggedIn, err := svc.Login(context.Background(), dto.LoginRequest{Email: "student@lab.edu", Password: "Password1!"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), loggedIn.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, loggedIn.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked by the rotation
	_, err = svc.RefreshToken(context.Background(), loggedIn.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshExpiredToken(t *testing.T) {
	users := newFakeUsers()
	addActiveUser(t, users, 1, "student@lab.edu", "Password1!", models.RolePraktikan)
	tokens := newFakeTokens()
	svc := newAuthServiceForTest(users, tokens)

	require.NoError(t, tokens.StoreRefreshToken(context.Background(), "stale", 1, time.Now().Add(-time.Hour)))

	_, err := svc.RefreshToken(context.Background(), "stale")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUsers(), newFakeTokens())

	_, err := svc.RefreshToken(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogoutIsIdempotent(t *testing.T) {
	users := newFakeUsers()
	addActiveUser(t, users, 1, "student@lab.edu", "Password1!", models.RolePraktikan)
	tokens := newFakeTokens()
	svc := newAuthServiceForTest(users, tokens)

	loggedIn, err := svc.Login(context.Background(), dto.LoginRequest{Email: "student@lab.edu", Password: "Password1!"})
	require.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), loggedIn.RefreshToken))
	assert.NoError(t, svc.Logout(context.Background(), "never-existed"))
}

func TestGetProfile(t *testing.T) {
	users := newFakeUsers()
	addActiveUser(t, users, 1, "aslab@lab.edu", "Password1!", models.RoleAslab)
	svc := newAuthServiceForTest(users, newFakeTokens())

	resp, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "aslab@lab.edu", resp.Email)
	assert.Equal(t, string(models.RoleAslab), resp.RoleType)

	_, err = svc.GetProfile(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
