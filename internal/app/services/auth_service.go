package services

import (
	"context"
	"errors"
	"time"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/repositories"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/auth"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// userStore is the slice of UserRepository the auth service needs.
type userStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// tokenStore is the slice of TokenRepository the auth service needs.
type tokenStore interface {
	StoreRefreshToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*repositories.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	users      userStore
	tokens     tokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(users userStore, tokens tokenStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
	}
}

func userResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		RoleType: string(user.RoleType),
	}
}

// Register creates a praktikan account. Aslab accounts are never created
// through this path; they are provisioned by seeding or by hand.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password during registration")
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		RoleType: models.RolePraktikan,
		IsActive: true,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	logger.Info().Int64("userID", id).Str("email", user.Email).Msg("Praktikan registered")
	return userResponse(user), nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same error as a wrong password so the response does not
			// reveal whether the email is registered.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.users.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokens.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokens.RevokeRefreshToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// GetProfile returns the public view of the authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	if err := s.tokens.StoreRefreshToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
