package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// RefreshToken is a stored opaque refresh token.
type RefreshToken struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	Revoked   bool      `db:"revoked"`
}

// TokenRepository handles database operations for refresh tokens.
type TokenRepository struct {
	DB *pgxpool.Pool
}

// NewTokenRepository creates a new instance of TokenRepository.
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{DB: db}
}

// StoreRefreshToken persists a refresh token for a user.
func (r *TokenRepository) StoreRefreshToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	sql, args, err := squirrel.Insert("refresh_tokens").
		Columns("token", "user_id", "expires_at").
		Values(token, userID, expiresAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error storing refresh token")
		return err
	}
	return nil
}

// GetRefreshToken retrieves a refresh token.
func (r *TokenRepository) GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error) {
	sql, args, err := squirrel.Select("token", "user_id", "expires_at", "revoked").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rt RefreshToken
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&rt.Token, &rt.UserID, &rt.ExpiresAt, &rt.Revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error getting refresh token")
		return nil, err
	}
	return &rt, nil
}

// RevokeRefreshToken marks a refresh token as revoked.
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	sql, args, err := squirrel.Update("refresh_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"token": token}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error revoking refresh token")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// DeleteExpiredTokens removes tokens past their expiry.
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	sql, args, err := squirrel.Delete("refresh_tokens").
		Where(squirrel.Lt{"expires_at": time.Now()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error deleting expired refresh tokens")
		return err
	}
	return nil
}
