package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/dberrors"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// UserRepository handles database operations for users.
type UserRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FullName,
		&user.RoleType, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user")
		return nil, err
	}
	return &user, nil
}

func selectUserQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "email", "password", "full_name", "role_type", "is_active", "created_at", "updated_at",
	).From("users").PlaceholderFormat(squirrel.Dollar)
}

// CreateUser inserts a new user and returns its id.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := squirrel.Insert("users").
		Columns("email", "password", "full_name", "role_type", "is_active").
		Values(user.Email, user.Password, user.FullName, user.RoleType, user.IsActive).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, err
	}

	return id, nil
}

// GetUserByID retrieves a user by id.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := selectUserQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sql, args...))
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := selectUserQuery().Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sql, args...))
}
