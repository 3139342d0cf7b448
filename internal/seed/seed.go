package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/labspace/praktikum/internal/app/models"
	appRepos "github.com/labspace/praktikum/internal/app/repositories"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/auth"
)

// CreateDefaultData provisions the default aslab account. Praktikan register
// themselves; aslab accounts only ever come from seeding or manual creation.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default aslab account...")

	const defaultAslabEmail = "aslab@praktikum.app"

	_, err := userRepo.GetUserByEmail(ctx, defaultAslabEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking default aslab account")
		return err
	}

	hashed, err := auth.HashPassword("Aslab123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default aslab password")
		return err
	}

	aslab := &appModels.User{
		Email:    defaultAslabEmail,
		Password: hashed,
		FullName: "Default Aslab",
		RoleType: appModels.RoleAslab,
		IsActive: true,
	}

	id, err := userRepo.CreateUser(ctx, aslab)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default aslab account")
		return err
	}

	lgr.Info().Int64("userID", id).Str("email", defaultAslabEmail).Msg("Default aslab account created")
	return nil
}
