package services

import (
	"context"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/repositories"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/auth"
	"github.com/labspace/praktikum/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	ClassService      *ClassService
	FolderService     *FolderService
	ModuleService     *ModuleService
	AssignmentService *AssignmentService
	NewsService       *NewsService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.FileStorage) *Services {
	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		ClassService:      NewClassService(repos.ClassRepository, repos.EnrollmentRepository, storage),
		FolderService:     NewFolderService(repos.FolderRepository, repos.ClassRepository, repos.EnrollmentRepository, storage),
		ModuleService:     NewModuleService(repos.ModuleRepository, repos.FolderRepository, repos.ClassRepository, repos.EnrollmentRepository, storage),
		AssignmentService: NewAssignmentService(repos.AssignmentRepository, repos.SubmissionRepository, repos.ClassRepository, repos.EnrollmentRepository),
		NewsService:       NewNewsService(repos.NewsRepository, repos.ClassRepository, repos.ModuleRepository, repos.AssignmentRepository),
	}
}

// enrollmentChecker is the slice of EnrollmentRepository the access gate needs.
type enrollmentChecker interface {
	IsEnrolled(ctx context.Context, classID, userID int64) (bool, error)
}

// requireClassAccess gates class content behind enrollment. Aslab accounts
// see every class; praktikan accounts only the classes they joined.
func requireClassAccess(ctx context.Context, enrollments enrollmentChecker, classID, userID int64, role models.RoleType) error {
	if role == models.RoleAslab {
		return nil
	}
	enrolled, err := enrollments.IsEnrolled(ctx, classID, userID)
	if err != nil {
		return err
	}
	if !enrolled {
		return apperrors.ErrNotEnrolled
	}
	return nil
}
