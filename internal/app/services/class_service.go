package services

import (
	"context"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/repositories"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/filestorage"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// classStore is the slice of ClassRepository the class service needs.
type classStore interface {
	CreateClass(ctx context.Context, class *models.Class) (int64, error)
	GetClassByID(ctx context.Context, id int64) (*repositories.ClassDetails, error)
	ClassExists(ctx context.Context, id int64) (bool, error)
	GetAllClasses(ctx context.Context, page, size int) ([]*repositories.ClassDetails, dto.PaginationInfo, error)
	UpdateClass(ctx context.Context, class *models.Class) error
	DeleteClassCascade(ctx context.Context, classID int64) ([]string, error)
}

// enrollmentStore is the slice of EnrollmentRepository the class service needs.
type enrollmentStore interface {
	Enroll(ctx context.Context, classID, userID int64) error
	Unenroll(ctx context.Context, classID, userID int64) error
	IsEnrolled(ctx context.Context, classID, userID int64) (bool, error)
	ListStudents(ctx context.Context, classID int64) ([]*repositories.EnrolledStudent, error)
}

// ClassService handles class management and enrollment.
type ClassService struct {
	classes     classStore
	enrollments enrollmentStore
	storage     filestorage.FileStorage
}

// NewClassService creates a new instance of ClassService.
func NewClassService(classes classStore, enrollments enrollmentStore, storage filestorage.FileStorage) *ClassService {
	return &ClassService{
		classes:     classes,
		enrollments: enrollments,
		storage:     storage,
	}
}

func classDetailsResponse(cd *repositories.ClassDetails) dto.ClassResponse {
	resp := dto.FromClass(&cd.Class)
	resp.CreatorName = cd.CreatorName
	resp.StudentCount = cd.StudentCount
	return resp
}

// CreateClass creates a class owned by the given aslab.
func (s *ClassService) CreateClass(ctx context.Context, creatorID int64, req dto.CreateClassRequest) (*dto.ClassResponse, error) {
	class := &models.Class{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedBy:   creatorID,
	}

	id, err := s.classes.CreateClass(ctx, class)
	if err != nil {
		return nil, err
	}

	created, err := s.classes.GetClassByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("classID", id).Int64("creatorID", creatorID).Msg("Class created")
	resp := classDetailsResponse(created)
	return &resp, nil
}

// GetClass retrieves one class. The class list and detail are browsable by
// any authenticated user so praktikan can find classes to join.
func (s *ClassService) GetClass(ctx context.Context, id int64) (*dto.ClassResponse, error) {
	class, err := s.classes.GetClassByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := classDetailsResponse(class)
	return &resp, nil
}

// ListClasses retrieves a paginated list of classes.
func (s *ClassService) ListClasses(ctx context.Context, page, size int) (*dto.ClassListResponse, error) {
	classes, pagination, err := s.classes.GetAllClasses(ctx, page, size)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClassResponse, 0, len(classes))
	for _, c := range classes {
		items = append(items, classDetailsResponse(c))
	}

	return &dto.ClassListResponse{Classes: items, Pagination: pagination}, nil
}

// UpdateClass updates a class's title, description and image.
func (s *ClassService) UpdateClass(ctx context.Context, id int64, req dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	class := &models.Class{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if err := s.classes.UpdateClass(ctx, class); err != nil {
		return nil, err
	}

	updated, err := s.classes.GetClassByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := classDetailsResponse(updated)
	return &resp, nil
}

// DeleteClass removes a class and all its content in one transaction, then
// cleans up the stored module files. Disk cleanup is best effort; a leaked
// file is preferable to a dangling database row.
func (s *ClassService) DeleteClass(ctx context.Context, id int64) error {
	filePaths, err := s.classes.DeleteClassCascade(ctx, id)
	if err != nil {
		return err
	}

	for _, p := range filePaths {
		if err := s.storage.DeleteFile(p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("Failed to remove file of deleted class")
		}
	}

	logger.Info().Int64("classID", id).Int("filesRemoved", len(filePaths)).Msg("Class deleted")
	return nil
}

// Enroll adds the praktikan to a class.
func (s *ClassService) Enroll(ctx context.Context, classID, userID int64) error {
	exists, err := s.classes.ClassExists(ctx, classID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrClassNotFound
	}

	if err := s.enrollments.Enroll(ctx, classID, userID); err != nil {
		return err
	}

	logger.Info().Int64("classID", classID).Int64("userID", userID).Msg("User enrolled")
	return nil
}

// Unenroll removes the praktikan from a class.
func (s *ClassService) Unenroll(ctx context.Context, classID, userID int64) error {
	exists, err := s.classes.ClassExists(ctx, classID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrClassNotFound
	}

	return s.enrollments.Unenroll(ctx, classID, userID)
}

// ListStudents returns the enrolled students of a class.
func (s *ClassService) ListStudents(ctx context.Context, classID int64) ([]dto.EnrolledStudentResponse, error) {
	exists, err := s.classes.ClassExists(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrClassNotFound
	}

	students, err := s.enrollments.ListStudents(ctx, classID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.EnrolledStudentResponse, 0, len(students))
	for _, st := range students {
		items = append(items, dto.EnrolledStudentResponse{
			UserID:     st.UserID,
			FullName:   st.FullName,
			Email:      st.Email,
			EnrolledAt: st.EnrolledAt,
		})
	}
	return items, nil
}
