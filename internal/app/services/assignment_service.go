package services

import (
	"context"
	"time"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/repositories"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// assignmentStore is the slice of AssignmentRepository the assignment service needs.
type assignmentStore interface {
	CreateAssignment(ctx context.Context, assignment *models.Assignment) (int64, error)
	GetAssignmentByID(ctx context.Context, id int64) (*repositories.AssignmentDetails, error)
	ListAssignmentsByClass(ctx context.Context, classID int64) ([]*repositories.AssignmentDetails, error)
	UpdateAssignment(ctx context.Context, assignment *models.Assignment) error
	DeleteAssignmentCascade(ctx context.Context, assignmentID int64) error
}

// submissionStore is the slice of SubmissionRepository the assignment service needs.
type submissionStore interface {
	Upsert(ctx context.Context, sub *models.Submission) (int64, error)
	GetByID(ctx context.Context, id int64) (*repositories.SubmissionDetails, error)
	GetByAssignmentAndUser(ctx context.Context, assignmentID, userID int64) (*repositories.SubmissionDetails, error)
	ListByAssignment(ctx context.Context, assignmentID int64) ([]*repositories.SubmissionDetails, error)
	SetGrade(ctx context.Context, submissionID int64, grade float64, feedback string, gradedBy int64, gradedAt time.Time) error
}

// AssignmentService handles assignments, submissions and grading.
type AssignmentService struct {
	assignments assignmentStore
	submissions submissionStore
	classes     classChecker
	enrollments enrollmentChecker

	// now is swappable so deadline behavior is testable
	now func() time.Time
}

// NewAssignmentService creates a new instance of AssignmentService.
func NewAssignmentService(assignments assignmentStore, submissions submissionStore, classes classChecker, enrollments enrollmentChecker) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		submissions: submissions,
		classes:     classes,
		enrollments: enrollments,
		now:         time.Now,
	}
}

func (s *AssignmentService) assignmentDetailsResponse(ad *repositories.AssignmentDetails) dto.AssignmentResponse {
	resp := dto.FromAssignment(&ad.Assignment, s.now())
	resp.CreatorName = ad.CreatorName
	return resp
}

func submissionDetailsResponse(sd *repositories.SubmissionDetails) dto.SubmissionResponse {
	resp := dto.FromSubmission(&sd.Submission)
	resp.SubmitterName = sd.SubmitterName
	resp.GraderName = sd.GraderName
	return resp
}

// CreateAssignment creates an assignment inside a class.
func (s *AssignmentService) CreateAssignment(ctx context.Context, creatorID int64, req dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	exists, err := s.classes.ClassExists(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrClassNotFound
	}

	assignment := &models.Assignment{
		ClassID:     req.ClassID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		CreatedBy:   creatorID,
	}

	id, err := s.assignments.CreateAssignment(ctx, assignment)
	if err != nil {
		return nil, err
	}

	created, err := s.assignments.GetAssignmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("assignmentID", id).Int64("classID", req.ClassID).Msg("Assignment created")
	resp := s.assignmentDetailsResponse(created)
	return &resp, nil
}

// GetAssignment retrieves one assignment, gated by class access.
func (s *AssignmentService) GetAssignment(ctx context.Context, id, userID int64, role models.RoleType) (*dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetAssignmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireClassAccess(ctx, s.enrollments, assignment.ClassID, userID, role); err != nil {
		return nil, err
	}

	resp := s.assignmentDetailsResponse(assignment)
	return &resp, nil
}

// ListAssignmentsByClass returns a class's assignments, nearest deadline
// first, gated by class access.
func (s *AssignmentService) ListAssignmentsByClass(ctx context.Context, classID, userID int64, role models.RoleType) ([]dto.AssignmentResponse, error) {
	exists, err := s.classes.ClassExists(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrClassNotFound
	}

	if err := requireClassAccess(ctx, s.enrollments, classID, userID, role); err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListAssignmentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, s.assignmentDetailsResponse(a))
	}
	return items, nil
}

// UpdateAssignment updates an assignment's title, description and deadline.
func (s *AssignmentService) UpdateAssignment(ctx context.Context, id int64, req dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	assignment := &models.Assignment{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	}

	if err := s.assignments.UpdateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	updated, err := s.assignments.GetAssignmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.assignmentDetailsResponse(updated)
	return &resp, nil
}

// DeleteAssignment removes an assignment and its submissions.
func (s *AssignmentService) DeleteAssignment(ctx context.Context, id int64) error {
	if err := s.assignments.DeleteAssignmentCascade(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("assignmentID", id).Msg("Assignment deleted")
	return nil
}

// Submit records or replaces the praktikan's submission for an assignment.
// Submitting again before the deadline overwrites the previous work and
// clears any grade it had received. After the deadline submission is refused.
func (s *AssignmentService) Submit(ctx context.Context, assignmentID, userID int64, req dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	assignment, err := s.assignments.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if err := requireClassAccess(ctx, s.enrollments, assignment.ClassID, userID, models.RolePraktikan); err != nil {
		return nil, err
	}

	if s.now().After(assignment.Deadline) {
		return nil, apperrors.ErrDeadlinePassed
	}

	if len(req.FileURLs) > models.MaxFilesPerSubmission {
		return nil, apperrors.ErrFileLimitExceeded
	}

	sub := &models.Submission{
		AssignmentID: assignmentID,
		UserID:       userID,
		Content:      req.Content,
		FileURLs:     req.FileURLs,
	}

	id, err := s.submissions.Upsert(ctx, sub)
	if err != nil {
		return nil, err
	}

	stored, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("assignmentID", assignmentID).Int64("userID", userID).Msg("Submission recorded")
	resp := submissionDetailsResponse(stored)
	return &resp, nil
}

// GetMySubmission returns the praktikan's own submission for an assignment.
func (s *AssignmentService) GetMySubmission(ctx context.Context, assignmentID, userID int64) (*dto.SubmissionResponse, error) {
	sub, err := s.submissions.GetByAssignmentAndUser(ctx, assignmentID, userID)
	if err != nil {
		return nil, err
	}
	resp := submissionDetailsResponse(sub)
	return &resp, nil
}

// ListSubmissions returns every submission for an assignment.
func (s *AssignmentService) ListSubmissions(ctx context.Context, assignmentID int64) ([]dto.SubmissionResponse, error) {
	if _, err := s.assignments.GetAssignmentByID(ctx, assignmentID); err != nil {
		return nil, err
	}

	subs, err := s.submissions.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		items = append(items, submissionDetailsResponse(sub))
	}
	return items, nil
}

// Grade assigns a grade and feedback to a submission.
func (s *AssignmentService) Grade(ctx context.Context, assignmentID, submissionID, graderID int64, req dto.GradeRequest) (*dto.SubmissionResponse, error) {
	if req.Grade < 0 || req.Grade > 100 {
		return nil, apperrors.ErrInvalidGrade
	}

	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.AssignmentID != assignmentID {
		return nil, apperrors.ErrSubmissionNotFound
	}

	if err := s.submissions.SetGrade(ctx, submissionID, req.Grade, req.Feedback, graderID, s.now()); err != nil {
		return nil, err
	}

	graded, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("submissionID", submissionID).Int64("graderID", graderID).Float64("grade", req.Grade).Msg("Submission graded")
	resp := submissionDetailsResponse(graded)
	return &resp, nil
}
