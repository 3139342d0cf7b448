package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// SubmissionDetails includes a submission joined with the submitter's and
// grader's names.
type SubmissionDetails struct {
	models.Submission
	SubmitterName string  `db:"submitter_name"`
	GraderName    *string `db:"grader_name"`
}

// SubmissionRepository handles database operations for submissions.
type SubmissionRepository struct {
	DB *pgxpool.Pool
}

// NewSubmissionRepository creates a new instance of SubmissionRepository.
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// file_urls is stored as one newline-separated text column.
func joinFileURLs(urls []string) string {
	return strings.Join(urls, "\n")
}

func splitFileURLs(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, "\n")
}

func (r *SubmissionRepository) selectSubmissionDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"s.id", "s.assignment_id", "s.user_id", "s.content", "s.file_urls",
		"s.submitted_at", "s.updated_at", "s.grade", "s.feedback", "s.graded_at", "s.graded_by",
		"u.full_name as submitter_name", "g.full_name as grader_name",
	).From("submissions s").
		Join("users u ON s.user_id = u.id").
		LeftJoin("users g ON s.graded_by = g.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanSubmissionDetails(row pgx.Row) (*SubmissionDetails, error) {
	var s SubmissionDetails
	var rawURLs string
	err := row.Scan(
		&s.ID, &s.AssignmentID, &s.UserID, &s.Content, &rawURLs,
		&s.SubmittedAt, &s.UpdatedAt, &s.Grade, &s.Feedback, &s.GradedAt, &s.GradedBy,
		&s.SubmitterName, &s.GraderName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		logger.Error().Err(err).Msg("Error scanning submission details")
		return nil, err
	}
	s.FileURLs = splitFileURLs(rawURLs)
	return &s, nil
}

// Upsert creates or replaces the single submission for an (assignment, user)
// pair. On conflict the student-writable fields are replaced, updated_at is
// refreshed, submitted_at is preserved and any existing grade is cleared —
// a stale grade must not survive changed content.
func (r *SubmissionRepository) Upsert(ctx context.Context, sub *models.Submission) (int64, error) {
	sql := `
		INSERT INTO submissions (assignment_id, user_id, content, file_urls, submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (assignment_id, user_id) DO UPDATE SET
			content = EXCLUDED.content,
			file_urls = EXCLUDED.file_urls,
			updated_at = now(),
			grade = NULL,
			feedback = NULL,
			graded_at = NULL,
			graded_by = NULL
		RETURNING id`

	var id int64
	err := r.DB.QueryRow(ctx, sql, sub.AssignmentID, sub.UserID, sub.Content, joinFileURLs(sub.FileURLs)).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("assignmentID", sub.AssignmentID).Int64("userID", sub.UserID).Msg("Error upserting submission")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a submission by its id.
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*SubmissionDetails, error) {
	sqlStr, args, err := r.selectSubmissionDetailsQuery().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanSubmissionDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetByAssignmentAndUser retrieves the single submission of a student for an assignment.
func (r *SubmissionRepository) GetByAssignmentAndUser(ctx context.Context, assignmentID, userID int64) (*SubmissionDetails, error) {
	sqlStr, args, err := r.selectSubmissionDetailsQuery().
		Where(squirrel.Eq{"s.assignment_id": assignmentID, "s.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanSubmissionDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ListByAssignment returns all submissions for an assignment in insertion
// order (id ascending).
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]*SubmissionDetails, error) {
	sqlStr, args, err := r.selectSubmissionDetailsQuery().
		Where(squirrel.Eq{"s.assignment_id": assignmentID}).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("assignmentID", assignmentID).Msg("Error executing list submissions query")
		return nil, err
	}
	defer rows.Close()

	submissions := make([]*SubmissionDetails, 0)
	for rows.Next() {
		s, err := scanSubmissionDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one submission during list")
			continue
		}
		submissions = append(submissions, s)
	}

	return submissions, rows.Err()
}

// SetGrade writes the aslab-owned grading fields of a submission. The
// student-owned fields are untouched; the two field sets stay disjoint.
func (r *SubmissionRepository) SetGrade(ctx context.Context, submissionID int64, grade float64, feedback string, gradedBy int64, gradedAt time.Time) error {
	sql, args, err := squirrel.Update("submissions").
		Set("grade", grade).
		Set("feedback", feedback).
		Set("graded_at", gradedAt).
		Set("graded_by", gradedBy).
		Where(squirrel.Eq{"id": submissionID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("submissionID", submissionID).Msg("Error executing grade submission query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}
	return nil
}
