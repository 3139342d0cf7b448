package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/dberrors"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// EnrolledStudent is an enrollment joined with the student's user record.
type EnrolledStudent struct {
	UserID     int64     `db:"user_id"`
	FullName   string    `db:"full_name"`
	Email      string    `db:"email"`
	EnrolledAt time.Time `db:"enrolled_at"`
}

// EnrollmentRepository handles database operations for class enrollments.
type EnrollmentRepository struct {
	DB *pgxpool.Pool
}

// NewEnrollmentRepository creates a new instance of EnrollmentRepository.
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Enroll adds a (class, user) enrollment pair.
func (r *EnrollmentRepository) Enroll(ctx context.Context, classID, userID int64) error {
	sql, args, err := squirrel.Insert("class_enrollments").
		Columns("class_id", "user_id").
		Values(classID, userID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "class_enrollments_class_id_user_id_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		logger.Error().Err(err).Int64("classID", classID).Int64("userID", userID).Msg("Error enrolling user")
		return err
	}
	return nil
}

// Unenroll removes a (class, user) enrollment pair.
func (r *EnrollmentRepository) Unenroll(ctx context.Context, classID, userID int64) error {
	sql, args, err := squirrel.Delete("class_enrollments").
		Where(squirrel.Eq{"class_id": classID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Int64("userID", userID).Msg("Error unenrolling user")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}
	return nil
}

// IsEnrolled reports whether the user is enrolled in the class.
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, classID, userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM class_enrollments WHERE class_id = $1 AND user_id = $2)",
		classID, userID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Int64("userID", userID).Msg("Error checking enrollment")
		return false, err
	}
	return exists, nil
}

// ListStudents returns all enrolled students of a class, oldest enrollment first.
func (r *EnrollmentRepository) ListStudents(ctx context.Context, classID int64) ([]*EnrolledStudent, error) {
	sqlStr, args, err := squirrel.Select("e.user_id", "u.full_name", "u.email", "e.enrolled_at").
		From("class_enrollments e").
		Join("users u ON e.user_id = u.id").
		Where(squirrel.Eq{"e.class_id": classID}).
		OrderBy("e.enrolled_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Msg("Error listing enrolled students")
		return nil, err
	}
	defer rows.Close()

	students := make([]*EnrolledStudent, 0)
	for rows.Next() {
		var s EnrolledStudent
		if err := rows.Scan(&s.UserID, &s.FullName, &s.Email, &s.EnrolledAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning enrolled student")
			continue
		}
		students = append(students, &s)
	}

	return students, rows.Err()
}
