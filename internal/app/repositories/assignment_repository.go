package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/db"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// AssignmentDetails includes an assignment joined with its creator name.
type AssignmentDetails struct {
	models.Assignment
	CreatorName string `db:"creator_name"`
}

// AssignmentRepository handles database operations for assignments.
type AssignmentRepository struct {
	DB *pgxpool.Pool
}

// NewAssignmentRepository creates a new instance of AssignmentRepository.
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) selectAssignmentDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"a.id", "a.class_id", "a.title", "a.description", "a.deadline",
		"a.created_by", "a.created_at", "a.updated_at",
		"u.full_name as creator_name",
	).From("assignments a").
		Join("users u ON a.created_by = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanAssignmentDetails(row pgx.Row) (*AssignmentDetails, error) {
	var a AssignmentDetails
	err := row.Scan(
		&a.ID, &a.ClassID, &a.Title, &a.Description, &a.Deadline,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt, &a.CreatorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning assignment details")
		return nil, err
	}
	return &a, nil
}

// CreateAssignment inserts a new assignment and returns its id.
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, assignment *models.Assignment) (int64, error) {
	sql, args, err := squirrel.Insert("assignments").
		Columns("class_id", "title", "description", "deadline", "created_by").
		Values(assignment.ClassID, assignment.Title, assignment.Description, assignment.Deadline, assignment.CreatedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create assignment query")
		return 0, err
	}
	return id, nil
}

// GetAssignmentByID retrieves an assignment with its creator name.
func (r *AssignmentRepository) GetAssignmentByID(ctx context.Context, id int64) (*AssignmentDetails, error) {
	sqlStr, args, err := r.selectAssignmentDetailsQuery().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanAssignmentDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ListAssignmentsByClass returns a class's assignments, nearest deadline first.
func (r *AssignmentRepository) ListAssignmentsByClass(ctx context.Context, classID int64) ([]*AssignmentDetails, error) {
	sqlStr, args, err := r.selectAssignmentDetailsQuery().
		Where(squirrel.Eq{"a.class_id": classID}).
		OrderBy("a.deadline ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Msg("Error executing list assignments query")
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*AssignmentDetails, 0)
	for rows.Next() {
		a, err := scanAssignmentDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one assignment during list")
			continue
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// UpdateAssignment updates an assignment's editable fields.
func (r *AssignmentRepository) UpdateAssignment(ctx context.Context, assignment *models.Assignment) error {
	sql, args, err := squirrel.Update("assignments").
		Set("title", assignment.Title).
		Set("description", assignment.Description).
		Set("deadline", assignment.Deadline).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": assignment.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update assignment query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// DeleteAssignmentCascade deletes an assignment and its submissions inside
// one transaction. Submissions go first so none can be orphaned.
func (r *AssignmentRepository) DeleteAssignmentCascade(ctx context.Context, assignmentID int64) error {
	return db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM submissions WHERE assignment_id = $1`, assignmentID); err != nil {
			return fmt.Errorf("failed to delete submissions: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, assignmentID)
		if err != nil {
			return fmt.Errorf("failed to delete assignment: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrAssignmentNotFound
		}
		return nil
	})
}
