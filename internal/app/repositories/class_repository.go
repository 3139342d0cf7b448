package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/db"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/helpers"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// ClassDetails includes a class joined with its creator and enrollment count.
type ClassDetails struct {
	models.Class
	CreatorName  string `db:"creator_name"`
	StudentCount int64  `db:"student_count"`
}

// ClassRepository handles database operations for classes.
type ClassRepository struct {
	DB *pgxpool.Pool
}

// NewClassRepository creates a new instance of ClassRepository.
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) selectClassDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.title", "c.description", "c.image_url", "c.created_by",
		"c.created_at", "c.updated_at", "u.full_name as creator_name",
		"(SELECT count(*) FROM class_enrollments e WHERE e.class_id = c.id) as student_count",
	).From("classes c").
		Join("users u ON c.created_by = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanClassDetails(row pgx.Row) (*ClassDetails, error) {
	var c ClassDetails
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.ImageURL, &c.CreatedBy,
		&c.CreatedAt, &c.UpdatedAt, &c.CreatorName, &c.StudentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Msg("Error scanning class details")
		return nil, err
	}
	return &c, nil
}

// CreateClass inserts a new class and returns its id.
func (r *ClassRepository) CreateClass(ctx context.Context, class *models.Class) (int64, error) {
	sql, args, err := squirrel.Insert("classes").
		Columns("title", "description", "image_url", "created_by").
		Values(class.Title, class.Description, class.ImageURL, class.CreatedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create class query")
		return 0, err
	}
	return id, nil
}

// GetClassByID retrieves a class with creator and enrollment details.
func (r *ClassRepository) GetClassByID(ctx context.Context, id int64) (*ClassDetails, error) {
	sqlStr, args, err := r.selectClassDetailsQuery().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanClassDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ClassExists reports whether a class with the given id exists.
func (r *ClassRepository) ClassExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM classes WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("classID", id).Msg("Error checking class existence")
		return false, err
	}
	return exists, nil
}

// GetAllClasses retrieves a paginated list of classes with details.
func (r *ClassRepository) GetAllClasses(ctx context.Context, page, size int) ([]*ClassDetails, dto.PaginationInfo, error) {
	var totalItems int64
	if err := r.DB.QueryRow(ctx, "SELECT count(*) FROM classes").Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting classes")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*ClassDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := r.selectClassDetailsQuery().
		OrderBy("c.created_at DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all classes query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	classes := make([]*ClassDetails, 0)
	for rows.Next() {
		c, err := scanClassDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one class during get all")
			continue
		}
		classes = append(classes, c)
	}

	if err = rows.Err(); err != nil {
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return classes, pagination, nil
}

// UpdateClass updates a class's editable fields.
func (r *ClassRepository) UpdateClass(ctx context.Context, class *models.Class) error {
	sql, args, err := squirrel.Update("classes").
		Set("title", class.Title).
		Set("description", class.Description).
		Set("image_url", class.ImageURL).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": class.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update class query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// DeleteClassCascade deletes a class and every descendant row inside one
// transaction: submissions, assignments, module files, modules, folders,
// enrollments, then the class itself. Returns the storage paths of deleted
// module files so the caller can clean up the disk after commit.
func (r *ClassRepository) DeleteClassCascade(ctx context.Context, classID int64) ([]string, error) {
	var filePaths []string

	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM submissions WHERE assignment_id IN (SELECT id FROM assignments WHERE class_id = $1)`,
			classID); err != nil {
			return fmt.Errorf("failed to delete submissions: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM assignments WHERE class_id = $1`, classID); err != nil {
			return fmt.Errorf("failed to delete assignments: %w", err)
		}

		rows, err := tx.Query(ctx,
			`DELETE FROM module_files WHERE module_id IN (SELECT id FROM modules WHERE class_id = $1) RETURNING file_path`,
			classID)
		if err != nil {
			return fmt.Errorf("failed to delete module files: %w", err)
		}
		for rows.Next() {
			var p string
			if err := rows.Scan(&p); err != nil {
				rows.Close()
				return err
			}
			filePaths = append(filePaths, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM modules WHERE class_id = $1`, classID); err != nil {
			return fmt.Errorf("failed to delete modules: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM module_folders WHERE class_id = $1`, classID); err != nil {
			return fmt.Errorf("failed to delete folders: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM class_enrollments WHERE class_id = $1`, classID); err != nil {
			return fmt.Errorf("failed to delete enrollments: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM classes WHERE id = $1`, classID)
		if err != nil {
			return fmt.Errorf("failed to delete class: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrClassNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return filePaths, nil
}
