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

// FolderDetails includes a folder joined with its creator, class title and
// contained module count.
type FolderDetails struct {
	models.ModuleFolder
	CreatorName string `db:"creator_name"`
	ClassTitle  string `db:"class_title"`
	ModuleCount int64  `db:"module_count"`
}

// FolderRepository handles database operations for module folders.
type FolderRepository struct {
	DB *pgxpool.Pool
}

// NewFolderRepository creates a new instance of FolderRepository.
func NewFolderRepository(db *pgxpool.Pool) *FolderRepository {
	return &FolderRepository{DB: db}
}

func (r *FolderRepository) selectFolderDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"f.id", "f.class_id", "f.title", "f.order_index", "f.created_by",
		"f.created_at", "f.updated_at",
		"u.full_name as creator_name", "c.title as class_title",
		"(SELECT count(*) FROM modules m WHERE m.folder_id = f.id) as module_count",
	).From("module_folders f").
		Join("users u ON f.created_by = u.id").
		Join("classes c ON f.class_id = c.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanFolderDetails(row pgx.Row) (*FolderDetails, error) {
	var f FolderDetails
	err := row.Scan(
		&f.ID, &f.ClassID, &f.Title, &f.OrderIndex, &f.CreatedBy,
		&f.CreatedAt, &f.UpdatedAt, &f.CreatorName, &f.ClassTitle, &f.ModuleCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFolderNotFound
		}
		logger.Error().Err(err).Msg("Error scanning folder details")
		return nil, err
	}
	return &f, nil
}

// CreateFolder inserts a new folder and returns its id.
func (r *FolderRepository) CreateFolder(ctx context.Context, folder *models.ModuleFolder) (int64, error) {
	sql, args, err := squirrel.Insert("module_folders").
		Columns("class_id", "title", "order_index", "created_by").
		Values(folder.ClassID, folder.Title, folder.OrderIndex, folder.CreatedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create folder query")
		return 0, err
	}
	return id, nil
}

// GetFolderByID retrieves a folder with details.
func (r *FolderRepository) GetFolderByID(ctx context.Context, id int64) (*FolderDetails, error) {
	sqlStr, args, err := r.selectFolderDetailsQuery().Where(squirrel.Eq{"f.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanFolderDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ListFoldersByClass returns a class's folders ordered by
// (order_index asc, created_at asc). The created_at tie break keeps the
// ordering deterministic when indices collide.
func (r *FolderRepository) ListFoldersByClass(ctx context.Context, classID int64) ([]*FolderDetails, error) {
	sqlStr, args, err := r.selectFolderDetailsQuery().
		Where(squirrel.Eq{"f.class_id": classID}).
		OrderBy("f.order_index ASC", "f.created_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Msg("Error executing list folders query")
		return nil, err
	}
	defer rows.Close()

	folders := make([]*FolderDetails, 0)
	for rows.Next() {
		f, err := scanFolderDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one folder during list")
			continue
		}
		folders = append(folders, f)
	}

	return folders, rows.Err()
}

// UpdateFolder updates a folder's title and order index.
func (r *FolderRepository) UpdateFolder(ctx context.Context, folder *models.ModuleFolder) error {
	sql, args, err := squirrel.Update("module_folders").
		Set("title", folder.Title).
		Set("order_index", folder.OrderIndex).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": folder.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update folder query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFolderNotFound
	}
	return nil
}

// DeleteFolderCascade deletes a folder and its modules (files first) inside
// one transaction. Modules are removed before the folder so no orphan can
// survive a partial failure. Returns the storage paths of deleted module
// files for disk cleanup after commit.
func (r *FolderRepository) DeleteFolderCascade(ctx context.Context, folderID int64) ([]string, error) {
	var filePaths []string

	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`DELETE FROM module_files WHERE module_id IN (SELECT id FROM modules WHERE folder_id = $1) RETURNING file_path`,
			folderID)
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

		if _, err := tx.Exec(ctx, `DELETE FROM modules WHERE folder_id = $1`, folderID); err != nil {
			return fmt.Errorf("failed to delete modules: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM module_folders WHERE id = $1`, folderID)
		if err != nil {
			return fmt.Errorf("failed to delete folder: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			// Already gone; idempotent from the caller's perspective
			return apperrors.ErrFolderNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return filePaths, nil
}
