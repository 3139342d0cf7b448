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

// ModuleDetails includes a module joined with its creator name.
type ModuleDetails struct {
	models.Module
	CreatorName string `db:"creator_name"`
}

// ModuleRepository handles database operations for modules and their files.
type ModuleRepository struct {
	DB *pgxpool.Pool
}

// NewModuleRepository creates a new instance of ModuleRepository.
func NewModuleRepository(db *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) selectModuleDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"m.id", "m.class_id", "m.folder_id", "m.title", "m.content",
		"m.order_index", "m.created_by", "m.created_at", "m.updated_at",
		"u.full_name as creator_name",
	).From("modules m").
		Join("users u ON m.created_by = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanModuleDetails(row pgx.Row) (*ModuleDetails, error) {
	var m ModuleDetails
	err := row.Scan(
		&m.ID, &m.ClassID, &m.FolderID, &m.Title, &m.Content,
		&m.OrderIndex, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt, &m.CreatorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		logger.Error().Err(err).Msg("Error scanning module details")
		return nil, err
	}
	return &m, nil
}

// CreateModule inserts a new module and returns its id.
func (r *ModuleRepository) CreateModule(ctx context.Context, module *models.Module) (int64, error) {
	sql, args, err := squirrel.Insert("modules").
		Columns("class_id", "folder_id", "title", "content", "order_index", "created_by").
		Values(module.ClassID, module.FolderID, module.Title, module.Content, module.OrderIndex, module.CreatedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create module query")
		return 0, err
	}
	return id, nil
}

// GetModuleByID retrieves a module with its creator name and files.
func (r *ModuleRepository) GetModuleByID(ctx context.Context, id int64) (*ModuleDetails, error) {
	sqlStr, args, err := r.selectModuleDetailsQuery().Where(squirrel.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	module, err := scanModuleDetails(r.DB.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, err
	}

	files, err := r.ListFiles(ctx, id)
	if err != nil {
		return nil, err
	}
	module.Files = files

	return module, nil
}

// ListModulesByClass returns a class's modules ordered by
// (folder_id nulls first, order_index asc, created_at asc).
func (r *ModuleRepository) ListModulesByClass(ctx context.Context, classID int64) ([]*ModuleDetails, error) {
	sqlStr, args, err := r.selectModuleDetailsQuery().
		Where(squirrel.Eq{"m.class_id": classID}).
		OrderBy("m.folder_id ASC NULLS FIRST", "m.order_index ASC", "m.created_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Msg("Error executing list modules query")
		return nil, err
	}
	defer rows.Close()

	modules := make([]*ModuleDetails, 0)
	for rows.Next() {
		m, err := scanModuleDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one module during list")
			continue
		}
		modules = append(modules, m)
	}

	return modules, rows.Err()
}

// UpdateModule updates a module's editable fields.
func (r *ModuleRepository) UpdateModule(ctx context.Context, module *models.Module) error {
	sql, args, err := squirrel.Update("modules").
		Set("folder_id", module.FolderID).
		Set("title", module.Title).
		Set("content", module.Content).
		Set("order_index", module.OrderIndex).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": module.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update module query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}

// DeleteModuleCascade deletes a module and its files inside one transaction.
// Returns the storage paths of deleted files for disk cleanup after commit.
func (r *ModuleRepository) DeleteModuleCascade(ctx context.Context, moduleID int64) ([]string, error) {
	var filePaths []string

	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `DELETE FROM module_files WHERE module_id = $1 RETURNING file_path`, moduleID)
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

		cmdTag, err := tx.Exec(ctx, `DELETE FROM modules WHERE id = $1`, moduleID)
		if err != nil {
			return fmt.Errorf("failed to delete module: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrModuleNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return filePaths, nil
}

// CountFiles returns how many files a module currently has.
func (r *ModuleRepository) CountFiles(ctx context.Context, moduleID int64) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, "SELECT count(*) FROM module_files WHERE module_id = $1", moduleID).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Int64("moduleID", moduleID).Msg("Error counting module files")
		return 0, err
	}
	return count, nil
}

// AddFile inserts a file record for a module and returns its id.
func (r *ModuleRepository) AddFile(ctx context.Context, file *models.ModuleFile) (int64, error) {
	sql, args, err := squirrel.Insert("module_files").
		Columns("module_id", "file_name", "file_path", "file_url", "file_type", "file_size", "uploaded_by").
		Values(file.ModuleID, file.FileName, file.FilePath, file.FileURL, file.FileType, file.FileSize, file.UploadedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing add module file query")
		return 0, err
	}
	return id, nil
}

// GetFile retrieves one file record of a module.
func (r *ModuleRepository) GetFile(ctx context.Context, moduleID, fileID int64) (*models.ModuleFile, error) {
	sqlStr, args, err := squirrel.Select(
		"id", "module_id", "file_name", "file_path", "file_url", "file_type", "file_size", "uploaded_by", "created_at",
	).From("module_files").
		Where(squirrel.Eq{"id": fileID, "module_id": moduleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var f models.ModuleFile
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(
		&f.ID, &f.ModuleID, &f.FileName, &f.FilePath, &f.FileURL,
		&f.FileType, &f.FileSize, &f.UploadedBy, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		logger.Error().Err(err).Int64("fileID", fileID).Msg("Error getting module file")
		return nil, err
	}
	return &f, nil
}

// ListFiles returns a module's files, oldest first.
func (r *ModuleRepository) ListFiles(ctx context.Context, moduleID int64) ([]*models.ModuleFile, error) {
	sqlStr, args, err := squirrel.Select(
		"id", "module_id", "file_name", "file_path", "file_url", "file_type", "file_size", "uploaded_by", "created_at",
	).From("module_files").
		Where(squirrel.Eq{"module_id": moduleID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("moduleID", moduleID).Msg("Error listing module files")
		return nil, err
	}
	defer rows.Close()

	files := make([]*models.ModuleFile, 0)
	for rows.Next() {
		var f models.ModuleFile
		if err := rows.Scan(
			&f.ID, &f.ModuleID, &f.FileName, &f.FilePath, &f.FileURL,
			&f.FileType, &f.FileSize, &f.UploadedBy, &f.CreatedAt,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning module file")
			continue
		}
		files = append(files, &f)
	}

	return files, rows.Err()
}

// DeleteFile removes one file record of a module.
func (r *ModuleRepository) DeleteFile(ctx context.Context, moduleID, fileID int64) error {
	sql, args, err := squirrel.Delete("module_files").
		Where(squirrel.Eq{"id": fileID, "module_id": moduleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("fileID", fileID).Msg("Error deleting module file")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}
	return nil
}
