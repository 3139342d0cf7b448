package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/helpers"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// NewsDetails includes a news item joined with its author name.
type NewsDetails struct {
	models.News
	AuthorName string `db:"author_name"`
}

// NewsRepository handles database operations for news items.
type NewsRepository struct {
	DB *pgxpool.Pool
}

// NewNewsRepository creates a new instance of NewsRepository.
func NewNewsRepository(db *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{DB: db}
}

func (r *NewsRepository) selectNewsDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"n.id", "n.title", "n.content", "n.image_url",
		"n.linked_type", "n.linked_id",
		"n.created_by", "n.created_at", "n.updated_at",
		"u.full_name as author_name",
	).From("news n").
		Join("users u ON n.created_by = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanNewsDetails(row pgx.Row) (*NewsDetails, error) {
	var n NewsDetails
	var linkedType *models.LinkedType
	var linkedID *int64
	err := row.Scan(
		&n.ID, &n.Title, &n.Content, &n.ImageURL,
		&linkedType, &linkedID,
		&n.CreatedBy, &n.CreatedAt, &n.UpdatedAt, &n.AuthorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNewsNotFound
		}
		logger.Error().Err(err).Msg("Error scanning news details")
		return nil, err
	}
	// Both columns are set or both are NULL; the table enforces it.
	if linkedType != nil && linkedID != nil {
		n.Link = &models.NewsLink{Type: *linkedType, ID: *linkedID}
	}
	return &n, nil
}

func linkColumns(link *models.NewsLink) (linkedType *models.LinkedType, linkedID *int64) {
	if link != nil {
		linkedType = &link.Type
		linkedID = &link.ID
	}
	return linkedType, linkedID
}

// CreateNews inserts a news item and returns its id.
func (r *NewsRepository) CreateNews(ctx context.Context, news *models.News) (int64, error) {
	linkedType, linkedID := linkColumns(news.Link)

	sql, args, err := squirrel.Insert("news").
		Columns("title", "content", "image_url", "linked_type", "linked_id", "created_by").
		Values(news.Title, news.Content, news.ImageURL, linkedType, linkedID, news.CreatedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create news query")
		return 0, err
	}
	return id, nil
}

// GetNewsByID retrieves a news item with its author name.
func (r *NewsRepository) GetNewsByID(ctx context.Context, id int64) (*NewsDetails, error) {
	sqlStr, args, err := r.selectNewsDetailsQuery().Where(squirrel.Eq{"n.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanNewsDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetAllNews retrieves a paginated list of news items, newest first.
func (r *NewsRepository) GetAllNews(ctx context.Context, page, size int) ([]*NewsDetails, dto.PaginationInfo, error) {
	var totalItems int64
	if err := r.DB.QueryRow(ctx, "SELECT count(*) FROM news").Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting news")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*NewsDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := r.selectNewsDetailsQuery().
		OrderBy("n.created_at DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list news query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	items := make([]*NewsDetails, 0)
	for rows.Next() {
		n, err := scanNewsDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one news item during list")
			continue
		}
		items = append(items, n)
	}

	return items, pagination, rows.Err()
}

// UpdateNews updates a news item's editable fields, including replacing or
// clearing the entity link.
func (r *NewsRepository) UpdateNews(ctx context.Context, news *models.News) error {
	linkedType, linkedID := linkColumns(news.Link)

	sql, args, err := squirrel.Update("news").
		Set("title", news.Title).
		Set("content", news.Content).
		Set("image_url", news.ImageURL).
		Set("linked_type", linkedType).
		Set("linked_id", linkedID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": news.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update news query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNewsNotFound
	}
	return nil
}

// DeleteNews removes a news item.
func (r *NewsRepository) DeleteNews(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("news").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("newsID", id).Msg("Error executing delete news query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNewsNotFound
	}
	return nil
}
