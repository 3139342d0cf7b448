package services

import (
	"context"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/repositories"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/logger"
)

// newsStore is the slice of NewsRepository the news service needs.
type newsStore interface {
	CreateNews(ctx context.Context, news *models.News) (int64, error)
	GetNewsByID(ctx context.Context, id int64) (*repositories.NewsDetails, error)
	GetAllNews(ctx context.Context, page, size int) ([]*repositories.NewsDetails, dto.PaginationInfo, error)
	UpdateNews(ctx context.Context, news *models.News) error
	DeleteNews(ctx context.Context, id int64) error
}

// classGetter is the slice of ClassRepository the news service needs.
type classGetter interface {
	GetClassByID(ctx context.Context, id int64) (*repositories.ClassDetails, error)
}

// moduleGetter is the slice of ModuleRepository the news service needs.
type moduleGetter interface {
	GetModuleByID(ctx context.Context, id int64) (*repositories.ModuleDetails, error)
}

// assignmentGetter is the slice of AssignmentRepository the news service needs.
type assignmentGetter interface {
	GetAssignmentByID(ctx context.Context, id int64) (*repositories.AssignmentDetails, error)
}

// NewsService handles announcements and their optional entity links.
type NewsService struct {
	news        newsStore
	classes     classGetter
	modules     moduleGetter
	assignments assignmentGetter
}

// NewNewsService creates a new instance of NewsService.
func NewNewsService(news newsStore, classes classGetter, modules moduleGetter, assignments assignmentGetter) *NewsService {
	return &NewsService{
		news:        news,
		classes:     classes,
		modules:     modules,
		assignments: assignments,
	}
}

// buildLink validates the optional link pair of a create or update request.
// Both fields must be present together; the referenced entity must exist.
func (s *NewsService) buildLink(ctx context.Context, linkedType *string, linkedID *int64) (*models.NewsLink, error) {
	if linkedType == nil && linkedID == nil {
		return nil, nil
	}
	if linkedType == nil || linkedID == nil {
		return nil, apperrors.ErrIncompleteLink
	}

	lt := models.LinkedType(*linkedType)
	if !lt.IsValid() {
		return nil, apperrors.NewBadRequestError("unknown linked type")
	}

	if _, err := s.lookupLinkedTitle(ctx, lt, *linkedID); err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrLinkedEntityNotFound
		}
		return nil, err
	}

	return &models.NewsLink{Type: lt, ID: *linkedID}, nil
}

func isNotFound(err error) bool {
	return apperrors.Is(err, apperrors.ErrClassNotFound,
		apperrors.ErrModuleNotFound, apperrors.ErrAssignmentNotFound)
}

func (s *NewsService) lookupLinkedTitle(ctx context.Context, lt models.LinkedType, id int64) (string, error) {
	switch lt {
	case models.LinkedTypeClass:
		class, err := s.classes.GetClassByID(ctx, id)
		if err != nil {
			return "", err
		}
		return class.Title, nil
	case models.LinkedTypeModule:
		module, err := s.modules.GetModuleByID(ctx, id)
		if err != nil {
			return "", err
		}
		return module.Title, nil
	case models.LinkedTypeAssignment:
		assignment, err := s.assignments.GetAssignmentByID(ctx, id)
		if err != nil {
			return "", err
		}
		return assignment.Title, nil
	}
	return "", apperrors.NewBadRequestError("unknown linked type")
}

// resolveLinkedInfo looks up the linked entity's current title. A link whose
// target has since been deleted resolves to nil rather than an error.
func (s *NewsService) resolveLinkedInfo(ctx context.Context, link *models.NewsLink) *dto.LinkedInfo {
	if link == nil {
		return nil
	}

	title, err := s.lookupLinkedTitle(ctx, link.Type, link.ID)
	if err != nil {
		if !isNotFound(err) {
			logger.Warn().Err(err).Int64("linkedID", link.ID).Str("linkedType", string(link.Type)).Msg("Failed to resolve news link")
		}
		return nil
	}

	return &dto.LinkedInfo{
		EntityType: string(link.Type),
		ID:         link.ID,
		Title:      title,
	}
}

func (s *NewsService) newsDetailsResponse(ctx context.Context, nd *repositories.NewsDetails) dto.NewsResponse {
	resp := dto.FromNews(&nd.News)
	resp.CreatorName = nd.AuthorName
	resp.LinkedInfo = s.resolveLinkedInfo(ctx, nd.Link)
	return resp
}

// CreateNews publishes an announcement, optionally linked to a class, module
// or assignment.
func (s *NewsService) CreateNews(ctx context.Context, authorID int64, req dto.CreateNewsRequest) (*dto.NewsResponse, error) {
	link, err := s.buildLink(ctx, req.LinkedType, req.LinkedID)
	if err != nil {
		return nil, err
	}

	news := &models.News{
		Title:     req.Title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		CreatedBy: authorID,
		Link:      link,
	}

	id, err := s.news.CreateNews(ctx, news)
	if err != nil {
		return nil, err
	}

	created, err := s.news.GetNewsByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("newsID", id).Int64("authorID", authorID).Msg("News published")
	resp := s.newsDetailsResponse(ctx, created)
	return &resp, nil
}

// GetNews retrieves one announcement with its link resolved.
func (s *NewsService) GetNews(ctx context.Context, id int64) (*dto.NewsResponse, error) {
	news, err := s.news.GetNewsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.newsDetailsResponse(ctx, news)
	return &resp, nil
}

// ListNews retrieves a paginated list of announcements, newest first.
func (s *NewsService) ListNews(ctx context.Context, page, size int) (*dto.NewsListResponse, error) {
	items, pagination, err := s.news.GetAllNews(ctx, page, size)
	if err != nil {
		return nil, err
	}

	news := make([]dto.NewsResponse, 0, len(items))
	for _, n := range items {
		news = append(news, s.newsDetailsResponse(ctx, n))
	}

	return &dto.NewsListResponse{News: news, Pagination: pagination}, nil
}

// UpdateNews updates an announcement, replacing or clearing its link.
func (s *NewsService) UpdateNews(ctx context.Context, id int64, req dto.UpdateNewsRequest) (*dto.NewsResponse, error) {
	if _, err := s.news.GetNewsByID(ctx, id); err != nil {
		return nil, err
	}

	link, err := s.buildLink(ctx, req.LinkedType, req.LinkedID)
	if err != nil {
		return nil, err
	}

	news := &models.News{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Link:     link,
	}

	if err := s.news.UpdateNews(ctx, news); err != nil {
		return nil, err
	}

	updated, err := s.news.GetNewsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.newsDetailsResponse(ctx, updated)
	return &resp, nil
}

// DeleteNews removes an announcement.
func (s *NewsService) DeleteNews(ctx context.Context, id int64) error {
	if err := s.news.DeleteNews(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("newsID", id).Msg("News deleted")
	return nil
}
