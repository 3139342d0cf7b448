package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/services"
	"github.com/labspace/praktikum/internal/middleware"
	"github.com/labspace/praktikum/internal/pkg/helpers"
)

// NewsController handles announcement operations
type NewsController struct {
	newsService *services.NewsService
}

// NewNewsController creates a new NewsController
func NewNewsController(newsService *services.NewsService) *NewsController {
	return &NewsController{newsService: newsService}
}

// GetAllNews godoc
// @Summary List announcements
// @Description Get a paginated list of announcements, newest first
// @Tags news
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.NewsListResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /news [get]
func (c *NewsController) GetAllNews(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	news, err := c.newsService.ListNews(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: news})
}

// GetNewsByID godoc
// @Summary Get an announcement
// @Description Get one announcement with its link resolved
// @Tags news
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "News ID"
// @Success 200 {object} dto.APIResponse{data=dto.NewsResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /news/{id} [get]
func (c *NewsController) GetNewsByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid news ID"),
		})
		return
	}

	news, err := c.newsService.GetNews(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: news})
}

// CreateNews godoc
// @Summary Publish an announcement
// @Description Create an announcement, optionally linked to a class, module or assignment (aslab only)
// @Tags news
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateNewsRequest true "Announcement data"
// @Success 201 {object} dto.APIResponse{data=dto.NewsResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /news [post]
func (c *NewsController) CreateNews(ctx *gin.Context) {
	var req dto.CreateNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	news, err := c.newsService.CreateNews(ctx, currentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: news})
}

// UpdateNews godoc
// @Summary Update an announcement
// @Description Update an announcement, replacing or clearing its link (aslab only)
// @Tags news
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "News ID"
// @Param request body dto.UpdateNewsRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.NewsResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /news/{id} [put]
func (c *NewsController) UpdateNews(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid news ID"),
		})
		return
	}

	var req dto.UpdateNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	news, err := c.newsService.UpdateNews(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: news})
}

// DeleteNews godoc
// @Summary Delete an announcement
// @Description Remove an announcement (aslab only)
// @Tags news
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "News ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /news/{id} [delete]
func (c *NewsController) DeleteNews(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid news ID"),
		})
		return
	}

	if err := c.newsService.DeleteNews(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "News deleted"}})
}
