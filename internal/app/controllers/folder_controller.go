package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/services"
	"github.com/labspace/praktikum/internal/middleware"
)

// FolderController handles module folder operations
type FolderController struct {
	folderService *services.FolderService
}

// NewFolderController creates a new FolderController
func NewFolderController(folderService *services.FolderService) *FolderController {
	return &FolderController{folderService: folderService}
}

// GetFoldersByClass godoc
// @Summary List a class's folders
// @Description Get the module folders of a class in display order
// @Tags folders
// @Produce json
// @Security ApiKeyAuth
// @Param classId path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.FolderResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /folders/class/{classId} [get]
func (c *FolderController) GetFoldersByClass(ctx *gin.Context) {
	classID, ok := parseIDParam(ctx, "classId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid class ID"),
		})
		return
	}

	folders, err := c.folderService.ListFoldersByClass(ctx, classID, currentUserID(ctx), currentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: folders})
}

// GetFolderByID godoc
// @Summary Get a folder
// @Description Get one module folder
// @Tags folders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Folder ID"
// @Success 200 {object} dto.APIResponse{data=dto.FolderResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /folders/{id} [get]
func (c *FolderController) GetFolderByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid folder ID"),
		})
		return
	}

	folder, err := c.folderService.GetFolder(ctx, id, currentUserID(ctx), currentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: folder})
}

// CreateFolder godoc
// @Summary Create a folder
// @Description Create a module folder inside a class (aslab only)
// @Tags folders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateFolderRequest true "Folder data"
// @Success 201 {object} dto.APIResponse{data=dto.FolderResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /folders [post]
func (c *FolderController) CreateFolder(ctx *gin.Context) {
	var req dto.CreateFolderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	folder, err := c.folderService.CreateFolder(ctx, currentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: folder})
}

// UpdateFolder godoc
// @Summary Update a folder
// @Description Update a folder's title and order (aslab only)
// @Tags folders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Folder ID"
// @Param request body dto.UpdateFolderRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.FolderResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /folders/{id} [put]
func (c *FolderController) UpdateFolder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid folder ID"),
		})
		return
	}

	var req dto.UpdateFolderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	folder, err := c.folderService.UpdateFolder(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: folder})
}

// DeleteFolder godoc
// @Summary Delete a folder
// @Description Delete a folder with its modules and files (aslab only)
// @Tags folders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Folder ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /folders/{id} [delete]
func (c *FolderController) DeleteFolder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid folder ID"),
		})
		return
	}

	if err := c.folderService.DeleteFolder(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Folder deleted"}})
}
