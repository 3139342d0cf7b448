package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/services"
	"github.com/labspace/praktikum/internal/middleware"
)

// ModuleController handles module and attachment operations
type ModuleController struct {
	moduleService *services.ModuleService
}

// NewModuleController creates a new ModuleController
func NewModuleController(moduleService *services.ModuleService) *ModuleController {
	return &ModuleController{moduleService: moduleService}
}

// GetModulesByClass godoc
// @Summary List a class's modules
// @Description Get the modules of a class in display order
// @Tags modules
// @Produce json
// @Security ApiKeyAuth
// @Param classId path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ModuleResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /modules/class/{classId} [get]
func (c *ModuleController) GetModulesByClass(ctx *gin.Context) {
	classID, ok := parseIDParam(ctx, "classId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid class ID"),
		})
		return
	}

	modules, err := c.moduleService.ListModulesByClass(ctx, classID, currentUserID(ctx), currentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: modules})
}

// GetModuleByID godoc
// @Summary Get a module
// @Description Get one module with its attachments
// @Tags modules
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Module ID"
// @Success 200 {object} dto.APIResponse{data=dto.ModuleResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /modules/{id} [get]
func (c *ModuleController) GetModuleByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid module ID"),
		})
		return
	}

	module, err := c.moduleService.GetModule(ctx, id, currentUserID(ctx), currentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: module})
}

// CreateModule godoc
// @Summary Create a module
// @Description Create a module inside a class (aslab only)
// @Tags modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateModuleRequest true "Module data"
// @Success 201 {object} dto.APIResponse{data=dto.ModuleResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	var req dto.CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	module, err := c.moduleService.CreateModule(ctx, currentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: module})
}

// UpdateModule godoc
// @Summary Update a module
// @Description Update a module's content, folder placement and order (aslab only)
// @Tags modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Module ID"
// @Param request body dto.UpdateModuleRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.ModuleResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /modules/{id} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid module ID"),
		})
		return
	}

	var req dto.UpdateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	module, err := c.moduleService.UpdateModule(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: module})
}

// DeleteModule godoc
// @Summary Delete a module
// @Description Delete a module with its attachments (aslab only)
// @Tags modules
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Module ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /modules/{id} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid module ID"),
		})
		return
	}

	if err := c.moduleService.DeleteModule(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Module deleted"}})
}

// UploadFile godoc
// @Summary Attach a file to a module
// @Description Upload an attachment, at most five per module (aslab only)
// @Tags modules
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Module ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.APIResponse{data=dto.ModuleFileResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /modules/{id}/files [post]
func (c *ModuleController) UploadFile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid module ID"),
		})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid or missing file"),
		})
		return
	}

	file, err := c.moduleService.UploadFile(ctx, id, currentUserID(ctx), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: file})
}

// DeleteFile godoc
// @Summary Remove a module attachment
// @Description Delete one attachment from a module (aslab only)
// @Tags modules
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Module ID"
// @Param fileId path int true "File ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /modules/{id}/files/{fileId} [delete]
func (c *ModuleController) DeleteFile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid module ID"),
		})
		return
	}

	fileID, ok := parseIDParam(ctx, "fileId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid file ID"),
		})
		return
	}

	if err := c.moduleService.DeleteFile(ctx, id, fileID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "File deleted"}})
}
