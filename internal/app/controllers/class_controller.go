package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/services"
	"github.com/labspace/praktikum/internal/middleware"
	"github.com/labspace/praktikum/internal/pkg/helpers"
)

// ClassController handles class and enrollment operations
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

// GetAllClasses godoc
// @Summary List classes
// @Description Get a paginated list of classes
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ClassListResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /classes [get]
func (c *ClassController) GetAllClasses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	classes, err := c.classService.ListClasses(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: classes})
}

// GetClassByID godoc
// @Summary Get a class
// @Description Get detailed information about a class
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /classes/{id} [get]
func (c *ClassController) GetClassByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid class ID"),
		})
		return
	}

	class, err := c.classService.GetClass(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: class})
}

// CreateClass godoc
// @Summary Create a class
// @Description Create a new class (aslab only)
// @Tags classes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateClassRequest true "Class data"
// @Success 201 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	class, err := c.classService.CreateClass(ctx, currentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: class})
}

// UpdateClass godoc
// @Summary Update a class
// @Description Update a class's title, description and image (aslab only)
// @Tags classes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Class ID"
// @Param request body dto.UpdateClassRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid class ID"),
		})
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	class, err := c.classService.UpdateClass(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: class})
}

// DeleteClass godoc
// @Summary Delete a class
// @Description Delete a class and all its content (aslab only)
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid class ID"),
		})
		return
	}

	if err := c.classService.DeleteClass(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Class deleted"}})
}

// Enroll godoc
// @Summary Join a class
// @Description Enroll the authenticated praktikan in a class
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /classes/{id}/enroll [post]
func (c *ClassController) Enroll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid class ID"),
		})
		return
	}

	if err := c.classService.Enroll(ctx, id, currentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Enrolled"}})
}

// Unenroll godoc
// @Summary Leave a class
// @Description Remove the authenticated praktikan's enrollment
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /classes/{id}/enroll [delete]
func (c *ClassController) Unenroll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid class ID"),
		})
		return
	}

	if err := c.classService.Unenroll(ctx, id, currentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Unenrolled"}})
}

// GetStudents godoc
// @Summary List enrolled students
// @Description Get the students enrolled in a class (aslab only)
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrolledStudentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /classes/{id}/students [get]
func (c *ClassController) GetStudents(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid class ID"),
		})
		return
	}

	students, err := c.classService.ListStudents(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: students})
}
