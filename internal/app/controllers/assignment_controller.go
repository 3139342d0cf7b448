package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/services"
	"github.com/labspace/praktikum/internal/middleware"
)

// AssignmentController handles assignment, submission and grading operations
type AssignmentController struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

// GetAssignmentsByClass godoc
// @Summary List a class's assignments
// @Description Get the assignments of a class, nearest deadline first
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param classId path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AssignmentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments/class/{classId} [get]
func (c *AssignmentController) GetAssignmentsByClass(ctx *gin.Context) {
	classID, ok := parseIDParam(ctx, "classId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid class ID"),
		})
		return
	}

	assignments, err := c.assignmentService.ListAssignmentsByClass(ctx, classID, currentUserID(ctx), currentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: assignments})
}

// GetAssignmentByID godoc
// @Summary Get an assignment
// @Description Get one assignment with its deadline status
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments/{id} [get]
func (c *AssignmentController) GetAssignmentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid assignment ID"),
		})
		return
	}

	assignment, err := c.assignmentService.GetAssignment(ctx, id, currentUserID(ctx), currentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: assignment})
}

// CreateAssignment godoc
// @Summary Create an assignment
// @Description Create an assignment with a deadline (aslab only)
// @Tags assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateAssignmentRequest true "Assignment data"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	assignment, err := c.assignmentService.CreateAssignment(ctx, currentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: assignment})
}

// UpdateAssignment godoc
// @Summary Update an assignment
// @Description Update an assignment's title, description and deadline (aslab only)
// @Tags assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.UpdateAssignmentRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments/{id} [put]
func (c *AssignmentController) UpdateAssignment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid assignment ID"),
		})
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	assignment, err := c.assignmentService.UpdateAssignment(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: assignment})
}

// DeleteAssignment godoc
// @Summary Delete an assignment
// @Description Delete an assignment and its submissions (aslab only)
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments/{id} [delete]
func (c *AssignmentController) DeleteAssignment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid assignment ID"),
		})
		return
	}

	if err := c.assignmentService.DeleteAssignment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Assignment deleted"}})
}

// Submit godoc
// @Summary Submit work for an assignment
// @Description Create or replace the praktikan's submission; refused after the deadline
// @Tags assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.SubmitRequest true "Submission data"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments/{id}/submit [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid assignment ID"),
		})
		return
	}

	var req dto.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	submission, err := c.assignmentService.Submit(ctx, id, currentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: submission})
}

// GetMySubmission godoc
// @Summary Get own submission
// @Description Get the praktikan's submission for an assignment
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments/{id}/my-submission [get]
func (c *AssignmentController) GetMySubmission(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid assignment ID"),
		})
		return
	}

	submission, err := c.assignmentService.GetMySubmission(ctx, id, currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: submission})
}

// GetSubmissions godoc
// @Summary List an assignment's submissions
// @Description Get every submission for an assignment (aslab only)
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SubmissionResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments/{id}/submissions [get]
func (c *AssignmentController) GetSubmissions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid assignment ID"),
		})
		return
	}

	submissions, err := c.assignmentService.ListSubmissions(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: submissions})
}

// GradeSubmission godoc
// @Summary Grade a submission
// @Description Assign a grade between 0 and 100 with optional feedback (aslab only)
// @Tags assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assignment ID"
// @Param submissionId path int true "Submission ID"
// @Param request body dto.GradeRequest true "Grade data"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /assignments/{id}/submissions/{submissionId}/grade [put]
func (c *AssignmentController) GradeSubmission(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid assignment ID"),
		})
		return
	}

	submissionID, ok := parseIDParam(ctx, "submissionId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid submission ID"),
		})
		return
	}

	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	submission, err := c.assignmentService.Grade(ctx, id, submissionID, currentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: submission})
}
