package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/services"
	"github.com/yigit/growthpath/internal/middleware"
)

// WorkController handles a student's works and their versions
type WorkController struct {
	workService services.WorkService
}

// NewWorkController creates a new WorkController
func NewWorkController(workService services.WorkService) *WorkController {
	return &WorkController{workService: workService}
}

// ListWorks godoc
// @Summary List my works
// @Description Latest version of each of the caller's works
// @Tags works
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.WorkResponse}
// @Router /works [get]
func (c *WorkController) ListWorks(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}

	works, err := c.workService.ListLatest(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: works})
}

// GetWork godoc
// @Summary Get a work
// @Description A work with its version history and the task's status
// @Tags works
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Work ID"
// @Success 200 {object} dto.APIResponse{data=dto.WorkDetailResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /works/{id} [get]
func (c *WorkController) GetWork(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid work ID")
		return
	}

	work, err := c.workService.GetWork(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: work})
}

// SubmitNewVersion godoc
// @Summary Submit a new version
// @Description Resubmit a work. The new version's parent is always the chain root.
// @Tags works
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Any work ID in the chain"
// @Param request body dto.NewVersionRequest true "New version"
// @Success 201 {object} dto.APIResponse{data=dto.WorkResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /works/{id}/versions [post]
func (c *WorkController) SubmitNewVersion(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid work ID")
		return
	}

	var req dto.NewVersionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	work, err := c.workService.SubmitNewVersion(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: work})
}

// ListVersions godoc
// @Summary List versions
// @Tags works
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Any work ID in the chain"
// @Success 200 {object} dto.APIResponse{data=[]dto.WorkResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /works/{id}/versions [get]
func (c *WorkController) ListVersions(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid work ID")
		return
	}

	history, err := c.workService.ListVersionHistory(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: history})
}
