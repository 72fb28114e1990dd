package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/services"
	"github.com/yigit/growthpath/internal/middleware"
)

// ProgressController serves levels, mentors and the progress dashboard
type ProgressController struct {
	progressService services.ProgressService
}

// NewProgressController creates a new ProgressController
func NewProgressController(progressService services.ProgressService) *ProgressController {
	return &ProgressController{progressService: progressService}
}

// GetProgress godoc
// @Summary Get my progress
// @Description Points, level, mentor statuses and the next mentor to unlock
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProgressResponse}
// @Router /progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}

	progress, err := c.progressService.GetProgress(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: progress})
}

// SyncUnlocks godoc
// @Summary Record newly satisfied mentor unlocks
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnlockSyncResponse}
// @Router /progress/unlocks/sync [post]
func (c *ProgressController) SyncUnlocks(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.progressService.SyncUnlocks(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ListLevels godoc
// @Summary List levels
// @Tags progress
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.LevelResponse}
// @Router /levels [get]
func (c *ProgressController) ListLevels(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: c.progressService.Levels()})
}

// ListMentors godoc
// @Summary List mentors
// @Tags progress
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.MentorResponse}
// @Router /mentors [get]
func (c *ProgressController) ListMentors(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: c.progressService.Mentors()})
}
