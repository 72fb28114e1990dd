package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/services"
	"github.com/yigit/growthpath/internal/middleware"
)

// ObservationController serves a student's own observation feed
type ObservationController struct {
	observationService services.ObservationService
}

// NewObservationController creates a new ObservationController
func NewObservationController(observationService services.ObservationService) *ObservationController {
	return &ObservationController{observationService: observationService}
}

// ListMine godoc
// @Summary My observations
// @Description Notes mentors wrote about the current student, newest first
// @Tags observations
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ObservationResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /observations [get]
func (c *ObservationController) ListMine(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}

	list, err := c.observationService.ListOwn(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list})
}
