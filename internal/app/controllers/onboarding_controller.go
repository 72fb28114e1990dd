package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/services"
	"github.com/yigit/growthpath/internal/domain/onboarding"
	"github.com/yigit/growthpath/internal/middleware"
)

// maxOnboardingBody caps the archived questionnaire size.
const maxOnboardingBody = 64 << 10

// OnboardingController handles the onboarding questionnaire
type OnboardingController struct {
	onboardingService services.OnboardingService
}

// NewOnboardingController creates a new OnboardingController
func NewOnboardingController(onboardingService services.OnboardingService) *OnboardingController {
	return &OnboardingController{onboardingService: onboardingService}
}

// GetStatus godoc
// @Summary Onboarding status
// @Tags onboarding
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingStatusResponse}
// @Router /onboarding [get]
func (c *OnboardingController) GetStatus(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}

	status, err := c.onboardingService.Status(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: status})
}

// Submit godoc
// @Summary Submit the onboarding questionnaire
// @Description Stores demographics, the raw assessment and the derived interest, strength, trait and goal records atomically
// @Tags onboarding
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body onboarding.Payload true "Questionnaire"
// @Success 201 {object} dto.APIResponse{data=dto.OnboardingResultResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /onboarding/submit [post]
func (c *OnboardingController) Submit(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}

	// The raw bytes are archived as-is, so the body is read once here.
	raw, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxOnboardingBody+1))
	if err != nil {
		badRequest(ctx, "Could not read request body")
		return
	}
	if len(raw) > maxOnboardingBody {
		badRequest(ctx, "Request body too large")
		return
	}

	payload, err := onboarding.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format").WithDetails(err.Error()),
		})
		return
	}

	result, err := c.onboardingService.Submit(ctx.Request.Context(), userID, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: result})
}
