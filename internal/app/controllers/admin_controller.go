package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/growthpath/internal/app/auth"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/services"
	"github.com/yigit/growthpath/internal/domain/works"
	"github.com/yigit/growthpath/internal/middleware"
	"github.com/yigit/growthpath/internal/pkg/helpers"
)

// AdminController serves the admin dashboard: students, review queue and observations
type AdminController struct {
	adminService       services.AdminService
	reviewService      services.ReviewService
	observationService services.ObservationService
}

// NewAdminController creates a new AdminController
func NewAdminController(
	adminService services.AdminService,
	reviewService services.ReviewService,
	observationService services.ObservationService,
) *AdminController {
	return &AdminController{
		adminService:       adminService,
		reviewService:      reviewService,
		observationService: observationService,
	}
}

// ListUsers godoc
// @Summary List students
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	users, err := c.adminService.ListUsers(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: users})
}

// GetUser godoc
// @Summary Get a student
// @Description Profile, onboarding records, tasks, works, observations and mentor statuses
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserDetailResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/users/{id} [get]
func (c *AdminController) GetUser(ctx *gin.Context) {
	userID, err := parseUserIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid user ID")
		return
	}

	detail, err := c.adminService.GetUserDetail(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: detail})
}

// GetStats godoc
// @Summary Dashboard counters
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse}
// @Router /admin/stats [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	stats, err := c.adminService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats})
}

// ListWorks godoc
// @Summary Review queue
// @Description All works, newest first, optionally filtered by review status
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "pending or completed"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/works [get]
func (c *AdminController) ListWorks(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	all, err := c.reviewService.ListWorks(ctx.Request.Context(), works.ReviewStatus(ctx.Query("status")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	start, end := helpers.CalculateSliceIndices(page, size, len(all))
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      all[start:end],
		Pagination: helpers.NewPaginationInfo(int64(len(all)), page, size),
	}})
}

// GetWork godoc
// @Summary Get a work for review
// @Description The work, its owner, the owner's task state and the version chain
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Work ID"
// @Success 200 {object} dto.APIResponse{data=dto.AdminWorkDetailResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/works/{id} [get]
func (c *AdminController) GetWork(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid work ID")
		return
	}

	work, err := c.reviewService.GetWork(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: work})
}

// ApproveWork godoc
// @Summary Approve a work
// @Description Records the review on the work. Points are awarded only the first time the task is completed; a work can be approved once.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Work ID"
// @Param request body dto.ApproveWorkRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.ApproveWorkResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/works/{id}/approve [post]
func (c *AdminController) ApproveWork(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid work ID")
		return
	}

	var req dto.ApproveWorkRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.reviewService.ApproveWork(ctx.Request.Context(), id, req.Points, req.Feedback)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ListObservations godoc
// @Summary List observations
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ObservationResponse}
// @Router /admin/observations [get]
func (c *AdminController) ListObservations(ctx *gin.Context) {
	list, err := c.observationService.ListAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list})
}

// CreateObservation godoc
// @Summary Record an observation
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateObservationRequest true "Observation"
// @Success 201 {object} dto.APIResponse{data=dto.ObservationResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/observations [post]
func (c *AdminController) CreateObservation(ctx *gin.Context) {
	principal, ok := appauth.GetPrincipal(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	var req dto.CreateObservationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	obs, err := c.observationService.Create(ctx.Request.Context(), principal.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: obs})
}

// ListUserObservations godoc
// @Summary List a student's observations
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ObservationResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/users/{id}/observations [get]
func (c *AdminController) ListUserObservations(ctx *gin.Context) {
	userID, err := parseUserIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid user ID")
		return
	}

	list, err := c.observationService.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list})
}
