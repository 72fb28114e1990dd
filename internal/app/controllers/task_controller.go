package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/growthpath/internal/app/models/dto"
	"github.com/yigit/growthpath/internal/app/services"
	"github.com/yigit/growthpath/internal/middleware"
)

// TaskController handles task catalog and submission requests
type TaskController struct {
	taskService services.TaskService
}

// NewTaskController creates a new TaskController
func NewTaskController(taskService services.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

// ListTasks godoc
// @Summary List tasks
// @Description List the task catalog with the caller's status for each task
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.TaskResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 500 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}

	tasks, err := c.taskService.ListTasks(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tasks})
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Task ID"
// @Success 200 {object} dto.APIResponse{data=dto.TaskResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid task ID")
		return
	}

	task, err := c.taskService.GetTask(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: task})
}

// SubmitTask godoc
// @Summary Submit a task
// @Description Create the first version of a work for a task and mark the task pending
// @Tags tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SubmitTaskRequest true "Submission"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitTaskResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /tasks/submit [post]
func (c *TaskController) SubmitTask(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitTaskRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.taskService.SubmitTask(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}
