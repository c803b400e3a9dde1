package v1

import (
	"net/http"
	"time"

	"github.com/taskhive/backend/internal/domain"
	"github.com/taskhive/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initTaskRoutes(v1 *gin.RouterGroup) {
	tasks := v1.Group("/tasks", h.userIdentityMiddleware)
	{
		tasks.POST("/task-upload", h.requirePermissions(isTasksmith, isVerified), h.uploadTask)
		tasks.GET("/get-tasks", h.requirePermissions(isTasksmith), h.getTasks)
		tasks.PATCH("/edit-task/:task_id", h.requirePermissions(isTasksmith), h.editTask)
		tasks.DELETE("/delete-task/:task_id", h.deleteTask)
		tasks.GET("/dashboard", h.requirePermissions(isTasksmith), h.dashboard)
	}
}

type taskResponse struct {
	ID                  uuid.UUID             `json:"id"`
	UserID              uuid.UUID             `json:"user_id"`
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	Category            string                `json:"category"`
	RewardPerCompletion int64                 `json:"reward_per_completion"`
	AssignmentType      domain.AssignmentType `json:"assignment_type"`
	MaxCompletions      *int64                `json:"max_completions,omitempty"`
	Status              domain.TaskStatus     `json:"status"`
	Tags                []string              `json:"tags"`
	Requirements        []string              `json:"requirements"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

func newTaskResponse(task *domain.Task) taskResponse {
	tags := make([]string, 0, len(task.Tags))
	for _, tag := range task.Tags {
		tags = append(tags, tag.Name)
	}

	requirements := make([]string, 0, len(task.Requirements))
	for _, requirement := range task.Requirements {
		requirements = append(requirements, requirement.Name)
	}

	return taskResponse{
		ID:                  task.ID,
		UserID:              task.UserID,
		Title:               task.Title,
		Description:         task.Description,
		Category:            task.Category,
		RewardPerCompletion: task.RewardPerCompletion,
		AssignmentType:      task.AssignmentType,
		MaxCompletions:      task.MaxCompletions,
		Status:              task.Status,
		Tags:                tags,
		Requirements:        requirements,
		CreatedAt:           task.CreatedAt,
		UpdatedAt:           task.UpdatedAt,
	}
}

type uploadTaskRequest struct {
	Title               string   `json:"title" binding:"required,max=50"`
	Description         string   `json:"description" binding:"required,max=1000"`
	Category            string   `json:"category" binding:"required,max=100"`
	RewardPerCompletion int64    `json:"reward_per_completion" binding:"required,min=1"`
	AssignmentType      string   `json:"assignment_type" binding:"required,oneof=single multiple"`
	MaxCompletions      *int64   `json:"max_completions" binding:"omitempty,min=1"`
	Tags                []string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
	Requirements        []string `json:"requirements" binding:"omitempty,dive,min=1,max=255"`
}

// @Summary Upload a new task
// @Tags tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body uploadTaskRequest true "task info"
// @Success 201 {object} response
// @Failure 400 {object} validationErrorsResponse
// @Failure 401 {object} response
// @Failure 403 {object} response
// @Router /api/v1/tasks/task-upload [post]
func (h *Handler) uploadTask(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req uploadTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	task, err := h.services.Tasks.Upload(c.Request.Context(), user, service.UploadTaskInput{
		Title:               req.Title,
		Description:         req.Description,
		Category:            req.Category,
		RewardPerCompletion: req.RewardPerCompletion,
		AssignmentType:      domain.AssignmentType(req.AssignmentType),
		MaxCompletions:      req.MaxCompletions,
		Tags:                req.Tags,
		Requirements:        req.Requirements,
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusCreated, "task uploaded successfully", newTaskResponse(task))
}

// @Summary List the authenticated user's tasks
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response
// @Failure 401 {object} response
// @Router /api/v1/tasks/get-tasks [get]
func (h *Handler) getTasks(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	tasks, err := h.services.Tasks.List(c.Request.Context(), user.ID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	result := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, newTaskResponse(&tasks[i]))
	}

	successResponse(c, http.StatusOK, "tasks retrieved", result)
}

type editTaskRequest struct {
	Title               *string   `json:"title" binding:"omitempty,min=1,max=50"`
	Description         *string   `json:"description" binding:"omitempty,min=1,max=1000"`
	Category            *string   `json:"category" binding:"omitempty,min=1,max=100"`
	RewardPerCompletion *int64    `json:"reward_per_completion" binding:"omitempty,min=1"`
	AssignmentType      *string   `json:"assignment_type" binding:"omitempty,oneof=single multiple"`
	MaxCompletions      *int64    `json:"max_completions" binding:"omitempty,min=1"`
	Status              *string   `json:"status" binding:"omitempty,oneof=pending approved review in_progress submitted completed rejected"`
	Tags                *[]string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
	Requirements        *[]string `json:"requirements" binding:"omitempty,dive,min=1,max=255"`
}

// @Summary Edit an owned task
// @Tags tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param task_id path string true "task id"
// @Param input body editTaskRequest true "fields to change"
// @Success 200 {object} response
// @Failure 400 {object} validationErrorsResponse
// @Failure 404 {object} response
// @Router /api/v1/tasks/edit-task/{task_id} [patch]
func (h *Handler) editTask(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid task id")
		return
	}

	var req editTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	input := service.EditTaskInput{
		Title:               req.Title,
		Description:         req.Description,
		Category:            req.Category,
		RewardPerCompletion: req.RewardPerCompletion,
		MaxCompletions:      req.MaxCompletions,
		Tags:                req.Tags,
		Requirements:        req.Requirements,
	}
	if req.AssignmentType != nil {
		assignmentType := domain.AssignmentType(*req.AssignmentType)
		input.AssignmentType = &assignmentType
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.services.Tasks.Edit(c.Request.Context(), user, taskID, input)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "task updated successfully", newTaskResponse(task))
}

// @Summary Soft-delete a task
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Param task_id path string true "task id"
// @Success 200 {object} response
// @Failure 404 {object} response
// @Router /api/v1/tasks/delete-task/{task_id} [delete]
func (h *Handler) deleteTask(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.services.Tasks.Delete(c.Request.Context(), user, taskID); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "task deleted successfully", nil)
}

// @Summary Task counts per status for the authenticated user
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response
// @Failure 401 {object} response
// @Router /api/v1/tasks/dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	counts, err := h.services.Tasks.Dashboard(c.Request.Context(), user.ID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "dashboard counts retrieved", counts)
}
