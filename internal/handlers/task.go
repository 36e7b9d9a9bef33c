package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasklists/tasks-api/internal/apperrors"
	"github.com/tasklists/tasks-api/internal/dto"
	"github.com/tasklists/tasks-api/internal/middleware"
	"github.com/tasklists/tasks-api/internal/services"
)

// TaskHandler exposes CRUD over the tasks of a list.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListByTaskList returns one page of a list's tasks ordered by description.
func (h *TaskHandler) ListByTaskList(c *gin.Context) {
	listID, err := pathID(c)
	if err != nil {
		apperrors.BadRequest(c, "Invalid id")
		return
	}

	page, err := dto.PaginationFromQuery(c)
	if err != nil {
		apperrors.BadRequest(c, "Invalid pagination parameters")
		return
	}

	tasks, total, err := h.taskService.GetAll(listID, page.PageSize, page.PageNumber)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Page[dto.TaskResponse]{
		Total: total,
		Items: dto.ToTaskResponses(tasks),
	})
}

// Get returns a single task by id.
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		apperrors.BadRequest(c, "Invalid id")
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// Create adds a new task to a list owned by the caller.
func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.Unauthorized(c)
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Add(user, services.CreateTaskInput{
		TaskListID:  req.TaskListID,
		Description: req.Description,
		Notes:       req.Notes,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(*task))
}

// Update rewrites a task under a version match.
func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.Unauthorized(c)
		return
	}

	id, err := pathID(c)
	if err != nil {
		apperrors.BadRequest(c, "Invalid id")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	err = h.taskService.Update(user, services.UpdateTaskInput{
		ID:          id,
		RowVersion:  req.RowVersion,
		TaskListID:  req.TaskListID,
		Description: req.Description,
		Notes:       req.Notes,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete soft-deletes a task under a version match.
func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.Unauthorized(c)
		return
	}

	id, err := pathID(c)
	if err != nil {
		apperrors.BadRequest(c, "Invalid id")
		return
	}

	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	err = h.taskService.Delete(user, services.DeleteInput{ID: id, RowVersion: req.RowVersion})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAllInList soft-deletes every task of a list under a version match
// against the list itself.
func (h *TaskHandler) DeleteAllInList(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.Unauthorized(c)
		return
	}

	listID, err := pathID(c)
	if err != nil {
		apperrors.BadRequest(c, "Invalid id")
		return
	}

	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	err = h.taskService.DeleteAllInList(user, services.DeleteInput{ID: listID, RowVersion: req.RowVersion})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
