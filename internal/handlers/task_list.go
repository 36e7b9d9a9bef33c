package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tasklists/tasks-api/internal/apperrors"
	"github.com/tasklists/tasks-api/internal/dto"
	"github.com/tasklists/tasks-api/internal/middleware"
	"github.com/tasklists/tasks-api/internal/services"
)

// TaskListHandler exposes CRUD over the caller's task lists.
type TaskListHandler struct {
	listService *services.TaskListService
}

// NewTaskListHandler creates a new TaskListHandler.
func NewTaskListHandler(listService *services.TaskListService) *TaskListHandler {
	return &TaskListHandler{listService: listService}
}

// List returns one page of the caller's lists ordered by name.
func (h *TaskListHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.Unauthorized(c)
		return
	}

	page, err := dto.PaginationFromQuery(c)
	if err != nil {
		apperrors.BadRequest(c, "Invalid pagination parameters")
		return
	}

	lists, total, err := h.listService.GetAll(user, page.PageSize, page.PageNumber)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Page[dto.TaskListResponse]{
		Total: total,
		Items: dto.ToTaskListResponses(lists),
	})
}

// Get returns a single list by id.
func (h *TaskListHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		apperrors.BadRequest(c, "Invalid id")
		return
	}

	list, err := h.listService.Get(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(*list))
}

// Create adds a new list.
func (h *TaskListHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.Unauthorized(c)
		return
	}

	var req dto.CreateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.listService.Add(user, services.CreateTaskListInput{Name: req.Name})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskListResponse(*list))
}

// Update renames a list under a version match.
func (h *TaskListHandler) Update(c *gin.Context) {
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

	var req dto.UpdateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	err = h.listService.Update(user, services.UpdateTaskListInput{
		ID:         id,
		RowVersion: req.RowVersion,
		Name:       req.Name,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete soft-deletes a list under a version match.
func (h *TaskListHandler) Delete(c *gin.Context) {
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

	err = h.listService.Delete(user, services.DeleteInput{ID: id, RowVersion: req.RowVersion})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
