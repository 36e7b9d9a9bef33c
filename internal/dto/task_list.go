package dto

import "github.com/tasklists/tasks-api/internal/models"

type CreateTaskListRequest struct {
	Name string `json:"name" binding:"required,min=4,max=50"`
}

type UpdateTaskListRequest struct {
	RowVersion []byte `json:"rowVersion" binding:"required"`
	Name       string `json:"name" binding:"required,min=4,max=50"`
}

// DeleteRequest carries the caller's last-seen row version for a delete.
type DeleteRequest struct {
	RowVersion []byte `json:"rowVersion" binding:"required"`
}

// TaskListResponse is the read shape; RowVersion serializes as base64 and is
// echoed back verbatim on updates.
type TaskListResponse struct {
	ID         uint64 `json:"id"`
	RowVersion []byte `json:"rowVersion"`
	Name       string `json:"name"`
}

func ToTaskListResponse(list models.TaskList) TaskListResponse {
	return TaskListResponse{
		ID:         list.ID,
		RowVersion: list.RowVersion,
		Name:       list.Name,
	}
}

func ToTaskListResponses(lists []models.TaskList) []TaskListResponse {
	out := make([]TaskListResponse, len(lists))
	for i, list := range lists {
		out[i] = ToTaskListResponse(list)
	}
	return out
}
