package dto

import "github.com/tasklists/tasks-api/internal/models"

type CreateTaskRequest struct {
	TaskListID  uint64 `json:"taskListId" binding:"required"`
	Description string `json:"description" binding:"required,min=4,max=50"`
	Notes       string `json:"notes"`
}

type UpdateTaskRequest struct {
	RowVersion  []byte `json:"rowVersion" binding:"required"`
	TaskListID  uint64 `json:"taskListId" binding:"required"`
	Description string `json:"description" binding:"required,min=4,max=50"`
	Notes       string `json:"notes"`
}

type TaskResponse struct {
	ID          uint64 `json:"id"`
	RowVersion  []byte `json:"rowVersion"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	TaskListID  uint64 `json:"taskListId"`
}

func ToTaskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		RowVersion:  task.RowVersion,
		Description: task.Description,
		Notes:       task.Notes,
		TaskListID:  task.TaskListID,
	}
}

func ToTaskResponses(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskResponse(task)
	}
	return out
}
