package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tasklists/tasks-api/internal/apperrors"
	"github.com/tasklists/tasks-api/internal/auth"
	"github.com/tasklists/tasks-api/internal/models"
	"github.com/tasklists/tasks-api/internal/repository"
)

// TaskService enforces the concurrency and ownership policy for tasks.
// Ownership of a task is derived from its parent list, existence checks on the
// list are always scoped to the calling user.
type TaskService struct {
	taskRepo repository.TaskRepository
	listRepo repository.TaskListRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, listRepo repository.TaskListRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, listRepo: listRepo}
}

// CreateTaskInput holds the fields for a new task.
type CreateTaskInput struct {
	TaskListID  uint64
	Description string
	Notes       string
}

// UpdateTaskInput carries the caller's last-seen row version.
type UpdateTaskInput struct {
	ID          uint64
	RowVersion  []byte
	TaskListID  uint64
	Description string
	Notes       string
}

// GetAll returns one page of a list's tasks plus the total count.
func (s *TaskService) GetAll(listID uint64, pageSize, pageNumber int) ([]models.Task, int64, error) {
	tasks, err := s.taskRepo.List(listID, pageSize, pageNumber)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	total, err := s.taskRepo.Count(listID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return tasks, total, nil
}

// Get loads a single task by id.
func (s *TaskService) Get(id uint64) (*models.Task, error) {
	return s.taskRepo.Get(id)
}

// Add creates a task after checking the parent list exists and is owned by
// the caller.
func (s *TaskService) Add(user auth.User, input CreateTaskInput) (*models.Task, error) {
	if err := s.requireOwnedList(user, input.TaskListID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		Description: strings.TrimSpace(input.Description),
		Notes:       input.Notes,
		TaskListID:  input.TaskListID,
		CreatedBy:   user.ID,
		ModifiedBy:  user.ID,
		ModifiedAt:  now,
	}
	if err := s.taskRepo.Add(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update applies the policy pass for task updates: existence, parent-list
// precondition (which carries the ownership scope), then version.
func (s *TaskService) Update(user auth.User, input UpdateTaskInput) error {
	task, err := s.taskRepo.Get(input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotValidOperation(apperrors.CodeItemNotExists, "The task to update does not exist")
		}
		return fmt.Errorf("failed to load task: %w", err)
	}

	if err := s.requireOwnedList(user, input.TaskListID); err != nil {
		return err
	}

	if !bytes.Equal(task.RowVersion, input.RowVersion) {
		return apperrors.ErrConcurrency
	}

	now := time.Now().UTC()
	return s.taskRepo.UpdateWithVersion(input.ID, input.RowVersion, func(t *models.Task) {
		t.Description = strings.TrimSpace(input.Description)
		t.Notes = input.Notes
		t.TaskListID = input.TaskListID
		t.ModifiedBy = user.ID
		t.ModifiedAt = now
	})
}

// Delete soft-deletes a single task under a version match.
func (s *TaskService) Delete(user auth.User, input DeleteInput) error {
	_, err := s.taskRepo.Get(input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotValidOperation(apperrors.CodeItemNotExists, "The task to remove does not exist")
		}
		return fmt.Errorf("failed to load task: %w", err)
	}

	return s.taskRepo.SoftDeleteWithVersion(input.ID, input.RowVersion, user.ID, time.Now().UTC())
}

// DeleteAllInList soft-deletes every task of a list in one transaction. The
// caller's version token is checked against the list, not the tasks.
func (s *TaskService) DeleteAllInList(user auth.User, input DeleteInput) error {
	list, err := s.listRepo.Get(input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotValidOperation(apperrors.CodeItemNotExists,
				"The task list to remove all tasks in does not exist")
		}
		return fmt.Errorf("failed to load task list: %w", err)
	}

	if !bytes.Equal(list.RowVersion, input.RowVersion) {
		return apperrors.ErrConcurrency
	}

	return s.taskRepo.SoftDeleteAllInList(input.ID, user.ID, time.Now().UTC())
}

func (s *TaskService) requireOwnedList(user auth.User, listID uint64) error {
	exists, err := s.listRepo.Exists(user.ID, listID)
	if err != nil {
		return fmt.Errorf("failed to check task list: %w", err)
	}
	if !exists {
		return apperrors.NewNotValidOperation(apperrors.CodeTaskListNotExists,
			"The list to add the task into does not exist")
	}
	return nil
}
