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

// TaskListService enforces the concurrency and ownership policy for task
// lists. Every mutating call runs one validation pass; conflicts surface to
// the caller and are never retried.
type TaskListService struct {
	listRepo repository.TaskListRepository
}

// NewTaskListService creates a new TaskListService.
func NewTaskListService(listRepo repository.TaskListRepository) *TaskListService {
	return &TaskListService{listRepo: listRepo}
}

// CreateTaskListInput holds the fields for a new list.
type CreateTaskListInput struct {
	Name string
}

// UpdateTaskListInput carries the caller's last-seen row version.
type UpdateTaskListInput struct {
	ID         uint64
	RowVersion []byte
	Name       string
}

// DeleteInput identifies a row and the caller's last-seen row version.
type DeleteInput struct {
	ID         uint64
	RowVersion []byte
}

// GetAll returns one page of the caller's lists plus the total count.
func (s *TaskListService) GetAll(user auth.User, pageSize, pageNumber int) ([]models.TaskList, int64, error) {
	lists, err := s.listRepo.List(user.ID, pageSize, pageNumber)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list task lists: %w", err)
	}
	total, err := s.listRepo.Count(user.ID, false)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count task lists: %w", err)
	}
	return lists, total, nil
}

// Get loads a single list by id.
func (s *TaskListService) Get(id uint64) (*models.TaskList, error) {
	return s.listRepo.Get(id)
}

// Add creates a list after the per-owner name uniqueness check.
func (s *TaskListService) Add(user auth.User, input CreateTaskListInput) (*models.TaskList, error) {
	name := strings.TrimSpace(input.Name)

	nameTaken, err := s.listRepo.ExistsOtherListWithSameName(user.ID, 0, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check list name: %w", err)
	}
	if nameTaken {
		return nil, apperrors.NewNotValidOperation(apperrors.CodeTaskListNameExists,
			fmt.Sprintf("The name %s already exists in other list", name))
	}

	now := time.Now().UTC()
	list := &models.TaskList{
		Name:       name,
		UserID:     user.ID,
		CreatedBy:  user.ID,
		ModifiedBy: user.ID,
		ModifiedAt: now,
	}
	if err := s.listRepo.Add(list); err != nil {
		return nil, fmt.Errorf("failed to create task list: %w", err)
	}
	return list, nil
}

// Update applies the policy pass for list updates: existence, business
// preconditions, ownership, then version. The ordering is load-bearing, a
// non-owner with a stale version must see Forbidden, not a conflict.
func (s *TaskListService) Update(user auth.User, input UpdateTaskListInput) error {
	list, err := s.listRepo.Get(input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotValidOperation(apperrors.CodeItemNotExists, "The list to update does not exist")
		}
		return fmt.Errorf("failed to load task list: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	nameTaken, err := s.listRepo.ExistsOtherListWithSameName(user.ID, input.ID, name)
	if err != nil {
		return fmt.Errorf("failed to check list name: %w", err)
	}
	if nameTaken {
		return apperrors.NewNotValidOperation(apperrors.CodeTaskListNameExists,
			fmt.Sprintf("The name %s already exists in other list", name))
	}

	if list.UserID != user.ID {
		return apperrors.ErrForbidden
	}

	if !bytes.Equal(list.RowVersion, input.RowVersion) {
		return apperrors.ErrConcurrency
	}

	now := time.Now().UTC()
	return s.listRepo.UpdateWithVersion(input.ID, input.RowVersion, func(l *models.TaskList) {
		l.Name = name
		l.ModifiedBy = user.ID
		l.ModifiedAt = now
	})
}

// Delete soft-deletes a list: existence, no remaining tasks, ownership, then
// the version-guarded delete.
func (s *TaskListService) Delete(user auth.User, input DeleteInput) error {
	list, err := s.listRepo.Get(input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotValidOperation(apperrors.CodeItemNotExists, "The list to remove does not exist")
		}
		return fmt.Errorf("failed to load task list: %w", err)
	}

	hasTasks, err := s.listRepo.ContainsAnyTask(input.ID)
	if err != nil {
		return fmt.Errorf("failed to check list tasks: %w", err)
	}
	if hasTasks {
		return apperrors.NewNotValidOperation(apperrors.CodeTaskListWithTasks, "The list to remove has tasks")
	}

	if list.UserID != user.ID {
		return apperrors.ErrForbidden
	}

	return s.listRepo.SoftDeleteWithVersion(input.ID, input.RowVersion, user.ID, time.Now().UTC())
}
