package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/tasklists/tasks-api/internal/models"
)

// TaskListRepository defines data access for task lists.
//
// Version-guarded operations compare the caller-supplied token against the
// stored one inside the same transaction as the write. A mismatch fails with
// apperrors.ErrConcurrency; the store does not distinguish a vanished row from
// a stale token, existence checks belong to the policy layer.
type TaskListRepository interface {
	// Count returns the number of lists owned by ownerID. Soft-deleted rows
	// are included only when includeDeleted is set (account-purge check).
	Count(ownerID uint64, includeDeleted bool) (int64, error)

	// List returns the owner's non-deleted lists ordered by name ascending,
	// windowed by 1-based pageNumber.
	List(ownerID uint64, pageSize, pageNumber int) ([]models.TaskList, error)

	// Get loads a non-deleted list by primary key, ignoring ownership.
	Get(id uint64) (*models.TaskList, error)

	// Add inserts a new list with a fresh row version.
	Add(list *models.TaskList) error

	// UpdateWithVersion applies mutate and persists the row under a version
	// match, regenerating the row version.
	UpdateWithVersion(id uint64, expectedVersion []byte, mutate func(*models.TaskList)) error

	// SoftDeleteWithVersion marks the row deleted under a version match.
	SoftDeleteWithVersion(id uint64, expectedVersion []byte, deletedBy uint64, at time.Time) error

	// HardDeleteByOwner physically removes all of the owner's lists. Used only
	// inside the account-purge transaction, hence the explicit tx.
	HardDeleteByOwner(tx *gorm.DB, ownerID uint64) error

	// ContainsAnyTask reports whether any non-deleted task references the list.
	ContainsAnyTask(listID uint64) (bool, error)

	// ExistsOtherListWithSameName reports whether the owner already has a
	// different non-deleted list with the same trimmed, case-insensitive name.
	ExistsOtherListWithSameName(ownerID, excludeID uint64, name string) (bool, error)

	// Exists reports whether a non-deleted list exists and is owned by ownerID.
	Exists(ownerID, listID uint64) (bool, error)
}

// TaskRepository defines data access for tasks.
type TaskRepository interface {
	// Count returns the number of non-deleted tasks in a list.
	Count(listID uint64) (int64, error)

	// List returns the list's non-deleted tasks ordered by description
	// ascending, windowed by 1-based pageNumber.
	List(listID uint64, pageSize, pageNumber int) ([]models.Task, error)

	// Get loads a non-deleted task by primary key.
	Get(id uint64) (*models.Task, error)

	// Add inserts a new task with a fresh row version.
	Add(task *models.Task) error

	// UpdateWithVersion applies mutate and persists the row under a version match.
	UpdateWithVersion(id uint64, expectedVersion []byte, mutate func(*models.Task)) error

	// SoftDeleteWithVersion marks the row deleted under a version match.
	SoftDeleteWithVersion(id uint64, expectedVersion []byte, deletedBy uint64, at time.Time) error

	// SoftDeleteAllInList marks every non-deleted task of the list deleted,
	// atomically.
	SoftDeleteAllInList(listID uint64, deletedBy uint64, at time.Time) error

	// HardDeleteByOwner physically removes every task belonging to the owner's
	// lists, including soft-deleted ones. Account-purge only.
	HardDeleteByOwner(tx *gorm.DB, ownerID uint64) error
}
