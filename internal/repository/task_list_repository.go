package repository

import (
	"bytes"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tasklists/tasks-api/internal/apperrors"
	"github.com/tasklists/tasks-api/internal/database"
	"github.com/tasklists/tasks-api/internal/models"
)

// GormTaskListRepository is a GORM implementation of TaskListRepository
type GormTaskListRepository struct {
	db *gorm.DB
}

// NewTaskListRepository creates a new TaskListRepository
func NewTaskListRepository(db *gorm.DB) TaskListRepository {
	return &GormTaskListRepository{db: db}
}

func (r *GormTaskListRepository) Count(ownerID uint64, includeDeleted bool) (int64, error) {
	query := r.db.Model(&models.TaskList{}).Where("user_id = ?", ownerID)
	if !includeDeleted {
		query = query.Scopes(database.NotDeleted)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTaskListRepository) List(ownerID uint64, pageSize, pageNumber int) ([]models.TaskList, error) {
	var lists []models.TaskList
	err := r.db.
		Scopes(database.NotDeleted).
		Where("user_id = ?", ownerID).
		Order("name ASC").
		Scopes(database.Paginate(pageSize, pageNumber)).
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *GormTaskListRepository) Get(id uint64) (*models.TaskList, error) {
	var list models.TaskList
	if err := r.db.Scopes(database.NotDeleted).First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *GormTaskListRepository) Add(list *models.TaskList) error {
	version, err := database.NewRowVersion()
	if err != nil {
		return err
	}
	list.RowVersion = version
	return r.db.Create(list).Error
}

func (r *GormTaskListRepository) UpdateWithVersion(id uint64, expectedVersion []byte, mutate func(*models.TaskList)) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var list models.TaskList
		if err := tx.Scopes(database.NotDeleted).First(&list, id).Error; err != nil {
			return apperrors.ErrConcurrency
		}
		if !bytes.Equal(list.RowVersion, expectedVersion) {
			return apperrors.ErrConcurrency
		}

		mutate(&list)

		version, err := database.NewRowVersion()
		if err != nil {
			return err
		}
		list.RowVersion = version
		return tx.Save(&list).Error
	})
}

func (r *GormTaskListRepository) SoftDeleteWithVersion(id uint64, expectedVersion []byte, deletedBy uint64, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var list models.TaskList
		if err := tx.Scopes(database.NotDeleted).First(&list, id).Error; err != nil {
			return apperrors.ErrConcurrency
		}
		if !bytes.Equal(list.RowVersion, expectedVersion) {
			return apperrors.ErrConcurrency
		}

		version, err := database.NewRowVersion()
		if err != nil {
			return err
		}
		list.RowVersion = version
		list.IsDeleted = true
		list.DeletedBy = &deletedBy
		list.DeletedAt = &at
		return tx.Save(&list).Error
	})
}

func (r *GormTaskListRepository) HardDeleteByOwner(tx *gorm.DB, ownerID uint64) error {
	return tx.Unscoped().Where("user_id = ?", ownerID).Delete(&models.TaskList{}).Error
}

func (r *GormTaskListRepository) ContainsAnyTask(listID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Scopes(database.NotDeleted).
		Where("task_list_id = ?", listID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormTaskListRepository) ExistsOtherListWithSameName(ownerID, excludeID uint64, name string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))

	var count int64
	err := r.db.Model(&models.TaskList{}).
		Scopes(database.NotDeleted).
		Where("user_id = ?", ownerID).
		Where("LOWER(TRIM(name)) = ?", normalized).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormTaskListRepository) Exists(ownerID, listID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.TaskList{}).
		Scopes(database.NotDeleted).
		Where("id = ? AND user_id = ?", listID, ownerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
