package repository

import (
	"bytes"
	"time"

	"gorm.io/gorm"

	"github.com/tasklists/tasks-api/internal/apperrors"
	"github.com/tasklists/tasks-api/internal/database"
	"github.com/tasklists/tasks-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Count(listID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Scopes(database.NotDeleted).
		Where("task_list_id = ?", listID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTaskRepository) List(listID uint64, pageSize, pageNumber int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Scopes(database.NotDeleted).
		Where("task_list_id = ?", listID).
		Order("description ASC").
		Scopes(database.Paginate(pageSize, pageNumber)).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) Get(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Scopes(database.NotDeleted).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) Add(task *models.Task) error {
	version, err := database.NewRowVersion()
	if err != nil {
		return err
	}
	task.RowVersion = version
	return r.db.Create(task).Error
}

func (r *GormTaskRepository) UpdateWithVersion(id uint64, expectedVersion []byte, mutate func(*models.Task)) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Scopes(database.NotDeleted).First(&task, id).Error; err != nil {
			return apperrors.ErrConcurrency
		}
		if !bytes.Equal(task.RowVersion, expectedVersion) {
			return apperrors.ErrConcurrency
		}

		mutate(&task)

		version, err := database.NewRowVersion()
		if err != nil {
			return err
		}
		task.RowVersion = version
		return tx.Save(&task).Error
	})
}

func (r *GormTaskRepository) SoftDeleteWithVersion(id uint64, expectedVersion []byte, deletedBy uint64, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Scopes(database.NotDeleted).First(&task, id).Error; err != nil {
			return apperrors.ErrConcurrency
		}
		if !bytes.Equal(task.RowVersion, expectedVersion) {
			return apperrors.ErrConcurrency
		}

		version, err := database.NewRowVersion()
		if err != nil {
			return err
		}
		task.RowVersion = version
		task.IsDeleted = true
		task.DeletedBy = &deletedBy
		task.DeletedAt = &at
		return tx.Save(&task).Error
	})
}

func (r *GormTaskRepository) SoftDeleteAllInList(listID uint64, deletedBy uint64, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tasks []models.Task
		err := tx.Scopes(database.NotDeleted).
			Where("task_list_id = ?", listID).
			Find(&tasks).Error
		if err != nil {
			return err
		}

		for i := range tasks {
			version, err := database.NewRowVersion()
			if err != nil {
				return err
			}
			tasks[i].RowVersion = version
			tasks[i].IsDeleted = true
			tasks[i].DeletedBy = &deletedBy
			tasks[i].DeletedAt = &at
			if err := tx.Save(&tasks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormTaskRepository) HardDeleteByOwner(tx *gorm.DB, ownerID uint64) error {
	ownedLists := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.TaskList{}).
		Select("id").
		Where("user_id = ?", ownerID)

	return tx.Unscoped().
		Where("task_list_id IN (?)", ownedLists).
		Delete(&models.Task{}).Error
}
