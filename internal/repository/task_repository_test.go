package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tasklists/tasks-api/internal/apperrors"
	"github.com/tasklists/tasks-api/internal/models"
)

type TaskRepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	repo     TaskRepository
	listRepo TaskListRepository
	list     *models.TaskList
}

func (s *TaskRepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	err = db.AutoMigrate(&models.User{}, &models.TaskList{}, &models.Task{})
	s.Require().NoError(err)

	s.db = db
	s.repo = NewTaskRepository(db)
	s.listRepo = NewTaskListRepository(db)

	s.list = &models.TaskList{Name: "groceries", UserID: 1, CreatedBy: 1, ModifiedBy: 1}
	s.Require().NoError(s.listRepo.Add(s.list))
}

func (s *TaskRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *TaskRepositoryTestSuite) createTask(description string, listID uint64) *models.Task {
	task := &models.Task{Description: description, TaskListID: listID, CreatedBy: 1, ModifiedBy: 1}
	s.Require().NoError(s.repo.Add(task))
	return task
}

func (s *TaskRepositoryTestSuite) TestAdd_AssignsRowVersion() {
	task := s.createTask("buy milk", s.list.ID)
	s.Len(task.RowVersion, 8)
	s.NotZero(task.ID)
}

func (s *TaskRepositoryTestSuite) TestUpdateWithVersion_RotatesVersion() {
	task := s.createTask("buy milk", s.list.ID)
	before := append([]byte{}, task.RowVersion...)

	err := s.repo.UpdateWithVersion(task.ID, task.RowVersion, func(t *models.Task) {
		t.Description = "buy bread"
		t.Notes = "whole grain"
	})
	s.Require().NoError(err)

	updated, err := s.repo.Get(task.ID)
	s.Require().NoError(err)
	s.Equal("buy bread", updated.Description)
	s.Equal("whole grain", updated.Notes)
	s.NotEqual(before, updated.RowVersion)
}

func (s *TaskRepositoryTestSuite) TestUpdateWithVersion_Stale() {
	task := s.createTask("buy milk", s.list.ID)
	stale := staleVersion(task.RowVersion)

	err := s.repo.UpdateWithVersion(task.ID, stale, func(t *models.Task) {
		t.Description = "buy bread"
	})
	s.ErrorIs(err, apperrors.ErrConcurrency)
}

func (s *TaskRepositoryTestSuite) TestSoftDeleteWithVersion() {
	task := s.createTask("buy milk", s.list.ID)
	at := time.Now().UTC()

	s.Require().NoError(s.repo.SoftDeleteWithVersion(task.ID, task.RowVersion, 1, at))

	_, err := s.repo.Get(task.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	var raw models.Task
	s.Require().NoError(s.db.First(&raw, task.ID).Error)
	s.True(raw.IsDeleted)
	s.Require().NotNil(raw.DeletedBy)
	s.EqualValues(1, *raw.DeletedBy)
}

func (s *TaskRepositoryTestSuite) TestSoftDeleteAllInList() {
	first := s.createTask("buy milk", s.list.ID)
	second := s.createTask("buy bread", s.list.ID)

	other := &models.TaskList{Name: "errands", UserID: 1, CreatedBy: 1, ModifiedBy: 1}
	s.Require().NoError(s.listRepo.Add(other))
	untouched := s.createTask("post letter", other.ID)

	s.Require().NoError(s.repo.SoftDeleteAllInList(s.list.ID, 1, time.Now().UTC()))

	count, err := s.repo.Count(s.list.ID)
	s.Require().NoError(err)
	s.EqualValues(0, count)

	// Every deleted task got a fresh version token.
	for _, old := range []*models.Task{first, second} {
		var raw models.Task
		s.Require().NoError(s.db.First(&raw, old.ID).Error)
		s.True(raw.IsDeleted)
		s.NotEqual(old.RowVersion, raw.RowVersion)
	}

	// The other list's tasks are untouched.
	got, err := s.repo.Get(untouched.ID)
	s.Require().NoError(err)
	s.False(got.IsDeleted)
}

func (s *TaskRepositoryTestSuite) TestHardDeleteByOwner_ScopedToOwnerLists() {
	s.createTask("buy milk", s.list.ID)

	otherList := &models.TaskList{Name: "other", UserID: 2, CreatedBy: 2, ModifiedBy: 2}
	s.Require().NoError(s.listRepo.Add(otherList))
	s.createTask("keep me", otherList.ID)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.HardDeleteByOwner(tx, 1)
	})
	s.Require().NoError(err)

	var count int64
	s.Require().NoError(s.db.Model(&models.Task{}).Where("task_list_id = ?", s.list.ID).Count(&count).Error)
	s.EqualValues(0, count)

	s.Require().NoError(s.db.Model(&models.Task{}).Where("task_list_id = ?", otherList.ID).Count(&count).Error)
	s.EqualValues(1, count)
}

func (s *TaskRepositoryTestSuite) TestList_OrderedAndPaginated() {
	for _, d := range []string{"delta", "alpha", "charlie", "bravo"} {
		s.createTask(d, s.list.ID)
	}

	page, err := s.repo.List(s.list.ID, 2, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("alpha", page[0].Description)
	s.Equal("bravo", page[1].Description)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
