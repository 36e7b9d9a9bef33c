package models

import "time"

// Task belongs to exactly one TaskList. Same soft-delete and row-version
// semantics as TaskList.
type Task struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Description string `gorm:"type:varchar(50);not null;index" json:"description"`
	Notes       string `gorm:"type:text" json:"notes"`
	TaskListID  uint64 `gorm:"not null;index" json:"task_list_id"`
	RowVersion  []byte `gorm:"type:varbinary(8);not null" json:"row_version"`
	IsDeleted   bool   `gorm:"not null;default:false;index" json:"-"`

	CreatedBy  uint64     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedBy uint64     `json:"modified_by"`
	ModifiedAt time.Time  `json:"modified_at"`
	DeletedBy  *uint64    `json:"-"`
	DeletedAt  *time.Time `json:"-"`

	// Relations
	TaskList TaskList `gorm:"foreignKey:TaskListID" json:"-"`
}
