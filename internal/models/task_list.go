package models

import "time"

// TaskList is a named collection of tasks owned by exactly one user.
//
// RowVersion is an opaque token regenerated on every write; callers compare it
// for equality only. IsDeleted is an explicit soft-delete flag: deleted rows stay
// addressable by primary key but are excluded from default queries.
type TaskList struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	Name       string `gorm:"type:varchar(50);not null;index" json:"name"`
	UserID     uint64 `gorm:"not null;index" json:"user_id"`
	RowVersion []byte `gorm:"type:varbinary(8);not null" json:"row_version"`
	IsDeleted  bool   `gorm:"not null;default:false;index" json:"-"`

	CreatedBy  uint64     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedBy uint64     `json:"modified_by"`
	ModifiedAt time.Time  `json:"modified_at"`
	DeletedBy  *uint64    `json:"-"`
	DeletedAt  *time.Time `json:"-"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Tasks []Task `gorm:"foreignKey:TaskListID" json:"tasks,omitempty"`
}
