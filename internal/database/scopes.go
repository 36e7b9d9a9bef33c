package database

import "gorm.io/gorm"

// NotDeleted excludes soft-deleted rows. Every default read path applies it;
// the include-deleted variants used by the account-purge check skip it.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// Paginate applies 1-based page windowing to a GORM query.
func Paginate(pageSize, pageNumber int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (pageNumber - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}
