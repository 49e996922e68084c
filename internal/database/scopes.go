package database

import (
	"gorm.io/gorm"
)

// CreationOrder sorts rows by their generated id, which follows insertion order.
func CreationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Newest returns the most recent rows first, limited to limit rows when limit > 0.
func Newest(limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order("timestamp DESC").Order("id DESC")
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}
