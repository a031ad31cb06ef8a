package models

import "gorm.io/gorm"

// AllModels returns all models for migration.
// Users are migrated first as posts depend on them.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Post{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
