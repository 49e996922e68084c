package database

import (
	"fmt"

	"github.com/yukikurage/taskgraph-api/internal/models"
	"gorm.io/gorm"
)

// Models lists every table the tracker needs, in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Comment{},
		&models.ActivityLog{},
	}
}

// Migrate creates or updates all tables and their indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
