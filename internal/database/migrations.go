package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date. Indexes are declared on the model
// tags so AutoMigrate can see them on an existing database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&QueryLog{}); err != nil {
		return fmt.Errorf("failed to migrate query logs: %w", err)
	}
	return nil
}
