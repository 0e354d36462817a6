package repository

import "gorm.io/gorm"

// AutoMigrate creates/updates every table this package maps. Used by
// cmd/seed and the test suites; production schema lives in Postgres
// migrations managed outside the app.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&adminModel{},
		&psychologistModel{},
		&appointmentModel{},
	)
}
