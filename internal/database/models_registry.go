package database

import "sphere/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Article{},
		&models.Response{},
		&models.Like{},
		&models.Archive{},
		&models.Follow{},
	}
}
