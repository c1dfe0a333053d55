package controllers

import (
	"smartfarm/config"
	"smartfarm/models"

	"gorm.io/gorm"
)

// MigrateModels runs the database migrations
func MigrateModels(db *gorm.DB) {
	config.DB = db
	db.AutoMigrate(
		&models.User{},
		&models.SensorReading{},
		&models.MotorState{},
		&models.ChatMessage{},
		&models.AlertLog{},
	)
}
