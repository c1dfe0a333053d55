package controllers

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smartfarm/config"
	"smartfarm/models"
	"smartfarm/utils"
)

func setupControlDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.SensorReading{}, &models.MotorState{}, &models.AlertLog{}, &models.ChatMessage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	Alerter = nil
}

func controlReading(moisture float64) models.SensorReading {
	return models.SensorReading{
		Timestamp:       time.Now(),
		SoilMoisture:    moisture,
		SoilTemperature: 22,
		SoilHumidity:    50,
		AirTemperature:  25,
		AirHumidity:     60,
		Pressure:        101,
		Rainfall:        0,
		Ammonia:         3,
	}
}

func motorLogCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	config.DB.Model(&models.MotorState{}).Count(&count)
	return count
}

func TestRunAutomaticControlAppendsOnChange(t *testing.T) {
	setupControlDB(t)

	if err := RunAutomaticControl(controlReading(18)); err != nil {
		t.Fatalf("RunAutomaticControl: %v", err)
	}

	// Seed row plus the activation.
	if got := motorLogCount(t); got != 2 {
		t.Errorf("audit log has %d rows, want 2", got)
	}
	current, err := models.LatestMotorState(config.DB)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if !current.On || current.ChangedBy != models.ActorSystem {
		t.Errorf("current = %+v, want motor on, changed by system", current)
	}
}

func TestRunAutomaticControlIsIdempotent(t *testing.T) {
	setupControlDB(t)

	reading := controlReading(18)
	if err := RunAutomaticControl(reading); err != nil {
		t.Fatalf("first run: %v", err)
	}
	rows := motorLogCount(t)

	// Same reading, unchanged state: no new audit record.
	if err := RunAutomaticControl(reading); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := motorLogCount(t); got != rows {
		t.Errorf("second run appended: %d rows, want %d", got, rows)
	}
}

func TestRunAutomaticControlHoldWritesNothing(t *testing.T) {
	setupControlDB(t)

	// 50% moisture, mild weather: no rule fires, state holds at off.
	if err := RunAutomaticControl(controlReading(50)); err != nil {
		t.Fatalf("RunAutomaticControl: %v", err)
	}
	if got := motorLogCount(t); got != 1 {
		t.Errorf("audit log has %d rows, want only the seed", got)
	}
}

func TestRunAutomaticControlSkipsManualMode(t *testing.T) {
	setupControlDB(t)

	if _, err := models.AppendMotorState(config.DB, models.MotorState{
		On: false, Mode: models.ModeManual, Reason: "control mode switched to manual", ChangedBy: models.ActorUser,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := RunAutomaticControl(controlReading(18)); err != nil {
		t.Fatalf("RunAutomaticControl: %v", err)
	}
	current, _ := models.LatestMotorState(config.DB)
	if current.On {
		t.Error("policy toggled the motor in manual mode")
	}
	if got := motorLogCount(t); got != 1 {
		t.Errorf("audit log has %d rows, want 1", got)
	}
}

func TestRunAutomaticControlFailSafeOnBadReading(t *testing.T) {
	setupControlDB(t)

	bad := controlReading(150)
	err := RunAutomaticControl(bad)
	if !errors.Is(err, utils.ErrInvalidReading) {
		t.Fatalf("err = %v, want ErrInvalidReading", err)
	}

	// The motor must stay exactly as it was: only the seed row exists.
	current, lookupErr := models.LatestMotorState(config.DB)
	if lookupErr != nil {
		t.Fatalf("latest: %v", lookupErr)
	}
	if current.On {
		t.Error("motor toggled on invalid data")
	}
	if got := motorLogCount(t); got != 1 {
		t.Errorf("audit log has %d rows, want 1", got)
	}
}
