package models

import (
	"time"

	"gorm.io/gorm"
)

// SensorReading is one snapshot from the field station. Readings are
// immutable once recorded; the "current" reading is the latest by timestamp.
type SensorReading struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Timestamp       time.Time `json:"timestamp" gorm:"index"`
	SoilMoisture    float64   `json:"soil_moisture"`
	SoilTemperature float64   `json:"soil_temperature"`
	SoilHumidity    float64   `json:"soil_humidity"`
	AirTemperature  float64   `json:"air_temperature"`
	AirHumidity     float64   `json:"air_humidity"`
	Pressure        float64   `json:"pressure"`
	Rainfall        float64   `json:"rainfall"`
	Ammonia         float64   `json:"ammonia"`
	IsAbnormal      bool      `json:"is_abnormal"`
}

// SensorReadingInput is the ingest payload. Pointer fields so a missing
// value is rejected at the boundary instead of silently becoming zero.
type SensorReadingInput struct {
	SoilMoisture    *float64 `json:"soil_moisture" binding:"required"`
	SoilTemperature *float64 `json:"soil_temperature" binding:"required"`
	SoilHumidity    *float64 `json:"soil_humidity" binding:"required"`
	AirTemperature  *float64 `json:"air_temperature" binding:"required"`
	AirHumidity     *float64 `json:"air_humidity" binding:"required"`
	Pressure        *float64 `json:"pressure" binding:"required"`
	Rainfall        *float64 `json:"rainfall" binding:"required"`
	Ammonia         *float64 `json:"ammonia" binding:"required"`
}

// Complete reports whether every field of the payload is present.
func (in SensorReadingInput) Complete() bool {
	return in.SoilMoisture != nil && in.SoilTemperature != nil &&
		in.SoilHumidity != nil && in.AirTemperature != nil &&
		in.AirHumidity != nil && in.Pressure != nil &&
		in.Rainfall != nil && in.Ammonia != nil
}

// Reading converts the payload into a SensorReading stamped at ts.
// Callers must check Complete first; nil fields panic here.
func (in SensorReadingInput) Reading(ts time.Time) SensorReading {
	return SensorReading{
		Timestamp:       ts,
		SoilMoisture:    *in.SoilMoisture,
		SoilTemperature: *in.SoilTemperature,
		SoilHumidity:    *in.SoilHumidity,
		AirTemperature:  *in.AirTemperature,
		AirHumidity:     *in.AirHumidity,
		Pressure:        *in.Pressure,
		Rainfall:        *in.Rainfall,
		Ammonia:         *in.Ammonia,
	}
}

// LatestReading returns the most recent reading, or gorm.ErrRecordNotFound
// when nothing has been ingested yet.
func LatestReading(db *gorm.DB) (SensorReading, error) {
	var reading SensorReading
	err := db.Order("timestamp desc").First(&reading).Error
	return reading, err
}
