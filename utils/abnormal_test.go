package utils

import (
	"testing"

	"smartfarm/models"
)

func TestGetAbnormalType(t *testing.T) {
	normal := models.SensorReading{
		SoilMoisture:    50,
		SoilTemperature: 22,
		AirTemperature:  25,
		AirHumidity:     60,
		Pressure:        101,
		Ammonia:         3,
	}

	if got := GetAbnormalType(normal); got != "" {
		t.Errorf("normal reading flagged as %q", got)
	}
	if CheckAbnormality(normal) {
		t.Error("normal reading reported abnormal")
	}

	tests := []struct {
		name   string
		mutate func(*models.SensorReading)
		want   string
	}{
		{"bone dry soil", func(r *models.SensorReading) { r.SoilMoisture = 2 }, "Soil Moisture"},
		{"frozen soil", func(r *models.SensorReading) { r.SoilTemperature = -1 }, "Soil Temperature"},
		{"extreme heat", func(r *models.SensorReading) { r.AirTemperature = 55 }, "Air Temperature"},
		{"pressure drop", func(r *models.SensorReading) { r.Pressure = 70 }, "Pressure"},
		{"ammonia spike", func(r *models.SensorReading) { r.Ammonia = 30 }, "Ammonia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := normal
			tt.mutate(&r)
			if got := GetAbnormalType(r); got != tt.want {
				t.Errorf("GetAbnormalType = %q, want %q", got, tt.want)
			}
			if !CheckAbnormality(r) {
				t.Error("abnormal reading not reported")
			}
		})
	}
}
