package utils

import "smartfarm/models"

// CheckAbnormality determines whether the sensor data is abnormal.
func CheckAbnormality(r models.SensorReading) bool {
	return GetAbnormalType(r) != ""
}

// GetAbnormalType returns a string describing which sensor reading is
// abnormal, or "" when everything is within working limits.
func GetAbnormalType(r models.SensorReading) string {
	if r.SoilMoisture < 5 || r.SoilMoisture > 95 {
		return "Soil Moisture"
	}
	if r.SoilTemperature < 2 || r.SoilTemperature > 45 {
		return "Soil Temperature"
	}
	if r.AirTemperature < 0 || r.AirTemperature > 50 {
		return "Air Temperature"
	}
	if r.AirHumidity < 15 || r.AirHumidity > 98 {
		return "Air Humidity"
	}
	if r.Pressure < 85 || r.Pressure > 110 {
		return "Pressure"
	}
	if r.Ammonia > 25 {
		return "Ammonia"
	}
	return ""
}
