package utils

import (
	"errors"
	"fmt"

	"smartfarm/models"
)

// Irrigation thresholds. Evaluated top to bottom; the first matching
// rule wins.
const (
	rainfallSkipMM        = 1.0
	moistureCriticalPct   = 20.0
	moistureLowPct        = 30.0
	moistureHighPct       = 60.0
	preventiveMoisturePct = 40.0
	preventiveAirTempC    = 30.0
	preventiveHumidityPct = 50.0
)

// ErrInvalidReading flags a reading the policy refuses to act on. The
// caller must leave motor state unchanged: never toggle on bad data.
var ErrInvalidReading = errors.New("invalid sensor reading")

// IrrigationDecision is the outcome of one policy evaluation. When no
// rule fires, Activate carries the current motor state (hold).
type IrrigationDecision struct {
	Activate bool   `json:"activate"`
	Reason   string `json:"reason"`
}

// ValidateReading rejects readings with physically impossible values
// before they reach any decision logic.
func ValidateReading(r models.SensorReading) error {
	if r.SoilMoisture < 0 || r.SoilMoisture > 100 {
		return fmt.Errorf("%w: soil moisture %.1f%% out of range", ErrInvalidReading, r.SoilMoisture)
	}
	if r.SoilHumidity < 0 || r.SoilHumidity > 100 {
		return fmt.Errorf("%w: soil humidity %.1f%% out of range", ErrInvalidReading, r.SoilHumidity)
	}
	if r.AirHumidity < 0 || r.AirHumidity > 100 {
		return fmt.Errorf("%w: air humidity %.1f%% out of range", ErrInvalidReading, r.AirHumidity)
	}
	if r.Rainfall < 0 {
		return fmt.Errorf("%w: negative rainfall %.1f mm", ErrInvalidReading, r.Rainfall)
	}
	if r.Ammonia < 0 {
		return fmt.Errorf("%w: negative ammonia %.1f ppm", ErrInvalidReading, r.Ammonia)
	}
	return nil
}

// EvaluateIrrigation decides whether the motor should run given the
// latest reading and the current motor state. Only meaningful in
// automatic mode; manual mode never calls the policy.
func EvaluateIrrigation(r models.SensorReading, currentOn bool) (IrrigationDecision, error) {
	if err := ValidateReading(r); err != nil {
		return IrrigationDecision{}, err
	}

	switch {
	case r.Rainfall > rainfallSkipMM:
		return IrrigationDecision{
			Activate: false,
			Reason:   fmt.Sprintf("rainfall of %.1f mm detected, irrigation not required", r.Rainfall),
		}, nil
	case r.SoilMoisture < moistureCriticalPct:
		return IrrigationDecision{
			Activate: true,
			Reason:   fmt.Sprintf("critical soil moisture at %.1f%%, starting irrigation", r.SoilMoisture),
		}, nil
	case r.SoilMoisture < moistureLowPct:
		return IrrigationDecision{
			Activate: true,
			Reason:   fmt.Sprintf("low soil moisture at %.1f%%, starting irrigation", r.SoilMoisture),
		}, nil
	case r.SoilMoisture > moistureHighPct:
		return IrrigationDecision{
			Activate: false,
			Reason:   fmt.Sprintf("adequate soil moisture at %.1f%%, irrigation not required", r.SoilMoisture),
		}, nil
	case r.SoilMoisture < preventiveMoisturePct &&
		r.AirTemperature > preventiveAirTempC &&
		r.AirHumidity < preventiveHumidityPct:
		return IrrigationDecision{
			Activate: true,
			Reason: fmt.Sprintf("hot and dry conditions (%.1f°C, %.1f%% humidity), preventive irrigation",
				r.AirTemperature, r.AirHumidity),
		}, nil
	default:
		return IrrigationDecision{
			Activate: currentOn,
			Reason:   "no action needed",
		}, nil
	}
}
