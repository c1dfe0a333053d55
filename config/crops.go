package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"smartfarm/models"
)

// ErrBadCropRange rejects a profile whose [min,max] band is degenerate.
// Scoring divides by the range width, so min must be strictly below max.
var ErrBadCropRange = errors.New("crop profile range min must be below max")

// Crops is the loaded crop profile table, set once at startup by
// InitCropProfiles and read-only afterwards.
var Crops []models.CropProfile

// InitCropProfiles loads the crop profile table: built-in defaults,
// replaced wholesale by a "crops" list in the config file when present.
// Fails fast on any degenerate range so scoring never divides by zero.
func InitCropProfiles() error {
	profiles := DefaultCropProfiles()

	if viper.IsSet("crops") {
		var loaded []models.CropProfile
		if err := viper.UnmarshalKey("crops", &loaded); err != nil {
			return fmt.Errorf("unable to decode crop profiles: %w", err)
		}
		if len(loaded) > 0 {
			profiles = loaded
		}
	}

	for _, p := range profiles {
		if err := ValidateCropProfile(p); err != nil {
			return err
		}
	}

	Crops = profiles
	return nil
}

// ValidateCropProfile checks every range of the profile is non-degenerate.
func ValidateCropProfile(p models.CropProfile) error {
	ranges := map[string]models.Range{
		"soil_moisture":    p.SoilMoisture,
		"soil_temperature": p.SoilTemperature,
		"air_temperature":  p.AirTemperature,
		"air_humidity":     p.AirHumidity,
	}
	for name, r := range ranges {
		if r.Min >= r.Max {
			return fmt.Errorf("%w: %s %s [%.1f, %.1f]", ErrBadCropRange, p.Name, name, r.Min, r.Max)
		}
	}
	return nil
}

// DefaultCropProfiles returns the built-in reference table.
func DefaultCropProfiles() []models.CropProfile {
	return []models.CropProfile{
		{
			Name:            "Rice",
			SoilMoisture:    models.Range{Min: 60, Max: 85},
			SoilTemperature: models.Range{Min: 20, Max: 32},
			AirTemperature:  models.Range{Min: 22, Max: 35},
			AirHumidity:     models.Range{Min: 60, Max: 90},
			Season:          "Kharif (June - November)",
			Yield:           "4-6 tonnes per hectare",
			Care:            "Keep fields flooded during tillering; drain two weeks before harvest.",
		},
		{
			Name:            "Wheat",
			SoilMoisture:    models.Range{Min: 35, Max: 55},
			SoilTemperature: models.Range{Min: 12, Max: 24},
			AirTemperature:  models.Range{Min: 14, Max: 26},
			AirHumidity:     models.Range{Min: 40, Max: 70},
			Season:          "Rabi (November - April)",
			Yield:           "3-5 tonnes per hectare",
			Care:            "Irrigate at crown root initiation and grain filling; avoid waterlogging.",
		},
		{
			Name:            "Maize",
			SoilMoisture:    models.Range{Min: 40, Max: 65},
			SoilTemperature: models.Range{Min: 16, Max: 30},
			AirTemperature:  models.Range{Min: 18, Max: 32},
			AirHumidity:     models.Range{Min: 45, Max: 75},
			Season:          "Kharif and Rabi",
			Yield:           "5-8 tonnes per hectare",
			Care:            "Critical water demand at tasseling; top-dress nitrogen at knee height.",
		},
		{
			Name:            "Tomato",
			SoilMoisture:    models.Range{Min: 45, Max: 70},
			SoilTemperature: models.Range{Min: 15, Max: 28},
			AirTemperature:  models.Range{Min: 18, Max: 30},
			AirHumidity:     models.Range{Min: 50, Max: 80},
			Season:          "Year-round under cover",
			Yield:           "25-40 tonnes per hectare",
			Care:            "Stake plants early; water evenly to prevent blossom end rot.",
		},
		{
			Name:            "Potato",
			SoilMoisture:    models.Range{Min: 50, Max: 75},
			SoilTemperature: models.Range{Min: 10, Max: 22},
			AirTemperature:  models.Range{Min: 12, Max: 25},
			AirHumidity:     models.Range{Min: 55, Max: 85},
			Season:          "Rabi (October - March)",
			Yield:           "20-30 tonnes per hectare",
			Care:            "Earth up rows twice; stop irrigation ten days before lifting.",
		},
		{
			Name:            "Sugarcane",
			SoilMoisture:    models.Range{Min: 55, Max: 80},
			SoilTemperature: models.Range{Min: 20, Max: 34},
			AirTemperature:  models.Range{Min: 24, Max: 38},
			AirHumidity:     models.Range{Min: 55, Max: 85},
			Season:          "Annual (planted February - March)",
			Yield:           "70-100 tonnes per hectare",
			Care:            "Heavy feeder; irrigate every 7-10 days in formative phase.",
		},
	}
}
